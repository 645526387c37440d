package typing

import "github.com/neknaj/NEPLg1/internal/types"

// Intrinsic describes one host import the emitter may reference, per
// spec §6's table. Names/signatures here are spec's, not
// original_source/nepl-core/src/builtins.rs's (page_size/random_i32/
// print_i32:(i32)->Unit) -- spec.md is authoritative, per DESIGN.md
// divergence #7.
type Intrinsic struct {
	Module string
	Name   string
	Params []types.Type
	Result types.Type
}

var Intrinsics = map[string]Intrinsic{
	"wasm_pagesize": {Module: "env", Name: "wasm_pagesize", Params: nil, Result: types.TyI32},
	"wasi_random":   {Module: "wasi_snapshot_preview1", Name: "wasi_random", Params: nil, Result: types.TyI32},
	"wasi_print":    {Module: "wasi_snapshot_preview1", Name: "wasi_print", Params: []types.Type{types.TyI32}, Result: types.TyI32},
}

// LookupIntrinsic returns the intrinsic descriptor for a bare name
// (no `@` prefix, no module qualification) -- nepl-cli's own tests
// ("wasi_print (wasi_random)") confirm intrinsic names resolve without
// namespace qualification at the core level.
func LookupIntrinsic(name string) (Intrinsic, bool) {
	i, ok := Intrinsics[name]
	return i, ok
}
