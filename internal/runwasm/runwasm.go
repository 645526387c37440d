// Package runwasm executes a compiled NEPL module for tests and
// cmd/neplc's --run flag only -- never imported by internal/compiler,
// internal/codegen, or any other core package, mirroring
// original_source/nepl-cli/src/main.rs's own confinement of wasmi to
// its CLI run_wasm function and its #[cfg(test)] block, never inside
// nepl-core. Uses github.com/tetratelabs/wazero in place of wasmi.
package runwasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Handlers overrides host-intrinsic behaviour, grounded on
// nepl-cli/src/main.rs's BuiltinHandler trait and
// DefaultBuiltinHandler: tests substitute deterministic values here
// instead of a real page size / random source / stdout write.
type Handlers struct {
	PageSize int32
	Random   func() int32
	Print    func(int32) int32
}

// DefaultHandlers mirrors DefaultBuiltinHandler's fixed constants.
func DefaultHandlers() Handlers {
	return Handlers{
		PageSize: 65536,
		Random:   func() int32 { return 4 },
		Print: func(v int32) int32 {
			fmt.Println(v)
			return v
		},
	}
}

// Run instantiates wasmBytes and calls its exported `main`, returning
// main's i32 result. Only the env/wasi_snapshot_preview1 imports this
// core ever emits (wasm_pagesize, wasi_random, wasi_print) are linked;
// a module importing anything else fails to instantiate.
func Run(ctx context.Context, wasmBytes []byte, h Handlers) (int32, error) {
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	if _, err := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(context.Context) int32 { return h.PageSize }).
		Export("wasm_pagesize").
		Instantiate(ctx); err != nil {
		return 0, fmt.Errorf("linking env host module: %w", err)
	}

	if _, err := r.NewHostModuleBuilder("wasi_snapshot_preview1").
		NewFunctionBuilder().
		WithFunc(func(context.Context) int32 { return h.Random() }).
		Export("wasi_random").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, v int32) int32 { return h.Print(v) }).
		Export("wasi_print").
		Instantiate(ctx); err != nil {
		return 0, fmt.Errorf("linking wasi_snapshot_preview1 host module: %w", err)
	}

	mod, err := r.Instantiate(ctx, wasmBytes)
	if err != nil {
		return 0, fmt.Errorf("instantiating module: %w", err)
	}
	defer mod.Close(ctx)

	main := mod.ExportedFunction("main")
	if main == nil {
		return 0, fmt.Errorf("exported function 'main' missing")
	}
	results, err := main.Call(ctx)
	if err != nil {
		return 0, fmt.Errorf("calling main: %w", err)
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("main returned %d values, want 1", len(results))
	}
	return api.DecodeI32(results[0]), nil
}
