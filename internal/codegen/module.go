// Package codegen lowers typed HIR (internal/hir) to a wasm.Module
// using github.com/wippyai/wasm-runtime/wasm, per spec §4.5. No working
// reference exists in original_source/nepl-core/src/codegen_wasm.rs
// (a one-case stub), so control-flow and arithmetic lowering is
// designed directly from spec's prose, using the wasm-runtime package's
// Module/FuncType/Instruction types in place of the Rust
// wasm-encoder crate the original would have used.
package codegen

import (
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// Result is Generate's output: the (not yet encoded) module plus the bookkeeping
// internal/compiler threads into its Artifact.
type Result struct {
	Module      *wasm.Module
	Intrinsics  []IntrinsicRef
}

// Generate lowers program (the resolved HIR for the whole source file,
// spec §4.3's single `main: () -> i32` function) into a complete
// wasm.Module. Diagnostics raised during lowering (division by a
// literal zero, an unsupported construct) are appended to diags;
// Generate still returns a best-effort Module after such errors, so
// internal/compiler must check diags.HasErrors() before trusting the
// bytes. When main does not evaluate to i32 (and lib is false), it
// raises CompileMainNotI32 and returns an empty Result with a nil
// Module.
//
// lib skips the `main` : i32 requirement -- SPEC_FULL.md's supplemented
// `--lib` flag, grounded on nepl-cli's `--lib` flag -- and exports
// whatever type program actually evaluates to instead.
func Generate(diags *report.Accumulator, program hir.Expr, lib bool) Result {
	if !lib && program.Type.Kind != types.I32 {
		diags.Raise(report.CompileMainNotI32, program.Span, "main must evaluate to i32, got %s", program.Type)
		return Result{}
	}

	e := newEmitter(diags)
	func() {
		defer diags.CatchErrors(program.Span)
		e.pushBlock(blockType(program.Type))
		blockOpenDepth := e.blockDepth
		e.pushReturnFrame(blockOpenDepth)
		e.gen(program)
		e.popFrame()
		e.popStructured()
	}()
	e.push(wasm.Instruction{Opcode: wasm.OpEnd})

	var results []wasm.ValType
	if vt, ok := valTypeOf(program.Type); ok {
		results = []wasm.ValType{vt}
	}
	mainType := e.registerType(wasm.FuncType{Results: results})
	mainFuncIdx := uint32(len(e.imports))

	m := &wasm.Module{
		Types:   e.types,
		Imports: e.imports,
		Funcs:   []uint32{mainType},
		Code: []wasm.FuncBody{{
			Locals: localEntries(e.localTypes),
			Code:   wasm.EncodeInstructions(e.code),
		}},
		Exports: []wasm.Export{{Name: "main", Kind: wasm.KindFunc, Idx: mainFuncIdx}},
	}

	if e.memoryUsed {
		m.Memories = []wasm.MemoryType{{Limits: wasm.Limits{Min: pagesFor(len(e.data))}}}
		m.Data = []wasm.DataSegment{{
			Flags:  0,
			MemIdx: 0,
			Offset: []byte{wasm.OpI32Const, 0, wasm.OpEnd},
			Init:   e.data,
		}}
	}

	return Result{Module: m, Intrinsics: e.intrinsics}
}

// localEntries groups consecutive same-type locals into LocalEntry
// runs, the way a real compiler's local-allocation pass would, rather
// than emitting one entry per local.
func localEntries(vts []wasm.ValType) []wasm.LocalEntry {
	var entries []wasm.LocalEntry
	for _, t := range vts {
		if n := len(entries); n > 0 && entries[n-1].ValType == t {
			entries[n-1].Count++
			continue
		}
		entries = append(entries, wasm.LocalEntry{Count: 1, ValType: t})
	}
	return entries
}

// pagesFor returns the number of 64KiB wasm pages needed to hold n
// bytes of static data, at least one page. Generate only calls it (and
// only emits a memory at all) when some string/vector data was
// interned; a program with no such data gets no memory section.
func pagesFor(n int) uint64 {
	const pageSize = 65536
	pages := uint64(n+pageSize-1) / pageSize
	if pages == 0 {
		pages = 1
	}
	return pages
}
