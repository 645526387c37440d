package codegen

import (
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// intOps bundles the i32/i64 opcode set so the runtime-loop builtins in
// call_math.go (gcd, lcm, factorial, permutation, combination and
// integer pow) can be written once instead of duplicated per width.
type intOps struct {
	width  types.Type
	add    byte
	sub    byte
	mul    byte
	div    byte
	rem    byte
	gtS    byte
	geS    byte
	leS    byte
	eqz    byte
	constI func(int64) wasm.Instruction
}

func intOpsFor(t types.Type) (intOps, bool) {
	switch t.Kind {
	case types.I32:
		return intOps{
			width: t, add: wasm.OpI32Add, sub: wasm.OpI32Sub, mul: wasm.OpI32Mul,
			div: wasm.OpI32DivS, rem: wasm.OpI32RemS,
			gtS: wasm.OpI32GtS, geS: wasm.OpI32GeS, leS: wasm.OpI32LeS, eqz: wasm.OpI32Eqz,
			constI: func(v int64) wasm.Instruction {
				return wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(v)}}
			},
		}, true
	case types.I64:
		return intOps{
			width: t, add: wasm.OpI64Add, sub: wasm.OpI64Sub, mul: wasm.OpI64Mul,
			div: wasm.OpI64DivS, rem: wasm.OpI64RemS,
			gtS: wasm.OpI64GtS, geS: wasm.OpI64GeS, leS: wasm.OpI64LeS, eqz: wasm.OpI64Eqz,
			constI: func(v int64) wasm.Instruction {
				return wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: v}}
			},
		}, true
	default:
		return intOps{}, false
	}
}

func (e *Emitter) getLocal(idx uint32) { e.push(wasm.Instruction{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: idx}}) }
func (e *Emitter) setLocal(idx uint32) { e.push(wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: idx}}) }

// genCountedLoop emits a `block { loop { <cond exit> body; br 0 } }`
// skeleton and calls body(ops) once per iteration; body is responsible
// for updating whatever locals the exit condition reads. exitIfTrue
// emits the loop-exit test (assumed to leave an i32 boolean on the
// stack) before body runs each iteration.
func (e *Emitter) genCountedLoop(exitIfTrue func(), body func()) {
	e.pushBlock(-64)
	blockOpenDepth := e.blockDepth
	e.pushLoop(-64)
	loopOpenDepth := e.blockDepth
	e.pushLoopFrame(blockOpenDepth, loopOpenDepth)

	exitIfTrue()
	e.push(wasm.Instruction{Opcode: wasm.OpBrIf, Imm: wasm.BranchImm{LabelIdx: e.labelFor(blockOpenDepth)}})
	body()
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: e.labelFor(loopOpenDepth)}})

	e.popFrame()
	e.popStructured() // loop
	e.popStructured() // block
}
