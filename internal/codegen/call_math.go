package codegen

import (
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// math.nepl's builtins (permutation, combination, gcd, lcm, factorial)
// and pow have no dedicated wasm opcode, unlike the direct-opcode
// operators in ops.go -- each lowers to a genuine small counted loop
// over fresh locals, scoped to integer operands only: `pow` over
// floats would need a non-integer exponent and this core ships no
// log/exp host import to compute one, so it is rejected here rather
// than silently truncating the exponent.

func (e *Emitter) genPow(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'pow' over floating-point operands is not supported")
		return
	}
	e.gen(c.Args[0])
	baseIdx := e.declareLocal(operandType)
	e.setLocal(baseIdx)
	e.gen(c.Args[1])
	counterIdx := e.declareLocal(operandType)
	e.setLocal(counterIdx)
	resultIdx := e.declareLocal(operandType)
	e.push(ops.constI(1))
	e.setLocal(resultIdx)

	e.genCountedLoop(
		func() {
			e.getLocal(counterIdx)
			e.push(ops.constI(0))
			e.push(wasm.Instruction{Opcode: ops.leS})
		},
		func() {
			e.getLocal(resultIdx)
			e.getLocal(baseIdx)
			e.push(wasm.Instruction{Opcode: ops.mul})
			e.setLocal(resultIdx)
			e.getLocal(counterIdx)
			e.push(ops.constI(1))
			e.push(wasm.Instruction{Opcode: ops.sub})
			e.setLocal(counterIdx)
		},
	)
	e.getLocal(resultIdx)
}

// genEuclid runs the Euclidean algorithm over copies of a and b,
// leaving the gcd in gaIdx (reused directly by genGCD, and as a
// building block by genLCM).
func (e *Emitter) genEuclid(ops intOps, aIdx, bIdx uint32) (gaIdx uint32) {
	gaIdx = e.declareLocal(ops.width)
	gbIdx := e.declareLocal(ops.width)
	e.getLocal(aIdx)
	e.setLocal(gaIdx)
	e.getLocal(bIdx)
	e.setLocal(gbIdx)

	e.genCountedLoop(
		func() {
			e.getLocal(gbIdx)
			e.push(wasm.Instruction{Opcode: ops.eqz})
		},
		func() {
			tIdx := e.declareLocal(ops.width)
			e.getLocal(gaIdx)
			e.getLocal(gbIdx)
			e.push(wasm.Instruction{Opcode: ops.rem})
			e.setLocal(tIdx)
			e.getLocal(gbIdx)
			e.setLocal(gaIdx)
			e.getLocal(tIdx)
			e.setLocal(gbIdx)
		},
	)
	return gaIdx
}

func (e *Emitter) genGCD(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'gcd' is not supported over %s", operandType)
		return
	}
	e.gen(c.Args[0])
	aIdx := e.declareLocal(operandType)
	e.setLocal(aIdx)
	e.gen(c.Args[1])
	bIdx := e.declareLocal(operandType)
	e.setLocal(bIdx)
	gIdx := e.genEuclid(ops, aIdx, bIdx)
	e.getLocal(gIdx)
}

func (e *Emitter) genLCM(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'lcm' is not supported over %s", operandType)
		return
	}
	e.gen(c.Args[0])
	aIdx := e.declareLocal(operandType)
	e.setLocal(aIdx)
	e.gen(c.Args[1])
	bIdx := e.declareLocal(operandType)
	e.setLocal(bIdx)
	gIdx := e.genEuclid(ops, aIdx, bIdx)

	e.getLocal(aIdx)
	e.getLocal(gIdx)
	e.push(wasm.Instruction{Opcode: ops.div})
	e.getLocal(bIdx)
	e.push(wasm.Instruction{Opcode: ops.mul})
}

func (e *Emitter) genFactorial(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'factorial' is not supported over %s", operandType)
		return
	}
	e.gen(c.Args[0])
	nIdx := e.declareLocal(operandType)
	e.setLocal(nIdx)
	resultIdx := e.declareLocal(operandType)
	e.push(ops.constI(1))
	e.setLocal(resultIdx)
	iIdx := e.declareLocal(operandType)
	e.push(ops.constI(1))
	e.setLocal(iIdx)

	e.genCountedLoop(
		func() {
			e.getLocal(iIdx)
			e.getLocal(nIdx)
			e.push(wasm.Instruction{Opcode: ops.gtS})
		},
		func() {
			e.getLocal(resultIdx)
			e.getLocal(iIdx)
			e.push(wasm.Instruction{Opcode: ops.mul})
			e.setLocal(resultIdx)
			e.getLocal(iIdx)
			e.push(ops.constI(1))
			e.push(wasm.Instruction{Opcode: ops.add})
			e.setLocal(iIdx)
		},
	)
	e.getLocal(resultIdx)
}

// genPermutation computes the falling factorial n*(n-1)*...*(n-r+1)
// directly, avoiding two full factorials and a division.
func (e *Emitter) genPermutation(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'permutation' is not supported over %s", operandType)
		return
	}
	e.gen(c.Args[0])
	nIdx := e.declareLocal(operandType)
	e.setLocal(nIdx)
	e.gen(c.Args[1])
	rIdx := e.declareLocal(operandType)
	e.setLocal(rIdx)
	resultIdx := e.declareLocal(operandType)
	e.push(ops.constI(1))
	e.setLocal(resultIdx)
	iIdx := e.declareLocal(operandType)
	e.push(ops.constI(0))
	e.setLocal(iIdx)

	e.genCountedLoop(
		func() {
			e.getLocal(iIdx)
			e.getLocal(rIdx)
			e.push(wasm.Instruction{Opcode: ops.geS})
		},
		func() {
			e.getLocal(resultIdx)
			e.getLocal(nIdx)
			e.getLocal(iIdx)
			e.push(wasm.Instruction{Opcode: ops.sub})
			e.push(wasm.Instruction{Opcode: ops.mul})
			e.setLocal(resultIdx)
			e.getLocal(iIdx)
			e.push(ops.constI(1))
			e.push(wasm.Instruction{Opcode: ops.add})
			e.setLocal(iIdx)
		},
	)
	e.getLocal(resultIdx)
}

// genCombination computes C(n,r) via the running-product identity
// result = result * (n-i) / (i+1), which stays an exact integer after
// every iteration -- so it needs no separate factorial/division step.
func (e *Emitter) genCombination(c hir.Call, operandType types.Type, span report.Span) {
	ops, ok := intOpsFor(operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'combination' is not supported over %s", operandType)
		return
	}
	e.gen(c.Args[0])
	nIdx := e.declareLocal(operandType)
	e.setLocal(nIdx)
	e.gen(c.Args[1])
	rIdx := e.declareLocal(operandType)
	e.setLocal(rIdx)
	resultIdx := e.declareLocal(operandType)
	e.push(ops.constI(1))
	e.setLocal(resultIdx)
	iIdx := e.declareLocal(operandType)
	e.push(ops.constI(0))
	e.setLocal(iIdx)

	e.genCountedLoop(
		func() {
			e.getLocal(iIdx)
			e.getLocal(rIdx)
			e.push(wasm.Instruction{Opcode: ops.geS})
		},
		func() {
			e.getLocal(resultIdx)
			e.getLocal(nIdx)
			e.getLocal(iIdx)
			e.push(wasm.Instruction{Opcode: ops.sub})
			e.push(wasm.Instruction{Opcode: ops.mul})
			e.getLocal(iIdx)
			e.push(ops.constI(1))
			e.push(wasm.Instruction{Opcode: ops.add})
			e.push(wasm.Instruction{Opcode: ops.div})
			e.setLocal(resultIdx)
			e.getLocal(iIdx)
			e.push(ops.constI(1))
			e.push(wasm.Instruction{Opcode: ops.add})
			e.setLocal(iIdx)
		},
	)
	e.getLocal(resultIdx)
}
