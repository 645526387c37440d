package codegen

import (
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/neknaj/NEPLg1/internal/typing"
	"github.com/wippyai/wasm-runtime/wasm"
)

func (e *Emitter) genCall(c hir.Call, resultType types.Type, span report.Span) {
	switch {
	case c.Callee.IsIntrinsic:
		e.genIntrinsicCall(c)
	case c.Callee.FuncValue != nil:
		e.genCalleeCall(c, resultType, span)
	default:
		e.genBuiltinCall(c, resultType, span)
	}
}

func (e *Emitter) genIntrinsicCall(c hir.Call) {
	desc, ok := typing.LookupIntrinsic(c.Callee.Name)
	if !ok {
		panic(&report.ICE{Message: "codegen: unknown intrinsic '" + c.Callee.Name + "'"})
	}
	for _, a := range c.Args {
		e.gen(a)
	}
	idx := e.importFunc(desc.Module, desc.Name, desc.Params, desc.Result)
	e.push(wasm.Instruction{Opcode: wasm.OpCall, Imm: wasm.CallImm{FuncIdx: idx}})
}

// genCalleeCall inlines a function-literal value's body at the call
// site (DESIGN.md's call-site-inlining decision). If the callee turns
// out to be a value whose body was never statically captured (a
// function-typed parameter, called indirectly), there is nothing to
// inline -- that needs a real funcref/table-based indirect call, which
// the single-function program model this core targets does not build.
func (e *Emitter) genCalleeCall(c hir.Call, resultType types.Type, span report.Span) {
	closure, ok := c.Callee.FuncValue.Kind.(hir.Closure)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span,
			"calling a function received as a parameter is not supported; only directly-named function values can be called")
		return
	}

	e.pushScope()
	for i, p := range closure.Params {
		e.gen(c.Args[i])
		idx := e.bind(p.Name, p.Type)
		if _, ok := valTypeOf(p.Type); ok {
			e.setLocal(idx)
		}
	}

	e.pushBlock(blockType(resultType))
	blockOpenDepth := e.blockDepth
	e.pushReturnFrame(blockOpenDepth)
	e.gen(closure.Body)
	e.popFrame()
	e.popStructured()

	e.popScope()
}

// genBuiltinCall lowers a builtin/operator call by name. Simple
// arithmetic/comparison/bitwise/logical operators go through the
// direct opcode tables in ops.go; everything else (runtime-loop math,
// Vec/String operators) is handled by its own case.
func (e *Emitter) genBuiltinCall(c hir.Call, resultType types.Type, span report.Span) {
	name := c.Callee.Name
	operandType := types.TyI32
	if len(c.Args) > 0 {
		operandType = c.Args[0].Type
	}

	switch name {
	case "neg":
		e.genNeg(c, operandType, span)
		return
	case "not", "bit_not":
		e.gen(c.Args[0])
		instrs, ok := unaryOpcode(name, operandType)
		if !ok {
			e.diags.Raise(report.CompileUnsupportedConstruct, span, "'%s' is not supported over %s", name, operandType)
			return
		}
		e.push(instrs...)
		return
	case "div", "mod":
		e.genDivMod(c, name, operandType, span)
		return
	case "pow":
		e.genPow(c, operandType, span)
		return
	case "gcd":
		e.genGCD(c, operandType, span)
		return
	case "lcm":
		e.genLCM(c, operandType, span)
		return
	case "factorial":
		e.genFactorial(c, operandType, span)
		return
	case "permutation":
		e.genPermutation(c, operandType, span)
		return
	case "combination":
		e.genCombination(c, operandType, span)
		return
	case "concat":
		e.genConcat(c, span)
		return
	case "len":
		e.genLen(c, span)
		return
	case "get":
		e.genGet(c, resultType, span)
		return
	case "push", "pop":
		e.genVecMutate(c, name, resultType, span)
		return
	case "to_string":
		e.genToString(c, span)
		return
	case "parse_i32":
		e.genParseI32(c, span)
		return
	case "to_bool":
		e.gen(c.Args[0])
		e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}})
		e.push(wasm.Instruction{Opcode: wasm.OpI32Ne})
		return
	}

	for _, a := range c.Args {
		e.gen(a)
	}
	opc, ok := binOpcode(name, operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'%s' is not supported over %s", name, operandType)
		return
	}
	e.push(wasm.Instruction{Opcode: opc})
}

// genNeg handles unary `neg`: float types have a dedicated opcode
// (via unaryOpcode); integers have none, so it lowers as `0 - x`,
// which needs the zero constant emitted before the already-generated
// operand rather than appended after it.
func (e *Emitter) genNeg(c hir.Call, operandType types.Type, span report.Span) {
	switch operandType.Kind {
	case types.F32, types.F64:
		e.gen(c.Args[0])
		instrs, _ := unaryOpcode("neg", operandType)
		e.push(instrs...)
	case types.I32:
		e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}})
		e.gen(c.Args[0])
		e.push(wasm.Instruction{Opcode: wasm.OpI32Sub})
	case types.I64:
		e.push(wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: 0}})
		e.gen(c.Args[0])
		e.push(wasm.Instruction{Opcode: wasm.OpI64Sub})
	default:
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'neg' is not supported over %s", operandType)
	}
}

// genDivMod implements the literal-zero compile-time check from spec's
// boundary behaviour (`div x 0` with a literal 0 divisor is a
// CompileError::DivisionByZero, not a runtime trap) before falling
// through to the ordinary opcode lowering -- a non-literal divisor
// still compiles to the real div/rem instruction, which wasm itself
// traps on at runtime for an actual zero.
func (e *Emitter) genDivMod(c hir.Call, name string, operandType types.Type, span report.Span) {
	if isLiteralZero(c.Args[1]) {
		e.diags.Raise(report.CompileDivisionByZero, span, "division by literal zero")
		return
	}
	e.gen(c.Args[0])
	e.gen(c.Args[1])
	opc, ok := binOpcode(name, operandType)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'%s' is not supported over %s", name, operandType)
		return
	}
	e.push(wasm.Instruction{Opcode: opc})
}

func isLiteralZero(e hir.Expr) bool {
	switch k := e.Kind.(type) {
	case hir.I32:
		return k.Value == 0
	case hir.I64:
		return k.Value == 0
	case hir.F32:
		return k.Value == 0
	case hir.F64:
		return k.Value == 0
	default:
		return false
	}
}
