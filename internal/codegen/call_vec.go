package codegen

import (
	"strconv"

	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// String/Vec[T] values are laid out in linear memory as
// [i32 length][elements...]; len/get are genuine runtime loads off
// that layout regardless of how the pointer was produced. concat,
// push, and pop would need to materialise a *new*, differently-sized
// buffer, which this core has no dynamic allocator for (DESIGN.md's
// scoping decision) -- they only work when every operand is known at
// compile time (a literal, or for push/pop a nested push/pop over
// one), letting the whole operation constant-fold into a new static
// data segment at compile time.

func (e *Emitter) genLen(c hir.Call, span report.Span) {
	e.gen(c.Args[0])
	e.push(wasm.Instruction{Opcode: wasm.OpI32Load, Imm: wasm.MemoryImm{Offset: 0}})
}

func loadOpcodeFor(t types.Type) (byte, bool) {
	switch t.Kind {
	case types.I32:
		return wasm.OpI32Load, true
	case types.I64:
		return wasm.OpI64Load, true
	case types.F32:
		return wasm.OpF32Load, true
	case types.F64:
		return wasm.OpF64Load, true
	default:
		return 0, false
	}
}

func (e *Emitter) genGet(c hir.Call, resultType types.Type, span report.Span) {
	elemTy := resultType
	size := elemSize(elemTy)
	opc, ok := loadOpcodeFor(elemTy)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'get' over element type %s is not supported", elemTy)
		return
	}
	e.gen(c.Args[0]) // vec pointer
	e.gen(c.Args[1]) // index
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(size)}})
	e.push(wasm.Instruction{Opcode: wasm.OpI32Mul})
	e.push(wasm.Instruction{Opcode: wasm.OpI32Add})
	e.push(wasm.Instruction{Opcode: opc, Imm: wasm.MemoryImm{Offset: 4}})
}

func (e *Emitter) genConcat(c hir.Call, span report.Span) {
	a, ok1 := c.Args[0].Kind.(hir.StringLit)
	b, ok2 := c.Args[1].Kind.(hir.StringLit)
	if !ok1 || !ok2 {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'concat' requires both operands to be compile-time constant strings")
		return
	}
	ptr := e.internString(a.Value + b.Value)
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(ptr)}})
}

func (e *Emitter) genVecMutate(c hir.Call, name string, resultType types.Type, span report.Span) {
	vals, ok := e.evalConstVec(c.Args[0])
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'%s' requires a compile-time constant vector", name)
		return
	}
	elemTy := *resultType.Elem

	switch name {
	case "push":
		bits, ok := constBits(c.Args[1])
		if !ok {
			e.diags.Raise(report.CompileUnsupportedConstruct, span, "'push' requires a compile-time constant element")
			return
		}
		vals = append(vals, bits)
	case "pop":
		if len(vals) == 0 {
			e.diags.Raise(report.CompileUnsupportedConstruct, span, "'pop' on an empty compile-time constant vector")
			return
		}
		vals = vals[:len(vals)-1]
	}

	ptr := e.internVec(elemTy, vals)
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(ptr)}})
}

// evalConstVec recursively folds a Vec[T] expression down to its raw
// element bits, walking through nested push/pop calls over an
// otherwise-constant vector as well as a bare literal -- push and pop
// both return a Call, not a VecLit, so pop push [1 2] 3 only
// constant-folds if this looks through one level of call to reach the
// other.
func (e *Emitter) evalConstVec(expr hir.Expr) ([]uint64, bool) {
	switch k := expr.Kind.(type) {
	case hir.VecLit:
		vals := make([]uint64, 0, len(k.Elems))
		for _, el := range k.Elems {
			bits, ok := constBits(el)
			if !ok {
				return nil, false
			}
			vals = append(vals, bits)
		}
		return vals, true
	case hir.Call:
		switch k.Callee.Name {
		case "push":
			vals, ok := e.evalConstVec(k.Args[0])
			if !ok {
				return nil, false
			}
			bits, ok := constBits(k.Args[1])
			if !ok {
				return nil, false
			}
			return append(vals, bits), true
		case "pop":
			vals, ok := e.evalConstVec(k.Args[0])
			if !ok || len(vals) == 0 {
				return nil, false
			}
			return vals[:len(vals)-1], true
		}
	}
	return nil, false
}

func (e *Emitter) genToString(c hir.Call, span report.Span) {
	lit, ok := c.Args[0].Kind.(hir.I32)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'to_string' requires a compile-time constant i32")
		return
	}
	ptr := e.internString(strconv.FormatInt(int64(lit.Value), 10))
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(ptr)}})
}

func (e *Emitter) genParseI32(c hir.Call, span report.Span) {
	lit, ok := c.Args[0].Kind.(hir.StringLit)
	if !ok {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'parse_i32' requires a compile-time constant string")
		return
	}
	v, err := strconv.ParseInt(lit.Value, 10, 32)
	if err != nil {
		e.diags.Raise(report.CompileUnsupportedConstruct, span, "'parse_i32': %q is not a valid integer literal", lit.Value)
		return
	}
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(v)}})
}
