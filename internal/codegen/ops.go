package codegen

import (
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// binOpcode returns the wasm opcode for a builtin binary operator over
// operandType, per spec §4.5's arithmetic/comparison/bitwise lowering
// table. ok is false for operators this table does not cover directly
// (concat/push/pop/get/len/convert, handled separately).
func binOpcode(name string, operandType types.Type) (byte, bool) {
	switch operandType.Kind {
	case types.I32:
		switch name {
		case "add":
			return wasm.OpI32Add, true
		case "sub":
			return wasm.OpI32Sub, true
		case "mul":
			return wasm.OpI32Mul, true
		case "div":
			return wasm.OpI32DivS, true
		case "mod":
			return wasm.OpI32RemS, true
		case "lt":
			return wasm.OpI32LtS, true
		case "le":
			return wasm.OpI32LeS, true
		case "gt":
			return wasm.OpI32GtS, true
		case "ge":
			return wasm.OpI32GeS, true
		case "eq":
			return wasm.OpI32Eq, true
		case "ne":
			return wasm.OpI32Ne, true
		case "bit_and":
			return wasm.OpI32And, true
		case "bit_or":
			return wasm.OpI32Or, true
		case "bit_xor":
			return wasm.OpI32Xor, true
		case "bit_shl":
			return wasm.OpI32Shl, true
		case "bit_shr":
			return wasm.OpI32ShrS, true
		}
	case types.I64:
		switch name {
		case "add":
			return wasm.OpI64Add, true
		case "sub":
			return wasm.OpI64Sub, true
		case "mul":
			return wasm.OpI64Mul, true
		case "div":
			return wasm.OpI64DivS, true
		case "mod":
			return wasm.OpI64RemS, true
		case "lt":
			return wasm.OpI64LtS, true
		case "le":
			return wasm.OpI64LeS, true
		case "gt":
			return wasm.OpI64GtS, true
		case "ge":
			return wasm.OpI64GeS, true
		case "eq":
			return wasm.OpI64Eq, true
		case "ne":
			return wasm.OpI64Ne, true
		case "bit_and":
			return wasm.OpI64And, true
		case "bit_or":
			return wasm.OpI64Or, true
		case "bit_xor":
			return wasm.OpI64Xor, true
		case "bit_shl":
			return wasm.OpI64Shl, true
		case "bit_shr":
			return wasm.OpI64ShrS, true
		}
	case types.F32:
		switch name {
		case "add":
			return wasm.OpF32Add, true
		case "sub":
			return wasm.OpF32Sub, true
		case "mul":
			return wasm.OpF32Mul, true
		case "div":
			return wasm.OpF32Div, true
		case "lt":
			return wasm.OpF32Lt, true
		case "le":
			return wasm.OpF32Le, true
		case "gt":
			return wasm.OpF32Gt, true
		case "ge":
			return wasm.OpF32Ge, true
		case "eq":
			return wasm.OpF32Eq, true
		case "ne":
			return wasm.OpF32Ne, true
		}
	case types.F64:
		switch name {
		case "add":
			return wasm.OpF64Add, true
		case "sub":
			return wasm.OpF64Sub, true
		case "mul":
			return wasm.OpF64Mul, true
		case "div":
			return wasm.OpF64Div, true
		case "lt":
			return wasm.OpF64Lt, true
		case "le":
			return wasm.OpF64Le, true
		case "gt":
			return wasm.OpF64Gt, true
		case "ge":
			return wasm.OpF64Ge, true
		case "eq":
			return wasm.OpF64Eq, true
		case "ne":
			return wasm.OpF64Ne, true
		}
	case types.BoolT:
		switch name {
		case "and":
			return wasm.OpI32And, true
		case "or":
			return wasm.OpI32Or, true
		case "xor":
			return wasm.OpI32Xor, true
		case "eq":
			return wasm.OpI32Eq, true
		case "ne":
			return wasm.OpI32Ne, true
		}
	}
	return 0, false
}

// unaryOpcode covers `neg`/`not`/`bit_not`, which need either a single
// wasm opcode or a short fixed instruction sequence (neg on integers
// has no dedicated opcode and is lowered as `0 - x`).
func unaryOpcode(name string, operandType types.Type) ([]wasm.Instruction, bool) {
	switch name {
	case "not":
		return []wasm.Instruction{{Opcode: wasm.OpI32Eqz}}, true
	case "bit_not":
		if operandType.Kind == types.I32 {
			return []wasm.Instruction{
				{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: -1}},
				{Opcode: wasm.OpI32Xor},
			}, true
		}
		return []wasm.Instruction{
			{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: -1}},
			{Opcode: wasm.OpI64Xor},
		}, true
	case "neg":
		switch operandType.Kind {
		case types.F32:
			return []wasm.Instruction{{Opcode: wasm.OpF32Neg}}, true
		case types.F64:
			return []wasm.Instruction{{Opcode: wasm.OpF64Neg}}, true
		}
	}
	return nil, false
}
