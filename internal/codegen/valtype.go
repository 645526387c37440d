package codegen

import (
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// valTypeOf maps a closed-universe Type to its wasm representation.
// String and Vec are represented at runtime as an i32 pointer into
// linear memory; Unit and Never carry no runtime value.
func valTypeOf(t types.Type) (wasm.ValType, bool) {
	switch t.Kind {
	case types.I32, types.BoolT:
		return wasm.ValI32, true
	case types.I64:
		return wasm.ValI64, true
	case types.F32:
		return wasm.ValF32, true
	case types.F64:
		return wasm.ValF64, true
	case types.StringT, types.VecT:
		return wasm.ValI32, true
	default: // UnitT, NeverT, FuncT (never reaches codegen as a runtime value)
		return 0, false
	}
}

// blockType returns the BlockImm.Type encoding for a structured
// instruction (block/loop/if) whose result is t.
func blockType(t types.Type) int32 {
	vt, ok := valTypeOf(t)
	if !ok {
		return -64 // void
	}
	switch vt {
	case wasm.ValI32:
		return -1
	case wasm.ValI64:
		return -2
	case wasm.ValF32:
		return -3
	case wasm.ValF64:
		return -4
	default:
		return -64
	}
}

// elemSize returns the in-memory width of one Vec[T] element for the
// string/vector data-segment layout (§4.8 supplemented vec.nepl).
func elemSize(t types.Type) uint32 {
	switch t.Kind {
	case types.I64, types.F64:
		return 8
	default:
		return 4
	}
}
