package types

import "github.com/neknaj/NEPLg1/internal/ast"

// typeAliases resolves the Open Question in spec §9: the source
// documents describe both unit/Unit and i32/Int without committing;
// this fixes the concrete form (Unit, i32, i64, f32, f64) and treats
// Int/Float as aliases resolved here, at the type-name layer.
var typeAliases = map[string]Kind{
	"i32": I32, "Int": I32,
	"i64": I64,
	"f32": F32,
	"f64": F64, "Float": F64,
	"Bool": BoolT,
	"Unit": UnitT, "unit": UnitT,
	"Never":  NeverT,
	"String": StringT,
}

// Resolve turns a parsed, textual ast.TypeExpr into a concrete Type.
// ok is false for an unknown type name.
func Resolve(te ast.TypeExpr) (Type, bool) {
	if te.IsFunc {
		params := make([]Type, len(te.Params))
		for i, p := range te.Params {
			t, ok := Resolve(p)
			if !ok {
				return Type{}, false
			}
			params[i] = t
		}
		result, ok := Resolve(*te.Result)
		if !ok {
			return Type{}, false
		}
		arrow := Impure
		if te.Pure {
			arrow = Pure
		}
		return Func(params, result, arrow), true
	}
	if te.Elem != nil {
		elem, ok := Resolve(*te.Elem)
		if !ok {
			return Type{}, false
		}
		return Vec(elem), true
	}
	if k, ok := typeAliases[te.Name]; ok {
		return Type{Kind: k}, true
	}
	return Type{}, false
}
