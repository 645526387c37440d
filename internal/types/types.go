// Package types implements the closed value-type universe, arrow
// kinds, the subtype relation, and least-common-supertype. Grounded on
// original_source/nepl-core/src/types.rs's Type/ArrowKind enumeration,
// with two deliberate divergences recorded in DESIGN.md: function-type
// subtyping is true contravariant-in-params/covariant-in-result
// (types.rs only checks bidirectional equality), and lcs is computed
// over an arbitrary-size set rather than pairwise-only.
package types

import "fmt"

// ArrowKind is the purity label on a function type.
type ArrowKind int

const (
	Impure ArrowKind = iota
	Pure
)

// Kind tags which variant a Type value holds.
type Kind int

const (
	I32 Kind = iota
	I64
	F32
	F64
	BoolT
	UnitT
	NeverT
	VecT
	StringT
	FuncT
)

// Type is the tagged union over the closed universe. Represented as a
// plain struct with a Kind tag rather than an interface, per
// types.rs's direct-enum idiom and Design Note "represent types as a
// tagged variant; do not attempt to model Never via exception control
// flow".
type Type struct {
	Kind Kind

	Elem *Type // VecT

	Params []Type   // FuncT
	Result *Type    // FuncT
	Arrow  ArrowKind // FuncT
}

var (
	TyI32    = Type{Kind: I32}
	TyI64    = Type{Kind: I64}
	TyF32    = Type{Kind: F32}
	TyF64    = Type{Kind: F64}
	TyBool   = Type{Kind: BoolT}
	TyUnit   = Type{Kind: UnitT}
	TyNever  = Type{Kind: NeverT}
	TyString = Type{Kind: StringT}
)

func Vec(elem Type) Type {
	e := elem
	return Type{Kind: VecT, Elem: &e}
}

func Func(params []Type, result Type, arrow ArrowKind) Type {
	r := result
	return Type{Kind: FuncT, Params: params, Result: &r, Arrow: arrow}
}

func (t Type) String() string {
	switch t.Kind {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case BoolT:
		return "Bool"
	case UnitT:
		return "Unit"
	case NeverT:
		return "Never"
	case StringT:
		return "String"
	case VecT:
		return fmt.Sprintf("Vec[%s]", t.Elem.String())
	case FuncT:
		arrow := "->"
		if t.Arrow == Pure {
			arrow = "*>"
		}
		s := "("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + fmt.Sprintf(") %s %s", arrow, t.Result.String())
	default:
		return "?"
	}
}

// Equal reports structural equality (not subtyping).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case VecT:
		return Equal(*a.Elem, *b.Elem)
	case FuncT:
		if a.Arrow != b.Arrow || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(*a.Result, *b.Result)
	default:
		return true
	}
}

// IsSubtype reports whether a <: b, per spec §3: Never is bottom, A=B
// is always a subtype of itself, and function types are structurally
// contravariant in parameters / covariant in result with equal arrow
// kinds. This is the divergence point from types.rs::is_subtype, which
// only allowed function-type equality.
func IsSubtype(a, b Type) bool {
	if a.Kind == NeverT {
		return true
	}
	if a.Kind != FuncT && b.Kind != FuncT {
		return Equal(a, b)
	}
	if a.Kind != FuncT || b.Kind != FuncT {
		return false
	}
	if a.Arrow != b.Arrow || len(a.Params) != len(b.Params) {
		return false
	}
	// Contravariant in parameters: b's param must be a subtype of a's
	// param (callers of b may supply anything acceptable to a).
	for i := range a.Params {
		if !IsSubtype(b.Params[i], a.Params[i]) {
			return false
		}
	}
	// Covariant in result.
	return IsSubtype(*a.Result, *b.Result)
}

// LCS computes the least-common-supertype of a set of types per spec
// §3/§8: Never occurrences are dropped; if exactly one distinct type
// remains among the rest it is returned; lcs of the empty set (all
// inputs were Never) is Never; otherwise lcs fails.
//
// types.rs's least_common_supertype is pairwise-only; folding it
// left-to-right over more than two distinct non-Never types can
// spuriously succeed or fail depending on fold order, so this
// implementation instead does the single distinct-type scan spec's
// prose describes directly.
func LCS(ts []Type) (Type, bool) {
	var distinct []Type
	for _, t := range ts {
		if t.Kind == NeverT {
			continue
		}
		found := false
		for _, d := range distinct {
			if Equal(d, t) {
				found = true
				break
			}
		}
		if !found {
			distinct = append(distinct, t)
		}
	}
	switch len(distinct) {
	case 0:
		return TyNever, true
	case 1:
		return distinct[0], true
	default:
		return Type{}, false
	}
}
