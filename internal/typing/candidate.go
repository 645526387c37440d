package typing

import (
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/types"
)

// candidate is one entry of a frame's candidate_overloads, generalized
// beyond the builtin table to also cover intrinsics and function-typed
// values (locals, function literals, parenthesised function-typed
// expressions) -- spec §4.4's "function-capable" categories.
type candidate struct {
	params []types.Type
	result types.Type
	arrow  types.ArrowKind
	name   string

	isIntrinsic bool
	// funcValue is set when this candidate comes from a function-typed
	// value rather than a builtin/intrinsic name.
	funcValue *hir.Expr
}

func candidatesFromOverloads(ovs []Overload) []candidate {
	cs := make([]candidate, len(ovs))
	for i, ov := range ovs {
		cs[i] = candidate{params: ov.Params, result: ov.Result, arrow: ov.Arrow, name: ov.Name}
	}
	// Ordered by descending arity, per spec §4.4's frame state
	// description.
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && len(cs[j].params) > len(cs[j-1].params); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
	return cs
}

func signatureString(c candidate) string {
	t := types.Func(c.params, c.result, c.arrow)
	return c.name + t.String()
}
