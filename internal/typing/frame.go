package typing

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
)

// frame is the frame-stack algorithm's state unit, per spec §4.4:
// { callee_term, candidate_overloads, args_so_far, parent }. Parent
// linkage is a frame's position in resolveSeq's slice-based stack
// (the parent is the frame just below it) rather than an explicit
// arena of indices -- Design Notes'
// "implement frames as indices into a per-sequence arena" targets a
// systems language without GC; Go's slice-of-structs plus value
// semantics gives the same cheap-copy-on-prune property without needing
// manual arena bookkeeping.
type frame struct {
	span       report.Span
	candidates []candidate
	args       []hir.Expr
}

// errExpr produces a placeholder HIR node for a call site that failed
// to resolve, so sibling sequences can still be type-checked (spec §7:
// "the resolver aborts a call site on first hard error but continues
// with sibling sequences").
func errExpr(span report.Span) hir.Expr {
	return hir.Expr{Kind: hir.UnitLit{}, Type: types.TyNever, Span: span}
}

// resolveSeq implements the frame-stack algorithm over one
// prefix_sequence node.
func (r *Resolver) resolveSeq(env *Env, seq *ast.Seq) hir.Expr {
	terms := seq.Terms
	if len(terms) == 0 {
		return errExpr(seq.Span())
	}
	if len(terms) == 1 {
		if cs, ok := r.classify(env, terms[0]); !ok || len(cs) == 0 {
			return r.ResolveExpr(env, terms[0])
		}
		// A lone function-capable term with zero arguments supplied:
		// treat as UnclosedFrame if the builtin has no zero-arity
		// overload, else close immediately.
	}

	var stack []*frame

	push := func(term ast.Node) bool {
		cs, ok := r.classify(env, term)
		if !ok {
			r.diags.Raise(report.ResolveNotAFunction, term.Span(), "'%s' is not a function", describeTerm(term))
			return false
		}
		stack = append(stack, &frame{span: term.Span(), candidates: cs})
		return true
	}

	if !push(terms[0]) {
		return errExpr(seq.Span())
	}

	i := 1
	for i < len(terms) {
		term := terms[i]
		if cs, ok := r.classify(env, term); ok && len(cs) > 0 {
			stack = append(stack, &frame{span: term.Span(), candidates: cs})
			i++
			continue
		}

		val := r.ResolveExpr(env, term)
		top := stack[len(stack)-1]
		pos := len(top.args)

		kept, exceeded := pruneByPosition(top.candidates, pos, val.Type)
		if len(kept) == 0 {
			if exceeded {
				r.diags.Raise(report.ResolveExcessArguments, term.Span(),
					"'%s' received more arguments than any candidate accepts", frameName(top))
			} else {
				r.diags.Raise(report.ResolveNoMatch, term.Span(),
					"no overload of '%s' accepts an argument of type %s at position %d",
					frameName(top), val.Type, pos)
			}
			return errExpr(seq.Span())
		}
		top.candidates = kept
		top.args = append(top.args, val)
		i++

		// Cascade closes while arity is saturated.
		for len(stack) > 0 {
			top = stack[len(stack)-1]
			if !allSaturated(top.candidates, len(top.args)) {
				break
			}
			closed, ok := r.closeFrame(top, false)
			if !ok {
				return errExpr(seq.Span())
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				if i < len(terms) {
					// More terms remain but nothing to feed them to.
					r.diags.Raise(report.ResolveExcessArguments, terms[i].Span(),
						"excess arguments after '%s' closed", frameName(top))
					return errExpr(seq.Span())
				}
				return closed
			}
			parent := stack[len(stack)-1]
			pos2 := len(parent.args)
			kept2, exceeded2 := pruneByPosition(parent.candidates, pos2, closed.Type)
			if len(kept2) == 0 {
				if exceeded2 {
					r.diags.Raise(report.ResolveExcessArguments, closed.Span, "excess arguments to '%s'", frameName(parent))
				} else {
					r.diags.Raise(report.ResolveNoMatch, closed.Span, "no overload of '%s' accepts a %s result here", frameName(parent), closed.Type)
				}
				return errExpr(seq.Span())
			}
			parent.candidates = kept2
			parent.args = append(parent.args, closed)
		}
	}

	// End of sequence reached: forced close (hard separator), per spec
	// §4.4 try_close condition (a).
	var last hir.Expr
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		closed, ok := r.closeFrame(top, true)
		if !ok {
			return errExpr(seq.Span())
		}
		stack = stack[:len(stack)-1]
		last = closed
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			pos := len(parent.args)
			kept, exceeded := pruneByPosition(parent.candidates, pos, closed.Type)
			if len(kept) == 0 {
				if exceeded {
					r.diags.Raise(report.ResolveExcessArguments, closed.Span, "excess arguments to '%s'", frameName(parent))
				} else {
					r.diags.Raise(report.ResolveNoMatch, closed.Span, "no overload of '%s' accepts a %s result here", frameName(parent), closed.Type)
				}
				return errExpr(seq.Span())
			}
			parent.candidates = kept
			parent.args = append(parent.args, closed)
		}
	}
	return last
}

// closeFrame applies the arity filter (Rule 0') and then overload
// resolution (§4.4.1). forced indicates the frame is closing because
// the sequence ended rather than because every candidate's arity was
// already saturated.
func (r *Resolver) closeFrame(f *frame, forced bool) (hir.Expr, bool) {
	n := len(f.args)
	var arityOk []candidate
	for _, c := range f.candidates {
		if len(c.params) == n {
			arityOk = append(arityOk, c)
		}
	}
	if len(arityOk) == 0 {
		if forced {
			r.diags.Raise(report.ResolveUnclosedFrame, f.span,
				"'%s' ended the sequence with %d argument(s), matching no overload's arity", frameName(f), n)
		} else {
			r.diags.Raise(report.ResolveNoMatch, f.span, "'%s' has no overload of arity %d", frameName(f), n)
		}
		return hir.Expr{}, false
	}

	survivors := selectBySpecificity(arityOk)
	if len(survivors) == 0 {
		r.diags.Raise(report.ResolveNoMatch, f.span, "no overload of '%s' matches the given argument types", frameName(f))
		return hir.Expr{}, false
	}
	if len(survivors) > 1 {
		cands := make([]string, len(survivors))
		for i, c := range survivors {
			cands[i] = signatureString(c)
		}
		d := r.diags.Raise(report.ResolveAmbiguous, f.span, "call to '%s' is ambiguous among %d overloads", frameName(f), len(survivors))
		d.Candidates = cands
		return hir.Expr{}, false
	}

	chosen := survivors[0]
	if r.inPureFn && chosen.arrow != types.Pure {
		r.diags.Raise(report.PurityError, f.span, "pure function cannot call impure '%s'", chosen.name)
	}
	return hir.Expr{
		Kind: hir.Call{
			Callee: hir.CalleeKind{Name: chosen.name, IsIntrinsic: chosen.isIntrinsic, FuncValue: chosen.funcValue},
			Args:   f.args,
		},
		Type: chosen.result,
		Span: f.span,
	}, true
}

// pruneByPosition keeps only candidates whose parameter at pos accepts
// argType under the subtype relation. exceeded reports whether every
// original candidate already lacked a parameter at pos (the
// ExcessArguments case) as opposed to a type mismatch (NoMatch).
func pruneByPosition(cs []candidate, pos int, argType types.Type) (kept []candidate, exceeded bool) {
	anyHasPosition := false
	for _, c := range cs {
		if pos < len(c.params) {
			anyHasPosition = true
			if types.IsSubtype(argType, c.params[pos]) {
				kept = append(kept, c)
			}
		}
	}
	return kept, !anyHasPosition
}

func allSaturated(cs []candidate, n int) bool {
	for _, c := range cs {
		if len(c.params) > n {
			return false
		}
	}
	return true
}

// selectBySpecificity applies Rule A (monomorphic beats polymorphic)
// and Rule B (parameter-wise subtype dominance) from §4.4.1. Every
// builtin overload in this core is monomorphic (Non-goals exclude
// generics), so Rule A never discriminates here and is not evaluated;
// only Rule B (dominates) is applied.
func selectBySpecificity(cs []candidate) []candidate {
	dominated := make([]bool, len(cs))
	for i := range cs {
		for j := range cs {
			if i == j || dominated[i] {
				continue
			}
			if dominates(cs[i], cs[j]) {
				dominated[j] = true
			}
		}
	}
	var survivors []candidate
	for i, c := range cs {
		if !dominated[i] {
			survivors = append(survivors, c)
		}
	}
	return survivors
}

// dominates reports whether a is strictly more specific than b per
// Rule B: a.param_j <: b.param_j for all j, and strictly so (not
// mutually subtypes, i.e. not equal) for at least one k.
func dominates(a, b candidate) bool {
	if len(a.params) != len(b.params) {
		return false
	}
	allLE := true
	anyStrict := false
	for j := range a.params {
		if !types.IsSubtype(a.params[j], b.params[j]) {
			allLE = false
			break
		}
		if !types.IsSubtype(b.params[j], a.params[j]) {
			anyStrict = true
		}
	}
	return allLE && anyStrict
}

func frameName(f *frame) string {
	if len(f.candidates) > 0 {
		return f.candidates[0].name
	}
	return "<unknown>"
}

func describeTerm(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.Intrinsic:
		return "@" + t.Name
	default:
		return "<expr>"
	}
}
