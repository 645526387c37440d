// control.go implements §4.4.2 Control-flow typing and §4.4.3 Purity.
package typing

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
)

func (r *Resolver) resolveLet(env *Env, n *ast.Let) hir.Expr {
	init := r.ResolveExpr(env, n.Init)
	inner := NewEnv(env)
	entry := EnvEntry{Type: init.Type, Mut: n.Mut, OwnedByPureScope: env.InPureFn}
	if init.Type.Kind == types.FuncT {
		entry.Value = &init
	}
	inner.Define(n.Name, entry)
	body := r.ResolveExpr(inner, n.Body)
	return hir.Expr{Kind: hir.Let{Name: n.Name, Mut: n.Mut, Init: init, Body: body}, Type: body.Type, Span: n.Span()}
}

func (r *Resolver) resolveSet(env *Env, n *ast.Set) hir.Expr {
	entry, ok := env.Lookup(n.Name)
	if !ok {
		r.diags.Raise(report.ResolveNotAFunction, n.Span(), "undefined variable '%s'", n.Name)
		return errExpr(n.Span())
	}
	if !entry.Mut {
		r.diags.Raise(report.TypeMismatch, n.Span(), "'%s' is not mutable", n.Name)
	}
	if env.InPureFn && !entry.OwnedByPureScope {
		r.diags.Raise(report.PurityError, n.Span(), "pure function cannot mutate '%s', which it did not introduce", n.Name)
	}
	val := r.ResolveExpr(env, n.Value)
	if !types.IsSubtype(val.Type, entry.Type) {
		r.diags.Raise(report.TypeMismatch, n.Span(), "cannot assign %s to '%s' of type %s", val.Type, n.Name, entry.Type)
	}
	return hir.Expr{Kind: hir.Set{Target: n.Name, Value: val}, Type: types.TyUnit, Span: n.Span()}
}

func (r *Resolver) resolveIf(env *Env, n *ast.If) hir.Expr {
	cond := r.ResolveExpr(env, n.Cond)
	r.expectBool(cond)
	then := r.ResolveExpr(env, n.Then)

	branchTypes := []types.Type{then.Type}
	var elseifHirs []struct{ Cond, Then hir.Expr }
	for _, a := range n.Elseif {
		c := r.ResolveExpr(env, a.Cond)
		r.expectBool(c)
		t := r.ResolveExpr(env, a.Then)
		branchTypes = append(branchTypes, t.Type)
		elseifHirs = append(elseifHirs, struct{ Cond, Then hir.Expr }{c, t})
	}

	var elseHir *hir.Expr
	if n.Else != nil {
		e := r.ResolveExpr(env, n.Else)
		branchTypes = append(branchTypes, e.Type)
		elseHir = &e
	}

	result, ok := types.LCS(branchTypes)
	if !ok {
		r.diags.Raise(report.TypeMismatch, n.Span(), "if/elseif/else branches have incompatible types")
		return errExpr(n.Span())
	}

	if n.Else == nil && result.Kind != types.UnitT && result.Kind != types.NeverT {
		r.diags.Raise(report.TypeMissingElse, n.Span(), "missing else: then-branch has type %s, not Unit", then.Type)
	}

	// Desugar elseif chain right-to-left into nested If HIR nodes.
	var tail *hir.Expr
	if elseHir != nil {
		tail = elseHir
	}
	for i := len(elseifHirs) - 1; i >= 0; i-- {
		a := elseifHirs[i]
		node := hir.Expr{Kind: hir.If{Cond: a.Cond, Then: a.Then, Else: tail}, Type: result, Span: a.Then.Span}
		tail = &node
	}

	return hir.Expr{Kind: hir.If{Cond: cond, Then: then, Else: tail}, Type: result, Span: n.Span()}
}

func (r *Resolver) expectBool(e hir.Expr) {
	if e.Type.Kind != types.BoolT && e.Type.Kind != types.NeverT {
		r.diags.Raise(report.TypeMismatch, e.Span, "condition must be Bool, got %s", e.Type)
	}
}

func (r *Resolver) resolveWhile(env *Env, n *ast.While) hir.Expr {
	cond := r.ResolveExpr(env, n.Cond)
	r.expectBool(cond)
	body := r.resolveLoopBody(env, n.Body, true)
	return hir.Expr{Kind: hir.While{Cond: cond, Body: body}, Type: types.TyUnit, Span: n.Span()}
}

// resolveLoopBody resolves a while/loop body and rejects value-carrying
// break when forbidValueBreak is set (spec §4.4.2: "Value-carrying break
// expr is forbidden [in while]").
func (r *Resolver) resolveLoopBody(env *Env, body ast.Node, forbidValueBreak bool) hir.Expr {
	b := r.ResolveExpr(env, body)
	if forbidValueBreak {
		forEachBreak(b, func(br *hir.Break) {
			if br.Value != nil {
				r.diags.Raise(report.TypeMismatch, b.Span, "value-carrying break is forbidden inside while")
			}
		})
	}
	return b
}

// forEachBreak walks an HIR expression looking for Break nodes that are
// not nested inside an inner loop/while (those belong to the inner
// loop, not this one).
func forEachBreak(e hir.Expr, visit func(*hir.Break)) {
	switch k := e.Kind.(type) {
	case hir.Break:
		visit(&k)
	case hir.If:
		forEachBreak(k.Then, visit)
		if k.Else != nil {
			forEachBreak(*k.Else, visit)
		}
	case hir.Let:
		forEachBreak(k.Body, visit)
	case hir.Block:
		for _, e2 := range k.Exprs {
			forEachBreak(e2, visit)
		}
	case hir.While, hir.Loop:
		// Inner loop owns its own breaks.
	}
}

func (r *Resolver) resolveLoop(env *Env, n *ast.Loop) hir.Expr {
	body := r.resolveLoopBody(env, n.Body, false)

	var breakTypes []types.Type
	hasValue, hasBare := false, false
	forEachBreak(body, func(br *hir.Break) {
		if br.Value != nil {
			hasValue = true
			breakTypes = append(breakTypes, br.Value.Type)
		} else {
			hasBare = true
		}
	})
	if hasValue && hasBare {
		r.diags.Raise(report.TypeMismatch, n.Span(), "loop mixes value-carrying and bare break")
	}
	result := types.TyUnit
	if hasValue {
		t, ok := types.LCS(breakTypes)
		if !ok {
			r.diags.Raise(report.TypeMismatch, n.Span(), "loop's break expressions have incompatible types")
		} else {
			result = t
		}
	}
	return hir.Expr{Kind: hir.Loop{Body: body}, Type: result, Span: n.Span()}
}

func (r *Resolver) resolveMatch(env *Env, n *ast.Match) hir.Expr {
	scrutinee := r.ResolveExpr(env, n.Scrutinee)
	arms := make([]hir.MatchArm, len(n.Arms))
	var armTypes []types.Type
	for i, a := range n.Arms {
		pat := r.resolvePattern(env, a.Pattern, scrutinee.Type)
		armEnv := NewEnv(env)
		if id, ok := a.Pattern.(*ast.IdentPattern); ok {
			armEnv.Define(id.Name, EnvEntry{Type: scrutinee.Type})
		}
		body := r.ResolveExpr(armEnv, a.Body)
		armTypes = append(armTypes, body.Type)
		arms[i] = hir.MatchArm{Pattern: pat, Body: body}
	}
	result, ok := types.LCS(armTypes)
	if !ok {
		r.diags.Raise(report.TypeMismatch, n.Span(), "match arms have incompatible types")
		return errExpr(n.Span())
	}
	return hir.Expr{Kind: hir.Match{Scrutinee: scrutinee, Arms: arms}, Type: result, Span: n.Span()}
}

func (r *Resolver) resolvePattern(env *Env, p ast.Pattern, scrutineeType types.Type) hir.Pattern {
	switch pp := p.(type) {
	case *ast.LitPattern:
		lit := r.ResolveExpr(env, pp.Lit)
		return hir.LitPattern{Value: lit}
	case *ast.IdentPattern:
		return hir.IdentPattern{Name: pp.Name}
	case *ast.WildcardPattern:
		return hir.WildcardPattern{}
	default:
		return hir.WildcardPattern{}
	}
}

func (r *Resolver) resolveReturn(env *Env, n *ast.Return) hir.Expr {
	var v *hir.Expr
	if n.Value != nil {
		e := r.ResolveExpr(env, n.Value)
		v = &e
	}
	return hir.NeverReturn(n.Span(), v)
}

func (r *Resolver) resolveBreak(env *Env, n *ast.Break) hir.Expr {
	var v *hir.Expr
	if n.Value != nil {
		e := r.ResolveExpr(env, n.Value)
		v = &e
	}
	return hir.NeverBreak(n.Span(), v)
}

func (r *Resolver) resolveBlock(env *Env, n *ast.Block) hir.Expr {
	if len(n.Exprs) == 0 {
		return hir.Expr{Kind: hir.UnitLit{}, Type: types.TyUnit, Span: n.Span()}
	}
	exprs := make([]hir.Expr, len(n.Exprs))
	inner := NewEnv(env)
	for i, e := range n.Exprs {
		exprs[i] = r.ResolveExpr(inner, e)
	}
	return hir.Expr{Kind: hir.Block{Exprs: exprs}, Type: exprs[len(exprs)-1].Type, Span: n.Span()}
}
