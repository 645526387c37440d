package typing

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
)

// Resolver runs the frame-stack algorithm and control-flow typing
// (§4.4.2) over an ambiguous AST, producing HIR. One Resolver is used
// per top-level compile; it holds no state beyond the diagnostic
// accumulator and the in-pure-function flag, so nothing here needs a mutex (spec §5: compiles are
// synchronous and independent).
type Resolver struct {
	diags    *report.Accumulator
	inPureFn bool
}

func NewResolver(diags *report.Accumulator) *Resolver {
	return &Resolver{diags: diags}
}

// classify determines whether term is function-capable per §4.4's
// categories (identifier with ≥1 overload, intrinsic, function
// literal, or parenthesised function-typed expression) and returns its
// candidate overload set if so.
func (r *Resolver) classify(env *Env, term ast.Node) ([]candidate, bool) {
	switch t := term.(type) {
	case *ast.Ident:
		if ovs := Lookup(t.Name); len(ovs) > 0 {
			return candidatesFromOverloads(ovs), true
		}
		if entry, ok := env.Lookup(t.Name); ok && entry.Type.Kind == types.FuncT {
			fv := entry.Value
			if fv == nil {
				// A function-typed parameter with no statically known
				// body -- still function-capable for resolution, but
				// codegen cannot inline it (see EnvEntry.Value).
				v := hir.Expr{Kind: hir.Var{Name: t.Name}, Type: entry.Type, Span: t.Span()}
				fv = &v
			}
			return []candidate{{params: entry.Type.Params, result: *entry.Type.Result, arrow: entry.Type.Arrow, name: t.Name, funcValue: fv}}, true
		}
		return nil, false
	case *ast.Intrinsic:
		if desc, ok := LookupIntrinsic(t.Name); ok {
			return []candidate{{params: desc.Params, result: desc.Result, arrow: types.Impure, name: t.Name, isIntrinsic: true}}, true
		}
		r.diags.Raise(report.ResolveNotAFunction, t.Span(), "unknown intrinsic '@%s'", t.Name)
		return nil, false
	case *ast.FuncLit:
		fn := r.resolveFuncLit(env, t)
		return []candidate{{params: fn.Type.Params, result: *fn.Type.Result, arrow: fn.Type.Arrow, name: "<lambda>", funcValue: &fn}}, true
	case *ast.Group:
		inner := r.ResolveExpr(env, t.Inner)
		if inner.Type.Kind == types.FuncT {
			return []candidate{{params: inner.Type.Params, result: *inner.Type.Result, arrow: inner.Type.Arrow, name: "<group>", funcValue: &inner}}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// ResolveExpr type-checks any ambiguous AST node into typed HIR.
func (r *Resolver) ResolveExpr(env *Env, node ast.Node) hir.Expr {
	switch n := node.(type) {
	case *ast.IntLit:
		return hir.Expr{Kind: hir.I32{Value: int32(n.Value)}, Type: types.TyI32, Span: n.Span()}
	case *ast.FloatLit:
		return hir.Expr{Kind: hir.F64{Value: n.Value}, Type: types.TyF64, Span: n.Span()}
	case *ast.StringLit:
		return hir.Expr{Kind: hir.StringLit{Value: n.Value}, Type: types.TyString, Span: n.Span()}
	case *ast.BoolLit:
		return hir.Expr{Kind: hir.BoolLit{Value: n.Value}, Type: types.TyBool, Span: n.Span()}
	case *ast.VecLit:
		return r.resolveVecLit(env, n)
	case *ast.Ident:
		return r.resolveIdent(env, n)
	case *ast.Intrinsic:
		return r.resolveBareIntrinsic(n)
	case *ast.Group:
		return r.ResolveExpr(env, n.Inner)
	case *ast.Seq:
		return r.resolveSeq(env, n)
	case *ast.TypeAnnotation:
		return r.resolveAnnotation(env, n)
	case *ast.FuncLit:
		return r.resolveFuncLit(env, n)
	case *ast.Let:
		return r.resolveLet(env, n)
	case *ast.Set:
		return r.resolveSet(env, n)
	case *ast.If:
		return r.resolveIf(env, n)
	case *ast.While:
		return r.resolveWhile(env, n)
	case *ast.Loop:
		return r.resolveLoop(env, n)
	case *ast.Match:
		return r.resolveMatch(env, n)
	case *ast.Return:
		return r.resolveReturn(env, n)
	case *ast.Break:
		return r.resolveBreak(env, n)
	case *ast.Continue:
		return hir.NeverContinue(n.Span())
	case *ast.Block:
		return r.resolveBlock(env, n)
	default:
		r.diags.Raise(report.CompileUnsupportedConstruct, node.Span(), "unsupported construct")
		return errExpr(node.Span())
	}
}

func (r *Resolver) resolveVecLit(env *Env, n *ast.VecLit) hir.Expr {
	elems := make([]hir.Expr, len(n.Elems))
	var elemTypes []types.Type
	for i, e := range n.Elems {
		elems[i] = r.ResolveExpr(env, e)
		elemTypes = append(elemTypes, elems[i].Type)
	}
	elemTy := types.TyI32
	if t, ok := types.LCS(elemTypes); ok && len(elemTypes) > 0 {
		elemTy = t
	}
	return hir.Expr{Kind: hir.VecLit{Elems: elems}, Type: types.Vec(elemTy), Span: n.Span()}
}

func (r *Resolver) resolveIdent(env *Env, n *ast.Ident) hir.Expr {
	if entry, ok := env.Lookup(n.Name); ok {
		return hir.Expr{Kind: hir.Var{Name: n.Name}, Type: entry.Type, Span: n.Span()}
	}
	if ovs := Lookup(n.Name); len(ovs) > 0 {
		// A bare builtin name with no arguments: only valid if a
		// zero-arity overload exists (none do today), otherwise
		// UnclosedFrame -- treat as a 1-element sequence closing with
		// zero args.
		f := &frame{span: n.Span(), candidates: candidatesFromOverloads(ovs)}
		if expr, ok := r.closeFrame(f, true); ok {
			return expr
		}
		return errExpr(n.Span())
	}
	r.diags.Raise(report.ResolveNotAFunction, n.Span(), "undefined name '%s'", n.Name)
	return errExpr(n.Span())
}

func (r *Resolver) resolveBareIntrinsic(n *ast.Intrinsic) hir.Expr {
	desc, ok := LookupIntrinsic(n.Name)
	if !ok {
		r.diags.Raise(report.ResolveNotAFunction, n.Span(), "unknown intrinsic '@%s'", n.Name)
		return errExpr(n.Span())
	}
	f := &frame{span: n.Span(), candidates: []candidate{{params: desc.Params, result: desc.Result, name: n.Name, isIntrinsic: true}}}
	if expr, ok := r.closeFrame(f, true); ok {
		return expr
	}
	return errExpr(n.Span())
}

func (r *Resolver) resolveAnnotation(env *Env, n *ast.TypeAnnotation) hir.Expr {
	want, ok := types.Resolve(n.Type)
	if !ok {
		r.diags.Raise(report.ParseError, n.Span(), "unknown type '%s'", n.Type.Name)
		return errExpr(n.Span())
	}
	val := r.ResolveExpr(env, n.Expr)
	if !types.IsSubtype(val.Type, want) {
		r.diags.Raise(report.TypeMismatch, n.Span(), "annotation expects %s but expression has type %s", want, val.Type)
		return errExpr(n.Span())
	}
	val.Type = want
	return val
}

func (r *Resolver) resolveFuncLit(env *Env, n *ast.FuncLit) hir.Expr {
	inner := NewEnv(env)
	inner.InPureFn = n.Pure
	params := make([]types.Type, len(n.Params))
	closureParams := make([]hir.ClosureParam, len(n.Params))
	for i, p := range n.Params {
		pt, ok := types.Resolve(p.Type)
		if !ok {
			r.diags.Raise(report.ParseError, n.Span(), "unknown parameter type '%s'", p.Type.Name)
			pt = types.TyNever
		}
		if n.Pure && p.Mut {
			r.diags.Raise(report.PurityError, n.Span(), "mutable parameter '%s' is rejected on a pure function", p.Name)
		}
		params[i] = pt
		closureParams[i] = hir.ClosureParam{Name: p.Name, Type: pt, Mut: p.Mut}
		inner.Define(p.Name, EnvEntry{Type: pt, Mut: p.Mut, OwnedByPureScope: n.Pure})
	}
	result, ok := types.Resolve(n.Result)
	if !ok {
		r.diags.Raise(report.ParseError, n.Span(), "unknown result type '%s'", n.Result.Name)
		result = types.TyNever
	}
	savedPure := r.inPureFn
	r.inPureFn = n.Pure
	body := r.ResolveExpr(inner, n.Body)
	r.inPureFn = savedPure
	if !types.IsSubtype(body.Type, result) {
		r.diags.Raise(report.TypeMismatch, n.Span(), "function body has type %s but result type is %s", body.Type, result)
	}
	arrow := types.Impure
	if n.Pure {
		arrow = types.Pure
	}
	ft := types.Func(params, result, arrow)
	return hir.Expr{
		Kind: hir.Closure{Params: closureParams, Pure: n.Pure, Body: body},
		Type: ft,
		Span: n.Span(),
	}
}
