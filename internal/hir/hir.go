// Package hir defines the typed high-level IR that the frame resolver
// and type checker (internal/typing) produce and internal/codegen
// lowers to wasm. Grounded closely on
// original_source/nepl-core/src/hir.rs, the one file in the retrieved
// original sources that is a complete, non-stub reference rather than
// a placeholder.
package hir

import (
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
)

// Expr is a typed HIR expression: every node carries a concrete Type
// per spec invariant (a).
type Expr struct {
	Kind ExprKind
	Type types.Type
	Span report.Span
}

// ExprKind is a closed sum over every HIR node shape. Represented as
// an interface implemented by one struct per variant, mirroring
// hir.rs's HirExprKind enum (Go has no native sum type, so each Rust
// enum variant becomes its own Go type satisfying a marker interface).
type ExprKind interface{ hirKind() }

type I32 struct{ Value int32 }
type I64 struct{ Value int64 }
type F32 struct{ Value float32 }
type F64 struct{ Value float64 }
type BoolLit struct{ Value bool }
type UnitLit struct{}
type StringLit struct{ Value string }
type VecLit struct{ Elems []Expr }

type Var struct{ Name string }

// Call names the resolved callee: a builtin or host intrinsic by name,
// or a function value (a function literal or a function-typed local)
// through CalleeKind.FuncValue.
type Call struct {
	Callee CalleeKind
	Args   []Expr
}

// CalleeKind identifies what a Call actually invokes.
type CalleeKind struct {
	// Builtin/Intrinsic name as registered in internal/typing's
	// overload tables.
	Name string
	// OverloadIndex is not filled in by the resolver and is always 0;
	// the emitter picks the lowering for a builtin from Name and the
	// argument types instead.
	OverloadIndex int
	IsIntrinsic   bool
	// FuncValue is set when the callee is a function value (closure)
	// rather than a builtin name; Name then holds a display name.
	FuncValue *Expr
}

type Let struct {
	Name string
	Mut  bool
	Init Expr
	Body Expr
}

type Set struct {
	Target string
	Value  Expr
}

type If struct {
	Cond Expr
	Then Expr
	Else *Expr // nil only when Then's type is Unit, per TypeError::MissingElse
}

type While struct {
	Cond Expr
	Body Expr
}

type Loop struct {
	Body Expr
}

type Break struct {
	Value *Expr
}

type Continue struct{}

type Return struct {
	Value *Expr
}

type Match struct {
	Scrutinee Expr
	Arms      []MatchArm
}

type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

type Block struct {
	Exprs []Expr
}

// ClosureParam is one parameter of a Closure, carrying its resolved
// type alongside the name codegen binds it to.
type ClosureParam struct {
	Name string
	Type types.Type
	Mut  bool
}

// Closure is a function-literal value. Per DESIGN.md's call-site
// inlining decision (the whole program lowers to one wasm function),
// codegen never emits a Closure as a standalone callee -- it only ever
// appears as a CalleeKind.FuncValue, inlined body-and-params at the
// call site that invokes it.
type Closure struct {
	Params []ClosureParam
	Pure   bool
	Body   Expr
}

func (I32) hirKind()        {}
func (I64) hirKind()        {}
func (F32) hirKind()        {}
func (F64) hirKind()        {}
func (BoolLit) hirKind()    {}
func (UnitLit) hirKind()    {}
func (StringLit) hirKind()  {}
func (VecLit) hirKind()     {}
func (Var) hirKind()        {}
func (Call) hirKind()       {}
func (Let) hirKind()        {}
func (Set) hirKind()        {}
func (If) hirKind()         {}
func (While) hirKind()      {}
func (Loop) hirKind()       {}
func (Break) hirKind()      {}
func (Continue) hirKind()   {}
func (Return) hirKind()     {}
func (Match) hirKind()      {}
func (Block) hirKind()      {}
func (Closure) hirKind()    {}

// Pattern mirrors HirPattern.
type Pattern interface{ hirPattern() }

type LitPattern struct{ Value Expr }
type IdentPattern struct{ Name string }
type WildcardPattern struct{}

func (LitPattern) hirPattern()     {}
func (IdentPattern) hirPattern()   {}
func (WildcardPattern) hirPattern() {}

// NeverBreak/NeverContinue/NeverReturn force Type=Never on
// control-transfer expressions, mirroring hir.rs's
// never_break/never_continue/never_return helper constructors -- used
// by the resolver so every HIR node really does carry a type (spec
// invariant a) even for bottom-typed control transfers.

func NeverBreak(span report.Span, value *Expr) Expr {
	return Expr{Kind: Break{Value: value}, Type: types.TyNever, Span: span}
}

func NeverContinue(span report.Span) Expr {
	return Expr{Kind: Continue{}, Type: types.TyNever, Span: span}
}

func NeverReturn(span report.Span, value *Expr) Expr {
	return Expr{Kind: Return{Value: value}, Type: types.TyNever, Span: span}
}
