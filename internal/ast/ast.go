// Package ast defines the ambiguous AST: the parser's output. Call
// structure inside a prefix sequence is deliberately NOT decided here
// -- the resolver (internal/typing) is the sole authority for that.
// Deliberately not grounded on bootstrap/ast (Chai commits call
// structure and has no pipe/prefix-sequence concept at all); grounded
// instead on original_source/nepl-core/src/hir.rs's pointer-indirection
// idiom for breaking recursive-type cycles, applied one layer earlier.
package ast

import "github.com/neknaj/NEPLg1/internal/report"

// Node is any ambiguous AST node. Every node knows its own span.
type Node interface {
	Span() report.Span
}

type base struct {
	span report.Span
}

func (b base) Span() report.Span { return b.span }

// IntLit and FloatLit are distinguished at lex time per spec §3.
type IntLit struct {
	base
	Value int64
}

type FloatLit struct {
	base
	Value float64
}

type StringLit struct {
	base
	Value string
}

type BoolLit struct {
	base
	Value bool
}

// VecLit is a bracketed vector literal `[e1 e2 ...]`. Not named in
// spec's grammar prose but required by the literal-node enumeration in
// §3 ("literal (int/float/string/bool/vector)") and exercised by the
// vec.nepl stdlib file.
type VecLit struct {
	base
	Elems []Node
}

// Ident is an identifier reference (builtin name, intrinsic name, or
// bound local).
type Ident struct {
	base
	Name string
}

// Intrinsic is an `@name` host-intrinsic reference.
type Intrinsic struct {
	base
	Name string
}

// Group is a parenthesised `(expr)` -- always exactly one expression.
type Group struct {
	base
	Inner Node
}

// Seq is a prefix sequence: an ordered list of terms whose call tree
// is not decided by the parser.
type Seq struct {
	base
	Terms []Node
}

// Pipe desugaring happens at parse time per spec §4.2, so no Pipe AST
// node survives into the tree the resolver sees -- pipe_chain segments
// are rewritten into Seq/Ident nodes directly by the parser. (See
// desugarPipe in internal/parser/expr.go.)

// TypeAnnotation is `type expr`.
type TypeAnnotation struct {
	base
	Type TypeExpr
	Expr Node
}

// FuncLit is `|params| (->|*>) type expr`.
type FuncLit struct {
	base
	Params []Param
	Pure   bool
	Result TypeExpr
	Body   Node
}

type Param struct {
	Type TypeExpr
	Name string
	Mut  bool
}

// TypeExpr is a parsed, not-yet-resolved type name -- the AST layer
// only records the textual type grammar; internal/types.Resolve turns
// it into a concrete types.Type.
type TypeExpr struct {
	Span   report.Span
	Name   string      // "i32", "i64", "f32", "f64", "Bool", "Unit", "Never", "String"
	Elem   *TypeExpr   // for Vec[T]
	Params []TypeExpr  // for function types
	Result *TypeExpr   // for function types
	Pure   bool        // arrow kind for function types
	IsFunc bool
}

// Let is `let [mut] name init; body` (body is the rest of the
// enclosing scope, threaded explicitly so HIR lowering does not need
// a separate scope-chaining pass).
type Let struct {
	base
	Name string
	Mut  bool
	Init Node
	Body Node
}

// Set is `set name value`.
type Set struct {
	base
	Name  string
	Value Node
}

// If is `if c then t [elseif c2 then t2 ...] [else e]`. Else is
// syntactically optional (diverging from the original parser) --
// validated at typecheck time per TypeError::MissingElse.
type If struct {
	base
	Cond   Node
	Then   Node
	Elseif []ElseifArm
	Else   Node // nil when omitted
}

type ElseifArm struct {
	Cond Node
	Then Node
}

// While is `while c body`.
type While struct {
	base
	Cond Node
	Body Node
}

// Loop is `loop body`.
type Loop struct {
	base
	Body Node
}

// Match is `match e { case p1 => e1; ... }`.
type Match struct {
	base
	Scrutinee Node
	Arms      []MatchArm
}

type MatchArm struct {
	Pattern Pattern
	Body    Node
}

// Pattern mirrors hir.rs's HirPattern shape at the ambiguous layer.
type Pattern interface {
	Span() report.Span
}

type patBase struct{ span report.Span }

func (p patBase) Span() report.Span { return p.span }

type LitPattern struct {
	patBase
	Lit Node
}

type IdentPattern struct {
	patBase
	Name string
}

type WildcardPattern struct {
	patBase
}

// Return/Break/Continue have type Never per spec §4.4.2.
type Return struct {
	base
	Value Node // nil for bare `return`
}

type Break struct {
	base
	Value Node // nil for bare `break`
}

type Continue struct {
	base
}

// Block is `{ expr }` or a `:`-offside scope holding one expression
// (possibly itself a sequence of let-chained expressions).
type Block struct {
	base
	Exprs []Node
}
