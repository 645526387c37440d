package ast

import "github.com/neknaj/NEPLg1/internal/report"

// Constructor functions, since `base`/`patBase` are unexported: the
// parser builds every node through these rather than literal structs.

func NewIntLit(span report.Span, v int64) *IntLit       { return &IntLit{base{span}, v} }
func NewFloatLit(span report.Span, v float64) *FloatLit  { return &FloatLit{base{span}, v} }
func NewStringLit(span report.Span, v string) *StringLit { return &StringLit{base{span}, v} }
func NewBoolLit(span report.Span, v bool) *BoolLit       { return &BoolLit{base{span}, v} }
func NewVecLit(span report.Span, elems []Node) *VecLit   { return &VecLit{base{span}, elems} }
func NewIdent(span report.Span, name string) *Ident      { return &Ident{base{span}, name} }
func NewIntrinsic(span report.Span, name string) *Intrinsic {
	return &Intrinsic{base{span}, name}
}
func NewGroup(span report.Span, inner Node) *Group { return &Group{base{span}, inner} }
func NewSeq(span report.Span, terms []Node) *Seq   { return &Seq{base{span}, terms} }
func NewTypeAnnotation(span report.Span, t TypeExpr, e Node) *TypeAnnotation {
	return &TypeAnnotation{base{span}, t, e}
}
func NewFuncLit(span report.Span, params []Param, pure bool, result TypeExpr, body Node) *FuncLit {
	return &FuncLit{base{span}, params, pure, result, body}
}
func NewLet(span report.Span, name string, mut bool, init, body Node) *Let {
	return &Let{base{span}, name, mut, init, body}
}
func NewSet(span report.Span, name string, value Node) *Set {
	return &Set{base{span}, name, value}
}
func NewIf(span report.Span, cond, then Node, elseif []ElseifArm, els Node) *If {
	return &If{base{span}, cond, then, elseif, els}
}
func NewWhile(span report.Span, cond, body Node) *While { return &While{base{span}, cond, body} }
func NewLoop(span report.Span, body Node) *Loop         { return &Loop{base{span}, body} }
func NewMatch(span report.Span, scrutinee Node, arms []MatchArm) *Match {
	return &Match{base{span}, scrutinee, arms}
}
func NewReturn(span report.Span, value Node) *Return   { return &Return{base{span}, value} }
func NewBreak(span report.Span, value Node) *Break     { return &Break{base{span}, value} }
func NewContinue(span report.Span) *Continue           { return &Continue{base{span}} }
func NewBlock(span report.Span, exprs []Node) *Block   { return &Block{base{span}, exprs} }

func NewLitPattern(span report.Span, lit Node) *LitPattern { return &LitPattern{patBase{span}, lit} }
func NewIdentPattern(span report.Span, name string) *IdentPattern {
	return &IdentPattern{patBase{span}, name}
}
func NewWildcardPattern(span report.Span) *WildcardPattern {
	return &WildcardPattern{patBase{span}}
}
