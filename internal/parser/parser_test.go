package parser

import (
	"testing"

	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/report"
)

func parseOK(t *testing.T, src string) ast.Node {
	t.Helper()
	diags := report.NewAccumulator()
	node := Parse(src, diags)
	if diags.HasErrors() {
		t.Fatalf("Parse(%q) reported errors: %v", src, diags.Diagnostics())
	}
	return node
}

func TestParsePrefixSequenceGreedilyConsumesAtoms(t *testing.T) {
	node := parseOK(t, "add 1 2")
	seq, ok := node.(*ast.Seq)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *ast.Seq", "add 1 2", node)
	}
	if len(seq.Terms) != 3 {
		t.Fatalf("Seq has %d terms, want 3", len(seq.Terms))
	}
	if _, ok := seq.Terms[0].(*ast.Ident); !ok {
		t.Errorf("first term = %T, want *ast.Ident", seq.Terms[0])
	}
}

func TestParseVecLitIsSpaceSeparated(t *testing.T) {
	node := parseOK(t, "[1 2 3]")
	vec, ok := node.(*ast.VecLit)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *ast.VecLit", "[1 2 3]", node)
	}
	if len(vec.Elems) != 3 {
		t.Fatalf("VecLit has %d elems, want 3", len(vec.Elems))
	}
}

func TestParseVecLitRejectsCommas(t *testing.T) {
	diags := report.NewAccumulator()
	Parse("[1, 2, 3]", diags)
	if !diags.HasErrors() {
		t.Fatal("Parse(comma-separated vec literal) reported no errors, want a parse error")
	}
}

func TestParsePipeDesugarsIntoLeadingArgument(t *testing.T) {
	// `1 > add 2` desugars to `add 1 2`, matching desugarPipe's rule for
	// a sequence right-hand side: the callee stays first, the piped
	// value is inserted as its first argument.
	piped := parseOK(t, "1 > add 2")
	direct := parseOK(t, "add 1 2")

	pSeq, ok := piped.(*ast.Seq)
	if !ok {
		t.Fatalf("piped form = %T, want *ast.Seq", piped)
	}
	dSeq, ok := direct.(*ast.Seq)
	if !ok {
		t.Fatalf("direct form = %T, want *ast.Seq", direct)
	}
	if len(pSeq.Terms) != len(dSeq.Terms) {
		t.Fatalf("piped form has %d terms, direct form has %d", len(pSeq.Terms), len(dSeq.Terms))
	}
	if callee, ok := pSeq.Terms[0].(*ast.Ident); !ok || callee.Name != "add" {
		t.Errorf("piped callee = %v, want Ident(add)", pSeq.Terms[0])
	}
	if arg, ok := pSeq.Terms[1].(*ast.IntLit); !ok || arg.Value != 1 {
		t.Errorf("piped first argument = %v, want IntLit(1)", pSeq.Terms[1])
	}
}

func TestParsePipeDesugarsBareCallee(t *testing.T) {
	// `1 > neg` desugars to `neg 1` -- the bare right-hand term becomes
	// the callee, applied to the piped left-hand value.
	node := parseOK(t, "1 > neg")
	seq, ok := node.(*ast.Seq)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *ast.Seq", "1 > neg", node)
	}
	if len(seq.Terms) != 2 {
		t.Fatalf("Seq has %d terms, want 2", len(seq.Terms))
	}
	callee, ok := seq.Terms[0].(*ast.Ident)
	if !ok || callee.Name != "neg" {
		t.Errorf("callee = %v, want Ident(neg)", seq.Terms[0])
	}
}

func TestParseLetWithParenthesizedInitParsesCleanly(t *testing.T) {
	node := parseOK(t, "let sum (add 1 2); sum")
	if _, ok := node.(*ast.Let); !ok {
		t.Fatalf("Parse(let ...) = %T, want *ast.Let", node)
	}
}

func TestParseBareIntrinsicIsSequenceTerm(t *testing.T) {
	node := parseOK(t, "add 0 @wasm_pagesize")
	seq, ok := node.(*ast.Seq)
	if !ok || len(seq.Terms) != 3 {
		t.Fatalf("Parse(%q) = %#v, want a 3-term Seq", "add 0 @wasm_pagesize", node)
	}
	if _, ok := seq.Terms[2].(*ast.Intrinsic); !ok {
		t.Errorf("last term = %T, want *ast.Intrinsic", seq.Terms[2])
	}
}

func TestParseIfWithoutElseIsValid(t *testing.T) {
	node := parseOK(t, "if (gt 1 0) then 1")
	if _, ok := node.(*ast.If); !ok {
		t.Fatalf("Parse(if without else) = %T, want *ast.If", node)
	}
}

func TestParseColonBlockSequenceStopsAtDedent(t *testing.T) {
	// Without an offside boundary threaded into parseSeqOrAtom, the
	// `add`'s prefix sequence greedily pulls `mul x 3` in as more of its
	// own terms instead of stopping at the dedented sibling statement.
	src := "let x:\n  add 1 2\nmul x 3"
	node := parseOK(t, src)
	let, ok := node.(*ast.Let)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *ast.Let", src, node)
	}
	initSeq, ok := let.Init.(*ast.Seq)
	if !ok || len(initSeq.Terms) != 3 {
		t.Fatalf("Let.Init = %#v, want a 3-term Seq (add 1 2)", let.Init)
	}
	bodySeq, ok := let.Body.(*ast.Seq)
	if !ok || len(bodySeq.Terms) != 3 {
		t.Fatalf("Let.Body = %#v, want a 3-term Seq (mul x 3)", let.Body)
	}
	callee, ok := bodySeq.Terms[0].(*ast.Ident)
	if !ok || callee.Name != "mul" {
		t.Errorf("Body callee = %v, want Ident(mul)", bodySeq.Terms[0])
	}
}
