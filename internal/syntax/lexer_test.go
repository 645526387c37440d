package syntax

import (
	"testing"

	"github.com/neknaj/NEPLg1/internal/report"
)

func tokenize(t *testing.T, src string) []*Token {
	t.Helper()
	diags := report.NewAccumulator()
	toks := NewLexer(src, diags).Tokenize()
	if diags.HasErrors() {
		t.Fatalf("Tokenize(%q) reported errors: %v", src, diags.Diagnostics())
	}
	return toks
}

func kinds(toks []*Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexIdentifiersAndIntLit(t *testing.T) {
	toks := tokenize(t, "add 1 2")
	got := kinds(toks)
	want := []Kind{TokIdent, TokIntLit, TokIntLit, TokEOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexIntrinsicToken(t *testing.T) {
	toks := tokenize(t, "@wasm_pagesize")
	if len(toks) < 1 || toks[0].Kind != TokIntrinsic {
		t.Fatalf("Tokenize(@wasm_pagesize)[0].Kind = %v, want TokIntrinsic", toks[0].Kind)
	}
	if toks[0].Value != "wasm_pagesize" {
		t.Errorf("token value = %q, want %q (no leading @)", toks[0].Value, "wasm_pagesize")
	}
}

func TestLexLineCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "# a comment\nadd 1 2")
	if len(toks) == 0 || toks[0].Kind != TokIdent {
		t.Fatalf("first token after a comment line = %v, want TokIdent", toks)
	}
}

func TestLexStringLiteral(t *testing.T) {
	toks := tokenize(t, `"hello, nepl"`)
	if len(toks) < 1 || toks[0].Kind != TokStringLit {
		t.Fatalf("Tokenize(string literal)[0].Kind = %v, want TokStringLit", toks[0].Kind)
	}
	if toks[0].Value != "hello, nepl" {
		t.Errorf("token value = %q, want %q", toks[0].Value, "hello, nepl")
	}
}

func TestLexRecordsLeadingColumnPerLine(t *testing.T) {
	toks := tokenize(t, "if x then\n  1\nelse\n  2")
	var secondLineCol = -1
	for _, tok := range toks {
		if tok.Span.StartLine == 1 {
			secondLineCol = tok.Span.StartCol
			break
		}
	}
	if secondLineCol != 2 {
		t.Errorf("second line's leading column = %d, want 2", secondLineCol)
	}
}
