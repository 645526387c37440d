package typing

import (
	"testing"

	"github.com/neknaj/NEPLg1/internal/parser"
	"github.com/neknaj/NEPLg1/internal/report"
)

func resolveSrc(t *testing.T, src string) *report.Accumulator {
	t.Helper()
	diags := report.NewAccumulator()
	root := parser.Parse(src, diags)
	if diags.HasErrors() {
		t.Fatalf("Parse(%q) failed: %v", src, diags.Diagnostics())
	}
	r := NewResolver(diags)
	r.ResolveExpr(NewEnv(nil), root)
	return diags
}

func TestResolveSimpleAddition(t *testing.T) {
	if diags := resolveSrc(t, "add 1 2"); diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Diagnostics())
	}
}

func TestResolveTypeMismatchBetweenBranches(t *testing.T) {
	diags := resolveSrc(t, `if (gt 1 0) then 1 else "no"`)
	if !diags.HasErrors() {
		t.Fatal("expected a TypeMismatch error mixing i32 and String branches")
	}
}

func TestResolveUndefinedIdentIsAnError(t *testing.T) {
	diags := resolveSrc(t, "nonexistent_name")
	if !diags.HasErrors() {
		t.Fatal("expected an error resolving an undefined identifier")
	}
}

func TestResolvePureFunctionCannotCallImpureIntrinsic(t *testing.T) {
	diags := resolveSrc(t, "let f (|i32 x| *> i32 : @wasi_print x); f 1")
	if !diags.HasErrors() {
		t.Fatal("expected a PurityError: a pure function body called the impure wasi_print intrinsic")
	}
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Kind == report.PurityError {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a PurityError among them", diags.Diagnostics())
	}
}

func TestResolvePureFunctionCanCallPureBuiltin(t *testing.T) {
	diags := resolveSrc(t, "let f (|i32 x| *> i32 : add x 1); f 1")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors calling a pure builtin from a pure function: %v", diags.Diagnostics())
	}
}

func TestResolveOverloadPicksMatchingArgTypes(t *testing.T) {
	// `add` is overloaded across the numeric types; applying it to two
	// i32 literals must settle on the i32 overload, not fail as
	// ambiguous.
	diags := resolveSrc(t, "add 1 2")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Diagnostics())
	}
}
