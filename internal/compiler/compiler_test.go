package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neknaj/NEPLg1/internal/report"
)

func TestCompileSimpleArithmeticSucceeds(t *testing.T) {
	artifact, diags := Compile("add 1 2", Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diagMessages(diags))
	}
	if len(artifact.Bytes) == 0 {
		t.Fatal("Compile produced no wasm bytes")
	}
}

func TestCompileMainNotI32(t *testing.T) {
	_, diags := Compile(`"hello"`, Options{})
	if !diags.HasErrors() {
		t.Fatal("expected an error compiling a String-valued program without --lib")
	}
	if diags.Diagnostics()[len(diags.Diagnostics())-1].Kind != report.CompileMainNotI32 {
		t.Errorf("got kind %v, want CompileMainNotI32", diags.Diagnostics()[len(diags.Diagnostics())-1].Kind)
	}
}

func TestCompileLibSkipsMainI32Check(t *testing.T) {
	_, diags := Compile(`"hello"`, Options{Lib: true})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors with --lib: %v", diagMessages(diags))
	}
}

func TestCompileLiteralDivisionByZero(t *testing.T) {
	_, diags := Compile("div 1 0", Options{})
	if !diags.HasErrors() {
		t.Fatal("expected a division-by-zero error")
	}
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Kind == report.CompileDivisionByZero {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want one CompileDivisionByZero", diagMessages(diags))
	}
}

func TestCompileNonLiteralDivisorCompilesClean(t *testing.T) {
	// A runtime-computed divisor is not statically known to be zero, so
	// this must compile -- only a literal zero divisor is rejected at
	// compile time; a genuine runtime division by zero is wasm's trap.
	_, diags := Compile("let x (sub 5 5); div 1 x", Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diagMessages(diags))
	}
}

func TestCompileParseErrorStopsBeforeResolving(t *testing.T) {
	_, diags := Compile("let", Options{})
	if !diags.HasErrors() {
		t.Fatal("expected a parse error for a truncated let")
	}
}

func TestCompileMissingStdlibRoot(t *testing.T) {
	_, diags := Compile("add 1 2", Options{StdlibRoot: filepath.Join(t.TempDir(), "missing")})
	if !diags.HasErrors() {
		t.Fatal("expected StdlibMissing error")
	}
	if diags.Diagnostics()[0].Kind != report.StdlibMissing {
		t.Errorf("got kind %v, want StdlibMissing", diags.Diagnostics()[0].Kind)
	}
}

func TestCompileExplicitStdlibRootIsThreadedIntoArtifact(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "only.nepl"), []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	artifact, diags := Compile("add 1 2", Options{StdlibRoot: root})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diagMessages(diags))
	}
	if _, ok := artifact.StdlibManifest["only.nepl"]; !ok {
		t.Errorf("StdlibManifest = %v, want only.nepl present", artifact.StdlibManifest)
	}
}

func TestCompilePhaseHooksFireInOrder(t *testing.T) {
	var began, ended []string
	_, diags := Compile("add 1 2", Options{
		BeginPhase: func(name string) { began = append(began, name) },
		EndPhase:   func(name string, success bool) { ended = append(ended, name) },
	})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diagMessages(diags))
	}
	want := []string{"loading stdlib", "parsing", "resolving", "emitting"}
	if len(began) != len(want) {
		t.Fatalf("BeginPhase calls = %v, want %v", began, want)
	}
	for i, name := range want {
		if began[i] != name || ended[i] != name {
			t.Errorf("phase %d = (%s begin, %s end), want %s", i, began[i], ended[i], name)
		}
	}
}

func diagMessages(diags *report.Accumulator) []string {
	var out []string
	for _, d := range diags.Diagnostics() {
		out = append(out, d.Message)
	}
	return out
}
