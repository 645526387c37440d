package runwasm

import (
	"context"
	"testing"

	"github.com/neknaj/NEPLg1/internal/compiler"
)

func compileOrFail(t *testing.T, source string) []byte {
	t.Helper()
	artifact, diags := compiler.Compile(source, compiler.Options{})
	if diags.HasErrors() {
		t.Fatalf("compile %q failed: %v", source, diags.Diagnostics())
	}
	return artifact.Bytes
}

func TestRunSimpleArithmetic(t *testing.T) {
	wasmBytes := compileOrFail(t, "add 1 2")
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 3 {
		t.Errorf("Run() = %d, want 3", result)
	}
}

func TestRunCallsPageSizeIntrinsic(t *testing.T) {
	wasmBytes := compileOrFail(t, "add 0 @wasm_pagesize")
	result, err := Run(context.Background(), wasmBytes, Handlers{PageSize: 42})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 42 {
		t.Errorf("Run() = %d, want 42 (the overridden page size)", result)
	}
}

func TestRunCallsRandomIntrinsicWithOverride(t *testing.T) {
	wasmBytes := compileOrFail(t, "add 0 (@wasi_random)")
	h := DefaultHandlers()
	h.Random = func() int32 { return 99 }
	result, err := Run(context.Background(), wasmBytes, h)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 99 {
		t.Errorf("Run() = %d, want 99", result)
	}
}

func TestRunInvalidModuleBytes(t *testing.T) {
	// Bytes that are not a wasm module should surface a clear error
	// rather than panic: feed Run garbage bytes and check it reports
	// the failure cleanly.
	if _, err := Run(context.Background(), []byte{0x00}, DefaultHandlers()); err == nil {
		t.Fatal("Run(invalid wasm) = nil error, want error")
	}
}

// The remaining tests each drive one control-flow construct (and the
// string/vector builtins) all the way through compile and execution,
// rather than literal arithmetic alone -- this is the class of bug
// that arithmetic-only coverage missed in the pointer arithmetic
// behind String/Vec[T]'s length/element loads.

func TestRunIfElseBranches(t *testing.T) {
	cases := []struct {
		source string
		want   int32
	}{
		{"if gt 5 3 then 1 else 2", 1},
		{"if gt 3 5 then 1 else 2", 2},
	}
	for _, c := range cases {
		wasmBytes := compileOrFail(t, c.source)
		result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
		if err != nil {
			t.Fatalf("Run(%q) error: %v", c.source, err)
		}
		if result != c.want {
			t.Errorf("Run(%q) = %d, want %d", c.source, result, c.want)
		}
	}
}

func TestRunWhileAccumulatesSum(t *testing.T) {
	source := `let mut i 0;
let mut sum 0;
while lt i 5 { set sum (add sum i); set i (add i 1) };
sum`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 10 {
		t.Errorf("Run() = %d, want 10 (0+1+2+3+4)", result)
	}
}

func TestRunWhileContinueSkipsMultiplesOfThree(t *testing.T) {
	source := `let mut i 0;
let mut sum 0;
while lt i 10 { set i (add i 1); if eq (mod i 3) 0 then continue else {}; set sum (add sum i) };
sum`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// 1+2+4+5+7+8+10 = 37 (3, 6, 9 skipped)
	if result != 37 {
		t.Errorf("Run() = %d, want 37", result)
	}
}

func TestRunLoopBreaksWithValue(t *testing.T) {
	source := `let mut i 0;
loop { set i (add i 1); if eq i 5 then break i else continue }`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 5 {
		t.Errorf("Run() = %d, want 5", result)
	}
}

func TestRunMatchSelectsArm(t *testing.T) {
	source := `match 2 { case 1 => 10; case 2 => 20; case _ => 0 }`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 20 {
		t.Errorf("Run() = %d, want 20", result)
	}
}

func TestRunMatchFallsThroughToIdentArm(t *testing.T) {
	source := `match 99 { case 1 => 10; case 2 => 20; case other => add other 1 }`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 100 {
		t.Errorf("Run() = %d, want 100", result)
	}
}

func TestRunFuncLitCallWithEarlyReturn(t *testing.T) {
	source := `(|i32 x| -> i32 { if gt x 0 then return 1; return (neg 1) }) 5`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 1 {
		t.Errorf("Run() = %d, want 1", result)
	}
}

func TestRunFuncLitCallWithTwoParams(t *testing.T) {
	source := `(|i32 x, i32 y| -> i32: add x y) 3 4`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 7 {
		t.Errorf("Run() = %d, want 7", result)
	}
}

// TestRunStringAndVectorStdlibPaths mirrors
// runs_string_and_vector_stdlib_paths from original_source/nepl-cli's
// integration tests: every value here is produced by a pointer into
// the static data segment (concat's result, and pop's result from a
// nested push), and len reads its [i32 length] header back out of
// that same segment. Getting the data segment's base offset wrong by
// even a few bytes makes this read garbage instead of 3 and 2.
func TestRunStringAndVectorStdlibPaths(t *testing.T) {
	source := `add (len concat "ha" "!") (len pop push [1 2] 3)`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 5 {
		t.Errorf("Run() = %d, want 5 (len(\"ha!\")=3 + len(pop(push([1,2],3)))=2)", result)
	}
}

func TestRunVectorGetReadsElementAtOffset(t *testing.T) {
	source := `add (get [10 20 30] 0) (get [10 20 30] 2)`
	wasmBytes := compileOrFail(t, source)
	result, err := Run(context.Background(), wasmBytes, DefaultHandlers())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != 40 {
		t.Errorf("Run() = %d, want 40 (10+30)", result)
	}
}
