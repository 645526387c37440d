// Package compiler orchestrates the full lex -> parse -> resolve ->
// codegen pipeline into a single entrypoint, grounded on
// ComedicChimera-chai/bootstrap/cmd's phased Compiler struct shape
// (generalised away from its LLVM/Windows specifics) and
// original_source/nepl-core/src/compiler.rs's compile_wasm pipeline
// function.
package compiler

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/codegen"
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/parser"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/stdlib"
	"github.com/neknaj/NEPLg1/internal/typing"
)

// Artifact is Compile's output: the encoded wasm bytes, the host
// intrinsics the program actually references (in first-reference
// order, for a driver to link), and the stdlib manifest used for this
// compile -- three fields per DESIGN.md divergence #8, generalising
// original_source/nepl-core/src/compiler.rs's single-field
// CompilationArtifact{wasm} (that field alone is insufficient here
// since spec §6 names the intrinsic set and stdlib manifest as part of
// a compile's externally-visible result, not just its wasm bytes).
type Artifact struct {
	Bytes                []byte
	ReferencedIntrinsics []codegen.IntrinsicRef
	StdlibManifest       stdlib.Manifest
}

// Options configures one Compile call. StdlibRoot, when non-empty,
// overrides the embedded default manifest -- matching nepl-cli's
// --stdlib flag's "defaults to bundled stdlib" contract. Lib mirrors
// nepl-cli's --lib: skip the `main` : i32 requirement.
//
// BeginPhase/EndPhase, if set, bracket each pipeline stage -- a driver
// passes logging.BeginPhase/EndPhase here to get one spinner per stage
// without internal/compiler importing the presentation layer itself.
// Left nil, every non-CLI caller (tests) just runs each stage with no
// bracketing at all.
type Options struct {
	StdlibRoot string
	Lib        bool
	BeginPhase func(name string)
	EndPhase   func(name string, success bool)
}

// runPhase brackets fn with BeginPhase/EndPhase, computing success from
// whether diags gained any new error during fn -- not from whatever
// the presentation layer has logged so far, since diagnostics are only
// handed to it after Compile returns in full.
func (o Options) runPhase(name string, diags *report.Accumulator, fn func()) {
	if o.BeginPhase != nil {
		o.BeginPhase(name)
	}
	fn()
	if o.EndPhase != nil {
		o.EndPhase(name, !diags.HasErrors())
	}
}

// Compile runs the whole pipeline over source and returns an Artifact.
// Any diagnostic accumulated along the way (lex/parse/resolve/codegen
// errors) is returned alongside; callers must check diags.HasErrors()
// before trusting Artifact.Bytes. Diagnostics are collected within a
// stage, but Compile returns as soon as a stage has raised an error,
// without running the later stages.
func Compile(source string, opts Options) (Artifact, *report.Accumulator) {
	diags := report.NewAccumulator()

	var manifest stdlib.Manifest
	opts.runPhase("loading stdlib", diags, func() {
		var err error
		manifest, err = loadManifest(opts.StdlibRoot)
		if err != nil {
			diags.Raise(report.StdlibMissing, report.Span{}, "%s", err)
		}
	})
	if diags.HasErrors() {
		return Artifact{}, diags
	}

	var root ast.Node
	opts.runPhase("parsing", diags, func() {
		root = parser.Parse(source, diags)
	})
	if diags.HasErrors() {
		return Artifact{StdlibManifest: manifest}, diags
	}

	var hirProgram hir.Expr
	opts.runPhase("resolving", diags, func() {
		resolver := typing.NewResolver(diags)
		hirProgram = resolver.ResolveExpr(typing.NewEnv(nil), root)
	})
	if diags.HasErrors() {
		return Artifact{StdlibManifest: manifest}, diags
	}

	var result codegen.Result
	opts.runPhase("emitting", diags, func() {
		result = codegen.Generate(diags, hirProgram, opts.Lib)
	})
	if diags.HasErrors() || result.Module == nil {
		return Artifact{StdlibManifest: manifest}, diags
	}

	return Artifact{
		Bytes:                result.Module.Encode(),
		ReferencedIntrinsics: result.Intrinsics,
		StdlibManifest:       manifest,
	}, diags
}

func loadManifest(root string) (stdlib.Manifest, error) {
	if root == "" {
		return stdlib.DefaultManifest(), nil
	}
	return stdlib.Load(root)
}
