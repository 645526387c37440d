// Command neplc drives the lex/parse/resolve/emit pipeline over one
// NEPL source file (or stdin) and optionally executes the result,
// grounded on original_source/nepl-cli/src/main.rs's argument handling
// and ComedicChimera-chai/bootstrap/cmd's NewCompilerFromArgs/Compile
// split, with chai's LLVM-specific output modes trimmed to NEPL's
// single wasm target.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/neknaj/NEPLg1/internal/compiler"
	"github.com/neknaj/NEPLg1/internal/logging"
	"github.com/neknaj/NEPLg1/internal/runwasm"
)

// Exit codes, per spec's CLI contract: 0 success, 1 compilation error,
// 2 argument error (argumentError in args.go exits directly with this
// one), 3 runtime execution error.
const (
	exitOK           = 0
	exitCompileError = 1
	exitRuntimeError = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := parseArgs(os.Args[1:])

	source, sourceName, err := readInput(cfg.inputPath)
	if err != nil {
		logging.PrintErrorMessage("io error:", err)
		return exitCompileError
	}

	logging.Initialize(sourceName, source, cfg.logLevel)

	artifact, diags := compiler.Compile(source, compiler.Options{
		StdlibRoot: cfg.stdlibRoot,
		Lib:        cfg.lib,
		BeginPhase: logging.BeginPhase,
		EndPhase:   func(_ string, success bool) { logging.EndPhase(success) },
	})
	logging.LogDiagnostics(diags.Diagnostics())
	logging.Finished()

	if logging.ErrorCount() > 0 {
		return exitCompileError
	}

	if err := writeOutput(cfg.outputPath, artifact.Bytes); err != nil {
		logging.PrintErrorMessage("io error:", err)
		return exitCompileError
	}

	if !cfg.run {
		return exitOK
	}

	result, err := runwasm.Run(context.Background(), artifact.Bytes, runwasm.DefaultHandlers())
	if err != nil {
		logging.PrintErrorMessage("runtime error:", err)
		return exitRuntimeError
	}
	fmt.Println(result)
	return exitOK
}

// readInput returns the source text plus a display name for
// diagnostics, reading path or, if empty, stdin under the display
// name "<stdin>".
func readInput(path string) (source, name string, err error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(b), "<stdin>", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(b), path, nil
}

// writeOutput writes bytes to path, or stdout if path is empty.
func writeOutput(path string, bytes []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(bytes)
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}
