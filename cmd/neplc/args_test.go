package main

import "testing"

func TestParseArgsDefaults(t *testing.T) {
	c := parseArgs(nil)
	if c.emit != "wasm" || c.logLevel != "verbose" || c.run || c.lib {
		t.Errorf("parseArgs(nil) = %+v, want wasm/verbose defaults with run=false lib=false", c)
	}
}

func TestParseArgsPositionalIsInputPath(t *testing.T) {
	c := parseArgs([]string{"source.nepl"})
	if c.inputPath != "source.nepl" {
		t.Errorf("inputPath = %q, want %q", c.inputPath, "source.nepl")
	}
}

func TestParseArgsFlagsAndOptions(t *testing.T) {
	c := parseArgs([]string{"--run", "--lib", "-o", "out.wasm", "--stdlib", "/tmp/std", "source.nepl"})
	if !c.run || !c.lib {
		t.Errorf("run/lib = %v/%v, want true/true", c.run, c.lib)
	}
	if c.outputPath != "out.wasm" {
		t.Errorf("outputPath = %q, want %q", c.outputPath, "out.wasm")
	}
	if c.stdlibRoot != "/tmp/std" {
		t.Errorf("stdlibRoot = %q, want %q", c.stdlibRoot, "/tmp/std")
	}
	if c.inputPath != "source.nepl" {
		t.Errorf("inputPath = %q, want %q", c.inputPath, "source.nepl")
	}
}

func TestParseArgsInputOption(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"long", []string{"--input", "source.nepl"}},
		{"short", []string{"-i", "source.nepl"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := parseArgs(c.args)
			if cfg.inputPath != "source.nepl" {
				t.Errorf("inputPath = %q, want %q", cfg.inputPath, "source.nepl")
			}
		})
	}
}

func TestParseArgsInputOptionMixedWithOtherFlags(t *testing.T) {
	c := parseArgs([]string{"--run", "--input", "source.nepl", "-o", "out.wasm"})
	if c.inputPath != "source.nepl" {
		t.Errorf("inputPath = %q, want %q", c.inputPath, "source.nepl")
	}
	if c.outputPath != "out.wasm" {
		t.Errorf("outputPath = %q, want %q", c.outputPath, "out.wasm")
	}
}

func TestParseArgsLoglevel(t *testing.T) {
	c := parseArgs([]string{"--loglevel", "silent"})
	if c.logLevel != "silent" {
		t.Errorf("logLevel = %q, want %q", c.logLevel, "silent")
	}
}
