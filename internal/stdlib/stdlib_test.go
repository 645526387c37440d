package stdlib

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultManifestHasAllNineFiles(t *testing.T) {
	want := []string{
		"std.nepl", "math.nepl", "logic.nepl", "bit.nepl", "string.nepl",
		"vec.nepl", "convert.nepl", "platform/wasm_core.nepl", "platform/wasi.nepl",
	}
	m := DefaultManifest()
	if len(m) != len(want) {
		t.Fatalf("DefaultManifest() has %d entries, want %d", len(m), len(want))
	}
	for _, name := range want {
		if _, ok := m[name]; !ok {
			t.Errorf("DefaultManifest() missing %q", name)
		}
	}
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Load(missing root) = nil error, want *MissingError")
	}
	if _, ok := err.(*MissingError); !ok {
		t.Errorf("Load(missing root) error type = %T, want *MissingError", err)
	}
}

func TestLoadWalksDirectoryByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.nepl", "1")
	writeFile(t, root, "sub/b.nepl", "2")
	writeFile(t, root, "notes.txt", "ignored")

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("Load() has %d entries, want 2: %v", len(m), m)
	}
	if m["a.nepl"] != "1" || m["sub/b.nepl"] != "2" {
		t.Errorf("Load() = %v, want a.nepl=1 sub/b.nepl=2", m)
	}
}

func TestLoadHonoursIndexWhenPresent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.nepl", "1")
	writeFile(t, root, "b.nepl", "2")
	writeFile(t, root, "stdlib.toml", `files = ["a.nepl"]`)

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(m) != 1 || m["a.nepl"] != "1" {
		t.Errorf("Load() with index = %v, want only a.nepl=1 (b.nepl excluded)", m)
	}
}

func TestLoadIndexListingMissingFileErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "stdlib.toml", `files = ["missing.nepl"]`)

	if _, err := Load(root); err == nil {
		t.Fatal("Load() with index naming a missing file = nil error, want error")
	}
}

func writeFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}
