// Package stdlib discovers and loads NEPL's standard library source
// files. Grounded on original_source/nepl-core/src/stdlib.rs's
// load_stdlib_files/default_stdlib_root pair, with walkdir's directory
// walk replaced by the standard library's path/filepath.WalkDir (no
// third-party directory-walking crate appears anywhere in the pack, so
// this is one of the few deliberately stdlib-only surfaces recorded in
// DESIGN.md) and //go:embed standing in for cargo's compile-time
// CARGO_MANIFEST_DIR-relative default root.
package stdlib

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

//go:embed files
var embedded embed.FS

// Manifest maps a stdlib file's path (relative to its root, forward
// slash separated, e.g. "platform/wasi.nepl") to its NEPL source text.
// This is spec §6's "standard-library discovery contract" shape
// exactly: a flat name->contents map, independent of how it was
// populated (embedded default vs. a filesystem root).
type Manifest map[string]string

// MissingError reports that a requested stdlib root does not exist on
// disk, mirroring nepl-cli's "standard library directory was not found"
// message and stdlib.rs's load_stdlib_files fatal-if-missing check.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("standard library directory was not found: %s", e.Path)
}

// index is stdlib.toml's shape: an explicit, ordered file list, e.g.
//
//	files = ["std.nepl", "math.nepl", "platform/wasi.nepl"]
//
// A root carrying this file opts out of the directory-walk discovery
// below in favour of exactly the files it names -- the curated-list
// counterpart to load_stdlib_files' directory sweep, grounded on
// ComedicChimera-chai/bootstrap's own project-manifest use of
// github.com/pelletier/go-toml for a hand-authored file list rather
// than a filesystem crawl.
type index struct {
	Files []string `toml:"files"`
}

const indexFileName = "stdlib.toml"

// Load walks root for .nepl files and returns their contents keyed by
// their root-relative, slash-separated path. Returns *MissingError if
// root cannot be stat'ed (whatever the cause); errors met while
// reading inside root are returned as-is. If root contains a stdlib.toml index, only the files it lists
// are loaded; otherwise every .nepl file under root is.
func Load(root string) (Manifest, error) {
	if _, statErr := os.Stat(root); statErr != nil {
		return nil, &MissingError{Path: root}
	}

	if idx, ok, err := loadIndex(root); err != nil {
		return nil, err
	} else if ok {
		return loadFromIndex(root, idx)
	}

	m := Manifest{}
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".nepl" {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		m[filepath.ToSlash(rel)] = string(contents)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return m, nil
}

// loadIndex reads root/stdlib.toml, if present.
func loadIndex(root string) (index, bool, error) {
	raw, err := os.ReadFile(filepath.Join(root, indexFileName))
	if os.IsNotExist(err) {
		return index{}, false, nil
	}
	if err != nil {
		return index{}, false, err
	}

	var idx index
	if err := toml.Unmarshal(raw, &idx); err != nil {
		return index{}, false, fmt.Errorf("parsing %s: %w", indexFileName, err)
	}
	return idx, true, nil
}

func loadFromIndex(root string, idx index) (Manifest, error) {
	m := Manifest{}
	for _, rel := range idx.Files {
		contents, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, fmt.Errorf("loading %s listed in %s: %w", rel, indexFileName, err)
		}
		m[filepath.ToSlash(rel)] = string(contents)
	}
	return m, nil
}

// DefaultManifest returns the //go:embed-baked copy of the nine
// bundled stdlib files, so a caller (cmd/neplc, tests) need not pass
// --stdlib at all -- grounded on nepl-cli's distinction between its
// default_stdlib_root() and an explicit --stdlib path as two separate,
// both-tested code paths.
func DefaultManifest() Manifest {
	m := Manifest{}
	fs.WalkDir(embedded, "files", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".nepl" {
			return err
		}
		rel := strings.TrimPrefix(p, "files/")
		contents, readErr := embedded.ReadFile(p)
		if readErr != nil {
			return readErr
		}
		m[rel] = string(contents)
		return nil
	})
	return m
}
