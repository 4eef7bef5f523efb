// Package workspace discovers the set of crate names declared by Cargo.toml
// manifests under a workspace root. The resulting set is built once per run
// and is read-only afterwards; it feeds provenance classification (group 3).
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// cargoManifest maps only the fields the registry cares about; everything
// else in the manifest is ignored.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// Crates is the set of workspace-internal crate names.
type Crates map[string]bool

// Contains reports whether name is a workspace crate.
func (c Crates) Contains(name string) bool { return c[name] }

// Names returns the crate names in map order; callers that print should sort.
func (c Crates) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// LoadCrates walks root for Cargo.toml manifests and collects every declared
// package name. Build output directories (target/) are never descended into.
// Unreadable or malformed manifests are skipped; the scan itself never fails.
func LoadCrates(root string, verbose bool) Crates {
	crates := Crates{}

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "target" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != "Cargo.toml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		var manifest cargoManifest
		if err := toml.Unmarshal(data, &manifest); err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "  [workspace] skipping malformed %s: %v\n", path, err)
			}
			return nil
		}
		if manifest.Package.Name != "" {
			crates[manifest.Package.Name] = true
		}
		return nil
	})

	if verbose {
		fmt.Fprintf(os.Stderr, "  [workspace] discovered %d workspace crate(s)\n", len(crates))
	}
	return crates
}
