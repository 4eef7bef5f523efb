// Package walker orchestrates a normalization run: it builds the workspace
// crate registry once, visits every candidate .rs file under the root, applies
// the reorganizer, writes changed files, and reports what changed.
package walker

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/StinkyLord/rust-use-normalizer/internal/engine"
	"github.com/StinkyLord/rust-use-normalizer/internal/workspace"
)

// Formatter is the optional final-pass collaborator invoked once over the
// whole tree after rewriting. Implementations are best-effort: a returned
// error is logged by the walker, never fatal.
type Formatter interface {
	Name() string
	Apply(root string) error
}

// Options configures one run.
type Options struct {
	Root    string
	Verbose bool

	// DryRun computes and reports changes without writing any file.
	DryRun bool

	// Table is the group-1 allow-list; zero value means DefaultTable.
	Table engine.Table

	// Formatter, when non-nil, runs after all files are written.
	Formatter Formatter
}

// Change records one file whose normalized form differs from its content.
// Before and After are kept so callers can render diffs.
type Change struct {
	Path   string
	Before string
	After  string
}

// Result summarizes a run.
type Result struct {
	Scanned int
	Changes []Change
	Crates  workspace.Crates
}

// Run builds the crate registry, rewrites the tree, and returns the summary.
// Individual file failures are skipped; the run itself only fails on a root
// that cannot be walked at all.
func Run(opts Options) (*Result, error) {
	table := opts.Table
	if table.IsZero() {
		table = engine.DefaultTable()
	}

	crates := workspace.LoadCrates(opts.Root, opts.Verbose)
	result := &Result{Crates: crates}

	err := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// A root that cannot be read at all fails the run; anything
			// deeper is skipped.
			if path == opts.Root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == "target" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".rs") {
			return nil
		}

		result.Scanned++
		data, err := os.ReadFile(path)
		if err != nil {
			if opts.Verbose {
				fmt.Fprintf(os.Stderr, "  [walker] cannot read %s: %v\n", path, err)
			}
			return nil
		}

		content := string(data)
		newContent, changed := engine.Reorganize(d.Name(), content, table, crates.Contains)
		if !changed {
			return nil
		}

		if !opts.DryRun {
			if err := writeInPlace(path, newContent); err != nil {
				if opts.Verbose {
					fmt.Fprintf(os.Stderr, "  [walker] cannot write %s: %v\n", path, err)
				}
				return nil
			}
		}
		result.Changes = append(result.Changes, Change{Path: path, Before: content, After: newContent})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk %s: %w", opts.Root, err)
	}

	if opts.Formatter != nil && !opts.DryRun {
		if err := opts.Formatter.Apply(opts.Root); err != nil {
			fmt.Fprintf(os.Stderr, "  [walker] %s pass skipped: %v\n", opts.Formatter.Name(), err)
		}
	}

	return result, nil
}

// writeInPlace overwrites path with content, preserving the file's mode.
func writeInPlace(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, []byte(content), mode)
}

// CargoFmt shells out to `cargo fmt` as the courtesy final pass. Missing
// cargo binary or a non-zero exit surface as an error for the walker to log.
type CargoFmt struct{}

func (CargoFmt) Name() string { return "cargo fmt" }

func (CargoFmt) Apply(root string) error {
	if _, err := exec.LookPath("cargo"); err != nil {
		return fmt.Errorf("cargo not found on PATH")
	}
	cmd := exec.Command("cargo", "fmt")
	cmd.Dir = root
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo fmt failed: %w", err)
	}
	return nil
}
