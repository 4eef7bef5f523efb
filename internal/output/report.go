// Package output renders run summaries, diffs, and the crate registry table.
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/StinkyLord/rust-use-normalizer/internal/walker"
	"github.com/StinkyLord/rust-use-normalizer/internal/workspace"
)

// WriteSummary prints the modified-file count and paths to w. This is the
// report surface: `Updated N files` followed by one path per line.
func WriteSummary(w io.Writer, result *walker.Result, dryRun bool) {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}
	heading := fmt.Sprintf("%s %d files", verb, len(result.Changes))
	if len(result.Changes) > 0 {
		heading = color.New(color.FgYellow).Sprint(heading)
	} else {
		heading = color.New(color.FgGreen).Sprint(heading)
	}
	fmt.Fprintln(w, heading)
	for _, change := range result.Changes {
		fmt.Fprintln(w, change.Path)
	}
}

// WriteDiffs prints a unified diff for every change.
func WriteDiffs(w io.Writer, result *walker.Result) error {
	for _, change := range result.Changes {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(change.Before),
			B:        difflib.SplitLines(change.After),
			FromFile: "a/" + change.Path,
			ToFile:   "b/" + change.Path,
			Context:  3,
		}
		body, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return fmt.Errorf("cannot diff %s: %w", change.Path, err)
		}
		fmt.Fprint(w, body)
	}
	return nil
}

// WriteCrateTable prints the discovered workspace crate registry.
func WriteCrateTable(w io.Writer, crates workspace.Crates) {
	names := crates.Names()
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Workspace crate"})
	for i, name := range names {
		t.AppendRow(table.Row{i + 1, name})
	}
	t.Render()
}

// FormatStats renders a short per-run stat line for verbose mode.
func FormatStats(result *walker.Result) string {
	return fmt.Sprintf("scanned %d .rs files, %d crate(s), %d change(s)",
		result.Scanned, len(result.Crates), len(result.Changes))
}
