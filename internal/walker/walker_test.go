package walker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFormatter captures Apply calls; Err, when set, is returned.
type recordingFormatter struct {
	calls []string
	Err   error
}

func (f *recordingFormatter) Name() string { return "recording" }

func (f *recordingFormatter) Apply(root string) error {
	f.calls = append(f.calls, root)
	return f.Err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func setupWorkspace(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"alpha\"\n")
	writeFile(t, filepath.Join(root, "src", "main.rs"),
		"use std::io;\nuse std::fmt;\nmod db;\nfn main() {}\n")
	writeFile(t, filepath.Join(root, "src", "app.rs"),
		"use alpha::db::Pool;\nuse std::fmt;\nfn run() {}\n")
	writeFile(t, filepath.Join(root, "src", "clean.rs"),
		"use std::fmt;\n\nfn tidy() {}\n")
	writeFile(t, filepath.Join(root, "src", "plain.rs"),
		"fn nothing_to_do() {}\n")
	writeFile(t, filepath.Join(root, "target", "gen.rs"),
		"use std::io;\nuse std::fmt;\nfn generated() {}\n")
	return root
}

func TestRun_RewritesChangedFiles(t *testing.T) {
	root := setupWorkspace(t)

	result, err := Run(Options{Root: root})
	require.NoError(t, err)

	changed := map[string]bool{}
	for _, c := range result.Changes {
		rel, err := filepath.Rel(root, c.Path)
		require.NoError(t, err)
		changed[filepath.ToSlash(rel)] = true
	}
	assert.True(t, changed["src/main.rs"])
	assert.True(t, changed["src/app.rs"])
	assert.False(t, changed["src/clean.rs"], "normalized file must not be rewritten")
	assert.False(t, changed["src/plain.rs"], "file without a use block must be skipped")

	assert.Equal(t,
		"mod db;\n\nuse std::{io, fmt};\n\nfn main() {}\n",
		readFile(t, filepath.Join(root, "src", "main.rs")))
}

func TestRun_WorkspaceCrateClassifiedInternal(t *testing.T) {
	root := setupWorkspace(t)

	_, err := Run(Options{Root: root})
	require.NoError(t, err)

	// alpha is declared by the root Cargo.toml, so its import renders in
	// the workspace-internal group, after std.
	assert.Equal(t,
		"use std::fmt;\n\nuse alpha::db::Pool;\n\nfn run() {}\n",
		readFile(t, filepath.Join(root, "src", "app.rs")))
}

func TestRun_SkipsTargetTree(t *testing.T) {
	root := setupWorkspace(t)
	before := readFile(t, filepath.Join(root, "target", "gen.rs"))

	result, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, before, readFile(t, filepath.Join(root, "target", "gen.rs")))
	for _, c := range result.Changes {
		assert.NotContains(t, c.Path, string(filepath.Separator)+"target"+string(filepath.Separator))
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	root := setupWorkspace(t)
	before := readFile(t, filepath.Join(root, "src", "main.rs"))

	result, err := Run(Options{Root: root, DryRun: true})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Changes)
	assert.Equal(t, before, readFile(t, filepath.Join(root, "src", "main.rs")))
}

func TestRun_SecondPassIsNoOp(t *testing.T) {
	root := setupWorkspace(t)

	first, err := Run(Options{Root: root})
	require.NoError(t, err)
	require.NotEmpty(t, first.Changes)

	second, err := Run(Options{Root: root})
	require.NoError(t, err)
	assert.Empty(t, second.Changes, "rewritten tree must already be normalized")
}

func TestRun_FormatterInvokedOnce(t *testing.T) {
	root := setupWorkspace(t)
	formatter := &recordingFormatter{}

	_, err := Run(Options{Root: root, Formatter: formatter})
	require.NoError(t, err)
	assert.Equal(t, []string{root}, formatter.calls)
}

func TestRun_FormatterFailureIsNotFatal(t *testing.T) {
	root := setupWorkspace(t)
	formatter := &recordingFormatter{Err: errors.New("rustfmt exploded")}

	result, err := Run(Options{Root: root, Formatter: formatter})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Changes)
}

func TestRun_FormatterSkippedOnDryRun(t *testing.T) {
	root := setupWorkspace(t)
	formatter := &recordingFormatter{}

	_, err := Run(Options{Root: root, DryRun: true, Formatter: formatter})
	require.NoError(t, err)
	assert.Empty(t, formatter.calls)
}

func TestRun_MissingRootFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Run(Options{Root: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot walk")
}

func TestRun_CountsScannedFiles(t *testing.T) {
	root := setupWorkspace(t)

	result, err := Run(Options{Root: root})
	require.NoError(t, err)
	// main.rs, app.rs, clean.rs, plain.rs — target/gen.rs is pruned.
	assert.Equal(t, 4, result.Scanned)
}
