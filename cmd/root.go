package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/rust-use-normalizer/internal/output"
	"github.com/StinkyLord/rust-use-normalizer/internal/walker"
	"github.com/StinkyLord/rust-use-normalizer/internal/workspace"
)

const toolVersion = "1.0.0"

var (
	flagDir     string
	flagVerbose bool
	flagDryRun  bool
	flagDiff    bool
	flagFmt     bool
)

var rootCmd = &cobra.Command{
	Use:   "rust-use-normalizer",
	Short: "Rust use-statement layout normalizer",
	Long: `rust-use-normalizer rewrites the leading use/mod block of every .rs file
in a workspace tree according to a fixed layout policy:

  • Three groups: shared utility crates (std, serde, ...), domain-specific
    external crates, and workspace/internal crates (crate::, super::, or any
    crate declared by a workspace Cargo.toml)
  • A single blank line between groups and after the final group
  • In mod.rs, lib.rs, and main.rs, all mod declarations before the use block
  • Consecutive simple paths sharing a leading segment merge into one
    statement (use std::sync::Arc; + use std::collections::HashMap;
    -> use std::{sync::Arc, collections::HashMap};)

Files are rewritten in place only when their content actually changes.`,
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Normalize use statements under a workspace root",
	Long: `Scan a workspace tree for .rs files (skipping target/ directories), rewrite
each file's leading use/mod block, and print the modified file paths.

Examples:
  rust-use-normalizer fix --dir /path/to/workspace
  rust-use-normalizer fix --dir . --dry-run --diff
  rust-use-normalizer fix --dir . --fmt`,
	RunE: runFix,
}

var cratesCmd = &cobra.Command{
	Use:   "crates",
	Short: "List the workspace crates discovered under a root",
	Long: `Walk the tree for Cargo.toml manifests (skipping target/ directories) and
print every declared package name. These are the crates whose imports are
classified as workspace-internal.`,
	RunE: runCrates,
}

func init() {
	fixCmd.Flags().StringVarP(&flagDir, "dir", "d", ".", "Path to the workspace root directory")
	fixCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	fixCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report files that would change without writing them")
	fixCmd.Flags().BoolVar(&flagDiff, "diff", false, "Print unified diffs of the changes")
	fixCmd.Flags().BoolVar(&flagFmt, "fmt", false,
		"Run 'cargo fmt' over the tree after rewriting.\n"+
			"Best-effort: a missing cargo binary or a non-zero exit is logged,\n"+
			"never fatal to the run.")

	cratesCmd.Flags().StringVarP(&flagDir, "dir", "d", ".", "Path to the workspace root directory")
	cratesCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(cratesCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveRoot() (string, error) {
	absDir, err := filepath.Abs(flagDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve directory %q: %w", flagDir, err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return "", fmt.Errorf("directory %q does not exist: %w", absDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", absDir)
	}
	return absDir, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "rust-use-normalizer v%s\n", toolVersion)
	fmt.Fprintf(os.Stderr, "Normalizing: %s\n", root)

	opts := walker.Options{
		Root:    root,
		Verbose: flagVerbose,
		DryRun:  flagDryRun,
	}
	if flagFmt {
		opts.Formatter = walker.CargoFmt{}
	}

	result, err := walker.Run(opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "%s\n", output.FormatStats(result))
	}

	output.WriteSummary(os.Stdout, result, flagDryRun)

	if flagDiff {
		if err := output.WriteDiffs(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "diff output failed: %v\n", err)
		}
	}

	return nil
}

func runCrates(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	crates := workspace.LoadCrates(root, flagVerbose)
	output.WriteCrateTable(os.Stdout, crates)
	return nil
}
