// Package model defines the internal data structures used by the use-statement engine.
package model

// StatementKind distinguishes the two declaration forms the engine handles.
type StatementKind string

const (
	KindUse StatementKind = "use"
	KindMod StatementKind = "mod"
)

// Statement is one contiguous run of source lines holding exactly one `use`
// or `mod` declaration, including any attribute lines attached above it.
// Lines keep their original line endings so a verbatim re-emit is lossless.
type Statement struct {
	Kind  StatementKind
	Lines []string

	// Use carries the classified view of a KindUse statement. It is filled
	// by the classification pass, after segmentation; always nil for mods.
	Use *UseStatement
}

// Text returns the statement's original source text.
func (s *Statement) Text() string {
	text := ""
	for _, line := range s.Lines {
		text += line
	}
	return text
}

// UseStatement is the classified view of a `use` declaration.
type UseStatement struct {
	Lines []string

	// Path is the dotted path between the `use` keyword and its terminating
	// semicolon, or "" when no path could be extracted in one pass. A
	// statement with no path is treated as opaque: group 2, never merged.
	Path string

	// IsPub records whether the declaration is re-exported (`pub use`).
	IsPub bool

	// Group is the provenance group:
	//   1 — shared/utility crates (std and the curated allow-list)
	//   2 — domain-specific external crates
	//   3 — workspace-internal crates (crate::/self::/super:: or a crate
	//       named in a workspace Cargo.toml)
	Group int

	// Base and Remainder form the merge key. Base is the leading path
	// segment, Remainder everything after the first `::`. Both are empty
	// when the statement is not merge-eligible (attributes attached,
	// wildcard or rename in the path, fewer than two segments, malformed
	// trailing segment).
	Base      string
	Remainder string

	// HasAttrs is true when attribute lines travel with the statement;
	// such statements are always emitted verbatim.
	HasAttrs bool
}

// Mergeable reports whether the statement can be combined with others
// sharing its (IsPub, Base) merge key.
func (u *UseStatement) Mergeable() bool {
	return u.Base != "" && u.Remainder != "" && !u.HasAttrs
}

// Text returns the statement's original source text.
func (u *UseStatement) Text() string {
	text := ""
	for _, line := range u.Lines {
		text += line
	}
	return text
}

// FileSections is the decomposition of one source file. Prefix + every
// Statement's Lines + Suffix reconstructs the original file, except for blank
// lines between statements, which the segmenter absorbs so spacing can be
// re-inserted uniformly at render time.
type FileSections struct {
	// Prefix is the leading run of blank lines, line comments, block-comment
	// openers and shebang/inner-attribute lines.
	Prefix []string

	// Statements is the contiguous run of use/mod declarations found after
	// the prefix, in original order.
	Statements []*Statement

	// Suffix is every line after the statement run, untouched.
	Suffix []string
}

// UseStatements returns the classified use statements in original order.
func (f *FileSections) UseStatements() []*UseStatement {
	var uses []*UseStatement
	for _, stmt := range f.Statements {
		if stmt.Kind == KindUse && stmt.Use != nil {
			uses = append(uses, stmt.Use)
		}
	}
	return uses
}
