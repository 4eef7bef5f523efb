// Package engine implements the use-statement rewriting engine: statement
// segmentation, provenance classification, merge/render, and the per-file
// reorganizer. It works at the statement-boundary level — a small line lexer
// with a brace-depth counter — rather than a full Rust grammar.
package engine

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/rust-use-normalizer/internal/model"
)

var (
	reUse          = regexp.MustCompile(`^\s*(pub\s+)?use\b`)
	reMod          = regexp.MustCompile(`^\s*(pub\s+)?mod\b`)
	reAttr         = regexp.MustCompile(`^\s*#\[`)
	reLineComment  = regexp.MustCompile(`^\s*//`)
	reBlockComment = regexp.MustCompile(`^\s*/\*`)
)

// SplitLines splits content into lines that keep their trailing newline, so
// joining the slices reproduces the input byte-for-byte.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			return lines
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
		if content == "" {
			return lines
		}
	}
}

// Segment splits a file's lines into prefix, statement run, and suffix.
// It returns (nil, false) when the file has no leading use/mod block — the
// caller must leave such files untouched.
//
// The segmenter only finds boundaries; classifying the collected use
// statements is a separate pass over the sections.
func Segment(lines []string) (*model.FileSections, bool) {
	idx := 0
	var prefix []string

	for idx < len(lines) {
		line := lines[idx]
		switch {
		case strings.TrimSpace(line) == "",
			reLineComment.MatchString(line),
			reBlockComment.MatchString(line):
			prefix = append(prefix, line)
			idx++
			continue
		case strings.HasPrefix(line, "#!"):
			// Shebang or inner attribute (#![...]) — both stay in the prefix.
			prefix = append(prefix, line)
			idx++
			continue
		}
		if reAttr.MatchString(line) || reUse.MatchString(line) || reMod.MatchString(line) {
			break
		}
		return nil, false
	}

	var statements []*model.Statement
	cur := idx
	for cur < len(lines) {
		stmt, next := collectStatement(lines, cur)
		if stmt == nil {
			break
		}
		statements = append(statements, stmt)
		cur = next
		// Absorb blank lines after the statement; spacing is re-inserted
		// uniformly at render time.
		for cur < len(lines) && strings.TrimSpace(lines[cur]) == "" {
			cur++
		}
	}

	if len(statements) == 0 {
		return nil, false
	}

	return &model.FileSections{
		Prefix:     prefix,
		Statements: statements,
		Suffix:     lines[cur:],
	}, true
}

// collectStatement reads one statement starting at idx: zero or more
// attribute lines followed by a use or mod declaration. A use declaration may
// span multiple lines; its terminator is a semicolon reached at net brace
// depth zero or below. A mod declaration is exactly one line.
//
// Returns (nil, idx) without consuming anything when idx does not start a
// statement — attribute lines followed by ordinary code stay in the suffix.
func collectStatement(lines []string, idx int) (*model.Statement, int) {
	var attrs []string
	cur := idx
	for cur < len(lines) && reAttr.MatchString(lines[cur]) {
		attrs = append(attrs, lines[cur])
		cur++
	}
	if cur >= len(lines) {
		return nil, idx
	}

	line := lines[cur]
	if reUse.MatchString(line) {
		stmtLines := append(append([]string{}, attrs...), line)
		cur++
		depth := strings.Count(line, "{") - strings.Count(line, "}")
		done := strings.Contains(line, ";") && depth <= 0
		for !done && cur < len(lines) {
			stmtLines = append(stmtLines, lines[cur])
			depth += strings.Count(lines[cur], "{") - strings.Count(lines[cur], "}")
			if strings.Contains(lines[cur], ";") && depth <= 0 {
				done = true
			}
			cur++
		}
		return &model.Statement{Kind: model.KindUse, Lines: stmtLines}, cur
	}

	if reMod.MatchString(line) {
		stmtLines := append(append([]string{}, attrs...), line)
		return &model.Statement{Kind: model.KindMod, Lines: stmtLines}, cur + 1
	}

	return nil, idx
}
