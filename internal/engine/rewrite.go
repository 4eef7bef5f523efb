package engine

import (
	"strings"

	"github.com/StinkyLord/rust-use-normalizer/internal/model"
)

// moduleRootNames are the filenames whose mod declarations must all precede
// the use section.
var moduleRootNames = map[string]bool{
	"mod.rs":  true,
	"lib.rs":  true,
	"main.rs": true,
}

// Reorganize computes the normalized form of one file. filename is the base
// name (used for the module-root rule), content the full file text. It
// returns ("", false) when the file is not applicable or already normalized;
// otherwise the new content and true. Pure transform — writing is the
// caller's responsibility.
func Reorganize(filename, content string, table Table, crates func(string) bool) (string, bool) {
	lines := SplitLines(content)

	sections, ok := Segment(lines)
	if !ok {
		return "", false
	}

	// Classification is a second pass over the segmented statements; the
	// segmenter itself never consults the crate registry.
	for _, stmt := range sections.Statements {
		if stmt.Kind == model.KindUse {
			stmt.Use = BuildUseStatement(stmt.Lines, table, crates)
		}
	}

	uses := sections.UseStatements()
	if len(uses) == 0 {
		return "", false
	}

	useSection := RenderUseSection(uses)
	if len(useSection) == 0 {
		return "", false
	}

	var out []string
	out = append(out, sections.Prefix...)

	if moduleRootNames[filename] {
		wroteMods := false
		for _, stmt := range sections.Statements {
			if stmt.Kind == model.KindMod {
				out = append(out, stmt.Lines...)
				wroteMods = true
			}
		}
		if wroteMods {
			out = appendBlankLine(out)
		}
	} else {
		wroteOthers := false
		for _, stmt := range sections.Statements {
			if stmt.Kind == model.KindUse {
				continue
			}
			out = append(out, stmt.Lines...)
			wroteOthers = true
		}
		if wroteOthers {
			out = appendBlankLine(out)
		}
	}
	out = append(out, useSection...)
	out = append(out, sections.Suffix...)

	if len(out) > 0 && !strings.HasSuffix(out[len(out)-1], "\n") {
		out[len(out)-1] += "\n"
	}

	newContent := strings.Join(out, "")
	if newContent == content {
		return "", false
	}
	return newContent, true
}

// appendBlankLine appends a blank line unless the buffer already ends with one.
func appendBlankLine(buf []string) []string {
	if len(buf) == 0 {
		return buf
	}
	if strings.TrimSpace(buf[len(buf)-1]) != "" {
		buf = append(buf, "\n")
	}
	return buf
}
