package engine

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/rust-use-normalizer/internal/model"
)

var (
	reUsePath  = regexp.MustCompile(`\buse\s+([^;]+);`)
	reBaseStop = regexp.MustCompile(`::|,|\s|\{`)
)

// BuildUseStatement classifies one use statement: extracted path, visibility,
// provenance group, and merge key. crates reports workspace-internal crate
// names for group 3.
func BuildUseStatement(lines []string, table Table, crates func(string) bool) *model.UseStatement {
	var codeLines []string
	hasAttrs := false
	for _, line := range lines {
		if reAttr.MatchString(line) {
			hasAttrs = true
			continue
		}
		codeLines = append(codeLines, line)
	}

	path := extractUsePath(codeLines)
	isPub := len(codeLines) > 0 && strings.HasPrefix(strings.TrimLeft(codeLines[0], " \t"), "pub ")
	base, remainder := mergeKey(path, hasAttrs)

	return &model.UseStatement{
		Lines:     lines,
		Path:      path,
		IsPub:     isPub,
		Group:     classify(path, table, crates),
		Base:      base,
		Remainder: remainder,
		HasAttrs:  hasAttrs,
	}
}

// extractUsePath joins the non-attribute lines and matches the use keyword
// through to its terminating semicolon. Returns "" when no path is found.
func extractUsePath(codeLines []string) string {
	parts := make([]string, 0, len(codeLines))
	for _, line := range codeLines {
		parts = append(parts, strings.TrimSpace(line))
	}
	m := reUsePath.FindStringSubmatch(strings.Join(parts, " "))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// classify computes the provenance group for a use path.
//
// Group 3: self-referential paths (crate::/self::/super::) and paths whose
// leading segment names a workspace crate. Group 1: leading segment on the
// allow-list. Group 2: everything else, including unparseable statements.
func classify(path string, table Table, crates func(string) bool) int {
	if path == "" {
		return 2
	}
	token := strings.TrimSpace(path)
	token = strings.TrimSpace(strings.TrimPrefix(token, "pub "))
	token = strings.TrimSpace(strings.TrimPrefix(token, "use "))
	if strings.HasPrefix(token, "crate::") ||
		strings.HasPrefix(token, "self::") ||
		strings.HasPrefix(token, "super::") {
		return 3
	}
	token = strings.TrimLeft(token, ":")
	base := token
	if loc := reBaseStop.FindStringIndex(token); loc != nil {
		base = token[:loc[0]]
	}
	switch base {
	case "crate", "self", "super":
		return 3
	}
	if crates != nil && crates(base) {
		return 3
	}
	if table.Contains(base) {
		return 1
	}
	return 2
}

// mergeKey splits a path at its first :: into (base, remainder). A statement
// is merge-eligible only when it carries no attributes, has an extractable
// path with no wildcard or rename clause and no malformed trailing segment,
// and has at least two segments. Single-segment paths keep a defined base but
// an empty remainder; fully ineligible statements return ("", ""). Either way
// a statement without a remainder is emitted verbatim.
func mergeKey(path string, hasAttrs bool) (string, string) {
	if hasAttrs || path == "" {
		return "", ""
	}
	token := strings.TrimSpace(path)
	if strings.Contains(token, "*") || strings.Contains(token, " as ") {
		return "", ""
	}
	if strings.HasSuffix(token, ":") {
		return "", ""
	}
	sep := strings.Index(token, "::")
	if sep < 0 {
		// Single-segment path: a defined base but nothing to combine.
		if strings.ContainsAny(token, "{}") {
			return "", ""
		}
		return token, ""
	}
	base := strings.TrimSpace(token[:sep])
	remainder := strings.TrimSpace(token[sep+2:])
	if base == "" || remainder == "" {
		return "", ""
	}
	// A brace before the first separator means the path has no simple base.
	if strings.ContainsAny(base, "{}") {
		return "", ""
	}
	return base, remainder
}
