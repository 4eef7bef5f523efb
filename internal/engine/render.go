package engine

import (
	"strings"

	"github.com/StinkyLord/rust-use-normalizer/internal/model"
)

// bucketKey identifies one pending merge bucket: visibility plus the leading
// path segment of the use path.
type bucketKey struct {
	isPub bool
	base  string
}

// pendingMerges accumulates mergeable statements in first-seen key order.
type pendingMerges struct {
	order  []bucketKey
	leaves map[bucketKey][]string
}

func newPendingMerges() *pendingMerges {
	return &pendingMerges{leaves: map[bucketKey][]string{}}
}

// add appends the statement's remainder leaves to its bucket, preserving
// first-seen order and dropping duplicate leaves within the bucket.
func (p *pendingMerges) add(u *model.UseStatement, leaves []string) {
	key := bucketKey{isPub: u.IsPub, base: u.Base}
	if _, ok := p.leaves[key]; !ok {
		p.order = append(p.order, key)
	}
	for _, leaf := range leaves {
		if !containsLeaf(p.leaves[key], leaf) {
			p.leaves[key] = append(p.leaves[key], leaf)
		}
	}
}

// flush renders every pending bucket as one combined statement and clears
// the accumulator. A single-leaf bucket renders as a plain path; a multi-leaf
// bucket renders as a braced group in first-seen leaf order.
func (p *pendingMerges) flush(output *[]string) {
	for _, key := range p.order {
		leaves := p.leaves[key]
		if len(leaves) == 0 {
			continue
		}
		vis := ""
		if key.isPub {
			vis = "pub "
		}
		// A lone `self` leaf must stay braced: `use serde::self;` is not
		// valid Rust, `use serde::{self};` is.
		var line string
		if len(leaves) == 1 && leaves[0] != "self" {
			line = vis + "use " + key.base + "::" + leaves[0] + ";\n"
		} else {
			line = vis + "use " + key.base + "::{" + strings.Join(leaves, ", ") + "};\n"
		}
		*output = append(*output, line)
	}
	p.order = p.order[:0]
	p.leaves = map[bucketKey][]string{}
}

// expandRemainder turns a statement remainder into its leaf tokens. A
// remainder that is itself a braced group is expanded one level with
// depth-aware comma splitting, so nested braces survive as opaque leaves;
// any other remainder is a single opaque leaf.
func expandRemainder(remainder string) []string {
	if !strings.HasPrefix(remainder, "{") || !strings.HasSuffix(remainder, "}") {
		return []string{remainder}
	}
	inner := remainder[1 : len(remainder)-1]
	var leaves []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				if leaf := strings.TrimSpace(inner[start:i]); leaf != "" {
					leaves = append(leaves, leaf)
				}
				start = i + 1
			}
		}
	}
	if leaf := strings.TrimSpace(inner[start:]); leaf != "" {
		leaves = append(leaves, leaf)
	}
	return leaves
}

func containsLeaf(leaves []string, leaf string) bool {
	for _, l := range leaves {
		if l == leaf {
			return true
		}
	}
	return false
}

// renderGroup renders one provenance group. Mergeable statements accumulate
// into pending buckets; any non-mergeable statement first flushes every
// pending bucket, then is emitted verbatim. Ordering fidelity wins over
// maximal merging: two runs of the same base separated by a non-mergeable
// statement render as two combined statements.
func renderGroup(statements []*model.UseStatement) []string {
	if len(statements) == 0 {
		return nil
	}
	var output []string
	pending := newPendingMerges()

	for _, stmt := range statements {
		if stmt.Mergeable() {
			// An empty group (`use std::{};`) expands to no leaves; it
			// must pass through verbatim rather than vanish.
			if leaves := expandRemainder(stmt.Remainder); len(leaves) > 0 {
				pending.add(stmt, leaves)
				continue
			}
		}
		pending.flush(&output)
		output = append(output, stmt.Lines...)
	}
	pending.flush(&output)
	return output
}

// RenderUseSection renders all use statements grouped by provenance, in the
// fixed order 1, 2, 3, with a single blank line between non-empty groups and
// one blank line after the last non-empty group.
func RenderUseSection(uses []*model.UseStatement) []string {
	grouped := map[int][]*model.UseStatement{}
	for _, u := range uses {
		grouped[u.Group] = append(grouped[u.Group], u)
	}

	var rendered []string
	for _, group := range []int{1, 2, 3} {
		block := renderGroup(grouped[group])
		if len(block) == 0 {
			continue
		}
		if len(rendered) > 0 && strings.TrimSpace(rendered[len(rendered)-1]) != "" {
			rendered = append(rendered, "\n")
		}
		rendered = append(rendered, block...)
	}
	if len(rendered) > 0 && strings.TrimSpace(rendered[len(rendered)-1]) != "" {
		rendered = append(rendered, "\n")
	}
	return rendered
}
