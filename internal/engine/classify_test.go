package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFromSource(src string, crates func(string) bool) *testUse {
	lines := SplitLines(src)
	u := BuildUseStatement(lines, DefaultTable(), crates)
	return &testUse{u.Path, u.IsPub, u.Group, u.Base, u.Remainder, u.HasAttrs}
}

type testUse struct {
	path      string
	isPub     bool
	group     int
	base      string
	remainder string
	hasAttrs  bool
}

func TestClassify_Groups(t *testing.T) {
	alphaOnly := func(name string) bool { return name == "alpha" }

	cases := []struct {
		name string
		src  string
		want int
	}{
		{"std", "use std::fmt;\n", 1},
		{"allowlisted external", "use serde::Serialize;\n", 1},
		{"allowlisted with underscore", "use serde_json::json;\n", 1},
		{"domain external", "use serialport::SerialPort;\n", 2},
		{"crate path", "use crate::db::Pool;\n", 3},
		{"self path", "use self::config::Config;\n", 3},
		{"super path", "use super::util;\n", 3},
		{"bare crate", "use crate;\n", 3},
		{"workspace crate", "use alpha::foo::Bar;\n", 3},
		{"leading colons", "use ::std::fmt;\n", 1},
		{"pub use external", "pub use ratatui::widgets::Block;\n", 2},
		{"braced allowlisted", "use std::{fmt, io};\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildFromSource(tc.src, alphaOnly)
			assert.Equal(t, tc.want, got.group)
		})
	}
}

func TestClassify_UnparseablePathDefaultsToGroup2(t *testing.T) {
	// Missing semicolon within the collected lines: no extractable path.
	got := buildFromSource("use std::fmt\n", noCrates)
	assert.Empty(t, got.path)
	assert.Equal(t, 2, got.group)
	assert.Empty(t, got.base)
}

func TestClassify_CustomTable(t *testing.T) {
	table := NewTable("serialport")
	u := BuildUseStatement(SplitLines("use serialport::SerialPort;\n"), table, noCrates)
	assert.Equal(t, 1, u.Group)

	u = BuildUseStatement(SplitLines("use std::fmt;\n"), table, noCrates)
	assert.Equal(t, 2, u.Group, "std is not on the substituted table")
}

func TestClassify_PubFlag(t *testing.T) {
	assert.True(t, buildFromSource("pub use crate::model::Thing;\n", noCrates).isPub)
	assert.False(t, buildFromSource("use crate::model::Thing;\n", noCrates).isPub)

	// The pub flag comes from the first non-attribute line.
	withAttr := buildFromSource("#[doc(hidden)]\npub use crate::model::Thing;\n", noCrates)
	assert.True(t, withAttr.isPub)
	assert.True(t, withAttr.hasAttrs)
}

func TestMergeKey_Eligibility(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		base      string
		remainder string
	}{
		{"simple two segments", "use std::fmt;\n", "std", "fmt"},
		{"deep path", "use std::sync::Arc;\n", "std", "sync::Arc"},
		{"braced remainder", "use std::{fmt, io};\n", "std", "{fmt, io}"},
		{"single segment keeps base only", "use anyhow;\n", "anyhow", ""},
		{"wildcard ineligible", "use foo::prelude::*;\n", "", ""},
		{"rename ineligible", "use foo::bar as baz;\n", "", ""},
		{"trailing colon ineligible", "use foo::bar:;\n", "", ""},
		{"attrs ineligible", "#[cfg(test)]\nuse std::fmt;\n", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildFromSource(tc.src, noCrates)
			assert.Equal(t, tc.base, got.base)
			assert.Equal(t, tc.remainder, got.remainder)
		})
	}
}

func TestMergeKey_MergeableRequiresRemainder(t *testing.T) {
	u := BuildUseStatement(SplitLines("use anyhow;\n"), DefaultTable(), noCrates)
	require.Equal(t, "anyhow", u.Base)
	assert.False(t, u.Mergeable(), "single-segment path has nothing to combine")

	u = BuildUseStatement(SplitLines("use anyhow::Result;\n"), DefaultTable(), noCrates)
	assert.True(t, u.Mergeable())
}
