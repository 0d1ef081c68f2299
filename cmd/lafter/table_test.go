package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsAndDropsCells(t *testing.T) {
	out := renderTable(
		[]column{leftCol("Name"), rightCol("Count")},
		[][]string{{"only"}, {"full", "3", "dropped"}},
	)
	requireContains(t, out, "only")
	requireContains(t, out, "full")
	if strings.Contains(out, "dropped") {
		t.Fatalf("extra cells should be dropped:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("expected trailing newline")
	}
	if renderTable(nil, [][]string{{"x"}}) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestRenderTableWrapsTitles(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("comedyshow ", 8))
	out := renderTable([]column{titleCol("Title")}, [][]string{{long}})
	if strings.Contains(out, long) {
		t.Fatalf("expected title longer than %d cells to wrap:\n%s", titleWidth, out)
	}
	requireContains(t, out, "comedyshow")
}
