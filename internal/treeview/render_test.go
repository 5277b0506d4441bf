package treeview

import (
	"strings"
	"testing"

	"algo-lang/internal/runtime"
)

func node(left *runtime.TreeVal, v int64, right *runtime.TreeVal) *runtime.TreeVal {
	return &runtime.TreeVal{Left: left, Val: runtime.IntVal(v), Right: right}
}

func TestRenderLeaf(t *testing.T) {
	if lines := Render(nil); len(lines) != 0 {
		t.Errorf("leaf should render as nothing, got %v", lines)
	}
}

func TestRenderSingleNode(t *testing.T) {
	lines := Render(node(nil, 5, nil))
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(lines), lines)
	}
	if strings.TrimSpace(lines[0]) != "5" {
		t.Errorf("expected lone 5, got %q", lines[0])
	}
}

func TestRenderSmallTree(t *testing.T) {
	lines := Render(node(node(nil, 1, nil), 2, node(nil, 3, nil)))
	want := []string{
		"    2",
		"  /   \\",
		" 1     3",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRenderLeftOnlyChild(t *testing.T) {
	lines := Render(node(node(nil, 1, nil), 2, nil))
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if strings.Count(lines[1], "/") != 1 || strings.Contains(lines[1], "\\") {
		t.Errorf("expected a single / connector, got %q", lines[1])
	}
	// absent right child draws nothing
	if strings.TrimSpace(lines[2]) != "1" {
		t.Errorf("expected only the left child on the bottom row, got %q", lines[2])
	}
}

func TestRenderDeepTree(t *testing.T) {
	tree := node(node(node(nil, 10, nil), 20, node(nil, 25, nil)), 30, node(nil, 40, nil))
	lines := Render(tree)

	if len(lines) != 5 {
		t.Fatalf("expected 5 lines (depth 3), got %d: %q", len(lines), lines)
	}
	if strings.TrimSpace(lines[0]) != "30" {
		t.Errorf("root row should hold only 30, got %q", lines[0])
	}
	all := strings.Join(lines, "\n")
	if strings.Count(all, "/") != 2 || strings.Count(all, "\\") != 2 {
		t.Errorf("expected 2 of each connector, got:\n%s", all)
	}

	// in-order column positions: every label sits strictly right of the
	// previous in-order label, so no two glyph runs overlap
	prev := -1
	for _, label := range []string{"10", "20", "25", "30", "40"} {
		col := -1
		for _, line := range lines {
			if i := strings.Index(line, label); i >= 0 {
				col = i
				break
			}
		}
		if col < 0 {
			t.Fatalf("label %s not rendered:\n%s", label, all)
		}
		if col <= prev {
			t.Errorf("label %s at column %d breaks in-order layout:\n%s", label, col, all)
		}
		prev = col
	}
}

func TestRenderWideLabels(t *testing.T) {
	tree := node(node(nil, 1000, nil), 5, node(nil, 2000, nil))
	lines := Render(tree)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	bottom := lines[2]
	left := strings.Index(bottom, "1000")
	right := strings.Index(bottom, "2000")
	if left < 0 || right < 0 || right <= left+4 {
		t.Errorf("wide labels overlap: %q", bottom)
	}
}

func TestRenderStringJoinsLines(t *testing.T) {
	s := RenderString(node(nil, 7, nil))
	if strings.TrimSpace(s) != "7" {
		t.Errorf("expected single-line output, got %q", s)
	}
}
