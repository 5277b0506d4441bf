// Package treeview renders binary-tree values as ASCII diagrams, root
// centered above its children with / and \ connectors.
package treeview

import (
	"strings"

	"algo-lang/internal/runtime"
)

// layout carries the per-render state: label column assignment happens via
// an in-order walk, so every node gets a horizontal slot strictly between
// its left and right subtrees and no two glyph runs overlap.
type layout struct {
	unit    int // width of one in-order slot
	nextCol int
	centers map[*runtime.TreeVal]int
	rows    [][]byte
}

// Render draws the tree top-down. A leaf (empty tree) renders as no lines.
func Render(t *runtime.TreeVal) []string {
	if t == nil {
		return nil
	}

	l := &layout{
		unit:    maxLabelWidth(t) + 1,
		centers: make(map[*runtime.TreeVal]int),
	}
	if l.unit < 3 {
		l.unit = 3
	}

	l.assign(t)

	height := depth(t)
	width := l.nextCol * l.unit
	l.rows = make([][]byte, 2*height-1)
	for i := range l.rows {
		l.rows[i] = blankRow(width)
	}

	l.draw(t, 0)

	lines := make([]string, len(l.rows))
	for i, row := range l.rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// RenderString joins the rendered lines with newlines.
func RenderString(t *runtime.TreeVal) string {
	return strings.Join(Render(t), "\n")
}

// assign gives every node the center column of its in-order slot.
func (l *layout) assign(t *runtime.TreeVal) {
	if t == nil {
		return
	}
	l.assign(t.Left)
	l.centers[t] = l.nextCol*l.unit + l.unit/2
	l.nextCol++
	l.assign(t.Right)
}

// draw places the node label on its depth row and a connector toward each
// present child at the midpoint between the two centers.
func (l *layout) draw(t *runtime.TreeVal, d int) {
	if t == nil {
		return
	}
	center := l.centers[t]
	l.place(2*d, center, t.Val.String())

	if t.Left != nil {
		mid := (center + l.centers[t.Left]) / 2
		l.rows[2*d+1][mid] = '/'
		l.draw(t.Left, d+1)
	}
	if t.Right != nil {
		mid := (center + l.centers[t.Right] + 1) / 2
		l.rows[2*d+1][mid] = '\\'
		l.draw(t.Right, d+1)
	}
}

// place writes s centered on col, clamped to the row bounds.
func (l *layout) place(row, col int, s string) {
	start := col - len(s)/2
	if start < 0 {
		start = 0
	}
	if start+len(s) > len(l.rows[row]) {
		start = len(l.rows[row]) - len(s)
	}
	copy(l.rows[row][start:], s)
}

func maxLabelWidth(t *runtime.TreeVal) int {
	if t == nil {
		return 0
	}
	w := len(t.Val.String())
	if lw := maxLabelWidth(t.Left); lw > w {
		w = lw
	}
	if rw := maxLabelWidth(t.Right); rw > w {
		w = rw
	}
	return w
}

func depth(t *runtime.TreeVal) int {
	if t == nil {
		return 0
	}
	ld, rd := depth(t.Left), depth(t.Right)
	if rd > ld {
		ld = rd
	}
	return 1 + ld
}

func blankRow(width int) []byte {
	row := make([]byte, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}
