// Package span provides source position and span types used across the interpreter.
package span

import "fmt"

// Pos represents a position in source code. The language is line-oriented, so
// a line number plus a 1-based column identifies any token.
type Pos struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code [Start, End).
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// At returns a zero-width span at the given line and column.
func At(line, col int) Span {
	return Span{Start: Pos{Line: line, Column: col}, End: Pos{Line: line, Column: col}}
}
