// Package ast defines the statement tree for parsed algorithm bodies.
//
// Statements are fully structured; expressions stay as token sequences and
// are evaluated against the live scope chain at run time.
package ast

import (
	"algo-lang/internal/token"
)

// Expr is an unparsed expression: the tokens of one expression together with
// its source text (for error messages) and line.
type Expr struct {
	Tokens []token.Token
	Text   string
	Line   int
}

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	stmtNode()
	SrcLine() int
}

// StmtBase provides the common source-line field for all statement nodes.
type StmtBase struct {
	Line int
}

func (s StmtBase) stmtNode()    {}
func (s StmtBase) SrcLine() int { return s.Line }

// Assign represents `let x = expr`, `x ← expr`, or `x = expr`.
type Assign struct {
	StmtBase
	Target string
	Value  Expr
}

// Return represents `return [expr]`. Value is nil for a bare return.
type Return struct {
	StmtBase
	Value *Expr
}

// IfBranch is one (condition, body) pair of an If chain.
type IfBranch struct {
	Cond Expr
	Body []Stmt
}

// If represents an if/elseif/else chain closed by endif.
type If struct {
	StmtBase
	Branches []IfBranch
	Else     []Stmt // nil if no else branch
}

// While represents `while cond do ... endwhile`.
type While struct {
	StmtBase
	Cond Expr
	Body []Stmt
}

// ForRange represents `for v from a to b do ... endfor` (inclusive bounds).
type ForRange struct {
	StmtBase
	Var  string
	From Expr
	To   Expr
	Body []Stmt
}

// ForIn represents `for v in list do ... endfor`.
type ForIn struct {
	StmtBase
	Var  string
	List Expr
	Body []Stmt
}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// Algorithm is one parsed `Algorithm: Name(params)` definition.
type Algorithm struct {
	Name   string
	Params []string
	Body   []Stmt
	Line   int // line of the header
}

// Program is the result of parsing one source file.
type Program struct {
	Algorithms []*Algorithm
}
