// Package token defines the token types produced by the lexer.
//
// The pseudocode language has no reserved words: `if`, `endwhile`, `from` and
// friends are ordinary IDENT tokens whose meaning is decided by the statement
// parser (and `and`/`or`/`not`/`mod` by the expression evaluator). Word is
// the helper both use to match them case-insensitively.
package token

import (
	"fmt"
	"strings"

	"algo-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT  // identifiers: x, FindMax, myVar
	INT    // integer literals: 123
	FLOAT  // float literals: 3.14
	STRING // string literals: "hello" or 'hello'

	// Operators
	ASSIGN  // =
	ARROW   // ←
	PLUS    // +
	MINUS   // -
	STAR    // * (also ×)
	SLASH   // /
	PERCENT // %
	BANG    // !

	EQ  // ==
	NEQ // !=
	LT  // <
	LTE // <= (also ≤)
	GT  // >
	GTE // >= (also ≥)

	AND // &&
	OR  // ||

	// Delimiters
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	COLON  // :
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",

	ASSIGN:  "=",
	ARROW:   "←",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	BANG:    "!",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	LTE:     "<=",
	GT:      ">",
	GTE:     ">=",
	AND:     "&&",
	OR:      "||",

	LPAREN: "(",
	RPAREN: ")",
	COMMA:  ",",
	COLON:  ":",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral returns true if the kind is a literal (ident/int/float/string).
func (k Kind) IsLiteral() bool {
	return k >= IDENT && k <= STRING
}

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// Word returns the lower-cased lexeme when the token is an identifier, and ""
// otherwise. Keyword matching is contextual, so this is how the parser and
// evaluator recognize `if`, `then`, `and`, `mod`, etc.
func (t Token) Word() string {
	if t.Kind != IDENT {
		return ""
	}
	return strings.ToLower(t.Lexeme)
}

// IsWord reports whether the token is the given (lower-case) word.
func (t Token) IsWord(word string) bool {
	return t.Kind == IDENT && strings.EqualFold(t.Lexeme, word)
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}

// Text reconstructs a readable form of a token sequence, for error messages.
func Text(toks []Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		if t.Kind == STRING {
			parts[i] = fmt.Sprintf("%q", t.Lexeme)
		} else {
			parts[i] = t.Lexeme
		}
	}
	return strings.Join(parts, " ")
}
