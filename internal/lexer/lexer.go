// Package lexer implements tokenization for the pseudocode language.
//
// A Lexer scans exactly one source line: an expression, a statement, or a
// block header. Multi-line structure is the statement parser's job.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"algo-lang/internal/diag"
	"algo-lang/internal/span"
	"algo-lang/internal/token"
)

// Lexer tokenizes a single source line into a sequence of tokens.
type Lexer struct {
	source string
	line   int // source line number (1-based), attached to every token

	pos int // current read position in source
	col int // current column (1-based)

	diags []diag.Diagnostic
}

// New creates a Lexer for one source line. line is the 1-based line number
// used in spans and diagnostics.
func New(source string, line int) *Lexer {
	return &Lexer{
		source: source,
		line:   line,
		pos:    0,
		col:    1,
	}
}

// Tokenize scans the entire line and returns all tokens and diagnostics.
// The returned slice always ends with an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

// Scan is a convenience wrapper that tokenizes one line and drops the
// trailing EOF token.
func Scan(source string, line int) ([]token.Token, []diag.Diagnostic) {
	tokens, diags := New(source, line).Tokenize()
	return tokens[:len(tokens)-1], diags
}

// ---- internal helpers ----

// peek returns the current byte without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// peekNext returns the byte after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

// advance consumes the current byte and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	l.col++
	return ch
}

// advanceRune consumes one full UTF-8 rune and returns it.
func (l *Lexer) advanceRune() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.col++
	return r
}

// curPos returns the current position.
func (l *Lexer) curPos() span.Pos {
	return span.Pos{Line: l.line, Column: l.col}
}

// makeSpan returns a span from start to the current position.
func (l *Lexer) makeSpan(start span.Pos) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

// skipWhitespace skips spaces and tabs.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
}

// addError records a diagnostic error.
func (l *Lexer) addError(code string, s span.Span, msg string) {
	l.diags = append(l.diags, diag.Errorf(code, s, "%s", msg))
}

// ---- token reading ----

func (l *Lexer) nextToken() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Lexeme: "", Span: l.makeSpan(l.curPos())}
	}

	start := l.curPos()
	ch := l.peek()

	// Comment: # to end of line. Trailing comments on otherwise-valid lines
	// are discarded here; whole-line comments never reach the lexer.
	if ch == '#' {
		l.pos = len(l.source)
		return token.Token{Kind: token.EOF, Lexeme: "", Span: l.makeSpan(l.curPos())}
	}

	// String literal, single or double quoted
	if ch == '"' || ch == '\'' {
		return l.readString(start, ch)
	}

	// Number literal
	if isDigit(ch) {
		return l.readNumber(start)
	}

	// Identifier
	if isIdentStart(ch) {
		return l.readIdentifier(start)
	}

	// Non-ASCII operators (←, ≤, ≥, ×) and non-ASCII identifiers
	if ch >= 0x80 {
		return l.readRune(start)
	}

	// ASCII operators and delimiters
	return l.readOperator(start)
}

// readString reads a string literal delimited by quote.
func (l *Lexer) readString(start span.Pos, quote byte) token.Token {
	l.advance() // skip opening quote
	var value []byte

	for l.pos < len(l.source) {
		ch := l.peek()
		if ch == quote {
			l.advance() // skip closing quote
			return token.Token{
				Kind:   token.STRING,
				Lexeme: string(value),
				Span:   l.makeSpan(start),
			}
		}
		if ch == '\\' {
			l.advance()
			esc := l.peek()
			switch esc {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case '\\':
				value = append(value, '\\')
			case '\'', '"':
				value = append(value, esc)
			default:
				l.addError("E1002", l.makeSpan(start), fmt.Sprintf("unknown escape sequence: \\%c", esc))
				value = append(value, esc)
			}
			l.advance()
			continue
		}
		value = append(value, ch)
		l.advance()
	}

	l.addError("E1001", l.makeSpan(start), "unterminated string literal")
	return token.Token{Kind: token.STRING, Lexeme: string(value), Span: l.makeSpan(start)}
}

// readNumber reads an integer or float literal.
func (l *Lexer) readNumber(start span.Pos) token.Token {
	isFloat := false
	numStart := l.pos

	for l.pos < len(l.source) && isDigit(l.peek()) {
		l.advance()
	}

	if l.pos < len(l.source) && l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance() // skip '.'
		for l.pos < len(l.source) && isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.source[numStart:l.pos]
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier. Keywords are not distinguished here;
// the parser and evaluator match words contextually.
func (l *Lexer) readIdentifier(start span.Pos) token.Token {
	identStart := l.pos

	for l.pos < len(l.source) {
		ch := l.peek()
		if isIdentPart(ch) {
			l.advance()
			continue
		}
		if ch >= 0x80 {
			r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
			if unicode.IsLetter(r) {
				l.advanceRune()
				continue
			}
		}
		break
	}

	lexeme := l.source[identStart:l.pos]
	return token.Token{Kind: token.IDENT, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readRune handles tokens that start with a non-ASCII rune.
func (l *Lexer) readRune(start span.Pos) token.Token {
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])

	switch r {
	case '←':
		l.advanceRune()
		return token.Token{Kind: token.ARROW, Lexeme: "←", Span: l.makeSpan(start)}
	case '≤':
		l.advanceRune()
		return token.Token{Kind: token.LTE, Lexeme: "≤", Span: l.makeSpan(start)}
	case '≥':
		l.advanceRune()
		return token.Token{Kind: token.GTE, Lexeme: "≥", Span: l.makeSpan(start)}
	case '×':
		l.advanceRune()
		return token.Token{Kind: token.STAR, Lexeme: "×", Span: l.makeSpan(start)}
	}

	if unicode.IsLetter(r) {
		return l.readIdentifier(start)
	}

	l.advanceRune()
	l.addError("E1003", l.makeSpan(start), fmt.Sprintf("unexpected character: %q", r))
	return token.Token{Kind: token.ILLEGAL, Lexeme: string(r), Span: l.makeSpan(start)}
}

// readOperator reads an ASCII operator or delimiter token.
func (l *Lexer) readOperator(start span.Pos) token.Token {
	ch := l.advance()

	switch ch {
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Span: l.makeSpan(start)}
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Span: l.makeSpan(start)}
	case ',':
		return token.Token{Kind: token.COMMA, Lexeme: ",", Span: l.makeSpan(start)}
	case ':':
		return token.Token{Kind: token.COLON, Lexeme: ":", Span: l.makeSpan(start)}
	case ';':
		// Trailing semicolons are accepted and discarded.
		return l.nextToken()
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Span: l.makeSpan(start)}
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Span: l.makeSpan(start)}
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Span: l.makeSpan(start)}
	case '/':
		return token.Token{Kind: token.SLASH, Lexeme: "/", Span: l.makeSpan(start)}
	case '%':
		return token.Token{Kind: token.PERCENT, Lexeme: "%", Span: l.makeSpan(start)}
	case '!':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.NEQ, Lexeme: "!=", Span: l.makeSpan(start)}
		}
		return token.Token{Kind: token.BANG, Lexeme: "!", Span: l.makeSpan(start)}
	case '=':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.EQ, Lexeme: "==", Span: l.makeSpan(start)}
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Span: l.makeSpan(start)}
	case '<':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.LTE, Lexeme: "<=", Span: l.makeSpan(start)}
		}
		return token.Token{Kind: token.LT, Lexeme: "<", Span: l.makeSpan(start)}
	case '>':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.GTE, Lexeme: ">=", Span: l.makeSpan(start)}
		}
		return token.Token{Kind: token.GT, Lexeme: ">", Span: l.makeSpan(start)}
	case '&':
		if l.peek() == '&' {
			l.advance()
			return token.Token{Kind: token.AND, Lexeme: "&&", Span: l.makeSpan(start)}
		}
		l.addError("E1003", l.makeSpan(start), fmt.Sprintf("unexpected character: '%c', did you mean '&&'?", ch))
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Span: l.makeSpan(start)}
	case '|':
		if l.peek() == '|' {
			l.advance()
			return token.Token{Kind: token.OR, Lexeme: "||", Span: l.makeSpan(start)}
		}
		l.addError("E1003", l.makeSpan(start), fmt.Sprintf("unexpected character: '%c', did you mean '||'?", ch))
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Span: l.makeSpan(start)}
	default:
		l.addError("E1003", l.makeSpan(start), fmt.Sprintf("unexpected character: '%c'", ch))
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Span: l.makeSpan(start)}
	}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
