// Package parser implements syntax analysis for the pseudocode language.
//
// Parsing is line-oriented: the program parser splits a source file into
// `Algorithm:` blocks, and the statement parser turns the ordered body lines
// of one block into a statement tree, matching block openers (`if`, `while`,
// `for`) with their terminators (`endif`, `endwhile`, `endfor`).
package parser

import (
	"strings"

	"algo-lang/internal/ast"
	"algo-lang/internal/diag"
	"algo-lang/internal/lexer"
	"algo-lang/internal/span"
	"algo-lang/internal/token"
)

// Line is one source line of an algorithm body, with its original line
// number (after any `N:` / `Step N:` prefix has been stripped).
type Line struct {
	Text string
	Num  int
}

// Parser turns the body lines of one algorithm into a statement tree.
type Parser struct {
	lines []Line
	pos   int
	diags []diag.Diagnostic
}

// New creates a statement parser over the given body lines.
func New(lines []Line) *Parser {
	return &Parser{lines: lines}
}

// ParseBody parses all lines into a statement tree and returns diagnostics.
func (p *Parser) ParseBody() ([]ast.Stmt, []diag.Diagnostic) {
	stmts, _, _ := p.parseBlock(nil, "", 0)
	return stmts, p.diags
}

// ---- navigation helpers ----

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.lines)
}

func (p *Parser) error(code string, line int, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Errorf(code, span.At(line, 1), format, args...))
}

// nextTokens lexes the next non-blank, non-comment line. It returns the
// tokens, the line number, and false when input is exhausted.
func (p *Parser) nextTokens() ([]token.Token, int, bool) {
	for !p.atEnd() {
		ln := p.lines[p.pos]
		p.pos++

		trimmed := strings.TrimSpace(ln.Text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		toks, lexDiags := lexer.Scan(trimmed, ln.Num)
		p.diags = append(p.diags, lexDiags...)
		if diag.HasErrors(lexDiags) {
			continue // skip lines that failed to tokenize
		}
		if len(toks) == 0 {
			continue // line was only a trailing comment
		}
		return toks, ln.Num, true
	}
	return nil, 0, false
}

// ---- block parsing ----

// parseBlock collects statements until it reaches a line whose first word is
// in closers, or end of input. It returns the closing word ("" when input
// ran out) and the line number of the closer. opener/openerLine identify the
// enclosing block header for unterminated-block diagnostics.
func (p *Parser) parseBlock(closers map[string]bool, opener string, openerLine int) ([]ast.Stmt, string, int) {
	var stmts []ast.Stmt

	for {
		toks, lineNum, ok := p.nextTokens()
		if !ok {
			if opener != "" {
				p.error("E2003", openerLine, "missing '%s' for '%s' opened at line %d",
					closerFor(opener), opener, openerLine)
			}
			return stmts, "", 0
		}

		word := toks[0].Word()
		if closers[word] {
			if word == "endif" || word == "endwhile" || word == "endfor" {
				if len(toks) > 1 {
					p.error("E2004", lineNum, "unexpected tokens after '%s'", word)
				}
			}
			if word == "elseif" || word == "else" {
				// handled by the caller (parseIf)
				p.pos-- // give the line back so parseIf can re-read it
			}
			return stmts, word, lineNum
		}

		switch word {
		case "if":
			stmts = append(stmts, p.parseIf(toks, lineNum))
		case "while":
			stmts = append(stmts, p.parseWhile(toks, lineNum))
		case "for":
			if stmt := p.parseFor(toks, lineNum); stmt != nil {
				stmts = append(stmts, stmt)
			}
		case "let":
			if stmt := p.parseLet(toks, lineNum); stmt != nil {
				stmts = append(stmts, stmt)
			}
		case "return":
			stmts = append(stmts, p.parseReturn(toks, lineNum))
		case "elseif", "else", "endif", "endwhile", "endfor":
			p.error("E2002", lineNum, "'%s' without matching '%s'", word, openerFor(word))
		default:
			stmts = append(stmts, p.parseSimple(toks, lineNum))
		}
	}
}

// parseIf parses an if/elseif/else chain. toks is the `if ... then` header.
func (p *Parser) parseIf(toks []token.Token, lineNum int) *ast.If {
	stmt := &ast.If{StmtBase: ast.StmtBase{Line: lineNum}}

	cond, ok := p.headerExpr(toks[1:], "then", lineNum, "if")
	if !ok {
		cond = exprFrom(nil, lineNum)
	}

	closers := map[string]bool{"elseif": true, "else": true, "endif": true}
	body, closer, _ := p.parseBlock(closers, "if", lineNum)
	stmt.Branches = append(stmt.Branches, ast.IfBranch{Cond: cond, Body: body})

	for closer == "elseif" {
		branchToks, branchLine, _ := p.nextTokens() // the elseif line given back by parseBlock
		cond2, ok := p.headerExpr(branchToks[1:], "then", branchLine, "elseif")
		if !ok {
			cond2 = exprFrom(nil, branchLine)
		}
		body, closer, _ = p.parseBlock(closers, "if", lineNum)
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Cond: cond2, Body: body})
	}

	if closer == "else" {
		elseToks, elseLine, _ := p.nextTokens()
		if len(elseToks) > 1 {
			p.error("E2004", elseLine, "unexpected tokens after 'else'")
		}
		elseBody, _, _ := p.parseBlock(map[string]bool{"endif": true}, "if", lineNum)
		stmt.Else = elseBody
	}
	return stmt
}

// parseWhile parses `while cond do ... endwhile`.
func (p *Parser) parseWhile(toks []token.Token, lineNum int) *ast.While {
	stmt := &ast.While{StmtBase: ast.StmtBase{Line: lineNum}}

	cond, ok := p.headerExpr(toks[1:], "do", lineNum, "while")
	if !ok {
		cond = exprFrom(nil, lineNum)
	}
	stmt.Cond = cond

	body, _, _ := p.parseBlock(map[string]bool{"endwhile": true}, "while", lineNum)
	stmt.Body = body
	return stmt
}

// parseFor parses the two for-loop forms:
//
//	for v from a to b do ... endfor
//	for v in list do ... endfor
func (p *Parser) parseFor(toks []token.Token, lineNum int) ast.Stmt {
	if len(toks) < 4 || toks[1].Kind != token.IDENT {
		p.error("E2004", lineNum, "malformed 'for' header: %s", token.Text(toks))
		p.skipBlock("endfor", lineNum)
		return nil
	}
	varName := toks[1].Lexeme

	switch toks[2].Word() {
	case "from":
		rest := stripTrailingWord(toks[3:], "do")
		toIdx := indexOfWord(rest, "to")
		if toIdx <= 0 || toIdx == len(rest)-1 {
			p.error("E2004", lineNum, "malformed 'for' header: missing 'to' bound")
			p.skipBlock("endfor", lineNum)
			return nil
		}
		stmt := &ast.ForRange{
			StmtBase: ast.StmtBase{Line: lineNum},
			Var:      varName,
			From:     exprFrom(rest[:toIdx], lineNum),
			To:       exprFrom(rest[toIdx+1:], lineNum),
		}
		stmt.Body, _, _ = p.parseBlock(map[string]bool{"endfor": true}, "for", lineNum)
		return stmt

	case "in":
		rest := stripTrailingWord(toks[3:], "do")
		if len(rest) == 0 {
			p.error("E2004", lineNum, "malformed 'for' header: missing list expression")
			p.skipBlock("endfor", lineNum)
			return nil
		}
		stmt := &ast.ForIn{
			StmtBase: ast.StmtBase{Line: lineNum},
			Var:      varName,
			List:     exprFrom(rest, lineNum),
		}
		stmt.Body, _, _ = p.parseBlock(map[string]bool{"endfor": true}, "for", lineNum)
		return stmt

	default:
		p.error("E2004", lineNum, "malformed 'for' header: expected 'from' or 'in'")
		p.skipBlock("endfor", lineNum)
		return nil
	}
}

// parseLet parses `let x = expr`.
func (p *Parser) parseLet(toks []token.Token, lineNum int) ast.Stmt {
	if len(toks) < 4 || toks[1].Kind != token.IDENT || toks[2].Kind != token.ASSIGN {
		p.error("E2004", lineNum, "malformed 'let' statement: %s", token.Text(toks))
		return nil
	}
	return &ast.Assign{
		StmtBase: ast.StmtBase{Line: lineNum},
		Target:   toks[1].Lexeme,
		Value:    exprFrom(toks[3:], lineNum),
	}
}

// parseReturn parses `return [expr]`.
func (p *Parser) parseReturn(toks []token.Token, lineNum int) *ast.Return {
	stmt := &ast.Return{StmtBase: ast.StmtBase{Line: lineNum}}
	if len(toks) > 1 {
		e := exprFrom(toks[1:], lineNum)
		stmt.Value = &e
	}
	return stmt
}

// parseSimple parses an assignment (`x ← expr`, `x = expr`) or a bare
// expression statement.
func (p *Parser) parseSimple(toks []token.Token, lineNum int) ast.Stmt {
	if len(toks) >= 3 && toks[0].Kind == token.IDENT &&
		(toks[1].Kind == token.ARROW || toks[1].Kind == token.ASSIGN) {
		return &ast.Assign{
			StmtBase: ast.StmtBase{Line: lineNum},
			Target:   toks[0].Lexeme,
			Value:    exprFrom(toks[2:], lineNum),
		}
	}
	return &ast.ExprStmt{
		StmtBase: ast.StmtBase{Line: lineNum},
		Expr:     exprFrom(toks, lineNum),
	}
}

// skipBlock consumes lines up to and including the given terminator, used to
// recover after a malformed block header.
func (p *Parser) skipBlock(closer string, openerLine int) {
	depthWords := map[string]string{"if": "endif", "while": "endwhile", "for": "endfor"}
	var stack []string
	for {
		toks, _, ok := p.nextTokens()
		if !ok {
			return
		}
		word := toks[0].Word()
		if end, isOpener := depthWords[word]; isOpener {
			stack = append(stack, end)
			continue
		}
		if len(stack) > 0 && word == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			continue
		}
		if len(stack) == 0 && word == closer {
			return
		}
	}
}

// headerExpr extracts the expression tokens of a block header, stripping the
// optional trailing word (`then` / `do`). It reports a diagnostic when the
// expression is empty.
func (p *Parser) headerExpr(toks []token.Token, trailing string, lineNum int, kw string) (ast.Expr, bool) {
	rest := stripTrailingWord(toks, trailing)
	if len(rest) == 0 {
		p.error("E2004", lineNum, "malformed '%s' header: missing condition", kw)
		return ast.Expr{}, false
	}
	return exprFrom(rest, lineNum), true
}

// ---- token-slice helpers ----

func exprFrom(toks []token.Token, line int) ast.Expr {
	return ast.Expr{Tokens: toks, Text: token.Text(toks), Line: line}
}

func stripTrailingWord(toks []token.Token, word string) []token.Token {
	if n := len(toks); n > 0 && toks[n-1].IsWord(word) {
		return toks[:n-1]
	}
	return toks
}

// indexOfWord finds the first occurrence of word at paren depth 0.
func indexOfWord(toks []token.Token, word string) int {
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		if depth == 0 && t.IsWord(word) {
			return i
		}
	}
	return -1
}

func openerFor(closer string) string {
	switch closer {
	case "endif", "elseif", "else":
		return "if"
	case "endwhile":
		return "while"
	case "endfor":
		return "for"
	}
	return "?"
}

func closerFor(opener string) string {
	switch opener {
	case "if":
		return "endif"
	case "while":
		return "endwhile"
	case "for":
		return "endfor"
	}
	return "?"
}
