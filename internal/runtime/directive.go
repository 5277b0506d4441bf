package runtime

import (
	"fmt"
	"strings"

	"algo-lang/internal/ast"
	"algo-lang/internal/diag"
	"algo-lang/internal/lexer"
	"algo-lang/internal/token"
)

// EvalDirective evaluates one directive line against the environment.
// Directives come in three forms:
//
//	Name(arg, ...)   expression form, most often a call
//	Name: arg, ...   shorthand call form
//	ident = expr     top-level assignment into the global scope
//
// Assignments persist: a later directive in the same run observes the
// binding.
func (e *Env) EvalDirective(text string) (Value, error) {
	expr, err := parseExprString(text)
	if err != nil {
		return nil, err
	}
	toks := expr.Tokens
	if len(toks) == 0 {
		return nil, evalErrf("empty directive")
	}

	if len(toks) >= 2 && toks[0].Kind == token.IDENT {
		switch toks[1].Kind {
		case token.ASSIGN, token.ARROW:
			v, err := e.Eval(ast.Expr{Tokens: toks[2:], Text: token.Text(toks[2:])}, e.Global)
			if err != nil {
				return nil, err
			}
			e.Global.Set(toks[0].Lexeme, v)
			return v, nil

		case token.COLON:
			return e.callColonForm(toks[0].Lexeme, toks[2:])
		}
	}

	return e.Eval(expr, e.Global)
}

// callColonForm evaluates the comma-separated argument tokens of a
// `Name: arg, arg` directive and dispatches the call.
func (e *Env) callColonForm(name string, argToks []token.Token) (Value, error) {
	var args []Value
	for _, group := range splitTopLevel(argToks, token.COMMA) {
		v, err := e.Eval(ast.Expr{Tokens: group, Text: token.Text(group)}, e.Global)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return e.Call(name, args)
}

// splitTopLevel splits a token slice at every separator that sits outside
// parentheses. An empty input yields no groups.
func splitTopLevel(toks []token.Token, sep token.Kind) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var groups [][]token.Token
	depth, start := 0, 0
	for i, t := range toks {
		switch t.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case sep:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(groups, toks[start:])
}

// parseExprString tokenizes one expression or directive line.
func parseExprString(src string) (ast.Expr, error) {
	toks, diags := lexer.Scan(src, 0)
	if diag.HasErrors(diags) {
		msgs := make([]string, 0, len(diags))
		for _, d := range diags {
			if d.Severity == diag.Error {
				msgs = append(msgs, d.Message)
			}
		}
		return ast.Expr{}, fmt.Errorf("LexError: %s", strings.Join(msgs, "; "))
	}
	return ast.Expr{Tokens: toks, Text: token.Text(toks)}, nil
}
