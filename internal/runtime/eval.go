package runtime

import (
	"math"
	"strconv"

	"algo-lang/internal/ast"
	"algo-lang/internal/token"
)

// evaluator walks one expression's token slice with precedence climbing,
// producing a Value against the live scope chain.
//
// The dead flag implements short-circuit `and`/`or`: a short-circuited
// operand is still parsed (so syntax errors surface) but lookups, calls and
// arithmetic are skipped.
type evaluator struct {
	env   *Env
	scope *Scope
	toks  []token.Token
	pos   int
	dead  bool
}

// Eval evaluates an expression in the given scope.
func (e *Env) Eval(expr ast.Expr, scope *Scope) (Value, error) {
	if len(expr.Tokens) == 0 {
		return nil, withLine(evalErrf("empty expression"), expr.Line)
	}
	ev := &evaluator{env: e, scope: scope, toks: expr.Tokens}
	v, err := ev.parseOr()
	if err != nil {
		return nil, withLine(err, expr.Line)
	}
	if !ev.atEnd() {
		return nil, withLine(evalErrf("unexpected token '%s' in expression", ev.cur().Lexeme), expr.Line)
	}
	return v, nil
}

// EvalString tokenizes and evaluates a standalone expression string, used by
// directives and the REPL.
func (e *Env) EvalString(src string, scope *Scope) (Value, error) {
	expr, err := parseExprString(src)
	if err != nil {
		return nil, err
	}
	return e.Eval(expr, scope)
}

// ---- cursor ----

func (ev *evaluator) atEnd() bool { return ev.pos >= len(ev.toks) }

func (ev *evaluator) cur() token.Token {
	if ev.atEnd() {
		return token.Token{Kind: token.EOF}
	}
	return ev.toks[ev.pos]
}

func (ev *evaluator) advance() token.Token {
	t := ev.cur()
	ev.pos++
	return t
}

func (ev *evaluator) matchKind(k token.Kind) bool {
	if ev.cur().Kind == k {
		ev.pos++
		return true
	}
	return false
}

func (ev *evaluator) matchWordOrKind(word string, k token.Kind) bool {
	t := ev.cur()
	if t.Kind == k || t.IsWord(word) {
		ev.pos++
		return true
	}
	return false
}

// ---- precedence levels, lowest first ----

func (ev *evaluator) parseOr() (Value, error) {
	left, err := ev.parseAnd()
	if err != nil {
		return nil, err
	}
	for ev.matchWordOrKind("or", token.OR) {
		leftTrue := !ev.dead && Truthy(left)
		wasDead := ev.dead
		if leftTrue {
			ev.dead = true
		}
		right, err := ev.parseAnd()
		ev.dead = wasDead
		if err != nil {
			return nil, err
		}
		if ev.dead {
			left = NoneVal{}
		} else {
			left = BoolVal(leftTrue || Truthy(right))
		}
	}
	return left, nil
}

func (ev *evaluator) parseAnd() (Value, error) {
	left, err := ev.parseNot()
	if err != nil {
		return nil, err
	}
	for ev.matchWordOrKind("and", token.AND) {
		leftFalse := !ev.dead && !Truthy(left)
		wasDead := ev.dead
		if leftFalse {
			ev.dead = true
		}
		right, err := ev.parseNot()
		ev.dead = wasDead
		if err != nil {
			return nil, err
		}
		if ev.dead {
			left = NoneVal{}
		} else {
			left = BoolVal(!leftFalse && Truthy(right))
		}
	}
	return left, nil
}

func (ev *evaluator) parseNot() (Value, error) {
	if ev.matchWordOrKind("not", token.BANG) {
		v, err := ev.parseNot()
		if err != nil {
			return nil, err
		}
		if ev.dead {
			return NoneVal{}, nil
		}
		return BoolVal(!Truthy(v)), nil
	}
	return ev.parseComparison()
}

func (ev *evaluator) parseComparison() (Value, error) {
	left, err := ev.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op := ev.cur().Kind
		switch op {
		case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		default:
			return left, nil
		}
		ev.pos++
		right, err := ev.parseAdditive()
		if err != nil {
			return nil, err
		}
		left, err = ev.compare(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (ev *evaluator) parseAdditive() (Value, error) {
	left, err := ev.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op := ev.cur().Kind
		if op != token.PLUS && op != token.MINUS {
			return left, nil
		}
		ev.pos++
		right, err := ev.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left, err = ev.arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (ev *evaluator) parseMultiplicative() (Value, error) {
	left, err := ev.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := ev.cur().Kind
		isMod := op == token.PERCENT || ev.cur().IsWord("mod")
		if op != token.STAR && op != token.SLASH && !isMod {
			return left, nil
		}
		if isMod {
			op = token.PERCENT
		}
		ev.pos++
		right, err := ev.parseUnary()
		if err != nil {
			return nil, err
		}
		left, err = ev.arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (ev *evaluator) parseUnary() (Value, error) {
	if ev.matchKind(token.MINUS) {
		v, err := ev.parseUnary()
		if err != nil {
			return nil, err
		}
		if ev.dead {
			return NoneVal{}, nil
		}
		switch x := v.(type) {
		case IntVal:
			return -x, nil
		case FloatVal:
			return -x, nil
		default:
			return nil, evalErrf("unary '-' expects a number, got %s", v.Type())
		}
	}
	return ev.parsePrimary()
}

func (ev *evaluator) parsePrimary() (Value, error) {
	t := ev.advance()
	switch t.Kind {
	case token.INT:
		n, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, evalErrf("integer literal out of range: %s", t.Lexeme)
		}
		return IntVal(n), nil

	case token.FLOAT:
		f, err := strconv.ParseFloat(t.Lexeme, 64)
		if err != nil {
			return nil, evalErrf("bad float literal: %s", t.Lexeme)
		}
		return FloatVal(f), nil

	case token.STRING:
		return StrVal(t.Lexeme), nil

	case token.LPAREN:
		v, err := ev.parseOr()
		if err != nil {
			return nil, err
		}
		if !ev.matchKind(token.RPAREN) {
			return nil, evalErrf("missing ')' in expression")
		}
		return v, nil

	case token.IDENT:
		if ev.cur().Kind == token.LPAREN {
			ev.pos++
			return ev.parseCall(t.Lexeme)
		}
		return ev.lookupIdent(t)

	case token.EOF:
		return nil, evalErrf("unexpected end of expression")

	default:
		return nil, evalErrf("unexpected token '%s' in expression", t.Lexeme)
	}
}

// parseCall parses the argument list after `name(` and dispatches the call.
func (ev *evaluator) parseCall(name string) (Value, error) {
	var args []Value
	if !ev.matchKind(token.RPAREN) {
		for {
			arg, err := ev.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if ev.matchKind(token.COMMA) {
				continue
			}
			if ev.matchKind(token.RPAREN) {
				break
			}
			return nil, evalErrf("missing ')' in call to '%s'", name)
		}
	}
	if ev.dead {
		return NoneVal{}, nil
	}
	return ev.env.Call(name, args)
}

func (ev *evaluator) lookupIdent(t token.Token) (Value, error) {
	if ev.dead {
		return NoneVal{}, nil
	}
	switch t.Word() {
	case "true":
		return BoolVal(true), nil
	case "false":
		return BoolVal(false), nil
	}
	if v, ok := ev.scope.Lookup(t.Lexeme); ok {
		return v, nil
	}
	if v, ok := constants[t.Lexeme]; ok {
		return v, nil
	}
	return nil, evalErrf("Undefined variable: %s", t.Lexeme)
}

// ---- operator semantics ----

func (ev *evaluator) compare(op token.Kind, a, b Value) (Value, error) {
	if ev.dead {
		return NoneVal{}, nil
	}
	switch op {
	case token.EQ:
		return BoolVal(Equal(a, b)), nil
	case token.NEQ:
		return BoolVal(!Equal(a, b)), nil
	}

	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			return orderResult(op, an < bn, an == bn), nil
		}
	}
	if as, ok := a.(StrVal); ok {
		if bs, ok := b.(StrVal); ok {
			return orderResult(op, as < bs, as == bs), nil
		}
	}
	return nil, evalErrf("cannot compare %s and %s", a.Type(), b.Type())
}

func orderResult(op token.Kind, less, equal bool) BoolVal {
	switch op {
	case token.LT:
		return BoolVal(less)
	case token.LTE:
		return BoolVal(less || equal)
	case token.GT:
		return BoolVal(!less && !equal)
	default: // GTE
		return BoolVal(!less)
	}
}

func (ev *evaluator) arith(op token.Kind, a, b Value) (Value, error) {
	if ev.dead {
		return NoneVal{}, nil
	}

	if op == token.PLUS {
		if as, ok := a.(StrVal); ok {
			if bs, ok := b.(StrVal); ok {
				return as + bs, nil
			}
		}
		if al, ok := a.(*ListVal); ok {
			if bl, ok := b.(*ListVal); ok {
				return mergeLists(al, bl), nil
			}
		}
	}

	ai, aIsInt := a.(IntVal)
	bi, bIsInt := b.(IntVal)
	if aIsInt && bIsInt {
		return intArith(op, int64(ai), int64(bi))
	}

	an, aok := numeric(a)
	bn, bok := numeric(b)
	if !aok || !bok {
		return nil, evalErrf("unsupported operand types for '%s': %s and %s",
			opSymbol(op), a.Type(), b.Type())
	}
	return floatArith(op, an, bn)
}

func intArith(op token.Kind, a, b int64) (Value, error) {
	switch op {
	case token.PLUS:
		return IntVal(a + b), nil
	case token.MINUS:
		return IntVal(a - b), nil
	case token.STAR:
		return IntVal(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, evalErrf("division by zero")
		}
		if a%b == 0 {
			return IntVal(a / b), nil
		}
		return FloatVal(float64(a) / float64(b)), nil
	case token.PERCENT:
		if b == 0 {
			return nil, evalErrf("division by zero")
		}
		return IntVal(a % b), nil
	}
	return nil, evalErrf("unknown operator '%s'", opSymbol(op))
}

func floatArith(op token.Kind, a, b float64) (Value, error) {
	switch op {
	case token.PLUS:
		return FloatVal(a + b), nil
	case token.MINUS:
		return FloatVal(a - b), nil
	case token.STAR:
		return FloatVal(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, evalErrf("division by zero")
		}
		return FloatVal(a / b), nil
	case token.PERCENT:
		if b == 0 {
			return nil, evalErrf("division by zero")
		}
		return FloatVal(math.Mod(a, b)), nil
	}
	return nil, evalErrf("unknown operator '%s'", opSymbol(op))
}

func opSymbol(op token.Kind) string {
	switch op {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	}
	return "?"
}
