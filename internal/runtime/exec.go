package runtime

import (
	"algo-lang/internal/ast"
)

// execSignal tells the executor whether a statement finished normally or a
// return is unwinding toward the call boundary.
type execSignal int

const (
	sigNone execSignal = iota
	sigReturn
)

type execResult struct {
	sig execSignal
	val Value
}

var resultNone = execResult{sig: sigNone}

// Call invokes a user algorithm or a built-in by name. User definitions
// shadow built-ins.
func (e *Env) Call(name string, args []Value) (Value, error) {
	if algo, ok := e.defs[name]; ok {
		return e.callAlgorithm(algo, args)
	}
	if b, ok := builtins[name]; ok {
		if len(args) != b.arity {
			return nil, evalErrf("Argument mismatch for %s: expected %d, got %d",
				name, b.arity, len(args))
		}
		return b.fn(args)
	}
	return nil, evalErrf("Unknown function: %s", name)
}

func (e *Env) callAlgorithm(algo *ast.Algorithm, args []Value) (Value, error) {
	if len(args) != len(algo.Params) {
		return nil, evalErrf("Argument mismatch for %s: expected %d, got %d",
			algo.Name, len(algo.Params), len(args))
	}
	if e.depth >= e.MaxDepth {
		return nil, &RecursionLimitError{Limit: e.MaxDepth, Name: algo.Name}
	}
	e.depth++
	defer func() { e.depth-- }()

	// The call scope chains straight onto the global scope: a callee sees
	// top-level bindings but its own writes never escape the call.
	scope := NewScope(e.Global)
	for i, param := range algo.Params {
		scope.Set(param, args[i])
	}

	res, err := e.execBody(algo.Body, scope)
	if err != nil {
		return nil, err
	}
	if res.sig == sigReturn {
		return res.val, nil
	}
	return NoneVal{}, nil
}

func (e *Env) execBody(stmts []ast.Stmt, scope *Scope) (execResult, error) {
	for _, stmt := range stmts {
		res, err := e.execStmt(stmt, scope)
		if err != nil {
			return resultNone, err
		}
		if res.sig == sigReturn {
			return res, nil
		}
	}
	return resultNone, nil
}

func (e *Env) execStmt(stmt ast.Stmt, scope *Scope) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.Assign:
		v, err := e.Eval(s.Value, scope)
		if err != nil {
			return resultNone, err
		}
		scope.Set(s.Target, v)
		return resultNone, nil

	case *ast.Return:
		if s.Value == nil {
			return execResult{sig: sigReturn, val: NoneVal{}}, nil
		}
		v, err := e.Eval(*s.Value, scope)
		if err != nil {
			return resultNone, err
		}
		return execResult{sig: sigReturn, val: v}, nil

	case *ast.If:
		for _, br := range s.Branches {
			cond, err := e.Eval(br.Cond, scope)
			if err != nil {
				return resultNone, err
			}
			if Truthy(cond) {
				return e.execBody(br.Body, scope)
			}
		}
		return e.execBody(s.Else, scope)

	case *ast.While:
		for {
			cond, err := e.Eval(s.Cond, scope)
			if err != nil {
				return resultNone, err
			}
			if !Truthy(cond) {
				return resultNone, nil
			}
			res, err := e.execBody(s.Body, scope)
			if err != nil || res.sig == sigReturn {
				return res, err
			}
		}

	case *ast.ForRange:
		from, err := e.evalIntBound(s.From, scope)
		if err != nil {
			return resultNone, err
		}
		to, err := e.evalIntBound(s.To, scope)
		if err != nil {
			return resultNone, err
		}
		for i := from; i <= to; i++ {
			scope.Set(s.Var, IntVal(i))
			res, err := e.execBody(s.Body, scope)
			if err != nil || res.sig == sigReturn {
				return res, err
			}
		}
		return resultNone, nil

	case *ast.ForIn:
		lv, err := e.Eval(s.List, scope)
		if err != nil {
			return resultNone, err
		}
		list, ok := lv.(*ListVal)
		if !ok {
			return resultNone, withLine(
				evalErrf("for-in expects a List, got %s", lv.Type()), s.SrcLine())
		}
		for cell := list; cell != nil; cell = cell.Tail {
			scope.Set(s.Var, cell.Head)
			res, err := e.execBody(s.Body, scope)
			if err != nil || res.sig == sigReturn {
				return res, err
			}
		}
		return resultNone, nil

	case *ast.ExprStmt:
		if _, err := e.Eval(s.Expr, scope); err != nil {
			return resultNone, err
		}
		return resultNone, nil

	default:
		return resultNone, withLine(evalErrf("unknown statement kind"), stmt.SrcLine())
	}
}

func (e *Env) evalIntBound(expr ast.Expr, scope *Scope) (int64, error) {
	v, err := e.Eval(expr, scope)
	if err != nil {
		return 0, err
	}
	n, ok := v.(IntVal)
	if !ok {
		return 0, withLine(evalErrf("for bound must be an integer, got %s", v.Type()), expr.Line)
	}
	return int64(n), nil
}
