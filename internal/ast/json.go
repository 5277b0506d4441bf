package ast

// NodeToMap converts a statement node to a map suitable for JSON
// serialization. Every node has a "kind" field; expressions serialize as
// their source text.
func NodeToMap(stmt Stmt) map[string]interface{} {
	if stmt == nil {
		return nil
	}

	switch n := stmt.(type) {
	case *Assign:
		return m("Assign", n.Line, "target", n.Target, "value", n.Value.Text)
	case *Return:
		result := m("Return", n.Line)
		if n.Value != nil {
			result["value"] = n.Value.Text
		}
		return result
	case *If:
		branches := make([]interface{}, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = map[string]interface{}{
				"condition": b.Cond.Text,
				"body":      stmtSlice(b.Body),
			}
		}
		result := m("If", n.Line, "branches", branches)
		if n.Else != nil {
			result["else"] = stmtSlice(n.Else)
		}
		return result
	case *While:
		return m("While", n.Line, "condition", n.Cond.Text, "body", stmtSlice(n.Body))
	case *ForRange:
		return m("ForRange", n.Line,
			"var", n.Var,
			"from", n.From.Text,
			"to", n.To.Text,
			"body", stmtSlice(n.Body))
	case *ForIn:
		return m("ForIn", n.Line,
			"var", n.Var,
			"list", n.List.Text,
			"body", stmtSlice(n.Body))
	case *ExprStmt:
		return m("ExprStmt", n.SrcLine(), "expr", n.Expr.Text)
	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// AlgorithmToMap converts one algorithm definition for JSON serialization.
func AlgorithmToMap(a *Algorithm) map[string]interface{} {
	params := a.Params
	if params == nil {
		params = []string{}
	}
	return map[string]interface{}{
		"kind":   "Algorithm",
		"line":   a.Line,
		"name":   a.Name,
		"params": params,
		"body":   stmtSlice(a.Body),
	}
}

// ProgramToMap converts a whole program for JSON serialization.
func ProgramToMap(p *Program) map[string]interface{} {
	algos := make([]interface{}, len(p.Algorithms))
	for i, a := range p.Algorithms {
		algos[i] = AlgorithmToMap(a)
	}
	return map[string]interface{}{
		"kind":       "Program",
		"algorithms": algos,
	}
}

// ---- helpers ----

// m builds a map with kind, line, and extra key-value pairs.
func m(kind string, line int, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"line": line,
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func stmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}
