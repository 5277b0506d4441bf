package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"algo-lang/internal/ast"
	"algo-lang/internal/diag"
	"algo-lang/internal/runtime"
)

// ---- output helpers ----

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
}

func printDiagsText(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

func astToJSON(prog *ast.Program) map[string]interface{} {
	return ast.ProgramToMap(prog)
}

func splitLines(source string) []string {
	return strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
}

// ---- result serialization ----

// valueToJSON converts a runtime value into its wire shape: lists become
// arrays, trees become {"_type":"node",...} / {"_type":"leaf"} objects, unit
// becomes null.
func valueToJSON(v runtime.Value) interface{} {
	switch x := v.(type) {
	case runtime.IntVal:
		return int64(x)
	case runtime.FloatVal:
		return float64(x)
	case runtime.StrVal:
		return string(x)
	case runtime.BoolVal:
		return bool(x)
	case runtime.NoneVal:
		return nil
	case *runtime.ListVal:
		arr := []interface{}{}
		for cell := x; cell != nil; cell = cell.Tail {
			arr = append(arr, valueToJSON(cell.Head))
		}
		return arr
	case *runtime.TreeVal:
		if x == nil {
			return map[string]interface{}{"_type": "leaf"}
		}
		return map[string]interface{}{
			"_type": "node",
			"left":  valueToJSON(x.Left),
			"value": valueToJSON(x.Val),
			"right": valueToJSON(x.Right),
		}
	default:
		return v.String()
	}
}

// encodeResult renders one directive result as a single compact JSON line.
func encodeResult(v runtime.Value) string {
	data, err := json.Marshal(valueToJSON(v))
	if err != nil {
		return fmt.Sprintf("%q", v.String())
	}
	return string(data)
}

func encodeError(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}
