package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"algo-lang/internal/runtime"
)

func TestParseLineCases(t *testing.T) {
	cases, err := parseLineCases(`# setup
L = cons(1, Nil)

Sum(10)
Reverse: L
`, ".")
	if err != nil {
		t.Fatalf("parseLineCases failed: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	if cases[0].Text != "L = cons(1, Nil)" {
		t.Errorf("bad first case: %q", cases[0].Text)
	}
	if cases[1].Line != 4 {
		t.Errorf("expected line 4, got %d", cases[1].Line)
	}
}

func TestBracketContinuation(t *testing.T) {
	cases, err := parseLineCases(`T = node(
  node(leaf, 1, leaf),
  2,
  node(leaf, 3, leaf))
size(T)
`, ".")
	if err != nil {
		t.Fatalf("parseLineCases failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d: %#v", len(cases), cases)
	}
	if cases[0].Line != 1 {
		t.Errorf("continued directive should keep its start line, got %d", cases[0].Line)
	}
}

func TestUnbalancedBrackets(t *testing.T) {
	_, err := parseLineCases("Sum(10", ".")
	if err == nil {
		t.Fatal("expected an unbalanced-brackets error")
	}
}

func TestBracketBalanceIgnoresStrings(t *testing.T) {
	if bracketBalance(`Greet("(unclosed in string")`) != 0 {
		t.Error("parens inside string literals should not count")
	}
}

func TestParseJSONCases(t *testing.T) {
	cases, err := parseJSONCases([]byte(`{"cases": ["Sum(1)", "Sum(2)"]}`))
	if err != nil {
		t.Fatalf("parseJSONCases failed: %v", err)
	}
	if len(cases) != 2 || cases[1].Text != "Sum(2)" {
		t.Errorf("bad cases: %#v", cases)
	}
}

func TestParseYAMLCases(t *testing.T) {
	cases, err := parseYAMLCases([]byte("cases:\n  - Sum(1)\n  - \"T = node(leaf, 5, leaf)\"\n"))
	if err != nil {
		t.Fatalf("parseYAMLCases failed: %v", err)
	}
	if len(cases) != 2 || cases[0].Text != "Sum(1)" {
		t.Errorf("bad cases: %#v", cases)
	}
}

func TestStructuredJSONCases(t *testing.T) {
	cases, err := parseJSONCases([]byte(`[
		{"var": "L", "value": [1, 2]},
		{"algo": "value", "args": ["L"]},
		{"algo": "cons", "args": [9, [8]]}
	]`))
	if err != nil {
		t.Fatalf("parseJSONCases failed: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}

	env := runtime.NewEnv()
	v, err := executeCase(env, cases[0])
	if err != nil {
		t.Fatal(err)
	}
	if l, ok := v.(*runtime.ListVal); !ok || l.Len() != 2 {
		t.Fatalf("expected 2-element list, got %s", v)
	}
	// string args resolve as expressions against the global scope
	v, err = executeCase(env, cases[1])
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := v.(runtime.IntVal); !ok || n != 1 {
		t.Errorf("expected 1, got %s", v)
	}
	v, err = executeCase(env, cases[2])
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "[9, 8]" {
		t.Errorf("expected [9, 8], got %s", v)
	}
}

func TestStructuredYAMLCases(t *testing.T) {
	cases, err := parseYAMLCases([]byte(`cases:
  - var: n
    value: 4
  - algo: Sum
    args: ["n"]
`))
	if err != nil {
		t.Fatalf("parseYAMLCases failed: %v", err)
	}
	if len(cases) != 2 || cases[0].Var != "n" || cases[1].Call != "Sum" {
		t.Fatalf("bad cases: %#v", cases)
	}
	if _, ok := cases[0].Val.(runtime.IntVal); !ok {
		t.Errorf("YAML integer should decode as Int, got %T", cases[0].Val)
	}
}

func TestAtFileReference(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "list.json"), []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cases, err := parseLineCases("value: @list.json", dir)
	if err != nil {
		t.Fatalf("parseLineCases failed: %v", err)
	}
	if len(cases) != 1 || cases[0].Call != "value" {
		t.Fatalf("expected one resolved call, got %#v", cases)
	}

	env := runtime.NewEnv()
	v, err := executeCase(env, cases[0])
	if err != nil {
		t.Fatalf("executeCase failed: %v", err)
	}
	if n, ok := v.(runtime.IntVal); !ok || n != 1 {
		t.Errorf("expected 1, got %s", v)
	}
}

func TestJSONToValue(t *testing.T) {
	v, err := jsonToValue([]interface{}{float64(1), "x", true, nil})
	if err != nil {
		t.Fatalf("jsonToValue failed: %v", err)
	}
	l, ok := v.(*runtime.ListVal)
	if !ok || l.Len() != 4 {
		t.Fatalf("expected 4-element list, got %s", v)
	}
	if _, ok := l.Head.(runtime.IntVal); !ok {
		t.Errorf("integral float should decode as Int, got %s", l.Head.Type())
	}
}

func TestJSONToValueTree(t *testing.T) {
	raw := map[string]interface{}{
		"_type": "node",
		"left":  map[string]interface{}{"_type": "leaf"},
		"value": float64(5),
		"right": map[string]interface{}{"_type": "leaf"},
	}
	v, err := jsonToValue(raw)
	if err != nil {
		t.Fatalf("jsonToValue failed: %v", err)
	}
	tree, ok := v.(*runtime.TreeVal)
	if !ok || tree.Size() != 1 {
		t.Fatalf("expected single-node tree, got %s", v)
	}
}

func TestJSONToValueBadShape(t *testing.T) {
	if _, err := jsonToValue(map[string]interface{}{"x": 1}); err == nil {
		t.Error("expected an error for an unknown object shape")
	}
}

func TestValueToJSONRoundTrip(t *testing.T) {
	env := runtime.NewEnv()
	v, err := env.EvalDirective("node(node(leaf, 1, leaf), 2, leaf)")
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(valueToJSON(v))
	if err != nil {
		t.Fatal(err)
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	back, err := jsonToValue(raw)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if !runtime.Equal(v, back) {
		t.Errorf("round trip changed the value: %v vs %v", v, back)
	}
}

func TestEncodeResult(t *testing.T) {
	env := runtime.NewEnv()
	v, err := env.EvalDirective("cons(1, cons(2, Nil))")
	if err != nil {
		t.Fatal(err)
	}
	if got := encodeResult(v); got != "[1,2]" {
		t.Errorf("expected [1,2], got %s", got)
	}
	if got := encodeResult(runtime.NoneVal{}); got != "null" {
		t.Errorf("expected null, got %s", got)
	}
}
