package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"algo-lang/internal/runtime"
)

// A Case is one directive to evaluate. Plain cases carry the directive text
// verbatim. Calls whose arguments were resolved at load time (the @file form
// and structured JSON/YAML entries) carry the call name and a per-argument
// list; structured assignment entries carry the variable and its value.
type Case struct {
	Text string
	Line int

	Call string
	Args []caseArg

	Var string
	Val runtime.Value
}

// caseArg is one argument of a resolved call: either a literal value loaded
// from an @file reference, or expression text evaluated at run time.
type caseArg struct {
	text     string
	val      runtime.Value
	resolved bool
}

// loadCases reads a test-case file in any of the three supported formats:
// YAML (by extension), whole-file JSON, or the line format.
func loadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLCases(data)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return parseJSONCases(data)
	}
	return parseLineCases(string(data), filepath.Dir(path))
}

// parseJSONCases accepts either a bare array of entries or a document with a
// top-level "cases" key. Entries are directive strings or structured
// {"algo","args"} / {"var","value"} objects.
func parseJSONCases(data []byte) ([]Case, error) {
	var entries []interface{}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("bad JSON case file: %w", err)
		}
	} else {
		var doc struct {
			Cases []interface{} `json:"cases"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("bad JSON case file: %w", err)
		}
		entries = doc.Cases
	}
	return structuredCases(entries)
}

func parseYAMLCases(data []byte) ([]Case, error) {
	var doc struct {
		Cases []interface{} `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bad YAML case file: %w", err)
	}
	return structuredCases(doc.Cases)
}

// structuredCases converts decoded JSON/YAML entries into cases. String
// arguments of an {"algo","args"} entry are evaluated as expressions at run
// time; every other argument converts to a literal value at load time.
func structuredCases(entries []interface{}) ([]Case, error) {
	cases := make([]Case, 0, len(entries))
	for i, entry := range entries {
		line := i + 1
		switch e := entry.(type) {
		case string:
			cases = append(cases, Case{Text: e, Line: line})

		case map[string]interface{}:
			if name, ok := e["algo"].(string); ok {
				c := Case{Text: name, Line: line, Call: name}
				args, _ := e["args"].([]interface{})
				for _, raw := range args {
					if s, ok := raw.(string); ok {
						c.Args = append(c.Args, caseArg{text: s})
						continue
					}
					v, err := jsonToValue(raw)
					if err != nil {
						return nil, fmt.Errorf("case %d: %v", line, err)
					}
					c.Args = append(c.Args, caseArg{val: v, resolved: true})
				}
				cases = append(cases, c)
				break
			}
			if name, ok := e["var"].(string); ok {
				v, err := jsonToValue(e["value"])
				if err != nil {
					return nil, fmt.Errorf("case %d: %v", line, err)
				}
				cases = append(cases, Case{Text: name + " = ...", Line: line, Var: name, Val: v})
				break
			}
			return nil, fmt.Errorf("case %d: object needs an \"algo\" or \"var\" key", line)

		default:
			return nil, fmt.Errorf("case %d: expected string or object, got %T", line, entry)
		}
	}
	return cases, nil
}

// parseLineCases reads the line format: one directive per line, `#` comment
// lines and blank lines skipped, and a directive with unbalanced parentheses
// or brackets continues onto following lines until balanced. Directory
// baseDir anchors relative @file references.
func parseLineCases(source, baseDir string) ([]Case, error) {
	var cases []Case
	lines := splitLines(source)

	for i := 0; i < len(lines); i++ {
		text := strings.TrimSpace(lines[i])
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		startLine := i + 1

		for bracketBalance(text) > 0 && i+1 < len(lines) {
			i++
			text += " " + strings.TrimSpace(lines[i])
		}
		if bracketBalance(text) != 0 {
			return nil, fmt.Errorf("line %d: unbalanced brackets in directive: %s", startLine, text)
		}

		c, err := buildCase(text, startLine, baseDir)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func bracketBalance(s string) int {
	depth := 0
	inStr := byte(0)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr != 0 {
			if ch == '\\' {
				i++
			} else if ch == inStr {
				inStr = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inStr = ch
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
	}
	return depth
}

// buildCase resolves @file references in colon-form directives; everything
// else passes through as plain directive text.
func buildCase(text string, line int, baseDir string) (Case, error) {
	name, rest, ok := splitColonForm(text)
	if !ok || !strings.Contains(rest, "@") {
		return Case{Text: text, Line: line}, nil
	}

	c := Case{Text: text, Line: line, Call: name}
	for _, raw := range splitTopLevelCommas(rest) {
		raw = strings.TrimSpace(raw)
		if !strings.HasPrefix(raw, "@") {
			c.Args = append(c.Args, caseArg{text: raw})
			continue
		}
		v, err := loadValueFile(filepath.Join(baseDir, raw[1:]))
		if err != nil {
			return Case{}, fmt.Errorf("line %d: %v", line, err)
		}
		c.Args = append(c.Args, caseArg{val: v, resolved: true})
	}
	return c, nil
}

// splitColonForm matches `Name: args`, rejecting lines whose colon belongs
// to something else (no identifier before it, or an = ahead of it).
func splitColonForm(text string) (name, rest string, ok bool) {
	idx := strings.IndexByte(text, ':')
	if idx <= 0 {
		return "", "", false
	}
	name = strings.TrimSpace(text[:idx])
	if !isIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(text[idx+1:]), true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if ch == '_' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
			continue
		}
		if i > 0 && ch >= '0' && ch <= '9' {
			continue
		}
		return false
	}
	return true
}

func splitTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	inStr := byte(0)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr != 0 {
			if ch == '\\' {
				i++
			} else if ch == inStr {
				inStr = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inStr = ch
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}

// loadValueFile reads a JSON value file referenced as @file and converts it
// to a runtime value.
func loadValueFile(path string) (runtime.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bad JSON in %s: %v", path, err)
	}
	return jsonToValue(raw)
}

// jsonToValue converts decoded JSON into a runtime value: arrays become
// lists, {"_type":"node"|"leaf"} objects become trees.
func jsonToValue(raw interface{}) (runtime.Value, error) {
	switch x := raw.(type) {
	case nil:
		return runtime.NoneVal{}, nil
	case bool:
		return runtime.BoolVal(x), nil
	case string:
		return runtime.StrVal(x), nil
	case int:
		return runtime.IntVal(x), nil
	case int64:
		return runtime.IntVal(x), nil
	case float64:
		if x == float64(int64(x)) {
			return runtime.IntVal(int64(x)), nil
		}
		return runtime.FloatVal(x), nil
	case []interface{}:
		var list *runtime.ListVal
		for i := len(x) - 1; i >= 0; i-- {
			elem, err := jsonToValue(x[i])
			if err != nil {
				return nil, err
			}
			list = &runtime.ListVal{Head: elem, Tail: list}
		}
		return list, nil
	case map[string]interface{}:
		switch x["_type"] {
		case "leaf":
			return (*runtime.TreeVal)(nil), nil
		case "node":
			left, err := jsonToValue(x["left"])
			if err != nil {
				return nil, err
			}
			val, err := jsonToValue(x["value"])
			if err != nil {
				return nil, err
			}
			right, err := jsonToValue(x["right"])
			if err != nil {
				return nil, err
			}
			lt, ok := left.(*runtime.TreeVal)
			if !ok {
				return nil, fmt.Errorf("tree node 'left' must be a tree")
			}
			rt, ok := right.(*runtime.TreeVal)
			if !ok {
				return nil, fmt.Errorf("tree node 'right' must be a tree")
			}
			return &runtime.TreeVal{Left: lt, Val: val, Right: rt}, nil
		default:
			return nil, fmt.Errorf("unknown JSON object shape (want \"_type\": \"node\" or \"leaf\")")
		}
	default:
		return nil, fmt.Errorf("unsupported JSON value %v", raw)
	}
}
