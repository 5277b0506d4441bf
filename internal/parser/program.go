package parser

import (
	"regexp"
	"strings"

	"algo-lang/internal/ast"
	"algo-lang/internal/diag"
	"algo-lang/internal/span"
)

var (
	algoStartRe = regexp.MustCompile(`^\s*(?i:algorithm)\b`)
	headerRe    = regexp.MustCompile(`^\s*(?i:algorithm)\s*:?\s*([A-Za-z_]\w*)\s*\((.*)\)\s*$`)
	stepRe      = regexp.MustCompile(`^\s*(?i:step\s*)?\d+\s*:\s*`)
	skipLineRe  = regexp.MustCompile(`^\s*(?i:requires|returns)\b`)
)

// ParseProgram splits source into Algorithm blocks and parses each block
// body. Parsing never aborts early: every block is processed so all
// diagnostics surface in one pass.
func ParseProgram(source string) (*ast.Program, []diag.Diagnostic) {
	prog := &ast.Program{}
	var diags []diag.Diagnostic

	type block struct {
		header    string
		headerNum int
		body      []Line
	}
	var blocks []*block
	var cur *block

	for i, raw := range strings.Split(source, "\n") {
		lineNum := i + 1
		if algoStartRe.MatchString(raw) {
			cur = &block{header: raw, headerNum: lineNum}
			blocks = append(blocks, cur)
			continue
		}
		if cur == nil {
			trimmed := strings.TrimSpace(raw)
			if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				diags = append(diags, diag.Errorf("E2005", span.At(lineNum, 1),
					"statement outside of any Algorithm block"))
			}
			continue
		}
		cur.body = append(cur.body, Line{Text: raw, Num: lineNum})
	}

	seen := map[string]int{}
	for _, b := range blocks {
		m := headerRe.FindStringSubmatch(b.header)
		if m == nil {
			diags = append(diags, diag.Errorf("E2001", span.At(b.headerNum, 1),
				"invalid Algorithm header: %s", strings.TrimSpace(b.header)))
			continue
		}
		name := m[1]
		params := splitParams(m[2])

		if prev, dup := seen[name]; dup {
			diags = append(diags, diag.Warningf("E2006", span.At(b.headerNum, 1),
				"algorithm '%s' redefined (previous definition at line %d)", name, prev))
		}
		seen[name] = b.headerNum

		algo := &ast.Algorithm{Name: name, Params: params, Line: b.headerNum}
		p := New(prepareBody(b.body))
		var bodyDiags []diag.Diagnostic
		algo.Body, bodyDiags = p.ParseBody()
		diags = append(diags, bodyDiags...)

		prog.Algorithms = append(prog.Algorithms, algo)
	}
	return prog, diags
}

// prepareBody strips step-number prefixes and drops Requires/Returns
// annotation lines before statement parsing.
func prepareBody(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, ln := range lines {
		if skipLineRe.MatchString(ln.Text) {
			continue
		}
		out = append(out, Line{Text: stepRe.ReplaceAllString(ln.Text, ""), Num: ln.Num})
	}
	return out
}

func splitParams(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	params := make([]string, 0, len(parts))
	for _, p := range parts {
		params = append(params, strings.TrimSpace(p))
	}
	return params
}
