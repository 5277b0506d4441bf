// Command algo is the CLI entry point for the pseudocode interpreter.
//
// Usage:
//
//	algo tokens <file>                  Print tokens
//	algo tokens <file> --json           Print tokens as JSON
//	algo parse  <file>                  Print the statement tree as JSON
//	algo run    <file> [flags]          Load algorithms and run test cases
//	algo repl                           Start interactive REPL
//
// Run flags:
//
//	--in <file>         test-case file (line, JSON, or YAML format)
//	--out <file>        write results to a file instead of stdout
//	--max-depth <n>     recursion limit (default 1000)
package main

import (
	"fmt"
	"os"
	"strconv"

	"algo-lang/internal/diag"
	"algo-lang/internal/lexer"
	"algo-lang/internal/parser"
	"algo-lang/internal/runtime"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "tokens":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdTokens(source, hasFlag("--json"))
	case "parse":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdParse(source)
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		opts := runOptions{
			srcPath:  os.Args[2],
			inPath:   flagValue("--in"),
			outPath:  flagValue("--out"),
			maxDepth: runtime.DefaultMaxDepth,
		}
		if v := flagValue("--max-depth"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "error: invalid --max-depth value '%s'\n", v)
				os.Exit(1)
			}
			opts.maxDepth = n
		}
		cmdRun(opts)
	case "repl":
		cmdRepl()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  algo tokens <file> [--json]                    Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  algo parse  <file>                             Parse and print statement tree (JSON)")
	fmt.Fprintln(os.Stderr, "  algo run    <file> [--in cases] [--out file]   Load algorithms and run test cases")
	fmt.Fprintln(os.Stderr, "              [--max-depth n]")
	fmt.Fprintln(os.Stderr, "  algo repl                                      Start interactive REPL")
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(source)
}

func hasFlag(name string) bool {
	for _, arg := range os.Args[2:] {
		if arg == name {
			return true
		}
	}
	return false
}

func flagValue(name string) string {
	args := os.Args[2:]
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ---- tokens command ----

func cmdTokens(source string, jsonMode bool) {
	var allDiags []diag.Diagnostic
	lines := splitLines(source)

	if jsonMode {
		var out []interface{}
		for i, line := range lines {
			toks, diags := lexer.Scan(line, i+1)
			allDiags = append(allDiags, diags...)
			for _, t := range toks {
				out = append(out, map[string]interface{}{
					"kind":   t.Kind.String(),
					"lexeme": t.Lexeme,
					"line":   t.Span.Start.Line,
					"column": t.Span.Start.Column,
				})
			}
		}
		printJSON(map[string]interface{}{
			"tokens":      out,
			"diagnostics": diagsToSlice(allDiags),
		})
	} else {
		for i, line := range lines {
			toks, diags := lexer.Scan(line, i+1)
			allDiags = append(allDiags, diags...)
			for _, t := range toks {
				fmt.Printf("%-8s %-20s %d:%d\n", t.Kind, t.Lexeme, t.Span.Start.Line, t.Span.Start.Column)
			}
		}
		printDiagsText(allDiags)
	}
	if diag.HasErrors(allDiags) {
		os.Exit(1)
	}
}

// ---- parse command ----

func cmdParse(source string) {
	prog, diags := parser.ParseProgram(source)
	printDiagsText(diags)
	printJSON(astToJSON(prog))
	if diag.HasErrors(diags) {
		os.Exit(1)
	}
}
