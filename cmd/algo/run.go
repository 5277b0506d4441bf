package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"algo-lang/internal/diag"
	"algo-lang/internal/parser"
	"algo-lang/internal/runtime"
	"algo-lang/internal/treeview"
)

type runOptions struct {
	srcPath  string
	inPath   string
	outPath  string
	maxDepth int
}

func cmdRun(opts runOptions) {
	source := readFile(opts.srcPath)
	prog, diags := parser.ParseProgram(source)
	printDiagsText(diags)
	if diag.HasErrors(diags) {
		os.Exit(1)
	}

	env := runtime.NewEnv()
	env.MaxDepth = opts.maxDepth
	env.DefineAll(prog)

	if opts.inPath == "" {
		names := env.Names()
		sort.Strings(names)
		fmt.Printf("loaded %d algorithm(s): %s\n", len(names), strings.Join(names, ", "))
		return
	}

	cases, err := loadCases(opts.inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write %s: %v\n", opts.outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	runCases(env, cases, out)
}

// runCases evaluates every case in order against the shared environment.
// A failing case writes an error line and the run continues; tree-valued
// results are additionally drawn in a visualization appendix.
func runCases(env *runtime.Env, cases []Case, out io.Writer) {
	type treeResult struct {
		text string
		tree *runtime.TreeVal
	}
	var trees []treeResult

	for _, c := range cases {
		v, err := executeCase(env, c)
		if err != nil {
			fmt.Fprintln(out, encodeError(err))
			continue
		}
		fmt.Fprintln(out, encodeResult(v))
		if t, ok := v.(*runtime.TreeVal); ok && t != nil {
			trees = append(trees, treeResult{text: c.Text, tree: t})
		}
	}

	if len(trees) > 0 {
		fmt.Fprintln(out, "--- Tree Visualization ---")
		for _, tr := range trees {
			fmt.Fprintf(out, "%s\n%s\n", tr.text, treeview.RenderString(tr.tree))
		}
	}
}

// executeCase dispatches one case: structured assignments write the global
// scope directly, calls with load-time resolved arguments go straight to
// Call, everything else through the directive evaluator.
func executeCase(env *runtime.Env, c Case) (runtime.Value, error) {
	if c.Var != "" {
		env.Global.Set(c.Var, c.Val)
		return c.Val, nil
	}
	if c.Call == "" {
		return env.EvalDirective(c.Text)
	}
	args := make([]runtime.Value, len(c.Args))
	for i, a := range c.Args {
		if a.resolved {
			args[i] = a.val
			continue
		}
		v, err := env.EvalString(a.text, env.Global)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return env.Call(c.Call, args)
}
