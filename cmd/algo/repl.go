package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"algo-lang/internal/diag"
	"algo-lang/internal/parser"
	"algo-lang/internal/runtime"
	"algo-lang/internal/treeview"
)

// ---- ANSI colors ----

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// ---- repl command ----

func cmdRepl() {
	// Determine history file path (~/.algo_history)
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".algo_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "algo> " + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// Welcome banner
	fmt.Fprintf(rl.Stdout(), "%s%salgo REPL%s %s(type 'exit' or Ctrl+D to quit, ':load <file>' to load algorithms)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	env := runtime.NewEnv()
	var block strings.Builder
	inBlock := false

	for {
		// Algorithm definitions span lines until a blank line closes them
		if inBlock {
			rl.SetPrompt(colorGray + "...   " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "algo> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if inBlock {
					// Cancel multi-line input
					block.Reset()
					inBlock = false
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		trimmed := strings.TrimSpace(line)

		if inBlock {
			if trimmed == "" {
				defineBlock(rl.Stderr(), rl.Stdout(), env, block.String())
				block.Reset()
				inBlock = false
			} else {
				block.WriteString(line)
				block.WriteString("\n")
			}
			continue
		}

		switch {
		case trimmed == "":
			continue
		case trimmed == "exit":
			return
		case strings.HasPrefix(trimmed, ":load "):
			path := strings.TrimSpace(strings.TrimPrefix(trimmed, ":load "))
			source, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(rl.Stderr(), "%serror: %v%s\n", colorRed, err, colorReset)
				continue
			}
			defineBlock(rl.Stderr(), rl.Stdout(), env, string(source))
			continue
		case strings.HasPrefix(strings.ToLower(trimmed), "algorithm"):
			block.WriteString(line)
			block.WriteString("\n")
			inBlock = true
			continue
		}

		// Everything else is a directive
		v, err := env.EvalDirective(trimmed)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "%serror: %s%s\n", colorRed, err, colorReset)
			continue
		}
		fmt.Fprintf(rl.Stdout(), "%s\n", v.String())
		if t, ok := v.(*runtime.TreeVal); ok && t != nil {
			fmt.Fprintln(rl.Stdout(), treeview.RenderString(t))
		}
	}
}

// defineBlock parses accumulated Algorithm source and registers the
// definitions, keeping the session alive on parse errors.
func defineBlock(errw, outw io.Writer, env *runtime.Env, source string) {
	prog, diags := parser.ParseProgram(source)
	printDiagsColored(errw, diags)
	if diag.HasErrors(diags) {
		return
	}
	env.DefineAll(prog)
	for _, algo := range prog.Algorithms {
		fmt.Fprintf(outw, "%sdefined %s(%s)%s\n",
			colorGray, algo.Name, strings.Join(algo.Params, ", "), colorReset)
	}
}

// printDiagsColored prints diagnostics with red color for REPL display.
func printDiagsColored(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s%s%s\n", colorRed, d.String(), colorReset)
	}
}
