package runtime

import (
	"algo-lang/internal/ast"
)

// DefaultMaxDepth bounds recursive algorithm calls before the interpreter
// reports a RecursionLimitError instead of overflowing the native stack.
const DefaultMaxDepth = 1000

// Env holds everything shared across directive evaluations: the registered
// algorithm definitions and the global scope they close over.
type Env struct {
	defs     map[string]*ast.Algorithm
	Global   *Scope
	MaxDepth int

	depth int
}

// NewEnv creates an empty environment with the default recursion limit.
func NewEnv() *Env {
	return &Env{
		defs:     make(map[string]*ast.Algorithm),
		Global:   NewScope(nil),
		MaxDepth: DefaultMaxDepth,
	}
}

// Define registers an algorithm, overwriting any earlier definition with the
// same name.
func (e *Env) Define(algo *ast.Algorithm) {
	e.defs[algo.Name] = algo
}

// DefineAll registers every algorithm of a parsed program.
func (e *Env) DefineAll(prog *ast.Program) {
	for _, algo := range prog.Algorithms {
		e.Define(algo)
	}
}

// Algorithm looks up a registered definition by name.
func (e *Env) Algorithm(name string) (*ast.Algorithm, bool) {
	algo, ok := e.defs[name]
	return algo, ok
}

// Names returns the registered algorithm names, unordered.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.defs))
	for name := range e.defs {
		names = append(names, name)
	}
	return names
}
