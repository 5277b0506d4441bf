package runtime

import (
	"errors"
	"strings"
	"testing"

	"algo-lang/internal/diag"
	"algo-lang/internal/parser"
)

// loadEnv parses source and registers its algorithms in a fresh environment.
func loadEnv(t *testing.T, source string) *Env {
	t.Helper()
	prog, diags := parser.ParseProgram(source)
	if diag.HasErrors(diags) {
		t.Fatalf("parse diagnostics: %v", diags)
	}
	env := NewEnv()
	env.DefineAll(prog)
	return env
}

func eval(t *testing.T, env *Env, directive string) Value {
	t.Helper()
	v, err := env.EvalDirective(directive)
	if err != nil {
		t.Fatalf("directive %q failed: %v", directive, err)
	}
	return v
}

func expectInt(t *testing.T, env *Env, directive string, want int64) {
	t.Helper()
	v := eval(t, env, directive)
	n, ok := v.(IntVal)
	if !ok {
		t.Fatalf("directive %q: expected Int, got %s (%s)", directive, v.Type(), v)
	}
	if int64(n) != want {
		t.Errorf("directive %q: expected %d, got %d", directive, want, int64(n))
	}
}

func expectError(t *testing.T, env *Env, directive, contains string) {
	t.Helper()
	_, err := env.EvalDirective(directive)
	if err == nil {
		t.Fatalf("directive %q: expected error containing %q, got nil", directive, contains)
	}
	if !strings.Contains(err.Error(), contains) {
		t.Errorf("directive %q: expected error containing %q, got: %v", directive, contains, err)
	}
}

// ---- algorithms under test ----

const sumSource = `Algorithm: Sum(N)
total = 0
for i from 1 to N do
  total = total + i
endfor
return total
`

const countWaysSource = `Algorithm: CountWays(n)
if n == 0 then
  return 1
endif
total = 0
for k from 0 to n - 1 do
  total = total + CountWays(k)
endfor
return total
`

const findMaxSource = `Algorithm: FindMax(t)
best = root(t)
if not isLeaf(left(t)) then
  m = FindMax(left(t))
  if m > best then
    best = m
  endif
endif
if not isLeaf(right(t)) then
  m = FindMax(right(t))
  if m > best then
    best = m
  endif
endif
return best
`

// ---- properties ----

func TestSumClosedForm(t *testing.T) {
	env := loadEnv(t, sumSource)
	for _, n := range []int64{0, 1, 2, 10, 100} {
		want := n * (n + 1) / 2
		expectInt(t, env, "Sum("+IntVal(n).String()+")", want)
	}
}

func TestRecursiveSumClosedForm(t *testing.T) {
	env := loadEnv(t, `Algorithm: Sum(N)
if N <= 0 then
  return 0
endif
return N + Sum(N - 1)
`)
	for _, n := range []int64{0, 1, 10, 100} {
		expectInt(t, env, "Sum("+IntVal(n).String()+")", n*(n+1)/2)
	}
}

func TestCountWays(t *testing.T) {
	env := loadEnv(t, countWaysSource)
	// compositions of n: 2^(n-1) for n >= 1
	expectInt(t, env, "CountWays(0)", 1)
	expectInt(t, env, "CountWays(1)", 1)
	expectInt(t, env, "CountWays(5)", 16)
}

func TestFindMax(t *testing.T) {
	env := loadEnv(t, findMaxSource)
	eval(t, env, "T = node(node(node(leaf,10,leaf),20,node(leaf,25,leaf)),30,node(leaf,40,leaf))")
	expectInt(t, env, "FindMax(T)", 40)
}

func TestForRangeDescendingNeverRuns(t *testing.T) {
	env := loadEnv(t, `Algorithm: F()
hits = 0
for i from 5 to 1 do
  hits = hits + 1
endfor
return hits
`)
	expectInt(t, env, "F()", 0)
}

func TestForRangeInclusiveBounds(t *testing.T) {
	env := loadEnv(t, sumSource)
	expectInt(t, env, "Sum(3)", 6) // iterates 1, 2, 3
}

func TestForInVisitsListInOrder(t *testing.T) {
	env := loadEnv(t, `Algorithm: JoinDigits(L)
acc = 0
for x in L do
  acc = acc * 10 + x
endfor
return acc
`)
	eval(t, env, "L = cons(1, cons(2, cons(3, Nil)))")
	expectInt(t, env, "JoinDigits(L)", 123)
}

func TestWhileLoop(t *testing.T) {
	env := loadEnv(t, `Algorithm: Fact(n)
result = 1
while n > 1 do
  result = result * n
  n = n - 1
endwhile
return result
`)
	expectInt(t, env, "Fact(5)", 120)
	expectInt(t, env, "Fact(0)", 1)
}

func TestReturnShortCircuitsEnclosingBodies(t *testing.T) {
	env := loadEnv(t, `Algorithm: FirstOver(L, limit)
for x in L do
  if x > limit then
    return x
  endif
endfor
return -1
`)
	eval(t, env, "L = cons(3, cons(9, cons(12, Nil)))")
	expectInt(t, env, "FirstOver(L, 5)", 9)
	expectInt(t, env, "FirstOver(L, 100)", -1)
}

func TestCallWithoutReturnYieldsNone(t *testing.T) {
	env := loadEnv(t, `Algorithm: Noop(x)
y = x + 1
`)
	v := eval(t, env, "Noop(1)")
	if _, ok := v.(NoneVal); !ok {
		t.Errorf("expected None, got %s (%s)", v.Type(), v)
	}
}

func TestGlobalPersistsAcrossDirectives(t *testing.T) {
	env := NewEnv()
	eval(t, env, "T = node(leaf, 5, leaf)")
	expectInt(t, env, "size(T)", 1)
}

func TestCallScopeDoesNotLeak(t *testing.T) {
	env := loadEnv(t, `Algorithm: Shadow(x)
g = x * 2
return g
`)
	eval(t, env, "g = 7")
	expectInt(t, env, "Shadow(10)", 20)
	// the assignment inside the call must not have escaped
	expectInt(t, env, "g", 7)
}

func TestCallReadsGlobalScope(t *testing.T) {
	env := loadEnv(t, `Algorithm: AddBase(x)
return x + base
`)
	eval(t, env, "base = 100")
	expectInt(t, env, "AddBase(1)", 101)
}

func TestRecursionDepthLimit(t *testing.T) {
	env := loadEnv(t, `Algorithm: Loop(n)
return Loop(n + 1)
`)
	env.MaxDepth = 50
	_, err := env.EvalDirective("Loop(0)")
	var rle *RecursionLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RecursionLimitError, got %v", err)
	}
	if rle.Limit != 50 || rle.Name != "Loop" {
		t.Errorf("bad error fields: limit=%d name=%s", rle.Limit, rle.Name)
	}
	// the environment stays usable after the limit trips
	expectInt(t, env, "1 + 1", 2)
}

func TestDeepButBoundedRecursion(t *testing.T) {
	env := loadEnv(t, `Algorithm: Down(n)
if n == 0 then
  return 0
endif
return Down(n - 1)
`)
	expectInt(t, env, "Down(900)", 0)
}

func TestUnknownFunction(t *testing.T) {
	env := NewEnv()
	expectError(t, env, "Missing(1)", "Unknown function: Missing")
	// the run continues after an eval error
	expectInt(t, env, "2 + 2", 4)
}

func TestUndefinedVariable(t *testing.T) {
	env := NewEnv()
	expectError(t, env, "nowhere + 1", "Undefined variable: nowhere")
}

func TestArgumentMismatch(t *testing.T) {
	env := loadEnv(t, sumSource)
	expectError(t, env, "Sum(1, 2)", "Argument mismatch for Sum: expected 1, got 2")
	expectError(t, env, "cons(1)", "Argument mismatch for cons: expected 2, got 1")
}

func TestUserDefinitionShadowsBuiltin(t *testing.T) {
	env := loadEnv(t, `Algorithm: size(t)
return 99
`)
	eval(t, env, "T = node(leaf, 5, leaf)")
	expectInt(t, env, "size(T)", 99)
}

// ---- directive forms ----

func TestColonFormDirective(t *testing.T) {
	env := loadEnv(t, sumSource)
	v, err := env.EvalDirective("Sum: 10")
	if err != nil {
		t.Fatalf("colon form failed: %v", err)
	}
	if n, ok := v.(IntVal); !ok || n != 55 {
		t.Errorf("expected 55, got %s", v)
	}
}

func TestColonFormMultipleArgs(t *testing.T) {
	env := NewEnv()
	v, err := env.EvalDirective("cons: 1, Nil")
	if err != nil {
		t.Fatalf("colon form failed: %v", err)
	}
	l, ok := v.(*ListVal)
	if !ok || l.Len() != 1 {
		t.Errorf("expected one-element list, got %s", v)
	}
}

func TestAssignmentDirectiveReturnsValue(t *testing.T) {
	env := NewEnv()
	expectInt(t, env, "x = 2 * 21", 42)
	expectInt(t, env, "x", 42)
}

func TestArrowAssignmentDirective(t *testing.T) {
	env := NewEnv()
	eval(t, env, "y ← 5")
	expectInt(t, env, "y", 5)
}

func TestDirectiveLexError(t *testing.T) {
	env := NewEnv()
	_, err := env.EvalDirective("x @ 1")
	if err == nil || !strings.Contains(err.Error(), "LexError") {
		t.Fatalf("expected LexError, got %v", err)
	}
}
