// Package runtime implements the evaluation core: values, scopes, the
// expression evaluator, the statement executor, and directive dispatch.
package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType tags the closed set of runtime value variants.
type ValueType string

const (
	TypeInt   ValueType = "Int"
	TypeFloat ValueType = "Float"
	TypeStr   ValueType = "Str"
	TypeBool  ValueType = "Bool"
	TypeNone  ValueType = "None"
	TypeList  ValueType = "List"
	TypeTree  ValueType = "Tree"
)

// Value is a runtime value. The variant set is closed: every operation that
// dispatches on a Value switches exhaustively over these types.
type Value interface {
	Type() ValueType
	String() string
}

type IntVal int64

func (IntVal) Type() ValueType  { return TypeInt }
func (v IntVal) String() string { return strconv.FormatInt(int64(v), 10) }

type FloatVal float64

func (FloatVal) Type() ValueType { return TypeFloat }
func (v FloatVal) String() string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type StrVal string

func (StrVal) Type() ValueType  { return TypeStr }
func (v StrVal) String() string { return string(v) }

type BoolVal bool

func (BoolVal) Type() ValueType { return TypeBool }
func (v BoolVal) String() string {
	if v {
		return "true"
	}
	return "false"
}

// NoneVal is the unit value: the result of a call that never reached a
// return statement or of a bare `return`.
type NoneVal struct{}

func (NoneVal) Type() ValueType { return TypeNone }
func (NoneVal) String() string  { return "None" }

// ListVal is a persistent singly-linked list cell. The nil *ListVal is the
// empty list. Cells are never mutated after construction, so tails may be
// freely shared between lists.
type ListVal struct {
	Head Value
	Tail *ListVal
}

func (*ListVal) Type() ValueType { return TypeList }

func (l *ListVal) String() string {
	if l == nil {
		return "Nil"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for cell := l; cell != nil; cell = cell.Tail {
		if cell != l {
			sb.WriteString(", ")
		}
		sb.WriteString(cell.Head.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len walks the list. Lists are finite by construction.
func (l *ListVal) Len() int {
	n := 0
	for cell := l; cell != nil; cell = cell.Tail {
		n++
	}
	return n
}

// TreeVal is a persistent binary tree node. The nil *TreeVal is the empty
// tree (a leaf). Like lists, nodes are immutable and structurally shared.
type TreeVal struct {
	Left  *TreeVal
	Val   Value
	Right *TreeVal
}

func (*TreeVal) Type() ValueType { return TypeTree }

func (t *TreeVal) String() string {
	if t == nil {
		return "leaf"
	}
	return fmt.Sprintf("node(%s, %s, %s)", t.Left.String(), t.Val.String(), t.Right.String())
}

// Size counts the non-leaf nodes of the tree.
func (t *TreeVal) Size() int {
	if t == nil {
		return 0
	}
	return 1 + t.Left.Size() + t.Right.Size()
}

// Truthy reports whether a value counts as true in a condition. Numbers are
// truthy when nonzero, strings when nonempty, lists and trees when nonempty.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case BoolVal:
		return bool(x)
	case IntVal:
		return x != 0
	case FloatVal:
		return x != 0
	case StrVal:
		return x != ""
	case NoneVal:
		return false
	case *ListVal:
		return x != nil
	case *TreeVal:
		return x != nil
	default:
		return false
	}
}

// Equal compares two values structurally. Int and Float compare by numeric
// value; lists and trees compare element-wise.
func Equal(a, b Value) bool {
	if an, aok := numeric(a); aok {
		bn, bok := numeric(b)
		return bok && an == bn
	}
	switch x := a.(type) {
	case StrVal:
		y, ok := b.(StrVal)
		return ok && x == y
	case BoolVal:
		y, ok := b.(BoolVal)
		return ok && x == y
	case NoneVal:
		_, ok := b.(NoneVal)
		return ok
	case *ListVal:
		y, ok := b.(*ListVal)
		if !ok {
			return false
		}
		for x != nil && y != nil {
			if !Equal(x.Head, y.Head) {
				return false
			}
			x, y = x.Tail, y.Tail
		}
		return x == nil && y == nil
	case *TreeVal:
		y, ok := b.(*TreeVal)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return Equal(x.Val, y.Val) && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

func numeric(v Value) (float64, bool) {
	switch x := v.(type) {
	case IntVal:
		return float64(x), true
	case FloatVal:
		return float64(x), true
	default:
		return 0, false
	}
}
