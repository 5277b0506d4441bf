package runtime

// builtin is one built-in function: a fixed arity and an implementation
// that dispatches on the argument variants.
type builtin struct {
	arity int
	fn    func(args []Value) (Value, error)
}

var builtins = map[string]builtin{
	"cons": {2, func(args []Value) (Value, error) {
		tail, err := wantList("cons", args[1])
		if err != nil {
			return nil, err
		}
		return &ListVal{Head: args[0], Tail: tail}, nil
	}},
	"isEmpty": {1, func(args []Value) (Value, error) {
		l, err := wantList("isEmpty", args[0])
		if err != nil {
			return nil, err
		}
		return BoolVal(l == nil), nil
	}},
	"value": {1, func(args []Value) (Value, error) {
		l, err := wantList("value", args[0])
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, evalErrf("value on empty list")
		}
		return l.Head, nil
	}},
	"tail": {1, func(args []Value) (Value, error) {
		l, err := wantList("tail", args[0])
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, evalErrf("tail on empty list")
		}
		return l.Tail, nil
	}},
	"merge": {2, func(args []Value) (Value, error) {
		l1, err := wantList("merge", args[0])
		if err != nil {
			return nil, err
		}
		l2, err := wantList("merge", args[1])
		if err != nil {
			return nil, err
		}
		return mergeLists(l1, l2), nil
	}},
	"node": {3, func(args []Value) (Value, error) {
		left, err := wantTree("node", args[0])
		if err != nil {
			return nil, err
		}
		right, err := wantTree("node", args[2])
		if err != nil {
			return nil, err
		}
		return &TreeVal{Left: left, Val: args[1], Right: right}, nil
	}},
	"isLeaf": {1, func(args []Value) (Value, error) {
		t, err := wantTree("isLeaf", args[0])
		if err != nil {
			return nil, err
		}
		return BoolVal(t == nil), nil
	}},
	"root": {1, func(args []Value) (Value, error) {
		t, err := wantTree("root", args[0])
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, evalErrf("root on leaf")
		}
		return t.Val, nil
	}},
	"left": {1, func(args []Value) (Value, error) {
		t, err := wantTree("left", args[0])
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, evalErrf("left on leaf")
		}
		return t.Left, nil
	}},
	"right": {1, func(args []Value) (Value, error) {
		t, err := wantTree("right", args[0])
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, evalErrf("right on leaf")
		}
		return t.Right, nil
	}},
	"size": {1, func(args []Value) (Value, error) {
		t, err := wantTree("size", args[0])
		if err != nil {
			return nil, err
		}
		return IntVal(t.Size()), nil
	}},
	"Nil":  {0, func([]Value) (Value, error) { return (*ListVal)(nil), nil }},
	"leaf": {0, func([]Value) (Value, error) { return (*TreeVal)(nil), nil }},
}

// constants are the zero-arg built-ins usable as bare identifiers.
var constants = map[string]Value{
	"Nil":  (*ListVal)(nil),
	"leaf": (*TreeVal)(nil),
}

// mergeLists rebuilds l1's spine in front of l2, sharing l2 structurally.
func mergeLists(l1, l2 *ListVal) *ListVal {
	if l1 == nil {
		return l2
	}
	return &ListVal{Head: l1.Head, Tail: mergeLists(l1.Tail, l2)}
}

func wantList(fn string, v Value) (*ListVal, error) {
	l, ok := v.(*ListVal)
	if !ok {
		return nil, evalErrf("%s expects a List, got %s", fn, v.Type())
	}
	return l, nil
}

func wantTree(fn string, v Value) (*TreeVal, error) {
	t, ok := v.(*TreeVal)
	if !ok {
		return nil, evalErrf("%s expects a Tree, got %s", fn, v.Type())
	}
	return t, nil
}
