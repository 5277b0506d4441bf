package runtime

// Scope is one frame of the variable chain. Lookups walk outward through
// parents; assignments always bind in the innermost frame, so a call can
// read global bindings but never overwrite them.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope creates a scope chained onto parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]Value), parent: parent}
}

// Lookup walks the chain outward and reports whether the name is bound.
func (s *Scope) Lookup(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this frame, shadowing any outer binding.
func (s *Scope) Set(name string, v Value) {
	s.vars[name] = v
}
