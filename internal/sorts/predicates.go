package sorts

import "strings"

// Key returns the canonical identity of s, suitable as a map key.
func Key(s Sort) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// Equal reports whether x and y are structurally equal sorts.
func Equal(x, y Sort) bool {
	if x == nil || y == nil {
		return x == y
	}
	return Key(x) == Key(y)
}

// Compare orders sorts by their canonical form. It returns -1, 0 or +1.
func Compare(x, y Sort) int {
	return strings.Compare(Key(x), Key(y))
}

// Components returns the direct sub-sorts of s in a fixed order.
func Components(s Sort) []Sort {
	switch s := s.(type) {
	case *Function:
		out := append([]Sort(nil), s.domain...)
		return append(out, s.codomain)
	case *Container:
		return []Sort{s.element}
	case *Structured:
		var out []Sort
		for _, c := range s.constructors {
			for _, a := range c.arguments {
				out = append(out, a.sort)
			}
		}
		return out
	}
	return nil
}

// Walk calls fn for s and then for every sort nested inside it, depth first.
// Returning false from fn skips the components of that sort.
func Walk(s Sort, fn func(Sort) bool) {
	if s == nil || !fn(s) {
		return
	}
	for _, c := range Components(s) {
		Walk(c, fn)
	}
}

// BasicNames returns the names of all basic sorts occurring in s, in order
// of first occurrence.
func BasicNames(s Sort) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(s, func(x Sort) bool {
		if b, ok := x.(*Basic); ok && !seen[b.name] {
			seen[b.name] = true
			names = append(names, b.name)
		}
		return true
	})
	return names
}

// Map rebuilds s bottom-up: the components of every node are mapped first,
// then fn is applied to the rebuilt node. fn must not return nil.
func Map(s Sort, fn func(Sort) Sort) Sort {
	return fn(MapComponents(s, func(c Sort) Sort { return Map(c, fn) }))
}

// MapComponents rebuilds s with every direct component replaced by fn(c).
// The node itself is not passed to fn.
func MapComponents(s Sort, fn func(Sort) Sort) Sort {
	switch s := s.(type) {
	case *Function:
		domain := make([]Sort, len(s.domain))
		for i, d := range s.domain {
			domain[i] = fn(d)
		}
		return &Function{domain: domain, codomain: fn(s.codomain)}
	case *Container:
		return &Container{kind: s.kind, element: fn(s.element)}
	case *Structured:
		cons := make([]*StructConstructor, len(s.constructors))
		for i, c := range s.constructors {
			args := make([]*Projection, len(c.arguments))
			for j, a := range c.arguments {
				args[j] = &Projection{name: a.name, sort: fn(a.sort)}
			}
			cons[i] = &StructConstructor{name: c.name, arguments: args, recogniser: c.recogniser}
		}
		return &Structured{constructors: cons}
	}
	return s
}

// Domain returns the domain of a function sort, or nil for any other sort.
func Domain(s Sort) []Sort {
	if f, ok := s.(*Function); ok {
		return f.Domain()
	}
	return nil
}

// Range returns the codomain of a function sort, or s itself otherwise.
func Range(s Sort) Sort {
	if f, ok := s.(*Function); ok {
		return f.codomain
	}
	return s
}

// Dedup returns sorts with structural duplicates removed, keeping the
// first occurrence.
func Dedup(in []Sort) []Sort {
	seen := make(map[string]bool, len(in))
	out := make([]Sort, 0, len(in))
	for _, s := range in {
		k := Key(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
