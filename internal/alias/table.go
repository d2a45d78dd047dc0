// Package alias resolves sort expressions through declared aliases to a
// canonical form.
//
// Resolution never unfolds a recursive definition. An alias whose target
// is a structured sort, or whose container or function target refers back
// to the alias itself, is an anchor: the alias name is the canonical
// representative and occurrences of its target normalise to the name.
// Every other alias is replaced by the normal form of its target. Chains of
// aliases between basic names that close a cycle are represented by the
// first-declared name on the cycle.
package alias

import (
	"maps"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Table holds alias declarations in declaration order.
// The zero value is not usable; create one with NewTable.
type Table struct {
	decls []*sorts.Alias
	index map[string]int

	// norm holds the resolution state, rebuilt on every change so that
	// lookups never write.
	norm *normaliser
}

// NewTable creates an empty alias table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add declares a. Redeclaring a name with a different target replaces the
// target in place, keeping the original declaration position. Add reports
// whether the table changed.
func (t *Table) Add(a *sorts.Alias) bool {
	name := a.Name().Name()
	if i, ok := t.index[name]; ok {
		if sorts.Equal(t.decls[i].Target(), a.Target()) {
			return false
		}
		t.decls[i] = a
		t.refresh()
		return true
	}
	t.index[name] = len(t.decls)
	t.decls = append(t.decls, a)
	t.refresh()
	return true
}

// Remove deletes the alias with the given name and reports whether it was
// present.
func (t *Table) Remove(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.decls = append(t.decls[:i:i], t.decls[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.decls); j++ {
		t.index[t.decls[j].Name().Name()] = j
	}
	t.refresh()
	return true
}

// Lookup returns the alias declared under name.
func (t *Table) Lookup(name string) (*sorts.Alias, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.decls[i], true
}

// Len returns the number of declared aliases.
func (t *Table) Len() int {
	return len(t.decls)
}

// Aliases returns the declarations in declaration order.
func (t *Table) Aliases() []*sorts.Alias {
	return append([]*sorts.Alias(nil), t.decls...)
}

// AliasesOf returns the aliases whose name normalises to the same sort as s.
func (t *Table) AliasesOf(s sorts.Sort) []*sorts.Alias {
	want := sorts.Key(t.Normalise(s))
	var out []*sorts.Alias
	for _, a := range t.decls {
		if sorts.Key(t.Normalise(a.Name())) == want {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	c := &Table{
		decls: slices.Clone(t.decls),
		index: maps.Clone(t.index),
	}
	c.refresh()
	return c
}

// Normalise returns the canonical form of s. It is idempotent, and for
// every alias A = T and sort context C, Normalise(C[A]) equals
// Normalise(C[T]).
func (t *Table) Normalise(s sorts.Sort) sorts.Sort {
	if len(t.decls) == 0 {
		return s
	}
	return t.normaliser().normalise(s)
}

// Definition returns the normalised body of a canonical anchor name: the
// structured, container or function sort that the name stands for.
// Names that are not canonical anchors have no definition.
func (t *Table) Definition(name string) (sorts.Sort, bool) {
	if len(t.decls) == 0 {
		return nil, false
	}
	n := t.normaliser()
	if !n.isAnchor(name) || n.representative(name) != name {
		return nil, false
	}
	return n.body(name), true
}

// Cycles returns the alias chains between basic names that close a cycle
// and so have no underlying sort. Each cycle lists its members starting
// from the first-declared one.
func (t *Table) Cycles() [][]string {
	if len(t.decls) == 0 {
		return nil
	}
	n := t.normaliser()
	seen := set.New[string](len(t.decls))
	var out [][]string
	for _, a := range t.decls {
		c := n.chase(a.Name().Name())
		if !c.cyclic || seen.Contains(c.end) {
			continue
		}
		seen.Insert(c.end)
		out = append(out, rotate(c.members, c.end))
	}
	return out
}

func rotate(members []string, first string) []string {
	for i, m := range members {
		if m == first {
			return append(append([]string(nil), members[i:]...), members[:i]...)
		}
	}
	return members
}

func (t *Table) normaliser() *normaliser {
	return t.norm
}

func (t *Table) refresh() {
	if len(t.decls) == 0 {
		t.norm = nil
		return
	}
	t.norm = newNormaliser(t)
}
