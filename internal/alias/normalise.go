package alias

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

// chain is the result of following basic-to-basic aliases from a name.
type chain struct {
	end     string // last name reached, or the representative of a cycle
	cyclic  bool
	members []string
}

type normaliser struct {
	t         *Table
	chains    map[string]chain
	recursive map[string]bool
	anchors   []string          // anchor names in declaration order
	bodyKey   map[string]string // anchor name -> key of its normalised body
	byBody    map[string]string // body key -> first-declared anchor name
	resolved  map[string]sorts.Sort
}

func newNormaliser(t *Table) *normaliser {
	n := &normaliser{
		t:         t,
		chains:    make(map[string]chain),
		recursive: make(map[string]bool),
		bodyKey:   make(map[string]string),
		byBody:    make(map[string]string),
		resolved:  make(map[string]sorts.Sort),
	}
	for _, a := range t.decls {
		if n.isAnchor(a.Name().Name()) {
			n.anchors = append(n.anchors, a.Name().Name())
		}
	}
	n.computeBodies()
	for _, a := range t.decls {
		n.resolveName(a.Name().Name())
	}
	return n
}

// computeBodies assigns each anchor the key of its normalised body. Bodies
// may mention other anchors' targets, so keys are recomputed until they
// stop changing; each round can only merge more targets into names.
func (n *normaliser) computeBodies() {
	for round := 0; round <= len(n.anchors); round++ {
		clear(n.resolved)
		next := make(map[string]string, len(n.anchors))
		changed := false
		for _, name := range n.anchors {
			k := sorts.Key(n.body(name))
			next[name] = k
			if n.bodyKey[name] != k {
				changed = true
			}
		}
		n.bodyKey = next
		n.byBody = make(map[string]string, len(n.anchors))
		for _, name := range n.anchors {
			if _, ok := n.byBody[next[name]]; !ok {
				n.byBody[next[name]] = name
			}
		}
		if !changed {
			break
		}
	}
	clear(n.resolved)
}

// chase follows aliases whose target is a basic sort, starting at name.
// Only chains from alias names are cached; newNormaliser visits all of
// them, so later lookups do not write.
func (n *normaliser) chase(name string) chain {
	if c, ok := n.chains[name]; ok {
		return c
	}
	var path []string
	pos := make(map[string]int)
	cur := name
	for {
		if i, seen := pos[cur]; seen {
			members := append([]string(nil), path[i:]...)
			c := chain{end: n.firstDeclared(members), cyclic: true, members: members}
			n.chains[name] = c
			return c
		}
		a, ok := n.t.Lookup(cur)
		if !ok {
			break
		}
		b, ok := a.Target().(*sorts.Basic)
		if !ok {
			break
		}
		pos[cur] = len(path)
		path = append(path, cur)
		cur = b.Name()
	}
	c := chain{end: cur}
	if _, ok := n.t.index[name]; ok {
		n.chains[name] = c
	}
	return c
}

func (n *normaliser) firstDeclared(names []string) string {
	best := names[0]
	for _, m := range names[1:] {
		if n.t.index[m] < n.t.index[best] {
			best = m
		}
	}
	return best
}

// isAnchor reports whether the alias name stands for its own target.
func (n *normaliser) isAnchor(name string) bool {
	a, ok := n.t.Lookup(name)
	if !ok {
		return false
	}
	switch a.Target().(type) {
	case *sorts.Basic:
		return false
	case *sorts.Structured:
		return true
	}
	return n.refersBack(name)
}

// refersBack reports whether the container or function target of alias
// name reaches name again through aliases that are inlined.
func (n *normaliser) refersBack(name string) bool {
	if r, ok := n.recursive[name]; ok {
		return r
	}
	a, _ := n.t.Lookup(name)
	visited := set.New[string](4)
	var visit func(s sorts.Sort) bool
	visit = func(s sorts.Sort) bool {
		for _, bn := range sorts.BasicNames(s) {
			c := n.chase(bn)
			if c.cyclic {
				continue
			}
			if c.end == name {
				return true
			}
			target, ok := n.t.Lookup(c.end)
			if !ok {
				continue
			}
			if _, isStruct := target.Target().(*sorts.Structured); isStruct {
				continue
			}
			if !visited.Insert(c.end) {
				continue
			}
			if visit(target.Target()) {
				return true
			}
		}
		return false
	}
	r := visit(a.Target())
	n.recursive[name] = r
	return r
}

// representative returns the canonical name for anchor name; anchors with
// equal bodies share the first-declared name.
func (n *normaliser) representative(name string) string {
	if k, ok := n.bodyKey[name]; ok {
		if rep, ok := n.byBody[k]; ok {
			return rep
		}
	}
	return name
}

// body normalises the components of an anchor's target, leaving the
// outermost constructor in place.
func (n *normaliser) body(name string) sorts.Sort {
	a, _ := n.t.Lookup(name)
	return sorts.MapComponents(a.Target(), n.normalise)
}

func (n *normaliser) resolveName(name string) sorts.Sort {
	if s, ok := n.resolved[name]; ok {
		return s
	}
	c := n.chase(name)
	var out sorts.Sort
	switch {
	case c.cyclic:
		out = sorts.NewBasic(c.end)
	case n.isAnchor(c.end):
		out = sorts.NewBasic(n.representative(c.end))
	default:
		a, ok := n.t.Lookup(c.end)
		if !ok {
			out = sorts.NewBasic(c.end)
			if _, isAlias := n.t.index[name]; !isAlias {
				return out
			}
			break
		}
		// Non-anchor targets never lead back here; the placeholder only
		// guards against a table mutated during resolution.
		n.resolved[name] = sorts.NewBasic(c.end)
		out = n.normalise(a.Target())
	}
	n.resolved[name] = out
	return out
}

func (n *normaliser) normalise(s sorts.Sort) sorts.Sort {
	return sorts.Map(s, func(x sorts.Sort) sorts.Sort {
		if b, ok := x.(*sorts.Basic); ok {
			return n.resolveName(b.Name())
		}
		if name, ok := n.byBody[sorts.Key(x)]; ok {
			return sorts.NewBasic(name)
		}
		return x
	})
}
