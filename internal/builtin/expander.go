package builtin

import (
	"maps"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Closure returns every sort reachable from roots through sort components
// and theory dependencies, in discovery order, together with the
// requirement of each. Bool is always part of the closure. All sorts are
// normalised by sig before they are recorded.
func Closure(roots []sorts.Sort, sig Signature) ([]sorts.Sort, []Requirement) {
	queue := make([]sorts.Sort, 0, len(roots)+1)
	queue = append(queue, roots...)
	queue = append(queue, sorts.Bool())

	seen := set.New[string](len(queue))
	var found []sorts.Sort
	var reqs []Requirement
	for len(queue) > 0 {
		s := sig.Normalise(queue[0])
		queue = queue[1:]
		if !seen.Insert(sorts.Key(s)) {
			continue
		}
		def := s
		if b, ok := s.(*sorts.Basic); ok {
			if d, ok := sig.Definition(b.Name()); ok {
				def = d
			}
		}
		found = append(found, s)
		reqs = append(reqs, Requirement{Sort: s, Definition: def})
		queue = append(queue, sorts.Components(def)...)
		queue = append(queue, dependencies(def)...)
	}
	return found, reqs
}

// Sink receives generated entries. The store satisfies it.
type Sink interface {
	AddConstructor(*data.FunctionSymbol) error
	AddMapping(*data.FunctionSymbol) error
	AddEquation(*data.Equation)
	RemoveConstructor(*data.FunctionSymbol, data.Origin)
	RemoveMapping(*data.FunctionSymbol, data.Origin)
	RemoveEquation(*data.Equation, data.Origin)
}

// Yielder is implemented by sinks that can withdraw a user entry holding
// the name and sort of a generated symbol in the other role. Yield reports
// whether the way is now clear.
type Yielder interface {
	Yield(*data.FunctionSymbol) bool
}

// Expander keeps a sink's system-defined entries in line with a set of
// requirements. Entries shared between theories are reference counted so
// that retracting one theory keeps entries another still justifies.
type Expander struct {
	theories map[string]*Theory
	order    []string
	refs     map[string]int
	// blocked holds entries the sink rejected, retried on every Sync.
	blocked map[string]*data.FunctionSymbol
}

// NewExpander returns an expander that has generated nothing.
func NewExpander() *Expander {
	return &Expander{
		theories: make(map[string]*Theory),
		refs:     make(map[string]int),
		blocked:  make(map[string]*data.FunctionSymbol),
	}
}

// Clone returns an independent copy. Theories are immutable and shared.
func (x *Expander) Clone() *Expander {
	return &Expander{
		theories: maps.Clone(x.theories),
		order:    append([]string(nil), x.order...),
		refs:     maps.Clone(x.refs),
		blocked:  maps.Clone(x.blocked),
	}
}

// Theories returns the generated theories in the order they were first
// required.
func (x *Expander) Theories() []*Theory {
	out := make([]*Theory, len(x.order))
	for i, k := range x.order {
		out[i] = x.theories[k]
	}
	return out
}

// Sync generates the theories of requirements not yet covered and
// retracts those no longer required.
func (x *Expander) Sync(reqs []Requirement, sig Signature, sink Sink) {
	want := set.New[string](len(reqs))
	for _, r := range reqs {
		k := r.key()
		if !want.Insert(k) {
			continue
		}
		if _, ok := x.theories[k]; ok {
			continue
		}
		th := Generate(r, sig)
		x.theories[k] = th
		x.order = append(x.order, k)
		x.apply(th, sink)
	}

	kept := x.order[:0]
	for _, k := range x.order {
		if want.Contains(k) {
			kept = append(kept, k)
			continue
		}
		x.retract(x.theories[k], sink)
		delete(x.theories, k)
	}
	x.order = kept

	for _, k := range slices.Sorted(maps.Keys(x.blocked)) {
		if x.add(x.blocked[k], sink) == nil {
			delete(x.blocked, k)
		}
	}
}

// Blocked returns the generated symbols the sink refused because the same
// name and sort is held in the other role, ordered by role and key.
func (x *Expander) Blocked() []*data.FunctionSymbol {
	out := make([]*data.FunctionSymbol, 0, len(x.blocked))
	for _, k := range slices.Sorted(maps.Keys(x.blocked)) {
		out = append(out, x.blocked[k])
	}
	return out
}

func symbolRef(f *data.FunctionSymbol) string {
	return f.Role().String() + " " + f.Key()
}

func (x *Expander) add(f *data.FunctionSymbol, sink Sink) error {
	err := enter(f, sink)
	if y, ok := sink.(Yielder); ok && err != nil && y.Yield(f) {
		err = enter(f, sink)
	}
	return err
}

func enter(f *data.FunctionSymbol, sink Sink) error {
	if f.Role() == data.RoleConstructor {
		return sink.AddConstructor(f)
	}
	return sink.AddMapping(f)
}

func (x *Expander) apply(th *Theory, sink Sink) {
	for _, f := range slices.Concat(th.Constructors, th.Mappings) {
		k := symbolRef(f)
		x.refs[k]++
		if x.refs[k] > 1 {
			continue
		}
		if err := x.add(f, sink); err != nil {
			x.blocked[k] = f
		}
	}
	for _, e := range th.Equations {
		k := "equation " + e.Key()
		x.refs[k]++
		if x.refs[k] == 1 {
			sink.AddEquation(e)
		}
	}
}

func (x *Expander) retract(th *Theory, sink Sink) {
	for _, f := range slices.Concat(th.Constructors, th.Mappings) {
		k := symbolRef(f)
		x.refs[k]--
		if x.refs[k] > 0 {
			continue
		}
		delete(x.refs, k)
		delete(x.blocked, k)
		if f.Role() == data.RoleConstructor {
			sink.RemoveConstructor(f, data.SystemDefined)
		} else {
			sink.RemoveMapping(f, data.SystemDefined)
		}
	}
	for _, e := range th.Equations {
		k := "equation " + e.Key()
		x.refs[k]--
		if x.refs[k] > 0 {
			continue
		}
		delete(x.refs, k)
		sink.RemoveEquation(e, data.SystemDefined)
	}
}
