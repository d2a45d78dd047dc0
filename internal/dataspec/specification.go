// Package dataspec is the signature of an algebraic data specification:
// its sorts, aliases, constructors, mappings and equations, together with
// the system-defined support of the built-in theories they require.
//
// A Specification is built by a single owner through its Add and Remove
// methods and may afterwards be queried by any number of readers at
// once. It has no internal locking; mutation concurrent with any other
// use needs external synchronisation. Clone yields a fully independent
// copy.
package dataspec

import (
	"slices"

	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/alias"
	"github.com/foundry-zero/dataspec/internal/builtin"
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
	"github.com/foundry-zero/dataspec/internal/store"
)

// Specification holds user declarations as given and keeps the store in
// line with them: user entries under their normalised sorts and the
// theories of every sort reachable from the declarations.
type Specification struct {
	sorts        []sorts.Sort
	contextSorts []sorts.Sort
	aliases      *alias.Table
	constructors []*data.FunctionSymbol
	mappings     []*data.FunctionSymbol
	equations    []*data.Equation

	store    *store.Store
	expander *builtin.Expander
	closure  []sorts.Sort
}

// New returns a specification without user declarations. It already holds
// the theory of Bool.
func New() *Specification {
	s := &Specification{
		aliases:  alias.NewTable(),
		store:    store.New(),
		expander: builtin.NewExpander(),
	}
	s.sync()
	return s
}

// Clone returns a copy that shares no mutable state with s.
func (s *Specification) Clone() *Specification {
	return &Specification{
		sorts:        slices.Clone(s.sorts),
		contextSorts: slices.Clone(s.contextSorts),
		aliases:      s.aliases.Clone(),
		constructors: slices.Clone(s.constructors),
		mappings:     slices.Clone(s.mappings),
		equations:    slices.Clone(s.equations),
		store:        s.store.Clone(),
		expander:     s.expander.Clone(),
		closure:      slices.Clone(s.closure),
	}
}

func (s *Specification) normalise(x sorts.Sort) sorts.Sort {
	return s.aliases.Normalise(x)
}

func (s *Specification) userSymbol(f *data.FunctionSymbol, role data.Role) *data.FunctionSymbol {
	return data.NewFunctionSymbol(f.Name(), s.normalise(f.Sort()), role, data.UserDefined)
}

func (s *Specification) userEquation(e *data.Equation) *data.Equation {
	return e.MapSorts(s.normalise).WithOrigin(data.UserDefined)
}

// AddSort declares x. Declaring a sort twice has no effect.
func (s *Specification) AddSort(x sorts.Sort) {
	s.AddSorts(x)
}

// AddSorts declares each of xs.
func (s *Specification) AddSorts(xs ...sorts.Sort) {
	s.sorts = appendSorts(s.sorts, xs)
	s.sync()
}

// RemoveSort withdraws every declaration of a sort that normalises to the
// same sort as x. Entries still referring to it are kept; Validate reports
// them once the sort is no longer declared.
func (s *Specification) RemoveSort(x sorts.Sort) {
	s.RemoveSorts(x)
}

// RemoveSorts withdraws each of xs.
func (s *Specification) RemoveSorts(xs ...sorts.Sort) {
	s.sorts = s.deleteSorts(s.sorts, xs)
	s.sync()
}

// AddContextSort declares x as a context sort: its theory is generated
// but it is not a user sort.
func (s *Specification) AddContextSort(x sorts.Sort) {
	s.AddContextSorts(x)
}

// AddContextSorts declares each of xs as a context sort.
func (s *Specification) AddContextSorts(xs ...sorts.Sort) {
	s.contextSorts = appendSorts(s.contextSorts, xs)
	s.sync()
}

// RemoveContextSort withdraws context sort x.
func (s *Specification) RemoveContextSort(x sorts.Sort) {
	s.RemoveContextSorts(x)
}

// RemoveContextSorts withdraws each of xs as a context sort.
func (s *Specification) RemoveContextSorts(xs ...sorts.Sort) {
	s.contextSorts = s.deleteSorts(s.contextSorts, xs)
	s.sync()
}

func appendSorts(list, xs []sorts.Sort) []sorts.Sort {
	for _, x := range xs {
		if !slices.ContainsFunc(list, func(y sorts.Sort) bool { return sorts.Equal(x, y) }) {
			list = append(list, x)
		}
	}
	return list
}

func (s *Specification) deleteSorts(list, xs []sorts.Sort) []sorts.Sort {
	for _, x := range xs {
		k := sorts.Key(s.normalise(x))
		list = slices.DeleteFunc(list, func(y sorts.Sort) bool {
			return sorts.Key(s.normalise(y)) == k
		})
	}
	return list
}

// AddAlias declares a, replacing an earlier alias of the same name. All
// entries are renormalised.
func (s *Specification) AddAlias(a *sorts.Alias) {
	s.AddAliases(a)
}

// AddAliases declares each of as in order and renormalises once.
func (s *Specification) AddAliases(as ...*sorts.Alias) {
	changed := false
	for _, a := range as {
		changed = s.aliases.Add(a) || changed
	}
	if changed {
		s.rebuild()
	}
}

// RemoveAlias withdraws the alias with the given name.
func (s *Specification) RemoveAlias(name string) {
	s.RemoveAliases(name)
}

// RemoveAliases withdraws the aliases with the given names and
// renormalises once.
func (s *Specification) RemoveAliases(names ...string) {
	changed := false
	for _, name := range names {
		changed = s.aliases.Remove(name) || changed
	}
	if changed {
		s.rebuild()
	}
}

// AddConstructor declares f as a user constructor. It fails with a
// *RoleConflictError if a mapping with the same name and normalised sort
// exists.
func (s *Specification) AddConstructor(f *data.FunctionSymbol) error {
	return s.AddConstructors(f)
}

// AddConstructors declares each of fs as a constructor, returning the
// combined role conflicts.
func (s *Specification) AddConstructors(fs ...*data.FunctionSymbol) error {
	var err error
	for _, f := range fs {
		err = multierr.Append(err, s.addSymbol(&s.constructors, f, data.RoleConstructor))
	}
	s.sync()
	return err
}

// RemoveConstructor withdraws the user declaration of constructor f.
func (s *Specification) RemoveConstructor(f *data.FunctionSymbol) {
	s.RemoveConstructors(f)
}

// RemoveConstructors withdraws each of fs.
func (s *Specification) RemoveConstructors(fs ...*data.FunctionSymbol) {
	for _, f := range fs {
		s.removeSymbol(&s.constructors, f, data.RoleConstructor)
	}
	s.sync()
}

// AddMapping declares f as a user mapping. It fails with a
// *RoleConflictError if a constructor with the same name and normalised
// sort exists.
func (s *Specification) AddMapping(f *data.FunctionSymbol) error {
	return s.AddMappings(f)
}

// AddMappings declares each of fs as a mapping, returning the combined
// role conflicts.
func (s *Specification) AddMappings(fs ...*data.FunctionSymbol) error {
	var err error
	for _, f := range fs {
		err = multierr.Append(err, s.addSymbol(&s.mappings, f, data.RoleMapping))
	}
	s.sync()
	return err
}

// RemoveMapping withdraws the user declaration of mapping f.
func (s *Specification) RemoveMapping(f *data.FunctionSymbol) {
	s.RemoveMappings(f)
}

// RemoveMappings withdraws each of fs.
func (s *Specification) RemoveMappings(fs ...*data.FunctionSymbol) {
	for _, f := range fs {
		s.removeSymbol(&s.mappings, f, data.RoleMapping)
	}
	s.sync()
}

func (s *Specification) addSymbol(list *[]*data.FunctionSymbol, f *data.FunctionSymbol, role data.Role) error {
	n := s.userSymbol(f, role)
	if err := s.storeSymbol(n); err != nil {
		return err
	}
	if !slices.ContainsFunc(*list, func(g *data.FunctionSymbol) bool { return s.userSymbol(g, role).Key() == n.Key() }) {
		*list = append(*list, f)
	}
	return nil
}

func (s *Specification) storeSymbol(f *data.FunctionSymbol) error {
	if f.Role() == data.RoleConstructor {
		return s.store.AddConstructor(f)
	}
	return s.store.AddMapping(f)
}

func (s *Specification) removeSymbol(list *[]*data.FunctionSymbol, f *data.FunctionSymbol, role data.Role) {
	n := s.userSymbol(f, role)
	*list = slices.DeleteFunc(*list, func(g *data.FunctionSymbol) bool { return s.userSymbol(g, role).Key() == n.Key() })
	if role == data.RoleConstructor {
		s.store.RemoveConstructor(n, data.UserDefined)
	} else {
		s.store.RemoveMapping(n, data.UserDefined)
	}
}

// AddEquation declares e as a user equation. Equations are stored whether
// or not they are well typed; see WellTyped.
func (s *Specification) AddEquation(e *data.Equation) {
	s.AddEquations(e)
}

// AddEquations declares each of es.
func (s *Specification) AddEquations(es ...*data.Equation) {
	for _, e := range es {
		n := s.userEquation(e)
		s.store.AddEquation(n)
		if !slices.ContainsFunc(s.equations, func(g *data.Equation) bool { return s.userEquation(g).Key() == n.Key() }) {
			s.equations = append(s.equations, e)
		}
	}
	s.sync()
}

// RemoveEquation withdraws the user declaration of e.
func (s *Specification) RemoveEquation(e *data.Equation) {
	s.RemoveEquations(e)
}

// RemoveEquations withdraws each of es.
func (s *Specification) RemoveEquations(es ...*data.Equation) {
	for _, e := range es {
		n := s.userEquation(e)
		s.equations = slices.DeleteFunc(s.equations, func(g *data.Equation) bool { return s.userEquation(g).Key() == n.Key() })
		s.store.RemoveEquation(n, data.UserDefined)
	}
	s.sync()
}

// rebuild re-enters every user entry under the current aliases. Symbols
// that collide in role once renormalised are left out of the store;
// Validate reports them.
func (s *Specification) rebuild() {
	s.store = store.New()
	s.expander = builtin.NewExpander()
	for _, f := range s.constructors {
		_ = s.storeSymbol(s.userSymbol(f, data.RoleConstructor))
	}
	for _, f := range s.mappings {
		_ = s.storeSymbol(s.userSymbol(f, data.RoleMapping))
	}
	for _, e := range s.equations {
		s.store.AddEquation(s.userEquation(e))
	}
	s.sync()
}

// roots lists the sorts the declarations refer to directly.
func (s *Specification) roots() []sorts.Sort {
	roots := slices.Concat(s.sorts, s.contextSorts)
	for _, a := range s.aliases.Aliases() {
		roots = append(roots, a.Name())
	}
	for _, f := range slices.Concat(s.constructors, s.mappings) {
		n := s.normalise(f.Sort())
		roots = append(roots, sorts.Domain(n)...)
		roots = append(roots, sorts.Range(n))
	}
	for _, e := range s.equations {
		for _, v := range e.Variables() {
			roots = append(roots, v.Sort())
		}
	}
	return roots
}

// sync recomputes the sort closure and brings the generated theories in
// line with it. A generated symbol takes precedence over a user symbol of
// the other role with the same name and sort; the user symbol is entered
// again once no theory generates the symbol.
func (s *Specification) sync() {
	found, reqs := builtin.Closure(s.roots(), s.aliases)
	s.expander.Sync(reqs, s.aliases, theorySink{s.store})
	for _, f := range s.constructors {
		_ = s.storeSymbol(s.userSymbol(f, data.RoleConstructor))
	}
	for _, f := range s.mappings {
		_ = s.storeSymbol(s.userSymbol(f, data.RoleMapping))
	}
	s.closure = found
}

// theorySink enters generated entries into the store, withdrawing user
// declarations that hold their name and sort in the other role.
type theorySink struct {
	*store.Store
}

func (t theorySink) Yield(f *data.FunctionSymbol) bool {
	if f.Role() == data.RoleConstructor {
		t.RemoveMapping(f, data.UserDefined)
		return !t.HasMapping(f)
	}
	t.RemoveConstructor(f, data.UserDefined)
	return !t.HasConstructor(f)
}
