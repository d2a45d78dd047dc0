// Package store keeps the constructors, mappings and equations of a data
// specification, indexed for direct lookup by sort and by head symbol.
//
// An entry may be declared by the user, generated by the system, or both.
// It stays present as long as either declaration holds, and it is reported
// as user-defined whenever the user declared it. Enumeration lists user
// entries in declaration order followed by system entries in generation
// order.
package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// RoleConflictError is returned when a (name, sort) pair is registered as
// a constructor while it is a mapping, or the other way around.
type RoleConflictError struct {
	Symbol   *data.FunctionSymbol
	Existing data.Role
}

func (e *RoleConflictError) Error() string {
	return fmt.Sprintf("%s %s is already declared as a %s", e.Symbol.Role(), e.Symbol.Key(), e.Existing)
}

// Store is the indexed collection of symbols and equations.
// The zero value is not usable; create one with New.
type Store struct {
	constructors *collection[*data.FunctionSymbol]
	mappings     *collection[*data.FunctionSymbol]
	equations    *collection[*data.Equation]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		constructors: newCollection[*data.FunctionSymbol](),
		mappings:     newCollection[*data.FunctionSymbol](),
		equations:    newCollection[*data.Equation](),
	}
}

// Clone returns a copy that shares no mutable state with s.
func (s *Store) Clone() *Store {
	return &Store{
		constructors: s.constructors.clone(),
		mappings:     s.mappings.clone(),
		equations:    s.equations.clone(),
	}
}

func symbolIndex(f *data.FunctionSymbol) string {
	return sorts.Key(f.Range())
}

func equationIndex(e *data.Equation) string {
	if h := e.Head(); h != nil {
		return h.Key()
	}
	return ""
}

// AddConstructor adds f as a constructor under f's origin. It fails with
// a *RoleConflictError if a mapping with the same name and sort exists.
func (s *Store) AddConstructor(f *data.FunctionSymbol) error {
	if s.mappings.has(f.Key()) {
		return &RoleConflictError{Symbol: f, Existing: data.RoleMapping}
	}
	s.constructors.add(f.Key(), symbolIndex(f), f.Origin(), f)
	return nil
}

// AddMapping adds f as a mapping under f's origin. It fails with a
// *RoleConflictError if a constructor with the same name and sort exists.
func (s *Store) AddMapping(f *data.FunctionSymbol) error {
	if s.constructors.has(f.Key()) {
		return &RoleConflictError{Symbol: f, Existing: data.RoleConstructor}
	}
	s.mappings.add(f.Key(), symbolIndex(f), f.Origin(), f)
	return nil
}

// AddEquation adds e under e's origin.
func (s *Store) AddEquation(e *data.Equation) {
	s.equations.add(e.Key(), equationIndex(e), e.Origin(), e)
}

// RemoveConstructor withdraws the declaration of f made under origin.
// Removing an absent entry does nothing.
func (s *Store) RemoveConstructor(f *data.FunctionSymbol, origin data.Origin) {
	s.constructors.remove(f.Key(), origin)
}

// RemoveMapping withdraws the declaration of f made under origin.
func (s *Store) RemoveMapping(f *data.FunctionSymbol, origin data.Origin) {
	s.mappings.remove(f.Key(), origin)
}

// RemoveEquation withdraws the declaration of e made under origin.
func (s *Store) RemoveEquation(e *data.Equation, origin data.Origin) {
	s.equations.remove(e.Key(), origin)
}

// HasConstructor reports whether a constructor with f's name and sort exists.
func (s *Store) HasConstructor(f *data.FunctionSymbol) bool {
	return s.constructors.has(f.Key())
}

// HasMapping reports whether a mapping with f's name and sort exists.
func (s *Store) HasMapping(f *data.FunctionSymbol) bool {
	return s.mappings.has(f.Key())
}

// HasEquation reports whether e is present.
func (s *Store) HasEquation(e *data.Equation) bool {
	return s.equations.has(e.Key())
}

// Constructors returns all constructors.
func (s *Store) Constructors() []*data.FunctionSymbol {
	return s.constructors.all(symbolWithOrigin)
}

// ConstructorsOf returns the constructors whose range is srt.
func (s *Store) ConstructorsOf(srt sorts.Sort) []*data.FunctionSymbol {
	return s.constructors.of(sorts.Key(srt), symbolWithOrigin)
}

// Mappings returns all mappings.
func (s *Store) Mappings() []*data.FunctionSymbol {
	return s.mappings.all(symbolWithOrigin)
}

// MappingsOf returns the mappings whose range is srt.
func (s *Store) MappingsOf(srt sorts.Sort) []*data.FunctionSymbol {
	return s.mappings.of(sorts.Key(srt), symbolWithOrigin)
}

// Equations returns all equations.
func (s *Store) Equations() []*data.Equation {
	return s.equations.all(equationWithOrigin)
}

// EquationsOf returns the equations whose left-hand side is headed by the
// symbol with the given name and sort.
func (s *Store) EquationsOf(f *data.FunctionSymbol) []*data.Equation {
	return s.equations.of(f.Key(), equationWithOrigin)
}

func symbolWithOrigin(f *data.FunctionSymbol, o data.Origin) *data.FunctionSymbol {
	if f.Origin() == o {
		return f
	}
	return f.WithOrigin(o)
}

func equationWithOrigin(e *data.Equation, o data.Origin) *data.Equation {
	if e.Origin() == o {
		return e
	}
	return e.WithOrigin(o)
}

// entry is one stored value with its declaration flags.
type entry[T any] struct {
	key    string
	index  string
	value  T
	user   uint64 // declaration sequence number, 0 if not user-declared
	system uint64 // generation sequence number, 0 if not system-generated
}

func (e *entry[T]) origin() data.Origin {
	if e.user != 0 {
		return data.UserDefined
	}
	return data.SystemDefined
}

type collection[T any] struct {
	byKey   map[string]*entry[T]
	byIndex map[string][]*entry[T]
	seq     uint64
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{
		byKey:   make(map[string]*entry[T]),
		byIndex: make(map[string][]*entry[T]),
	}
}

func (c *collection[T]) has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

func (c *collection[T]) add(key, index string, origin data.Origin, value T) {
	e, ok := c.byKey[key]
	if !ok {
		e = &entry[T]{key: key, index: index, value: value}
		c.byKey[key] = e
		c.byIndex[index] = append(c.byIndex[index], e)
	}
	switch origin {
	case data.UserDefined:
		if e.user == 0 {
			c.seq++
			e.user = c.seq
		}
	case data.SystemDefined:
		if e.system == 0 {
			c.seq++
			e.system = c.seq
		}
	}
}

func (c *collection[T]) remove(key string, origin data.Origin) {
	e, ok := c.byKey[key]
	if !ok {
		return
	}
	switch origin {
	case data.UserDefined:
		e.user = 0
	case data.SystemDefined:
		e.system = 0
	}
	if e.user != 0 || e.system != 0 {
		return
	}
	delete(c.byKey, key)
	rest := slices.DeleteFunc(c.byIndex[e.index], func(x *entry[T]) bool { return x == e })
	if len(rest) == 0 {
		delete(c.byIndex, e.index)
	} else {
		c.byIndex[e.index] = rest
	}
}

func (c *collection[T]) all(present func(T, data.Origin) T) []T {
	entries := make([]*entry[T], 0, len(c.byKey))
	for _, e := range c.byKey {
		entries = append(entries, e)
	}
	return ordered(entries, present)
}

func (c *collection[T]) of(index string, present func(T, data.Origin) T) []T {
	return ordered(slices.Clone(c.byIndex[index]), present)
}

// ordered sorts user entries before system entries, each by sequence.
func ordered[T any](entries []*entry[T], present func(T, data.Origin) T) []T {
	slices.SortFunc(entries, func(a, b *entry[T]) int {
		ua, ub := a.user != 0, b.user != 0
		switch {
		case ua && !ub:
			return -1
		case !ua && ub:
			return 1
		case ua:
			return cmp.Compare(a.user, b.user)
		default:
			return cmp.Compare(a.system, b.system)
		}
	})
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = present(e.value, e.origin())
	}
	return out
}

func (c *collection[T]) clone() *collection[T] {
	n := &collection[T]{
		byKey:   make(map[string]*entry[T], len(c.byKey)),
		byIndex: make(map[string][]*entry[T], len(c.byIndex)),
		seq:     c.seq,
	}
	for idx, list := range c.byIndex {
		copied := make([]*entry[T], len(list))
		for i, e := range list {
			ce := *e
			copied[i] = &ce
			n.byKey[ce.key] = &ce
		}
		n.byIndex[idx] = copied
	}
	return n
}
