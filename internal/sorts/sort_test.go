package sorts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"basic", NewBasic("S"), "S"},
		{"list", NewList(Nat()), "List(Nat)"},
		{"nested container", NewSet(NewBag(Pos())), "Set(Bag(Pos))"},
		{"constant function", NewFunction(nil, Bool()), " -> Bool"},
		{"function", NewFunction([]Sort{NewBasic("S"), Nat()}, Bool()), "S # Nat -> Bool"},
		{"higher order domain", NewFunction([]Sort{NewFunction([]Sort{Nat()}, Nat())}, Nat()), "(Nat -> Nat) -> Nat"},
		{"struct", NewStructured(
			NewStructConstructor("a", "is_a", NewProjection("get", NewBasic("B"))),
			NewStructConstructor("c", ""),
		), "struct a(get: B)?is_a | c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sort.String())
		})
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := NewFunction([]Sort{NewBasic("S")}, NewSet(NewBasic("S")))
	b := NewFunction([]Sort{NewBasic("S")}, NewSet(NewBasic("S")))
	assert.True(t, Equal(a, b))
	assert.NotSame(t, a, b)
	assert.False(t, Equal(a, NewFunction([]Sort{NewBasic("S")}, NewList(NewBasic("S")))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestCompareIsTotal(t *testing.T) {
	xs := []Sort{Nat(), Bool(), NewList(Nat()), NewBasic("S")}
	for _, x := range xs {
		assert.Equal(t, 0, Compare(x, x))
		for _, y := range xs {
			assert.Equal(t, -Compare(y, x), Compare(x, y))
		}
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsBool(Bool()))
	assert.False(t, IsBool(Nat()))
	for _, s := range []Sort{Pos(), Nat(), Int(), Real()} {
		assert.True(t, IsNumeric(s), s.String())
	}
	assert.False(t, IsNumeric(Bool()))
	assert.False(t, IsNumeric(NewList(Nat())))
	assert.True(t, IsBuiltinName("Real"))
	assert.False(t, IsBuiltinName("S"))
}

func TestBasicNames(t *testing.T) {
	s := NewFunction([]Sort{NewBasic("A"), NewList(NewBasic("B"))}, NewStructured(
		NewStructConstructor("c", "", NewProjection("", NewBasic("A")), NewProjection("", NewBasic("C"))),
	))
	assert.Equal(t, []string{"A", "B", "C"}, BasicNames(s))
}

func TestMapRebuildsBottomUp(t *testing.T) {
	s := NewFunction([]Sort{NewBasic("A")}, NewList(NewBasic("A")))
	got := Map(s, func(x Sort) Sort {
		if b, ok := x.(*Basic); ok && b.Name() == "A" {
			return Nat()
		}
		return x
	})
	assert.Equal(t, "Nat -> List(Nat)", got.String())
	// The input is left untouched.
	assert.Equal(t, "A -> List(A)", s.String())
}

func TestRangeAndDomain(t *testing.T) {
	f := NewFunction([]Sort{NewBasic("S0")}, NewBasic("S"))
	require.Len(t, Domain(f), 1)
	assert.Equal(t, "S", Range(f).String())
	assert.Nil(t, Domain(NewBasic("S")))
	assert.Equal(t, "S", Range(NewBasic("S")).String())
}

func TestDedup(t *testing.T) {
	got := Dedup([]Sort{Nat(), NewBasic("Nat"), Bool(), Nat()})
	assert.Equal(t, []Sort{Nat(), Bool()}, got)
}

func TestAlias(t *testing.T) {
	a := NewAlias("L", NewList(Nat()))
	assert.Equal(t, "L", a.Name().Name())
	assert.Equal(t, "L = List(Nat)", a.String())
}
