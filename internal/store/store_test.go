package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

var (
	sortS  = sorts.NewBasic("S")
	sortS0 = sorts.NewBasic("S0")
)

func names(fs []*data.FunctionSymbol) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name()
	}
	return out
}

func TestConstructorsOfSortInDeclarationOrder(t *testing.T) {
	s := New()
	require.NoError(t, s.AddConstructor(data.NewConstructor("f", sortS)))
	require.NoError(t, s.AddConstructor(data.NewConstructor("h", sortS0)))
	require.NoError(t, s.AddConstructor(data.NewConstructor("g", sorts.NewFunction([]sorts.Sort{sortS0}, sortS))))

	assert.Equal(t, []string{"f", "g"}, names(s.ConstructorsOf(sortS)))
	assert.Equal(t, []string{"h"}, names(s.ConstructorsOf(sortS0)))
	assert.Equal(t, []string{"f", "h", "g"}, names(s.Constructors()))
	assert.Empty(t, s.ConstructorsOf(sorts.Nat()))
}

func TestAddIsIdempotentAndRemoveAbsentIsNoop(t *testing.T) {
	s := New()
	f := data.NewMapping("f", sortS)
	require.NoError(t, s.AddMapping(f))
	require.NoError(t, s.AddMapping(f))
	assert.Len(t, s.Mappings(), 1)

	s.RemoveMapping(data.NewMapping("absent", sortS), data.UserDefined)
	assert.Len(t, s.Mappings(), 1)

	s.RemoveMapping(f, data.UserDefined)
	assert.Empty(t, s.Mappings())
	assert.Empty(t, s.MappingsOf(sortS))
	assert.False(t, s.HasMapping(f))
}

func TestRoleConflict(t *testing.T) {
	s := New()
	require.NoError(t, s.AddConstructor(data.NewConstructor("f", sortS)))

	err := s.AddMapping(data.NewMapping("f", sortS))
	var rc *RoleConflictError
	require.True(t, errors.As(err, &rc))
	assert.Equal(t, data.RoleConstructor, rc.Existing)
	assert.Empty(t, s.Mappings())

	// Same name at a different sort is a different symbol.
	assert.NoError(t, s.AddMapping(data.NewMapping("f", sortS0)))
}

func TestUserEntriesPrecedeSystemEntries(t *testing.T) {
	s := New()
	sys := data.NewConstructor("true", sorts.Bool()).WithOrigin(data.SystemDefined)
	require.NoError(t, s.AddConstructor(sys))
	require.NoError(t, s.AddConstructor(data.NewConstructor("f", sortS)))

	all := s.Constructors()
	require.Len(t, all, 2)
	assert.Equal(t, "f", all[0].Name())
	assert.Equal(t, data.UserDefined, all[0].Origin())
	assert.Equal(t, data.SystemDefined, all[1].Origin())
}

func TestEntryDeclaredTwiceSurvivesOneWithdrawal(t *testing.T) {
	s := New()
	user := data.NewConstructor("true", sorts.Bool())
	require.NoError(t, s.AddConstructor(user.WithOrigin(data.SystemDefined)))
	require.NoError(t, s.AddConstructor(user))

	all := s.Constructors()
	require.Len(t, all, 1)
	assert.Equal(t, data.UserDefined, all[0].Origin())

	s.RemoveConstructor(user, data.SystemDefined)
	require.True(t, s.HasConstructor(user))

	s.RemoveConstructor(user, data.UserDefined)
	assert.False(t, s.HasConstructor(user))
}

func TestEquationsIndexedByHeadSymbol(t *testing.T) {
	s := New()
	notSort := sorts.NewFunction([]sorts.Sort{sorts.Bool()}, sorts.Bool())
	not := data.NewMapping("!", notSort)
	tt := data.NewSymbol("true", sorts.Bool())
	ff := data.NewSymbol("false", sorts.Bool())
	e1 := data.NewEquation(nil, nil, data.Apply(not.Symbol(), tt), ff)
	e2 := data.NewEquation(nil, nil, data.Apply(not.Symbol(), ff), tt)
	e3 := data.NewEquation(nil, nil, tt, tt)

	s.AddEquation(e1)
	s.AddEquation(e2)
	s.AddEquation(e3)
	s.AddEquation(e1)

	assert.Len(t, s.Equations(), 3)
	assert.Len(t, s.EquationsOf(not), 2)
	assert.True(t, s.HasEquation(e2))

	s.RemoveEquation(e2, data.UserDefined)
	assert.Len(t, s.EquationsOf(not), 1)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	require.NoError(t, s.AddConstructor(data.NewConstructor("f", sortS)))
	c := s.Clone()

	require.NoError(t, s.AddConstructor(data.NewConstructor("g", sortS)))
	c.RemoveConstructor(data.NewConstructor("f", sortS), data.UserDefined)

	assert.Equal(t, []string{"f", "g"}, names(s.ConstructorsOf(sortS)))
	assert.Empty(t, c.ConstructorsOf(sortS))
}
