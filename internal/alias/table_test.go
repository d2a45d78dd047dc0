package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

func basic(name string) *sorts.Basic { return sorts.NewBasic(name) }

func structOf(cons ...*sorts.StructConstructor) *sorts.Structured {
	return sorts.NewStructured(cons...)
}

func con(name string, args ...sorts.Sort) *sorts.StructConstructor {
	projs := make([]*sorts.Projection, len(args))
	for i, a := range args {
		projs[i] = sorts.NewProjection("", a)
	}
	return sorts.NewStructConstructor(name, "", projs...)
}

func table(aliases ...*sorts.Alias) *Table {
	t := NewTable()
	for _, a := range aliases {
		t.Add(a)
	}
	return t
}

func norm(t *Table, s sorts.Sort) string {
	return t.Normalise(s).String()
}

func TestNormaliseWithoutAliasesIsIdentity(t *testing.T) {
	tb := NewTable()
	s := sorts.NewList(basic("S"))
	assert.Same(t, s, tb.Normalise(s))
}

func TestBasicChainResolvesToUnderlyingSort(t *testing.T) {
	tb := table(
		sorts.NewAlias("A", basic("B")),
		sorts.NewAlias("B", sorts.Nat()),
	)
	assert.Equal(t, "Nat", norm(tb, basic("A")))
	assert.Equal(t, "Nat", norm(tb, basic("B")))
	assert.Equal(t, "List(Nat)", norm(tb, sorts.NewList(basic("A"))))
}

func TestContainerAliasIsInlined(t *testing.T) {
	tb := table(sorts.NewAlias("L", sorts.NewList(basic("N"))), sorts.NewAlias("N", sorts.Nat()))
	assert.Equal(t, "List(Nat)", norm(tb, basic("L")))
	assert.Equal(t, "Set(List(Nat))", norm(tb, sorts.NewSet(basic("L"))))
	_, ok := tb.Definition("L")
	assert.False(t, ok)
}

func TestStructAliasNameIsCanonical(t *testing.T) {
	tree := structOf(con("leaf"), con("node", basic("Tree"), basic("Tree")))
	tb := table(sorts.NewAlias("Tree", tree))

	assert.Equal(t, "Tree", norm(tb, basic("Tree")))
	assert.Equal(t, "Tree", norm(tb, tree))
	assert.Equal(t, "List(Tree)", norm(tb, sorts.NewList(tree)))

	def, ok := tb.Definition("Tree")
	require.True(t, ok)
	assert.Equal(t, "struct leaf | node(Tree, Tree)", def.String())
}

func TestMutuallyRecursiveStructsTerminate(t *testing.T) {
	// A = struct a(B); B = struct b(A) | c;
	tb := table(
		sorts.NewAlias("A", structOf(con("a", basic("B")))),
		sorts.NewAlias("B", structOf(con("b", basic("A")), con("c"))),
	)
	assert.Equal(t, "A", norm(tb, basic("A")))
	assert.Equal(t, "B", norm(tb, basic("B")))

	defA, ok := tb.Definition("A")
	require.True(t, ok)
	assert.Equal(t, "struct a(B)", defA.String())
}

func TestBasicCycleUsesFirstDeclaredName(t *testing.T) {
	tb := table(
		sorts.NewAlias("X", basic("Y")),
		sorts.NewAlias("Y", basic("Z")),
		sorts.NewAlias("Z", basic("Y")),
		sorts.NewAlias("W", basic("W")),
	)
	assert.Equal(t, "Y", norm(tb, basic("X")))
	assert.Equal(t, "Y", norm(tb, basic("Y")))
	assert.Equal(t, "Y", norm(tb, basic("Z")))
	assert.Equal(t, "W", norm(tb, basic("W")))
	assert.Equal(t, [][]string{{"Y", "Z"}, {"W"}}, tb.Cycles())
}

func TestRecursiveContainerAliasBecomesAnchor(t *testing.T) {
	tb := table(
		sorts.NewAlias("A", sorts.NewList(basic("B"))),
		sorts.NewAlias("B", basic("A")),
	)
	assert.Equal(t, "A", norm(tb, basic("A")))
	assert.Equal(t, "A", norm(tb, basic("B")))
	assert.Equal(t, "A", norm(tb, sorts.NewList(basic("A"))))
	assert.Equal(t, "A", norm(tb, sorts.NewList(basic("B"))))
}

func TestAliasesOfSameStructShareRepresentative(t *testing.T) {
	tb := table(
		sorts.NewAlias("C1", structOf(con("red"), con("green"))),
		sorts.NewAlias("C2", structOf(con("red"), con("green"))),
	)
	assert.Equal(t, "C1", norm(tb, basic("C2")))
	got := tb.AliasesOf(basic("C1"))
	require.Len(t, got, 2)
	assert.Equal(t, "C1", got[0].Name().Name())
	assert.Equal(t, "C2", got[1].Name().Name())
}

func TestStructMatchedAfterNormalisingComponents(t *testing.T) {
	tb := table(
		sorts.NewAlias("N", sorts.Nat()),
		sorts.NewAlias("P", structOf(con("pair", basic("N"), basic("N")))),
	)
	assert.Equal(t, "P", norm(tb, structOf(con("pair", sorts.Nat(), sorts.Nat()))))
}

func TestNormaliseIsIdempotent(t *testing.T) {
	tb := table(
		sorts.NewAlias("A", structOf(con("a", basic("B")))),
		sorts.NewAlias("B", structOf(con("b", basic("A")), con("c"))),
		sorts.NewAlias("L", sorts.NewList(basic("A"))),
		sorts.NewAlias("X", basic("Y")),
		sorts.NewAlias("Y", basic("X")),
		sorts.NewAlias("R", sorts.NewSet(basic("R2"))),
		sorts.NewAlias("R2", basic("R")),
	)
	inputs := []sorts.Sort{
		basic("A"), basic("B"), basic("L"), basic("X"), basic("R"), basic("R2"),
		sorts.NewFunction([]sorts.Sort{basic("L"), basic("Y")}, sorts.NewBag(basic("B"))),
		structOf(con("a", basic("B"))),
		sorts.NewSet(basic("R")),
	}
	for _, s := range inputs {
		once := tb.Normalise(s)
		assert.Equal(t, once.String(), tb.Normalise(once).String(), "input %s", s)
	}
}

func TestAliasTransparency(t *testing.T) {
	target := structOf(con("a", basic("B")))
	tb := table(
		sorts.NewAlias("A", target),
		sorts.NewAlias("B", structOf(con("b", basic("A")), con("c"))),
		sorts.NewAlias("L", sorts.NewList(sorts.Nat())),
	)
	contexts := []func(sorts.Sort) sorts.Sort{
		func(s sorts.Sort) sorts.Sort { return s },
		func(s sorts.Sort) sorts.Sort { return sorts.NewSet(s) },
		func(s sorts.Sort) sorts.Sort { return sorts.NewFunction([]sorts.Sort{s}, sorts.Bool()) },
	}
	for _, c := range contexts {
		assert.Equal(t, norm(tb, c(target)), norm(tb, c(basic("A"))))
		assert.Equal(t, norm(tb, c(sorts.NewList(sorts.Nat()))), norm(tb, c(basic("L"))))
	}
}

func TestAddReplaceAndRemove(t *testing.T) {
	tb := NewTable()
	assert.True(t, tb.Add(sorts.NewAlias("A", sorts.Nat())))
	assert.False(t, tb.Add(sorts.NewAlias("A", sorts.Nat())))
	assert.True(t, tb.Add(sorts.NewAlias("B", sorts.Int())))
	assert.Equal(t, "Nat", norm(tb, basic("A")))

	assert.True(t, tb.Add(sorts.NewAlias("A", sorts.Pos())))
	assert.Equal(t, "Pos", norm(tb, basic("A")))
	assert.Equal(t, "A", tb.Aliases()[0].Name().Name())

	assert.True(t, tb.Remove("A"))
	assert.False(t, tb.Remove("A"))
	assert.Equal(t, "A", norm(tb, basic("A")))
	a, ok := tb.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "Int", a.Target().String())
	assert.Equal(t, 1, tb.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	tb := table(sorts.NewAlias("A", sorts.Nat()))
	c := tb.Clone()
	tb.Add(sorts.NewAlias("B", sorts.Nat()))
	c.Remove("A")
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "Nat", norm(tb, basic("A")))
}
