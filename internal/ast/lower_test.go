package ast

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

func names(fs []*data.FunctionSymbol) []string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Name())
	}
	return out
}

func containsAll(t *testing.T, got []string, want ...string) {
	t.Helper()
	have := make(map[string]bool, len(got))
	for _, g := range got {
		have[g] = true
	}
	for _, w := range want {
		if !have[w] {
			t.Errorf("%q missing from %v", w, got)
		}
	}
}

func TestLower_TreeExample(t *testing.T) {
	doc, err := LoadDocument(filepath.Join(examples, "tree.json"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	spec, err := Lower(doc)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	tree := sorts.NewBasic("Tree")
	containsAll(t, names(spec.ConstructorsOf(tree)), "leaf", "node")
	containsAll(t, names(spec.Mappings()), "size", "left", "right", "is_leaf", "is_node", "+")

	var user []*data.Equation
	for _, e := range spec.Equations() {
		if e.Origin() == data.UserDefined {
			user = append(user, e)
		}
	}
	if len(user) != 2 {
		t.Fatalf("user equations = %d, want 2", len(user))
	}
	for _, e := range user {
		if err := spec.WellTyped(e); err != nil {
			t.Errorf("WellTyped(%s): %v", e, err)
		}
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLower_ColoursExample(t *testing.T) {
	doc, err := LoadDocument(filepath.Join(examples, "colours.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	spec, err := Lower(doc)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	for _, name := range []string{"Colour", "Palette"} {
		finite, err := spec.IsCertainlyFinite(sorts.NewBasic(name))
		if err != nil {
			t.Fatalf("IsCertainlyFinite(%s): %v", name, err)
		}
		if !finite {
			t.Errorf("%s should be certainly finite", name)
		}
	}
	ctx := spec.ContextSorts()
	if len(ctx) != 1 || ctx[0].String() != "List(Colour)" {
		t.Errorf("ContextSorts = %v", ctx)
	}
}

func TestLower_AggregatesErrors(t *testing.T) {
	doc := &Document{
		Version: "1",
		Sorts: []SortDecl{
			{Sort: SortExpr{Kind: "tuple"}},
			{Sort: Basic("S")},
		},
		Aliases: []AliasDecl{{Name: "", Sort: Basic("S")}},
		Constructors: []SymbolDecl{
			{Name: "c", Sort: Basic("S")},
			{Name: "bad", Sort: SortExpr{Kind: KindList}},
		},
		Mappings: []SymbolDecl{{Name: "c", Sort: Basic("S")}},
		Equations: []EquationDecl{{
			LHS: Expr{Kind: KindVariable, Name: "x"},
			RHS: Expr{Kind: KindSymbol, Name: "c", Sort: &SortExpr{Kind: KindBasic, Name: "S"}},
		}},
	}

	spec, err := Lower(doc)
	if spec == nil {
		t.Fatal("Lower should return the partial specification")
	}
	errs := multierr.Errors(err)
	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(errs), err)
	}

	wantPaths := []string{
		"$.aliases[0]",
		"$.sorts[0].sort",
		"$.constructors[1].sort",
		"$.mappings[0]",
		"$.equations[0].lhs",
	}
	for i, e := range errs {
		var de *DeclarationError
		if !errors.As(e, &de) {
			t.Errorf("error %d is %T, want *DeclarationError", i, e)
			continue
		}
		if de.Path != wantPaths[i] {
			t.Errorf("error %d path = %q, want %q", i, de.Path, wantPaths[i])
		}
	}
	if !IsRoleConflict(errs[3]) {
		t.Errorf("mapping c should be a role conflict: %v", errs[3])
	}
	if IsRoleConflict(errs[0]) {
		t.Errorf("alias error is not a role conflict")
	}

	containsAll(t, names(spec.Constructors()), "c")
	for _, f := range spec.Mappings() {
		if f.Name() == "c" {
			t.Error("conflicting mapping c should not be stored")
		}
	}
}

func TestLowerSort(t *testing.T) {
	tests := []struct {
		name string
		in   SortExpr
		want string
	}{
		{"basic", Basic("Nat"), "Nat"},
		{"bag", SortExpr{Kind: KindBag, Element: &SortExpr{Kind: KindBasic, Name: "Bool"}}, "Bag(Bool)"},
		{"function", SortExpr{
			Kind:     KindFunction,
			Domain:   []SortExpr{Basic("Nat"), Basic("Bool")},
			Codomain: &SortExpr{Kind: KindBasic, Name: "Nat"},
		}, "Nat # Bool -> Nat"},
		{"struct", SortExpr{Kind: KindStruct, Constructors: []StructCons{
			{Name: "leaf"},
			{Name: "node", Recogniser: "is_node", Arguments: []StructArg{{Sort: Basic("T")}, {Name: "r", Sort: Basic("T")}}},
		}}, "struct leaf | node(T, r: T)?is_node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LowerSort(tt.in, "$")
			if err != nil {
				t.Fatalf("LowerSort: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("LowerSort = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLowerSort_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   SortExpr
		path string
	}{
		{"nameless basic", SortExpr{Kind: KindBasic}, "$"},
		{"function without codomain", SortExpr{Kind: KindFunction, Domain: []SortExpr{Basic("Nat")}}, "$"},
		{"nested", SortExpr{Kind: KindSet, Element: &SortExpr{Kind: "array"}}, "$.element"},
		{"nameless struct constructor", SortExpr{Kind: KindStruct, Constructors: []StructCons{{}}}, "$.constructors[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LowerSort(tt.in, "$")
			var de *DeclarationError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want *DeclarationError", err)
			}
			if de.Path != tt.path {
				t.Errorf("path = %q, want %q", de.Path, tt.path)
			}
		})
	}
}

func TestLowerEquation(t *testing.T) {
	nat := Basic("Nat")
	plus := &SortExpr{Kind: KindFunction, Domain: []SortExpr{nat, nat}, Codomain: &nat}
	decl := EquationDecl{
		Variables: []VariableDecl{{Name: "n", Sort: nat}},
		Condition: &Expr{Kind: KindSymbol, Name: "true", Sort: &SortExpr{Kind: KindBasic, Name: "Bool"}},
		LHS: Expr{Kind: KindApplication, Head: &Expr{Kind: KindSymbol, Name: "+", Sort: plus}, Arguments: []Expr{
			{Kind: KindVariable, Name: "n"},
			{Kind: KindNumeral, Value: "0", Sort: &nat},
		}},
		RHS: Expr{Kind: KindVariable, Name: "n"},
	}
	eq, err := LowerEquation(decl, "$.equations[0]")
	if err != nil {
		t.Fatalf("LowerEquation: %v", err)
	}
	if got := eq.String(); !strings.Contains(got, "+(n, 0)") || !strings.Contains(got, "true") {
		t.Errorf("equation = %s", got)
	}
	if len(eq.Variables()) != 1 || eq.Condition() == nil {
		t.Errorf("variables or condition lost: %s", eq)
	}

	decl.Variables = append(decl.Variables, VariableDecl{Name: "n", Sort: nat})
	if _, err := LowerEquation(decl, "$.equations[0]"); err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Errorf("expected duplicate variable error, got %v", err)
	}
}
