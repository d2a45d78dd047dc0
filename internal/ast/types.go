// Package ast defines the Go types of a declaration document: the JSON or
// YAML file that lists the sorts, aliases, symbols and equations of a data
// specification.
package ast

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the top-level content of a declaration document.
type Document struct {
	Version      string         `json:"version" yaml:"version"`
	Sorts        []SortDecl     `json:"sorts,omitempty" yaml:"sorts,omitempty"`
	Aliases      []AliasDecl    `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	ContextSorts []SortExpr     `json:"context_sorts,omitempty" yaml:"context_sorts,omitempty"`
	Constructors []SymbolDecl   `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Mappings     []SymbolDecl   `json:"mappings,omitempty" yaml:"mappings,omitempty"`
	Equations    []EquationDecl `json:"equations,omitempty" yaml:"equations,omitempty"`

	lines map[string]int
}

// SortDecl declares a user sort. Finite records that the author expects
// the sort to have finitely many values.
type SortDecl struct {
	Sort   SortExpr `json:"sort" yaml:"sort"`
	Finite bool     `json:"finite,omitempty" yaml:"finite,omitempty"`
}

// AliasDecl binds Name to the sort Sort.
type AliasDecl struct {
	Name string   `json:"name" yaml:"name"`
	Sort SortExpr `json:"sort" yaml:"sort"`
}

// SymbolDecl declares a constructor or a mapping.
type SymbolDecl struct {
	Name string   `json:"name" yaml:"name"`
	Sort SortExpr `json:"sort" yaml:"sort"`
}

// VariableDecl declares a variable of an equation.
type VariableDecl struct {
	Name string   `json:"name" yaml:"name"`
	Sort SortExpr `json:"sort" yaml:"sort"`
}

// EquationDecl is a conditional rewrite equation. Condition is optional.
type EquationDecl struct {
	Variables []VariableDecl `json:"variables,omitempty" yaml:"variables,omitempty"`
	Condition *Expr          `json:"condition,omitempty" yaml:"condition,omitempty"`
	LHS       Expr           `json:"lhs" yaml:"lhs"`
	RHS       Expr           `json:"rhs" yaml:"rhs"`
}

// Sort expression kinds.
const (
	KindBasic    = "basic"
	KindStruct   = "struct"
	KindFunction = "function"
	KindList     = "list"
	KindSet      = "set"
	KindBag      = "bag"
)

// SortExpr is a sort expression discriminated by Kind. A bare string is
// accepted as shorthand for a basic sort of that name.
type SortExpr struct {
	Kind         string       `json:"kind" yaml:"kind"`
	Name         string       `json:"name,omitempty" yaml:"name,omitempty"`                 // basic
	Constructors []StructCons `json:"constructors,omitempty" yaml:"constructors,omitempty"` // struct
	Domain       []SortExpr   `json:"domain,omitempty" yaml:"domain,omitempty"`             // function
	Codomain     *SortExpr    `json:"codomain,omitempty" yaml:"codomain,omitempty"`         // function
	Element      *SortExpr    `json:"element,omitempty" yaml:"element,omitempty"`           // list, set, bag
}

// StructCons is one constructor of a structured sort.
type StructCons struct {
	Name       string      `json:"name" yaml:"name"`
	Recogniser string      `json:"recogniser,omitempty" yaml:"recogniser,omitempty"`
	Arguments  []StructArg `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// StructArg is an argument of a structured constructor, optionally named
// by its projection.
type StructArg struct {
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`
	Sort SortExpr `json:"sort" yaml:"sort"`
}

// sortFields avoids recursion into the custom unmarshalers.
type sortFields SortExpr

// UnmarshalJSON accepts either a sort object or a basic sort name.
func (s *SortExpr) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = SortExpr{Kind: KindBasic, Name: name}
		return nil
	}
	var f sortFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = SortExpr(f)
	return nil
}

// UnmarshalYAML accepts either a sort mapping or a basic sort name.
func (s *SortExpr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = SortExpr{Kind: KindBasic, Name: node.Value}
		return nil
	}
	var f sortFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	*s = SortExpr(f)
	return nil
}

// Basic returns the shorthand sort expression for name.
func Basic(name string) SortExpr {
	return SortExpr{Kind: KindBasic, Name: name}
}

// String renders s in the notation of the sort model, for messages.
func (s SortExpr) String() string {
	switch s.Kind {
	case KindBasic:
		return s.Name
	case KindList, KindSet, KindBag:
		if s.Element == nil {
			return s.Kind + "(?)"
		}
		return fmt.Sprintf("%s(%s)", containerName(s.Kind), s.Element)
	default:
		return s.Kind
	}
}

func containerName(kind string) string {
	switch kind {
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	default:
		return "Bag"
	}
}

// Expression kinds.
const (
	KindVariable    = "variable"
	KindSymbol      = "symbol"
	KindApplication = "application"
	KindNumeral     = "numeral"
)

// Expr is a data expression discriminated by Kind. Variables take their
// sort from the declaring equation.
type Expr struct {
	Kind      string    `json:"kind" yaml:"kind"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`           // variable, symbol
	Sort      *SortExpr `json:"sort,omitempty" yaml:"sort,omitempty"`           // symbol, numeral
	Value     string    `json:"value,omitempty" yaml:"value,omitempty"`         // numeral
	Head      *Expr     `json:"head,omitempty" yaml:"head,omitempty"`           // application
	Arguments []Expr    `json:"arguments,omitempty" yaml:"arguments,omitempty"` // application
}
