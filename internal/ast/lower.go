package ast

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/dataspec"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// DeclarationError is a problem with the declaration at Path.
type DeclarationError struct {
	Path string
	Err  error
}

func (e *DeclarationError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

func declError(path, format string, args ...any) error {
	return &DeclarationError{Path: path, Err: fmt.Errorf(format, args...)}
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// Paths of the declaration lists of a document.
const (
	PathSorts        = "$.sorts"
	PathAliases      = "$.aliases"
	PathContextSorts = "$.context_sorts"
	PathConstructors = "$.constructors"
	PathMappings     = "$.mappings"
	PathEquations    = "$.equations"
)

// Lower builds the specification declared by doc. Declarations that cannot
// be lowered are skipped. The returned error combines a *DeclarationError
// for each of them and for each symbol refused with a role conflict.
func Lower(doc *Document) (*dataspec.Specification, error) {
	spec := dataspec.New()
	var errs error

	for i, a := range doc.Aliases {
		alias, err := a.lower(index(PathAliases, i))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		spec.AddAlias(alias)
	}
	for i, d := range doc.Sorts {
		s, err := d.Sort.lower(index(PathSorts, i) + ".sort")
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		spec.AddSort(s)
	}
	for i, x := range doc.ContextSorts {
		s, err := x.lower(index(PathContextSorts, i))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		spec.AddContextSort(s)
	}
	errs = multierr.Append(errs, lowerSymbols(spec, doc.Constructors, PathConstructors, data.RoleConstructor))
	errs = multierr.Append(errs, lowerSymbols(spec, doc.Mappings, PathMappings, data.RoleMapping))
	for i, e := range doc.Equations {
		eq, err := e.lower(index(PathEquations, i))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		spec.AddEquation(eq)
	}
	return spec, errs
}

func lowerSymbols(spec *dataspec.Specification, decls []SymbolDecl, path string, role data.Role) error {
	var errs error
	for i, d := range decls {
		p := index(path, i)
		f, err := d.lower(p, role)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if role == data.RoleConstructor {
			err = spec.AddConstructor(f)
		} else {
			err = spec.AddMapping(f)
		}
		if err != nil {
			errs = multierr.Append(errs, &DeclarationError{Path: p, Err: err})
		}
	}
	return errs
}

// IsRoleConflict reports whether err is a symbol refused because a symbol
// of the same name and sort already has the other role.
func IsRoleConflict(err error) bool {
	var conflict *dataspec.RoleConflictError
	return errors.As(err, &conflict)
}

// LowerSort converts a sort expression found at path.
func LowerSort(s SortExpr, path string) (sorts.Sort, error) {
	return s.lower(path)
}

// LowerSymbol converts the symbol declared at path.
func LowerSymbol(d SymbolDecl, path string, role data.Role) (*data.FunctionSymbol, error) {
	return d.lower(path, role)
}

// LowerAlias converts the alias declared at path.
func LowerAlias(d AliasDecl, path string) (*sorts.Alias, error) {
	return d.lower(path)
}

// LowerEquation converts the equation declared at path.
func LowerEquation(d EquationDecl, path string) (*data.Equation, error) {
	return d.lower(path)
}

func (s SortExpr) lower(path string) (sorts.Sort, error) {
	switch s.Kind {
	case KindBasic:
		if s.Name == "" {
			return nil, declError(path, "basic sort without a name")
		}
		return sorts.NewBasic(s.Name), nil
	case KindList, KindSet, KindBag:
		if s.Element == nil {
			return nil, declError(path, "%s sort without an element sort", s.Kind)
		}
		elem, err := s.Element.lower(path + ".element")
		if err != nil {
			return nil, err
		}
		switch s.Kind {
		case KindList:
			return sorts.NewList(elem), nil
		case KindSet:
			return sorts.NewSet(elem), nil
		default:
			return sorts.NewBag(elem), nil
		}
	case KindFunction:
		if len(s.Domain) == 0 || s.Codomain == nil {
			return nil, declError(path, "function sort needs a domain and a codomain")
		}
		domain := make([]sorts.Sort, len(s.Domain))
		for i, d := range s.Domain {
			x, err := d.lower(index(path+".domain", i))
			if err != nil {
				return nil, err
			}
			domain[i] = x
		}
		codomain, err := s.Codomain.lower(path + ".codomain")
		if err != nil {
			return nil, err
		}
		return sorts.NewFunction(domain, codomain), nil
	case KindStruct:
		if len(s.Constructors) == 0 {
			return nil, declError(path, "structured sort without constructors")
		}
		cons := make([]*sorts.StructConstructor, len(s.Constructors))
		for i, c := range s.Constructors {
			cp := index(path+".constructors", i)
			if c.Name == "" {
				return nil, declError(cp, "structured constructor without a name")
			}
			args := make([]*sorts.Projection, len(c.Arguments))
			for j, a := range c.Arguments {
				x, err := a.Sort.lower(index(cp+".arguments", j) + ".sort")
				if err != nil {
					return nil, err
				}
				args[j] = sorts.NewProjection(a.Name, x)
			}
			cons[i] = sorts.NewStructConstructor(c.Name, c.Recogniser, args...)
		}
		return sorts.NewStructured(cons...), nil
	default:
		return nil, declError(path, "unknown sort kind %q", s.Kind)
	}
}

func (d AliasDecl) lower(path string) (*sorts.Alias, error) {
	if d.Name == "" {
		return nil, declError(path, "alias without a name")
	}
	target, err := d.Sort.lower(path + ".sort")
	if err != nil {
		return nil, err
	}
	return sorts.NewAlias(d.Name, target), nil
}

func (d SymbolDecl) lower(path string, role data.Role) (*data.FunctionSymbol, error) {
	if d.Name == "" {
		return nil, declError(path, "%s without a name", role)
	}
	s, err := d.Sort.lower(path + ".sort")
	if err != nil {
		return nil, err
	}
	return data.NewFunctionSymbol(d.Name, s, role, data.UserDefined), nil
}

func (d EquationDecl) lower(path string) (*data.Equation, error) {
	vars := make([]*data.Variable, 0, len(d.Variables))
	scope := make(map[string]*data.Variable, len(d.Variables))
	for i, v := range d.Variables {
		vp := index(path+".variables", i)
		if v.Name == "" {
			return nil, declError(vp, "variable without a name")
		}
		if _, dup := scope[v.Name]; dup {
			return nil, declError(vp, "variable %s declared twice", v.Name)
		}
		s, err := v.Sort.lower(vp + ".sort")
		if err != nil {
			return nil, err
		}
		x := data.NewVariable(v.Name, s)
		scope[v.Name] = x
		vars = append(vars, x)
	}

	var condition data.Expression
	if d.Condition != nil {
		c, err := d.Condition.lower(path+".condition", scope)
		if err != nil {
			return nil, err
		}
		condition = c
	}
	lhs, err := d.LHS.lower(path+".lhs", scope)
	if err != nil {
		return nil, err
	}
	rhs, err := d.RHS.lower(path+".rhs", scope)
	if err != nil {
		return nil, err
	}
	return data.NewEquation(vars, condition, lhs, rhs), nil
}

func (e Expr) lower(path string, scope map[string]*data.Variable) (data.Expression, error) {
	switch e.Kind {
	case KindVariable:
		v, ok := scope[e.Name]
		if !ok {
			return nil, declError(path, "variable %q is not declared by the equation", e.Name)
		}
		return v, nil
	case KindSymbol, KindNumeral:
		if e.Sort == nil {
			return nil, declError(path, "%s without a sort", e.Kind)
		}
		s, err := e.Sort.lower(path + ".sort")
		if err != nil {
			return nil, err
		}
		if e.Kind == KindNumeral {
			if e.Value == "" {
				return nil, declError(path, "numeral without a value")
			}
			return data.NewNumeral(e.Value, s), nil
		}
		if e.Name == "" {
			return nil, declError(path, "symbol without a name")
		}
		return data.NewSymbol(e.Name, s), nil
	case KindApplication:
		if e.Head == nil || len(e.Arguments) == 0 {
			return nil, declError(path, "application needs a head and at least one argument")
		}
		head, err := e.Head.lower(path+".head", scope)
		if err != nil {
			return nil, err
		}
		args := make([]data.Expression, len(e.Arguments))
		for i, a := range e.Arguments {
			x, err := a.lower(index(path+".arguments", i), scope)
			if err != nil {
				return nil, err
			}
			args[i] = x
		}
		return data.Apply(head, args...), nil
	default:
		return nil, declError(path, "unknown expression kind %q", e.Kind)
	}
}
