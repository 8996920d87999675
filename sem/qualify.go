package sem

import (
	"fmt"
	"strings"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// qualify rewrites every type name of the tree to its fully-qualified form.
// It returns the original root and false if every name was already qualified.
func qualify(x *state, root *ast.Root) (*ast.Root, bool) {
	defer x.tr("qualify(%s)", unitName(root))()
	n, changed := mapTypeSpecs(root, func(s ast.TypeSpec) (ast.TypeSpec, bool) {
		return qualifySpec(s, root.Namespace)
	})
	return n.(*ast.Root), changed
}

// qualifySpec returns the spec with its type names qualified.
//
// A qualified name is kept.
// A simple name is resolved from the spec's scope:
// aliases are followed to their target,
// types and host classes give their canonical name,
// and type parameters and local names are kept.
// A name that is not found is qualified with the namespace.
func qualifySpec(s ast.TypeSpec, namespace string) (ast.TypeSpec, bool) {
	switch s := s.(type) {
	case *ast.TypeSpecSimple:
		c := false
		var scope *symbols.Table
		if ctx := s.Context(); ctx != nil {
			scope = ctx.Scope
		}
		name := qualifyName(s.Type, scope, namespace)
		args := qualifySpecs(s.Args, namespace, &c)
		if name == s.Type && !c {
			return s, false
		}
		return &ast.TypeSpecSimple{Meta: s.Meta.Derive(), Type: name, Args: args}, true
	case *ast.TypeSpecUnion:
		c := false
		types := qualifySpecs(s.Types, namespace, &c)
		if !c {
			return s, false
		}
		return &ast.TypeSpecUnion{Meta: s.Meta.Derive(), Types: types}, true
	case *ast.TypeSpecIntersection:
		c := false
		types := qualifySpecs(s.Types, namespace, &c)
		if !c {
			return s, false
		}
		return &ast.TypeSpecIntersection{Meta: s.Meta.Derive(), Types: types}, true
	case *ast.TypeSpecFunction:
		c := false
		params := qualifySpecs(s.Params, namespace, &c)
		ret, retChanged := qualifySpec(s.Return, namespace)
		if !c && !retChanged {
			return s, false
		}
		return &ast.TypeSpecFunction{Meta: s.Meta.Derive(), Params: params, Return: ret}, true
	case *ast.TypeSpecInferred:
		return s, false
	default:
		panic(fmt.Sprintf("impossible type spec: %T", s))
	}
}

func qualifySpecs(ss []ast.TypeSpec, namespace string, c *bool) []ast.TypeSpec {
	if ss == nil {
		return nil
	}
	ts := make([]ast.TypeSpec, len(ss))
	for i, s := range ss {
		var changed bool
		ts[i], changed = qualifySpec(s, namespace)
		*c = *c || changed
	}
	return ts
}

func qualifyName(name string, scope *symbols.Table, namespace string) string {
	if strings.Contains(name, ".") {
		return name
	}
	var syms []symbols.Symbol
	if scope != nil {
		syms = scope.Find(symbols.NewName(name))
	}
	if len(syms) == 0 {
		if namespace == "" {
			return name
		}
		return namespace + "." + name
	}
	switch sym := followAliases(syms[0], scope.Root()).(type) {
	case *symbols.AliasSymbol:
		return sym.Target
	case *symbols.ThoriumType:
		return sym.Name
	case *symbols.ThoriumLibType:
		return sym.Name
	case *symbols.JavaClass:
		return sym.Name
	case *symbols.JavaInterface:
		return sym.Name
	default:
		return name
	}
}

// followAliases returns the symbol an alias chain ends at,
// or the last alias if its target is not in the table.
func followAliases(sym symbols.Symbol, root *symbols.Table) symbols.Symbol {
	seen := make(map[symbols.Symbol]bool)
	for {
		a, ok := sym.(*symbols.AliasSymbol)
		if !ok || seen[a] {
			return sym
		}
		seen[a] = true
		next := root.Find(symbols.NewName(a.Target))
		if len(next) == 0 {
			return a
		}
		sym = next[0]
	}
}
