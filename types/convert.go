package types

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// FromSpec returns the semantic type of a type specification,
// resolving names in the given scope.
func FromSpec(spec ast.TypeSpec, scope *symbols.Table) Type {
	c := converter{seen: make(map[string]bool)}
	return c.fromSpec(spec, scope)
}

type converter struct {
	// seen holds the declarations being converted,
	// so a type that is its own supertype terminates.
	seen map[string]bool
}

func (c *converter) fromSpec(spec ast.TypeSpec, scope *symbols.Table) Type {
	switch spec := spec.(type) {
	case *ast.TypeSpecSimple:
		return c.fromName(spec.Type, scope)
	case *ast.TypeSpecUnion:
		return NewUnion(c.fromSpecs(spec.Types, scope)...)
	case *ast.TypeSpecIntersection:
		return NewIntersection(c.fromSpecs(spec.Types, scope)...)
	case *ast.TypeSpecFunction, *ast.TypeSpecInferred:
		return EmptyType{}
	default:
		panic(fmt.Sprintf("impossible type spec: %T", spec))
	}
}

func (c *converter) fromSpecs(specs []ast.TypeSpec, scope *symbols.Table) []Type {
	var ts []Type
	for _, s := range specs {
		ts = append(ts, c.fromSpec(s, scope))
	}
	return ts
}

func (c *converter) fromName(name string, scope *symbols.Table) Type {
	syms := scope.Find(symbols.NewName(name))
	if len(syms) != 1 {
		return EmptyType{}
	}
	switch sym := syms[0].(type) {
	case *symbols.AliasSymbol:
		return c.fromName(sym.Target, scope.Root())
	case *symbols.ThoriumType:
		if c.seen[sym.Name] {
			return EmptyType{}
		}
		c.seen[sym.Name] = true
		defer delete(c.seen, sym.Name)
		switch n := sym.Node.(type) {
		case *ast.Class:
			super := c.fromSpec(n.SuperType, scopeOf(n, scope))
			return NewClassType(sym.Name, super, classMethods(n)...)
		case *ast.Type:
			return NewTypeType(sym.Name, typeMethods(n)...)
		default:
			return EmptyType{}
		}
	default:
		return EmptyType{}
	}
}

func scopeOf(n ast.Node, def *symbols.Table) *symbols.Table {
	if s := n.Context().Scope; s != nil {
		return s
	}
	return def
}

func classMethods(n *ast.Class) []Method {
	var ms []Method
	for _, m := range n.Methods {
		ret := m.Signature.ReturnType
		if t := m.Context().Type; t != nil {
			ret = t
		}
		ms = append(ms, methodOf(m.Signature, ret))
	}
	return ms
}

func typeMethods(n *ast.Type) []Method {
	var ms []Method
	for _, m := range n.Methods {
		ms = append(ms, methodOf(m, m.ReturnType))
	}
	return ms
}

func methodOf(sig *ast.MethodSignature, ret ast.TypeSpec) Method {
	m := Method{Name: sig.Name, Return: ret.String()}
	for _, p := range sig.Params {
		m.Params = append(m.Params, p.Type.String())
	}
	return m
}
