package sem

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
)

// A specFunc rewrites a type specification.
// It returns the original spec and false if nothing changed.
type specFunc func(ast.TypeSpec) (ast.TypeSpec, bool)

// mapTypeSpecs applies f to every outermost type specification of the tree rooted at n.
//
// The nodes on the path to a changed specification are rebuilt
// with a new ID and a copy of the original Context;
// all other nodes are shared with the original tree.
// If nothing changed, n itself is returned with false.
func mapTypeSpecs(n ast.Node, f specFunc) (ast.Node, bool) {
	r := &rewriter{f: f}
	n = r.node(n)
	return n, r.changed
}

type rewriter struct {
	f       specFunc
	changed bool
}

// sub rewrites a subtree, reporting whether it changed.
func (r *rewriter) sub(n ast.Node) (ast.Node, bool) {
	saved := r.changed
	r.changed = false
	n = r.node(n)
	c := r.changed
	r.changed = saved || c
	return n, c
}

func (r *rewriter) spec(s ast.TypeSpec, c *bool) ast.TypeSpec {
	t, changed := r.f(s)
	*c = *c || changed
	return t
}

func (r *rewriter) specs(ss []ast.TypeSpec, c *bool) []ast.TypeSpec {
	if ss == nil {
		return nil
	}
	ts := make([]ast.TypeSpec, len(ss))
	for i, s := range ss {
		ts[i] = r.spec(s, c)
	}
	return ts
}

func (r *rewriter) value(v ast.Value, c *bool) ast.Value {
	if v == nil {
		return nil
	}
	w, changed := r.sub(v)
	*c = *c || changed
	return w.(ast.Value)
}

func (r *rewriter) values(vs []ast.Value, c *bool) []ast.Value {
	if vs == nil {
		return nil
	}
	ws := make([]ast.Value, len(vs))
	for i, v := range vs {
		ws[i] = r.value(v, c)
	}
	return ws
}

func (r *rewriter) signature(s *ast.MethodSignature, c *bool) *ast.MethodSignature {
	t, changed := r.sub(s)
	*c = *c || changed
	return t.(*ast.MethodSignature)
}

func (r *rewriter) params(ps []*ast.Parameter, c *bool) []*ast.Parameter {
	if ps == nil {
		return nil
	}
	qs := make([]*ast.Parameter, len(ps))
	for i, p := range ps {
		q, changed := r.sub(p)
		*c = *c || changed
		qs[i] = q.(*ast.Parameter)
	}
	return qs
}

func (r *rewriter) statements(ss []*ast.Statement, c *bool) []*ast.Statement {
	if ss == nil {
		return nil
	}
	ts := make([]*ast.Statement, len(ss))
	for i, s := range ss {
		t, changed := r.sub(s)
		*c = *c || changed
		ts[i] = t.(*ast.Statement)
	}
	return ts
}

func (r *rewriter) node(n ast.Node) ast.Node {
	var c bool
	switch n := n.(type) {
	case *ast.Root:
		top, changed := r.sub(n.Top)
		if !changed {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Top = top.(ast.TopLevel)
		r.changed = true
		return &d

	case *ast.Type:
		super := r.spec(n.SuperType, &c)
		methods := make([]*ast.MethodSignature, len(n.Methods))
		for i, m := range n.Methods {
			methods[i] = r.signature(m, &c)
		}
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.SuperType = super
		d.Methods = methods
		r.changed = true
		return &d

	case *ast.Class:
		super := r.spec(n.SuperType, &c)
		attrs := make([]*ast.Attribute, len(n.Attributes))
		for i, a := range n.Attributes {
			b, changed := r.sub(a)
			c = c || changed
			attrs[i] = b.(*ast.Attribute)
		}
		methods := make([]*ast.Method, len(n.Methods))
		for i, m := range n.Methods {
			k, changed := r.sub(m)
			c = c || changed
			methods[i] = k.(*ast.Method)
		}
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.SuperType = super
		d.Attributes = attrs
		d.Methods = methods
		r.changed = true
		return &d

	case *ast.Attribute:
		typ := r.spec(n.Type, &c)
		value := r.value(n.Value, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Type = typ
		d.Value = value
		r.changed = true
		return &d

	case *ast.Method:
		sig := r.signature(n.Signature, &c)
		stmts := r.statements(n.Statements, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Signature = sig
		d.Statements = stmts
		r.changed = true
		return &d

	case *ast.MethodSignature:
		params := r.params(n.Params, &c)
		ret := r.spec(n.ReturnType, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Params = params
		d.ReturnType = ret
		r.changed = true
		return &d

	case *ast.Parameter:
		typ := r.spec(n.Type, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Type = typ
		r.changed = true
		return &d

	case *ast.Statement:
		value := r.value(n.Value, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Value = value
		r.changed = true
		return &d

	case *ast.StringValue, *ast.NumberValue, *ast.BooleanValue, *ast.NoneValue, *ast.IdentifierValue:
		return n

	case *ast.NewAssignmentValue:
		typ := r.spec(n.Type, &c)
		value := r.value(n.Value, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Type = typ
		d.Value = value
		r.changed = true
		return &d

	case *ast.DirectAssignmentValue:
		value := r.value(n.Value, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Value = value
		r.changed = true
		return &d

	case *ast.IndirectAssignmentValue:
		indirect := r.value(n.Indirect, &c)
		value := r.value(n.Value, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Indirect = indirect
		d.Value = value
		r.changed = true
		return &d

	case *ast.MethodCallValue:
		typeArgs := r.specs(n.TypeArgs, &c)
		args := r.values(n.Args, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.TypeArgs = typeArgs
		d.Args = args
		r.changed = true
		return &d

	case *ast.NestedValue:
		outer := r.value(n.Outer, &c)
		inner := r.value(n.Inner, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Outer = outer
		d.Inner = inner
		r.changed = true
		return &d

	case *ast.FunctionValue:
		params := r.params(n.Params, &c)
		ret := r.spec(n.ReturnType, &c)
		stmts := r.statements(n.Statements, &c)
		if !c {
			return n
		}
		d := *n
		d.Meta = n.Meta.Derive()
		d.Params = params
		d.ReturnType = ret
		d.Statements = stmts
		r.changed = true
		return &d

	default:
		panic(fmt.Sprintf("impossible node type: %T", n))
	}
}
