package sem

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
)

// flatten rewrites every union and intersection of the tree to its flat form.
// It returns the original root and false if every type was already flat.
func flatten(x *state, root *ast.Root) (*ast.Root, bool) {
	defer x.tr("flatten(%s)", unitName(root))()
	n, changed := mapTypeSpecs(root, flattenSpec)
	return n.(*ast.Root), changed
}

// flattenSpec returns the flat form of a type specification.
//
// Nested unions are spliced into their enclosing union in place,
// and likewise for intersections.
// Components with the same string are kept once, at their first position.
// A union or intersection of a single component is that component,
// positioned at the union or intersection.
// flattenSpec is idempotent.
func flattenSpec(s ast.TypeSpec) (ast.TypeSpec, bool) {
	switch s := s.(type) {
	case *ast.TypeSpecSimple:
		c := false
		args := flattenSpecs(s.Args, &c)
		if !c {
			return s, false
		}
		return &ast.TypeSpecSimple{Meta: s.Meta.Derive(), Type: s.Type, Args: args}, true
	case *ast.TypeSpecFunction:
		c := false
		params := flattenSpecs(s.Params, &c)
		ret, retChanged := flattenSpec(s.Return)
		if !c && !retChanged {
			return s, false
		}
		return &ast.TypeSpecFunction{Meta: s.Meta.Derive(), Params: params, Return: ret}, true
	case *ast.TypeSpecUnion:
		types, c := flattenComponents(s.Types, func(t ast.TypeSpec) ([]ast.TypeSpec, bool) {
			u, ok := t.(*ast.TypeSpecUnion)
			if !ok {
				return nil, false
			}
			return u.Types, true
		})
		if len(types) == 1 {
			return reposition(types[0], s), true
		}
		if !c {
			return s, false
		}
		return &ast.TypeSpecUnion{Meta: s.Meta.Derive(), Types: types}, true
	case *ast.TypeSpecIntersection:
		types, c := flattenComponents(s.Types, func(t ast.TypeSpec) ([]ast.TypeSpec, bool) {
			i, ok := t.(*ast.TypeSpecIntersection)
			if !ok {
				return nil, false
			}
			return i.Types, true
		})
		if len(types) == 1 {
			return reposition(types[0], s), true
		}
		if !c {
			return s, false
		}
		return &ast.TypeSpecIntersection{Meta: s.Meta.Derive(), Types: types}, true
	case *ast.TypeSpecInferred:
		return s, false
	default:
		panic(fmt.Sprintf("impossible type spec: %T", s))
	}
}

func flattenSpecs(ss []ast.TypeSpec, c *bool) []ast.TypeSpec {
	if ss == nil {
		return nil
	}
	ts := make([]ast.TypeSpec, len(ss))
	for i, s := range ss {
		var changed bool
		ts[i], changed = flattenSpec(s)
		*c = *c || changed
	}
	return ts
}

// flattenComponents returns the flattened, deduplicated components
// and whether they differ from ss.
// same returns the components of a spec of the same kind as the parent.
//
// Nested components are spliced in place of their parent,
// so (A | (B | C) | D) is (A | B | C | D), not (A | D | B | C).
// Either order denotes the same type.
func flattenComponents(ss []ast.TypeSpec, same func(ast.TypeSpec) ([]ast.TypeSpec, bool)) ([]ast.TypeSpec, bool) {
	var flat []ast.TypeSpec
	seen := make(map[string]bool)
	add := func(t ast.TypeSpec) {
		if str := t.String(); !seen[str] {
			seen[str] = true
			flat = append(flat, t)
		}
	}
	for _, s := range ss {
		t, _ := flattenSpec(s)
		if kids, ok := same(t); ok {
			for _, k := range kids {
				add(k)
			}
			continue
		}
		add(t)
	}
	if len(flat) != len(ss) {
		return flat, true
	}
	for i := range flat {
		if flat[i] != ss[i] {
			return flat, true
		}
	}
	return flat, false
}

// reposition returns a copy of s with a new ID, positioned at the node at.
func reposition(s ast.TypeSpec, at ast.Node) ast.TypeSpec {
	var m ast.Meta
	switch s := s.(type) {
	case *ast.TypeSpecSimple:
		m = s.Meta.Derive()
		m.Context().Pos = at.Pos()
		return &ast.TypeSpecSimple{Meta: m, Type: s.Type, Args: s.Args}
	case *ast.TypeSpecUnion:
		m = s.Meta.Derive()
		m.Context().Pos = at.Pos()
		return &ast.TypeSpecUnion{Meta: m, Types: s.Types}
	case *ast.TypeSpecIntersection:
		m = s.Meta.Derive()
		m.Context().Pos = at.Pos()
		return &ast.TypeSpecIntersection{Meta: m, Types: s.Types}
	case *ast.TypeSpecFunction:
		m = s.Meta.Derive()
		m.Context().Pos = at.Pos()
		return &ast.TypeSpecFunction{Meta: m, Params: s.Params, Return: s.Return}
	case *ast.TypeSpecInferred:
		m = s.Meta.Derive()
		m.Context().Pos = at.Pos()
		return &ast.TypeSpecInferred{Meta: m}
	default:
		panic(fmt.Sprintf("impossible type spec: %T", s))
	}
}
