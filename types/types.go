// Package types implements the semantic types of Thorium
// and their method sets.
package types

import (
	"sort"
	"strings"
)

// A Type is a semantic type.
type Type interface {
	// Name returns the canonical name of the type.
	Name() string
	// Methods returns the methods of the type, sorted by signature.
	Methods() []Method
	// FindMethod returns the methods with the given name.
	FindMethod(name string) []Method
}

// A Method is a method of a type.
// Methods are identified by their signature.
type Method struct {
	Name   string
	Params []string
	Return string
}

// Signature returns the method's identity, as in f(A,B): R.
func (m Method) Signature() string {
	return m.Name + "(" + strings.Join(m.Params, ",") + "): " + m.Return
}

func (m Method) String() string { return m.Signature() }

// A ClassType is the type of a class.
// Its methods are its own and those of its supertype.
type ClassType struct {
	name  string
	super Type
	own   []Method
}

// A TypeType is the type of an interface-like type declaration.
type TypeType struct {
	name string
	own  []Method
}

// A UnionType is satisfied by any one of its components.
type UnionType struct {
	types []Type
}

// An IntersectionType is satisfied by all of its components.
type IntersectionType struct {
	types []Type
}

// EmptyType is the type of symbols with no known method surface.
type EmptyType struct{}

// NewClassType returns a new ClassType.
// super may be nil.
func NewClassType(name string, super Type, methods ...Method) *ClassType {
	if super == nil {
		super = EmptyType{}
	}
	return &ClassType{name: name, super: super, own: methods}
}

// NewTypeType returns a new TypeType.
func NewTypeType(name string, methods ...Method) *TypeType {
	return &TypeType{name: name, own: methods}
}

// NewUnion returns the union of the types, with the components in canonical order.
func NewUnion(types ...Type) *UnionType {
	return &UnionType{types: sorted(types)}
}

// NewIntersection returns the intersection of the types, with the components in canonical order.
func NewIntersection(types ...Type) *IntersectionType {
	return &IntersectionType{types: sorted(types)}
}

func sorted(types []Type) []Type {
	ts := append([]Type(nil), types...)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Name() < ts[j].Name() })
	return ts
}

func (t *ClassType) Name() string        { return t.name }
func (t *TypeType) Name() string         { return t.name }
func (t *UnionType) Name() string        { return compositeName(t.types, " | ") }
func (t *IntersectionType) Name() string { return compositeName(t.types, " & ") }
func (EmptyType) Name() string           { return "[empty]" }

func compositeName(types []Type, sep string) string {
	var s strings.Builder
	s.WriteRune('(')
	for i, t := range types {
		if i > 0 {
			s.WriteString(sep)
		}
		s.WriteString(t.Name())
	}
	s.WriteRune(')')
	return s.String()
}

// Super returns the supertype of the class.
func (t *ClassType) Super() Type { return t.super }

// Types returns the components of the union.
func (t *UnionType) Types() []Type { return t.types }

// Types returns the components of the intersection.
func (t *IntersectionType) Types() []Type { return t.types }

func (t *ClassType) Methods() []Method {
	return union(t.own, t.super.Methods())
}

func (t *TypeType) Methods() []Method {
	return union(t.own)
}

func (t *UnionType) Methods() []Method {
	var sets [][]Method
	for _, c := range t.types {
		sets = append(sets, c.Methods())
	}
	return union(sets...)
}

func (t *IntersectionType) Methods() []Method {
	if len(t.types) == 0 {
		return nil
	}
	ms := t.types[0].Methods()
	for _, c := range t.types[1:] {
		ms = intersect(ms, c.Methods())
	}
	return ms
}

func (EmptyType) Methods() []Method { return nil }

func (t *ClassType) FindMethod(name string) []Method {
	return byName(t.Methods(), name)
}

func (t *TypeType) FindMethod(name string) []Method {
	return byName(t.Methods(), name)
}

// FindMethod returns nothing: no method is guaranteed across the disjuncts.
func (t *UnionType) FindMethod(string) []Method { return nil }

// FindMethod returns nothing.
func (t *IntersectionType) FindMethod(string) []Method { return nil }

func (EmptyType) FindMethod(string) []Method { return nil }

// Equal returns whether two types are structurally equal.
func Equal(a, b Type) bool { return a.Name() == b.Name() }

func union(sets ...[]Method) []Method {
	seen := make(map[string]bool)
	var ms []Method
	for _, set := range sets {
		for _, m := range set {
			if sig := m.Signature(); !seen[sig] {
				seen[sig] = true
				ms = append(ms, m)
			}
		}
	}
	sortMethods(ms)
	return ms
}

func intersect(a, b []Method) []Method {
	in := make(map[string]bool)
	for _, m := range b {
		in[m.Signature()] = true
	}
	var ms []Method
	for _, m := range a {
		if in[m.Signature()] {
			ms = append(ms, m)
		}
	}
	sortMethods(ms)
	return ms
}

func byName(ms []Method, name string) []Method {
	var found []Method
	for _, m := range ms {
		if m.Name == name {
			found = append(found, m)
		}
	}
	return found
}

func sortMethods(ms []Method) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Signature() < ms[j].Signature() })
}
