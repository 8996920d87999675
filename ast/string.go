package ast

import "strings"

func (n *TypeSpecSimple) String() string {
	var s strings.Builder
	buildTypeSpecString(n, &s)
	return s.String()
}

func (n *TypeSpecUnion) String() string {
	var s strings.Builder
	buildTypeSpecString(n, &s)
	return s.String()
}

func (n *TypeSpecIntersection) String() string {
	var s strings.Builder
	buildTypeSpecString(n, &s)
	return s.String()
}

func (n *TypeSpecFunction) String() string {
	var s strings.Builder
	buildTypeSpecString(n, &s)
	return s.String()
}

func (n *TypeSpecInferred) String() string { return "[inferred]" }

func buildTypeSpecString(n TypeSpec, s *strings.Builder) {
	switch n := n.(type) {
	case *TypeSpecSimple:
		s.WriteString(n.Type)
		if len(n.Args) > 0 {
			s.WriteRune('[')
			buildTypeSpecList(n.Args, ", ", s)
			s.WriteRune(']')
		}
	case *TypeSpecUnion:
		s.WriteRune('(')
		buildTypeSpecList(n.Types, " | ", s)
		s.WriteRune(')')
	case *TypeSpecIntersection:
		s.WriteRune('(')
		buildTypeSpecList(n.Types, " & ", s)
		s.WriteRune(')')
	case *TypeSpecFunction:
		s.WriteRune('(')
		buildTypeSpecList(n.Params, ", ", s)
		s.WriteString("): ")
		buildTypeSpecString(n.Return, s)
	case *TypeSpecInferred:
		s.WriteString(n.String())
	default:
		panic("impossible")
	}
}

func buildTypeSpecList(ns []TypeSpec, sep string, s *strings.Builder) {
	for i, n := range ns {
		if i > 0 {
			s.WriteString(sep)
		}
		buildTypeSpecString(n, s)
	}
}

func (n *Reference) String() string { return n.Name }

// SymbolName returns the name the method is declared under:
// its name followed by its parameter types, as in f(A,B).
func (n *MethodSignature) SymbolName() string {
	var s strings.Builder
	s.WriteString(n.Name)
	s.WriteRune('(')
	for i, p := range n.Params {
		if i > 0 {
			s.WriteRune(',')
		}
		buildTypeSpecString(p.Type, &s)
	}
	s.WriteRune(')')
	return s.String()
}

// CallName returns the normalized name of the methods a call can target,
// as in f(_,_).
func (n *MethodCallValue) CallName() string {
	var s strings.Builder
	s.WriteString(n.Ref.Name)
	s.WriteRune('(')
	for i := range n.Args {
		if i > 0 {
			s.WriteRune(',')
		}
		s.WriteRune('_')
	}
	s.WriteRune(')')
	return s.String()
}

func (n *MethodSignature) String() string {
	var s strings.Builder
	s.WriteString(n.Visibility.String())
	s.WriteRune(' ')
	s.WriteString(n.Name)
	if len(n.TypeParams) > 0 {
		s.WriteRune('[')
		for i, p := range n.TypeParams {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(p.Name)
		}
		s.WriteRune(']')
	}
	s.WriteRune('(')
	for i, p := range n.Params {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(p.Name)
		s.WriteString(": ")
		buildTypeSpecString(p.Type, &s)
	}
	s.WriteString("): ")
	buildTypeSpecString(n.ReturnType, &s)
	return s.String()
}
