package ast

import (
	"fmt"
	"reflect"
)

// Children returns the direct children of a node in source order.
func Children(n Node) []Node {
	var kids []Node
	add := func(ns ...Node) {
		for _, n := range ns {
			if n != nil && !isNilNode(n) {
				kids = append(kids, n)
			}
		}
	}
	switch n := n.(type) {
	case *Root:
		for _, u := range n.Uses {
			add(u)
		}
		add(n.Top)
	case *Use:
	case *Type:
		addTypeParams(add, n.TypeParams)
		add(n.SuperType)
		for _, m := range n.Methods {
			add(m)
		}
	case *Class:
		addTypeParams(add, n.TypeParams)
		add(n.SuperType)
		for _, a := range n.Attributes {
			add(a)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *Attribute:
		add(n.Type, n.Value)
	case *Method:
		add(n.Signature)
		addStatements(add, n.Statements)
	case *MethodSignature:
		addTypeParams(add, n.TypeParams)
		addParams(add, n.Params)
		add(n.ReturnType)
	case *Parameter:
		add(n.Type)
	case *TypeParameter:
	case *Statement:
		add(n.Value)
	case *Reference:
	case *StringValue, *NumberValue, *BooleanValue, *NoneValue:
	case *IdentifierValue:
		add(n.Ref)
	case *NewAssignmentValue:
		add(n.Type, n.Value)
	case *DirectAssignmentValue:
		add(n.Ref, n.Value)
	case *IndirectAssignmentValue:
		add(n.Indirect, n.Ref, n.Value)
	case *MethodCallValue:
		add(n.Ref)
		for _, t := range n.TypeArgs {
			add(t)
		}
		for _, a := range n.Args {
			add(a)
		}
	case *NestedValue:
		add(n.Outer, n.Inner)
	case *FunctionValue:
		addTypeParams(add, n.TypeParams)
		addParams(add, n.Params)
		add(n.ReturnType)
		addStatements(add, n.Statements)
	case *TypeSpecSimple:
		for _, t := range n.Args {
			add(t)
		}
	case *TypeSpecUnion:
		for _, t := range n.Types {
			add(t)
		}
	case *TypeSpecIntersection:
		for _, t := range n.Types {
			add(t)
		}
	case *TypeSpecFunction:
		for _, t := range n.Params {
			add(t)
		}
		add(n.Return)
	case *TypeSpecInferred:
	default:
		panic(fmt.Sprintf("impossible node type: %T", n))
	}
	return kids
}

func addTypeParams(add func(...Node), ps []*TypeParameter) {
	for _, p := range ps {
		add(p)
	}
}

func addParams(add func(...Node), ps []*Parameter) {
	for _, p := range ps {
		add(p)
	}
}

func addStatements(add func(...Node), ss []*Statement) {
	for _, s := range ss {
		add(s)
	}
}

// isNilNode reports whether n is an interface holding a nil pointer,
// as an absent Attribute.Value does.
func isNilNode(n Node) bool {
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Walk calls f for n and each of its descendants in depth-first, source order.
// If f returns false, the children of that node are skipped.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, k := range Children(n) {
		Walk(k, f)
	}
}
