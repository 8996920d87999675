// Package ast defines the Thorium syntax tree.
//
// The tree is a closed set of node types.
// Passes dispatch on the concrete type with a type switch;
// a node type that a switch does not handle is a bug and panics.
package ast

import (
	"sync/atomic"

	"github.com/thoriumlang/thc-sub002/loc"
)

// An ID identifies a node.
// IDs are unique within a process and increase monotonically.
type ID uint64

var lastID uint64

// NextID returns a new, unused node ID.
func NextID() ID { return ID(atomic.AddUint64(&lastID, 1)) }

// A Node is a node of the syntax tree.
type Node interface {
	ID() ID
	Context() *Context
	Pos() *loc.Pos
}

// Meta is the id and context shared by every node.
type Meta struct {
	id  ID
	ctx *Context
}

// NewMeta returns a Meta with a new ID and an empty Context.
func NewMeta() Meta { return Meta{id: NextID(), ctx: &Context{}} }

// Derive returns a Meta with a new ID and a copy of m's Context.
// It is used by rewriting passes to build a replacement node.
func (m Meta) Derive() Meta { return Meta{id: NextID(), ctx: m.ctx.copy()} }

func (m Meta) ID() ID             { return m.id }
func (m Meta) Context() *Context { return m.ctx }

// Pos returns the node's source position, or nil if it has none.
func (m Meta) Pos() *loc.Pos {
	if m.ctx == nil {
		return nil
	}
	return m.ctx.Pos
}

// Visibility is the visibility of a declaration.
type Visibility int

const (
	Namespace Visibility = iota
	Public
	Private
)

func (v Visibility) String() string {
	switch v {
	case Namespace:
		return "namespace"
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		panic("impossible")
	}
}

// Mode is the mutability of an attribute or variable.
type Mode int

const (
	Val Mode = iota
	Var
)

func (m Mode) String() string {
	if m == Var {
		return "var"
	}
	return "val"
}

// A Root is a single source file.
type Root struct {
	Meta
	Namespace string
	Uses      []*Use
	Top       TopLevel
}

// A Use imports the type From under the simple name To.
type Use struct {
	Meta
	From string
	To   string
}

// A TopLevel is the single declaration of a source file: a *Type or a *Class.
type TopLevel interface {
	Node
	TopName() string
	isTopLevel()
}

// A Type is an interface-like type declaration.
type Type struct {
	Meta
	Visibility Visibility
	Name       string
	TypeParams []*TypeParameter
	SuperType  TypeSpec
	Methods    []*MethodSignature
}

// A Class is a class declaration.
type Class struct {
	Meta
	Visibility Visibility
	Name       string
	TypeParams []*TypeParameter
	SuperType  TypeSpec
	Attributes []*Attribute
	Methods    []*Method
}

func (n *Type) TopName() string  { return n.Name }
func (n *Class) TopName() string { return n.Name }
func (*Type) isTopLevel()         {}
func (*Class) isTopLevel()        {}

// An Attribute is a class field.
// Value is nil if the attribute has no initializer.
type Attribute struct {
	Meta
	Mode  Mode
	Name  string
	Type  TypeSpec
	Value Value
}

// A Method is a class method.
type Method struct {
	Meta
	Signature  *MethodSignature
	Statements []*Statement
}

// A MethodSignature is the signature of a method,
// or a method declaration of a Type.
type MethodSignature struct {
	Meta
	Visibility Visibility
	Name       string
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType TypeSpec
}

// A Parameter is a method or function parameter.
type Parameter struct {
	Meta
	Name string
	Type TypeSpec
}

// A TypeParameter is a type variable.
type TypeParameter struct {
	Meta
	Name string
}

// A Statement is a value evaluated in a statement position.
// Last is set on the last statement of a body.
type Statement struct {
	Meta
	Value Value
	Last  bool
}

// A Reference is a use of a name.
// Forward references may precede the declaration they refer to.
type Reference struct {
	Meta
	Name         string
	AllowForward bool
}

// A Value is an expression.
type Value interface {
	Node
	isValue()
}

// A StringValue is a string literal.
type StringValue struct {
	Meta
	Value string
}

// A NumberValue is a number literal.
type NumberValue struct {
	Meta
	Value string
}

// A BooleanValue is true or false.
type BooleanValue struct {
	Meta
	Value bool
}

// A NoneValue is the none literal.
type NoneValue struct {
	Meta
}

// An IdentifierValue reads a variable, parameter or attribute.
type IdentifierValue struct {
	Meta
	Ref *Reference
}

// A NewAssignmentValue declares and initializes a local binding.
type NewAssignmentValue struct {
	Meta
	Mode  Mode
	Name  string
	Type  TypeSpec
	Value Value
}

// A DirectAssignmentValue assigns to a visible binding.
type DirectAssignmentValue struct {
	Meta
	Ref   *Reference
	Value Value
}

// An IndirectAssignmentValue assigns to a member of Indirect.
type IndirectAssignmentValue struct {
	Meta
	Indirect Value
	Ref      *Reference
	Value    Value
}

// A MethodCallValue calls the method named by Ref.
type MethodCallValue struct {
	Meta
	Ref      *Reference
	TypeArgs []TypeSpec
	Args     []Value
}

// A NestedValue is Inner evaluated against Outer, as in outer.inner.
type NestedValue struct {
	Meta
	Outer Value
	Inner Value
}

// A FunctionValue is a function literal.
type FunctionValue struct {
	Meta
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType TypeSpec
	Statements []*Statement
}

func (*StringValue) isValue()             {}
func (*NumberValue) isValue()             {}
func (*BooleanValue) isValue()            {}
func (*NoneValue) isValue()               {}
func (*IdentifierValue) isValue()         {}
func (*NewAssignmentValue) isValue()      {}
func (*DirectAssignmentValue) isValue()   {}
func (*IndirectAssignmentValue) isValue() {}
func (*MethodCallValue) isValue()         {}
func (*NestedValue) isValue()             {}
func (*FunctionValue) isValue()           {}

// A TypeSpec is a syntactic type.
type TypeSpec interface {
	Node
	String() string
	isTypeSpec()
}

// A TypeSpecSimple is a named type with optional type arguments.
type TypeSpecSimple struct {
	Meta
	Type string
	Args []TypeSpec
}

// A TypeSpecUnion is the union of its component types.
type TypeSpecUnion struct {
	Meta
	Types []TypeSpec
}

// A TypeSpecIntersection is the intersection of its component types.
type TypeSpecIntersection struct {
	Meta
	Types []TypeSpec
}

// A TypeSpecFunction is the type of a function value.
type TypeSpecFunction struct {
	Meta
	Params []TypeSpec
	Return TypeSpec
}

// A TypeSpecInferred stands for a type omitted in the source.
type TypeSpecInferred struct {
	Meta
}

func (*TypeSpecSimple) isTypeSpec()       {}
func (*TypeSpecUnion) isTypeSpec()        {}
func (*TypeSpecIntersection) isTypeSpec() {}
func (*TypeSpecFunction) isTypeSpec()     {}
func (*TypeSpecInferred) isTypeSpec()     {}

// Simple returns a new *TypeSpecSimple.
func Simple(name string, args ...TypeSpec) *TypeSpecSimple {
	return &TypeSpecSimple{Meta: NewMeta(), Type: name, Args: args}
}

// Union returns a new *TypeSpecUnion.
func Union(types ...TypeSpec) *TypeSpecUnion {
	return &TypeSpecUnion{Meta: NewMeta(), Types: types}
}

// Intersection returns a new *TypeSpecIntersection.
func Intersection(types ...TypeSpec) *TypeSpecIntersection {
	return &TypeSpecIntersection{Meta: NewMeta(), Types: types}
}

// Function returns a new *TypeSpecFunction.
func Function(ret TypeSpec, params ...TypeSpec) *TypeSpecFunction {
	return &TypeSpecFunction{Meta: NewMeta(), Params: params, Return: ret}
}

// Inferred returns a new *TypeSpecInferred.
func Inferred() *TypeSpecInferred { return &TypeSpecInferred{Meta: NewMeta()} }
