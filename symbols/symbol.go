package symbols

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/loc"
)

// A Decl is the syntax node that declares a symbol.
// Every ast.Node is a Decl.
type Decl interface {
	Pos() *loc.Pos
}

// A Symbol is an entity a name denotes.
type Symbol interface {
	// Decl returns the declaring node,
	// or nil if the symbol was not declared in Thorium source.
	Decl() Decl
	String() string
}

// A ThoriumType is a type or class declared in Thorium source.
type ThoriumType struct {
	Name string
	Node Decl
}

// A SymbolicName is a local binding:
// a parameter, attribute, variable, method or type parameter.
type SymbolicName struct {
	Name string
	Node Decl
}

// An AliasSymbol redirects to the symbol with the fully-qualified name Target.
type AliasSymbol struct {
	Node   Decl
	Target string
}

// A JavaClass is a host platform class.
type JavaClass struct {
	Name string
}

// A JavaInterface is a host platform interface.
type JavaInterface struct {
	Name string
}

// A ThoriumLibType is a type of the Thorium runtime library.
type ThoriumLibType struct {
	Name string
}

func (s *ThoriumType) Decl() Decl    { return s.Node }
func (s *SymbolicName) Decl() Decl   { return s.Node }
func (s *AliasSymbol) Decl() Decl    { return s.Node }
func (s *JavaClass) Decl() Decl      { return nil }
func (s *JavaInterface) Decl() Decl  { return nil }
func (s *ThoriumLibType) Decl() Decl { return nil }

func (s *ThoriumType) String() string    { return fmt.Sprintf("(th: %s)", s.Name) }
func (s *SymbolicName) String() string   { return fmt.Sprintf("(symbol: %s)", s.Name) }
func (s *AliasSymbol) String() string    { return fmt.Sprintf("(alias: %s)", s.Target) }
func (s *JavaClass) String() string      { return fmt.Sprintf("(java class: %s)", s.Name) }
func (s *JavaInterface) String() string  { return fmt.Sprintf("(java interface: %s)", s.Name) }
func (s *ThoriumLibType) String() string { return fmt.Sprintf("(th-rt: %s)", s.Name) }

// Kind returns a short name of the symbol's kind.
func Kind(s Symbol) string {
	switch s.(type) {
	case *ThoriumType:
		return "type"
	case *SymbolicName:
		return "name"
	case *AliasSymbol:
		return "alias"
	case *JavaClass:
		return "java-class"
	case *JavaInterface:
		return "java-interface"
	case *ThoriumLibType:
		return "lib-type"
	default:
		panic(fmt.Sprintf("impossible symbol type: %T", s))
	}
}
