// Package symbols implements names, symbols and the scoped symbol table.
package symbols

import "strings"

// A Name is a possibly qualified, possibly method name.
//
// A method name has its parameter types in parentheses, as in a.b.f(x.Y,Z).
// Dots inside the parentheses do not separate parts.
type Name struct {
	full   string
	parts  []string
	method bool
}

// NewName returns the Name for a string.
func NewName(name string) Name {
	prefix, sig := name, ""
	if i := strings.IndexByte(name, '('); i >= 0 {
		prefix, sig = name[:i], name[i:]
	}
	parts := strings.Split(prefix, ".")
	parts[len(parts)-1] += sig
	return Name{full: name, parts: parts, method: sig != ""}
}

// NewNameIn returns the Name for a string,
// qualified with the namespace if it is not already qualified.
func NewNameIn(name, namespace string) Name {
	n := NewName(name)
	if n.IsQualified() || namespace == "" {
		return n
	}
	return NewName(namespace + "." + name)
}

// FullName returns the name as written.
func (n Name) FullName() string { return n.full }

// Parts returns the dot-separated parts of the name.
func (n Name) Parts() []string { return append([]string(nil), n.parts...) }

// Qualifier returns all parts but the last.
func (n Name) Qualifier() []string { return n.parts[:len(n.parts)-1] }

// SimpleName returns the last part of the name.
func (n Name) SimpleName() string { return n.parts[len(n.parts)-1] }

// IsQualified returns whether the name has more than one part.
func (n Name) IsQualified() bool { return len(n.parts) > 1 }

// IsMethod returns whether the name is a method name.
func (n Name) IsMethod() bool { return n.method }

// NormalizedSimpleName returns the simple name
// with each parameter type replaced by _, as in f(_,_).
// It is the key of an overload set.
func (n Name) NormalizedSimpleName() string {
	simple := n.SimpleName()
	if !n.method {
		return simple
	}
	i := strings.IndexByte(simple, '(')
	base, params := simple[:i], strings.TrimSpace(simple[i+1:len(simple)-1])
	if params == "" {
		return base + "()"
	}
	return base + "(" + strings.Repeat("_,", arity(params)-1) + "_)"
}

// arity counts the comma-separated parameters,
// ignoring commas nested in brackets or parentheses.
func arity(params string) int {
	n, depth := 1, 0
	for _, r := range params {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				n++
			}
		}
	}
	return n
}

func (n Name) String() string { return n.full }
