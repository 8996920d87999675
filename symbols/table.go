package symbols

import (
	"fmt"
	"strings"
)

// A Table is a scope of the symbol table tree.
//
// Non-method symbols are unique per scope.
// Method symbols with the same normalized name form an overload set.
// Child scopes are memoized by name.
type Table struct {
	name    string
	parent  *Table
	symbols map[string]Symbol
	methods map[string][]method
	kids    map[string]*Table

	// Declaration and creation order, for dumps.
	names    []string
	kidNames []string
}

type method struct {
	name string // the full simple name, f(A,B)
	sym  Symbol
}

// An Entry is a named symbol of a scope.
type Entry struct {
	Name   string
	Symbol Symbol
}

// NewTable returns a new root table.
func NewTable() *Table {
	return newTable("", nil)
}

func newTable(name string, parent *Table) *Table {
	return &Table{
		name:    name,
		parent:  parent,
		symbols: make(map[string]Symbol),
		methods: make(map[string][]method),
		kids:    make(map[string]*Table),
	}
}

// Name returns the scope's name; the root's is empty.
func (t *Table) Name() string { return t.name }

// FullName returns the dot-separated names of the scope and its ancestors,
// excluding the root.
func (t *Table) FullName() string {
	if t.parent == nil {
		return ""
	}
	if p := t.parent.FullName(); p != "" {
		return p + "." + t.name
	}
	return t.name
}

// Parent returns the enclosing scope, or nil for the root.
func (t *Table) Parent() *Table { return t.parent }

// Root returns the root of the table tree.
func (t *Table) Root() *Table {
	for t.parent != nil {
		t = t.parent
	}
	return t
}

// CreateScope returns the child scope with the given name,
// creating it if it does not exist.
func (t *Table) CreateScope(name string) *Table {
	if kid, ok := t.kids[name]; ok {
		return kid
	}
	kid := newTable(name, t)
	t.kids[name] = kid
	t.kidNames = append(t.kidNames, name)
	return kid
}

// Scope returns the existing child scope with the given name.
func (t *Table) Scope(name string) (*Table, bool) {
	kid, ok := t.kids[name]
	return kid, ok
}

// Scopes returns the child scopes in creation order.
func (t *Table) Scopes() []*Table {
	var kids []*Table
	for _, n := range t.kidNames {
		kids = append(kids, t.kids[n])
	}
	return kids
}

func (t *Table) descend(parts []string, create bool) (*Table, bool) {
	s := t
	for _, p := range parts {
		if create {
			s = s.CreateScope(p)
			continue
		}
		kid, ok := s.kids[p]
		if !ok {
			return nil, false
		}
		s = kid
	}
	return s, true
}

// Declare adds a symbol.
// A qualified name is declared in the scope named by its qualifier,
// found from the root and created as needed.
// A method name is appended to the overload set of its normalized name.
// Declare does not check for duplicates; a duplicate non-method name replaces the previous symbol.
func (t *Table) Declare(name Name, sym Symbol) {
	s := t
	if name.IsQualified() {
		s, _ = t.Root().descend(name.Qualifier(), true)
	}
	s.declareLocal(name, sym)
}

func (t *Table) declareLocal(name Name, sym Symbol) {
	simple := name.SimpleName()
	if name.IsMethod() {
		key := name.NormalizedSimpleName()
		if _, ok := t.methods[key]; !ok {
			t.names = append(t.names, key)
		}
		t.methods[key] = append(t.methods[key], method{name: simple, sym: sym})
		return
	}
	if _, ok := t.symbols[simple]; !ok {
		t.names = append(t.names, simple)
	}
	t.symbols[simple] = sym
}

// Find returns the symbols a name denotes.
//
// A qualified name is looked up from the root, without creating scopes.
// A simple name is looked up in this scope, then in the enclosing scopes.
// The search stops at the first scope with an entry for the name,
// so a local overload set shadows the enclosing ones entirely.
// Non-method names yield at most one symbol.
func (t *Table) Find(name Name) []Symbol {
	if name.IsQualified() {
		s, ok := t.Root().descend(name.Qualifier(), false)
		if !ok {
			return nil
		}
		syms, _ := s.findLocal(name)
		return syms
	}
	for s := t; s != nil; s = s.parent {
		if syms, ok := s.findLocal(name); ok {
			return syms
		}
	}
	return nil
}

func (t *Table) findLocal(name Name) ([]Symbol, bool) {
	if name.IsMethod() {
		ms, ok := t.methods[name.NormalizedSimpleName()]
		if !ok {
			return nil, false
		}
		syms := make([]Symbol, len(ms))
		for i, m := range ms {
			syms[i] = m.sym
		}
		return syms, true
	}
	sym, ok := t.symbols[name.SimpleName()]
	if !ok {
		return nil, false
	}
	return []Symbol{sym}, true
}

// FindInScope returns the symbol declared in this exact scope under the name.
// For a method name, the full signature must match.
func (t *Table) FindInScope(name Name) (Symbol, bool) {
	if name.IsMethod() {
		for _, m := range t.methods[name.NormalizedSimpleName()] {
			if m.name == name.SimpleName() {
				return m.sym, true
			}
		}
		return nil, false
	}
	sym, ok := t.symbols[name.SimpleName()]
	return sym, ok
}

// InScope returns whether the unqualified name is declared in this exact scope.
// A qualified name is never in scope.
func (t *Table) InScope(name Name) bool {
	if name.IsQualified() {
		return false
	}
	_, ok := t.FindInScope(name)
	return ok
}

// Symbols returns the scope's own entries in declaration order.
// Each member of an overload set is a separate entry.
func (t *Table) Symbols() []Entry {
	var es []Entry
	for _, n := range t.names {
		if sym, ok := t.symbols[n]; ok {
			es = append(es, Entry{Name: n, Symbol: sym})
		}
		for _, m := range t.methods[n] {
			es = append(es, Entry{Name: m.name, Symbol: m.sym})
		}
	}
	return es
}

// Walk calls f on the scope and its descendants, depth-first in creation order.
func (t *Table) Walk(f func(*Table)) {
	f(t)
	for _, kid := range t.Scopes() {
		kid.Walk(f)
	}
}

func (t *Table) String() string {
	var s strings.Builder
	buildTableString(t, "", &s)
	return s.String()
}

func buildTableString(t *Table, indent string, s *strings.Builder) {
	for _, e := range t.Symbols() {
		fmt.Fprintf(s, "%s%s: %s\n", indent, e.Name, e.Symbol)
	}
	for _, kid := range t.Scopes() {
		fmt.Fprintf(s, "%s%s\n", indent, kid.name)
		buildTableString(kid, indent+"  ", s)
	}
}
