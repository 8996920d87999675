package sem

import (
	"fmt"
	"strings"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/loc"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// A Compilation is a set of sources checked against one symbol table.
//
// Sources are compiled on demand:
// a source naming the type of another source compiles it first.
// Each source is compiled once.
// A source that is requested while it is being compiled
// answers with its top-level symbol instead of compiling again.
type Compilation struct {
	x      *state
	files  *loc.Files
	units  []*Unit
	byName map[string]int
}

// A Unit is a source of a Compilation.
type Unit struct {
	// Name is the fully-qualified name of the type the source declares.
	Name      string
	Namespace string
	Path      string
	Text      string

	// Root is the checked tree.
	// It is nil before the unit is compiled, or if it failed to parse.
	Root *ast.Root
	// Errs are the errors of the unit, sorted by location.
	Errs []*diag.Error

	status unitStatus
}

type unitStatus int

const (
	pending unitStatus = iota
	compiling
	compiled
)

// NewCompilation returns a new, empty Compilation.
// The sources of the compilation are loaded before the loaders of cfg.
func NewCompilation(cfg Config) *Compilation {
	c := &Compilation{files: new(loc.Files), byName: make(map[string]int)}
	c.x = newState(cfg, symbols.NewTable())
	c.x.loader = append(Loaders{c}, c.x.loader...)
	return c
}

// Table returns the symbol table of the compilation.
func (c *Compilation) Table() *symbols.Table { return c.x.table }

// Files returns the location information of the parsed sources.
func (c *Compilation) Files() *loc.Files { return c.files }

// Units returns the units in the order they were added.
func (c *Compilation) Units() []*Unit { return c.units }

// Add adds a source declaring the type with the fully-qualified name.
func (c *Compilation) Add(name, namespace, path, text string) error {
	if _, ok := c.byName[name]; ok {
		return fmt.Errorf("%s: duplicate source for %s", path, name)
	}
	c.byName[name] = len(c.units)
	c.units = append(c.units, &Unit{Name: name, Namespace: namespace, Path: path, Text: text})
	return nil
}

// Compile compiles the named unit, if it is not compiled already.
func (c *Compilation) Compile(name string) (*Unit, error) {
	i, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("no source for %s", name)
	}
	u := c.units[i]
	c.compile(u)
	return u, nil
}

// CompileAll compiles every unit and returns all of their errors,
// sorted by location.
func (c *Compilation) CompileAll() []*diag.Error {
	var errs []*diag.Error
	for _, u := range c.units {
		c.compile(u)
		errs = append(errs, u.Errs...)
	}
	return diag.Sort(errs)
}

func (c *Compilation) compile(u *Unit) {
	if u.status != pending {
		return
	}
	defer c.x.tr("compile(%s)", u.Name)()
	u.status = compiling
	defer func() { u.status = compiled }()

	p := ast.NewParserWithLocs(u.Namespace, c.files)
	if err := p.Parse(u.Path, strings.NewReader(u.Text)); err != nil {
		u.Errs = []*diag.Error{syntaxError(err)}
		return
	}
	u.Root = p.Roots()[0]
	u.Root, u.Errs = c.x.check(u.Root)
}

// Load implements TypeLoader by compiling the source that declares name.
func (c *Compilation) Load(name symbols.Name, _ ast.Node) symbols.Symbol {
	i, ok := c.byName[name.FullName()]
	if !ok {
		return nil
	}
	u := c.units[i]
	if u.status == compiling {
		c.x.log("cycle: %s is being compiled", u.Name)
	}
	c.compile(u)
	if sym := u.Symbol(); sym != nil {
		return sym
	}
	return nil
}

// Symbol returns the symbol of the unit's top-level declaration,
// or nil if it is not declared.
func (u *Unit) Symbol() *symbols.ThoriumType {
	if u.Root == nil {
		return nil
	}
	v, ok := u.Root.Top.Context().Get(symbolKey)
	if !ok {
		return nil
	}
	return v.(*symbols.ThoriumType)
}
