package sem

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/symbols"
	"gopkg.in/yaml.v3"
)

// LibNamespace is the namespace of the Thorium runtime library.
// Its types are visible by their simple name from every namespace.
const LibNamespace = "org.thoriumlang"

// A TypeLoader resolves a fully-qualified type name
// that is not declared in the symbol table.
type TypeLoader interface {
	// Load returns the symbol of the named type, or nil if it is not found.
	// trigger is the node that needs the type.
	Load(name symbols.Name, trigger ast.Node) symbols.Symbol
}

// Loaders is a chain of TypeLoaders.
// The first non-nil symbol wins.
type Loaders []TypeLoader

func (ls Loaders) Load(name symbols.Name, trigger ast.Node) symbols.Symbol {
	for _, l := range ls {
		if sym := l.Load(name, trigger); sym != nil {
			return sym
		}
	}
	return nil
}

var libTypes = map[string]bool{
	"Object":   true,
	"None":     true,
	"String":   true,
	"Number":   true,
	"Boolean":  true,
	"Function": true,
}

// LibLoader loads the types of the Thorium runtime library.
type LibLoader struct{}

func (LibLoader) Load(name symbols.Name, _ ast.Node) symbols.Symbol {
	if !name.IsQualified() || name.IsMethod() {
		return nil
	}
	if strings.Join(name.Qualifier(), ".") != LibNamespace || !libTypes[name.SimpleName()] {
		return nil
	}
	return &symbols.ThoriumLibType{Name: name.FullName()}
}

// A HostLoader loads the classes and interfaces of the host platform
// listed in a class path manifest.
type HostLoader struct {
	classes    map[string]bool
	interfaces map[string]bool
}

// A class path manifest is a YAML document of the form:
//	classes:
//	  - java.lang.Thread
//	interfaces:
//	  - java.lang.Runnable
type hostManifest struct {
	Classes    []string `yaml:"classes"`
	Interfaces []string `yaml:"interfaces"`
}

// NewHostLoader returns a HostLoader for a class path manifest.
func NewHostLoader(r io.Reader) (*HostLoader, error) {
	var m hostManifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("bad class path manifest: %w", err)
	}
	l := &HostLoader{
		classes:    make(map[string]bool),
		interfaces: make(map[string]bool),
	}
	for _, c := range m.Classes {
		l.classes[c] = true
	}
	for _, i := range m.Interfaces {
		l.interfaces[i] = true
	}
	return l, nil
}

// ReadHostLoader returns a HostLoader for the class path manifest file at path.
func ReadHostLoader(path string) (*HostLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := NewHostLoader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func (l *HostLoader) Load(name symbols.Name, _ ast.Node) symbols.Symbol {
	switch n := name.FullName(); {
	case l.classes[n]:
		return &symbols.JavaClass{Name: n}
	case l.interfaces[n]:
		return &symbols.JavaInterface{Name: n}
	default:
		return nil
	}
}
