package ast

import (
	"fmt"
	"reflect"

	"github.com/thoriumlang/thc-sub002/loc"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// A Context holds the data attached to a node by the parser and the passes.
// Fields are nil until the pass that computes them has run.
type Context struct {
	// Pos is set by the parser.
	Pos *loc.Pos
	// Scope is the scope the node is in, or the scope it introduces.
	Scope *symbols.Table
	// Relatives links the node to its parent.
	Relatives *Relatives
	// Type is the resolved type of a value or declaration.
	Type TypeSpec

	attrs map[Key]interface{}
}

// A Key identifies an extra attribute of a Context.
type Key struct {
	Name string
	Type reflect.Type
}

// KeyOf returns the Key for a named attribute of the type of zero.
func KeyOf(name string, zero interface{}) Key {
	return Key{Name: name, Type: reflect.TypeOf(zero)}
}

func (k Key) String() string {
	if k.Name == "" {
		return fmt.Sprint(k.Type)
	}
	return fmt.Sprintf("%s:%v", k.Name, k.Type)
}

// Put sets the attribute for a key.
func (c *Context) Put(k Key, v interface{}) {
	if c.attrs == nil {
		c.attrs = make(map[Key]interface{})
	}
	c.attrs[k] = v
}

// Get returns the attribute for a key.
func (c *Context) Get(k Key) (interface{}, bool) {
	v, ok := c.attrs[k]
	return v, ok
}

// Require returns the attribute for a key.
// A missing attribute means the passes ran out of order; Require panics.
func (c *Context) Require(k Key) interface{} {
	v, ok := c.attrs[k]
	if !ok {
		panic(fmt.Sprintf("required context attribute %s not found", k))
	}
	return v
}

// PutIfAbsentAndGet returns the attribute for a key,
// first setting it to the result of f if it is absent.
func (c *Context) PutIfAbsentAndGet(k Key, f func() interface{}) interface{} {
	if v, ok := c.attrs[k]; ok {
		return v
	}
	v := f()
	c.Put(k, v)
	return v
}

// RequireScope returns the node's scope.
// It panics if the scope was not initialized.
func (c *Context) RequireScope() *symbols.Table {
	if c.Scope == nil {
		panic("scope not initialized")
	}
	return c.Scope
}

// RequireRelatives returns the node's relatives.
// It panics if the tree was not linked.
func (c *Context) RequireRelatives() *Relatives {
	if c.Relatives == nil {
		panic("relatives not linked")
	}
	return c.Relatives
}

func (c *Context) copy() *Context {
	if c == nil {
		return &Context{}
	}
	d := &Context{Pos: c.Pos, Scope: c.Scope, Type: c.Type}
	for k, v := range c.attrs {
		d.Put(k, v)
	}
	return d
}
