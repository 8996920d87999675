package sem

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// referencedKey is the key of the symbols a *ast.Reference resolves to.
var referencedKey = ast.KeyOf("referenced", []symbols.Symbol(nil))

// checkNames declares the symbolic names of a tree and resolves its references.
//
// Declarations are visited in source order.
// References that do not allow forward references,
// identifiers and assignment targets,
// are resolved when they are visited,
// so a use before its declaration is an error.
// Method calls are resolved once every name is declared.
func checkNames(x *state, root *ast.Root) (errs []*diag.Error) {
	defer x.tr("checkNames(%s)", unitName(root))(&errs)
	c := &nameChecker{x: x}
	c.top(root.Top)
	for _, ref := range c.forward {
		c.resolve(ref)
	}
	return c.errs
}

type nameChecker struct {
	x       *state
	forward []*ast.Reference
	errs    []*diag.Error
}

func (c *nameChecker) top(n ast.TopLevel) {
	switch n := n.(type) {
	case *ast.Type:
		for _, m := range n.Methods {
			scope := m.Context().RequireScope()
			c.declare(scope.Parent(), m.SymbolName(), m)
			c.params(m.Params)
		}
	case *ast.Class:
		c.declare(n.Context().RequireScope(), "this", n)
		for _, a := range n.Attributes {
			c.value(a.Value)
			c.declare(a.Context().RequireScope(), a.Name, a)
		}
		for _, m := range n.Methods {
			scope := m.Context().RequireScope()
			c.declare(scope.Parent(), m.Signature.SymbolName(), m)
			c.params(m.Signature.Params)
			c.statements(m.Statements)
		}
	default:
		panic(fmt.Sprintf("impossible top-level type: %T", n))
	}
}

func (c *nameChecker) params(ps []*ast.Parameter) {
	for _, p := range ps {
		c.declare(p.Context().RequireScope(), p.Name, p)
	}
}

func (c *nameChecker) statements(ss []*ast.Statement) {
	for _, s := range ss {
		c.value(s.Value)
	}
}

func (c *nameChecker) value(v ast.Value) {
	switch v := v.(type) {
	case nil:
	case *ast.StringValue, *ast.NumberValue, *ast.BooleanValue, *ast.NoneValue:
	case *ast.IdentifierValue:
		c.reference(v.Ref)
	case *ast.NewAssignmentValue:
		c.value(v.Value)
		c.declare(v.Context().RequireScope(), v.Name, v)
	case *ast.DirectAssignmentValue:
		c.reference(v.Ref)
		c.value(v.Value)
	case *ast.IndirectAssignmentValue:
		c.reference(v.Ref)
		c.value(v.Indirect)
		c.value(v.Value)
	case *ast.MethodCallValue:
		c.reference(v.Ref)
		for _, a := range v.Args {
			c.value(a)
		}
	case *ast.NestedValue:
		c.value(v.Inner)
		c.value(v.Outer)
	case *ast.FunctionValue:
		c.params(v.Params)
		c.statements(v.Statements)
	default:
		panic(fmt.Sprintf("impossible value type: %T", v))
	}
}

// declare declares a SymbolicName in scope.
// A name already declared in the same scope is an error,
// and the first declaration is kept.
func (c *nameChecker) declare(scope *symbols.Table, name string, n ast.Node) {
	sn := symbols.NewName(name)
	if prev, ok := scope.FindInScope(sn); ok {
		err := diag.New(diag.SymbolAlreadyDefined, n, "symbol already defined: %s", name)
		notePrevious(err, prev)
		c.errs = append(c.errs, err)
		return
	}
	scope.Declare(sn, &symbols.SymbolicName{Name: name, Node: n})
	c.x.log("declared %s in %s", name, scope.FullName())
}

func (c *nameChecker) reference(ref *ast.Reference) {
	if ref.AllowForward {
		c.forward = append(c.forward, ref)
		return
	}
	c.resolve(ref)
}

func (c *nameChecker) resolve(ref *ast.Reference) {
	name := ref.Name
	if call, ok := ref.Context().RequireRelatives().Parent().Node().(*ast.MethodCallValue); ok {
		name = call.CallName()
	}
	syms := ref.Context().RequireScope().Find(symbols.NewName(name))
	switch {
	case len(syms) > 0:
		ref.Context().Put(referencedKey, syms)
	case ref.AllowForward:
		c.errs = append(c.errs, diag.New(diag.SymbolNotFound, ref, "symbol not found: %s", name))
	default:
		c.errs = append(c.errs, diag.New(diag.SymbolNotDefined, ref, "symbol not defined: %s", name))
	}
}
