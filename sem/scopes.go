package sem

import (
	"fmt"
	"strings"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// initScopes sets the Scope of every node of the tree.
//
// The root and its uses are in the scope named after the top-level declaration,
// inside the scope of the namespace.
// The declaration's body is a [body] child of it.
// Each method gets its own child of the body,
// named after the method and its position among the methods of the same name;
// a class method's statements get a further [body] child.
// Function values get a [fn#id] child of the enclosing scope,
// and attribute initializers an [attr:name] child of the body.
func initScopes(x *state, root *ast.Root) {
	defer x.tr("initScopes(%s)", unitName(root))()

	scope := namespaceScope(x.table, root.Namespace).CreateScope(root.Top.TopName())
	root.Context().Scope = scope
	for _, u := range root.Uses {
		u.Context().Scope = scope
	}
	body := scope.CreateScope("[body]")
	ordinals := make(map[string]int)
	switch top := root.Top.(type) {
	case *ast.Type:
		top.Context().Scope = body
		for _, tp := range top.TypeParams {
			setScope(tp, body)
		}
		setScope(top.SuperType, body)
		for _, m := range top.Methods {
			setScope(m, body.CreateScope(methodScopeName(ordinals, m.Name)))
		}
	case *ast.Class:
		top.Context().Scope = body
		for _, tp := range top.TypeParams {
			setScope(tp, body)
		}
		setScope(top.SuperType, body)
		for _, a := range top.Attributes {
			a.Context().Scope = body
			setScope(a.Type, body)
			if a.Value != nil {
				setScope(a.Value, body.CreateScope("[attr:"+a.Name+"]"))
			}
		}
		for _, m := range top.Methods {
			scope := body.CreateScope(methodScopeName(ordinals, m.Signature.Name))
			m.Context().Scope = scope
			setScope(m.Signature, scope)
			stmts := scope.CreateScope("[body]")
			for _, s := range m.Statements {
				setScope(s, stmts)
			}
		}
	default:
		panic(fmt.Sprintf("impossible top-level type: %T", top))
	}
}

func namespaceScope(table *symbols.Table, namespace string) *symbols.Table {
	if namespace == "" {
		return table
	}
	s := table
	for _, p := range strings.Split(namespace, ".") {
		s = s.CreateScope(p)
	}
	return s
}

func methodScopeName(ordinals map[string]int, name string) string {
	n := ordinals[name]
	ordinals[name]++
	return fmt.Sprintf("%s#%d", name, n)
}

func setScope(n ast.Node, scope *symbols.Table) {
	fn, ok := n.(*ast.FunctionValue)
	if !ok {
		n.Context().Scope = scope
		for _, kid := range ast.Children(n) {
			setScope(kid, scope)
		}
		return
	}
	scope = scope.CreateScope(fmt.Sprintf("[fn#%d]", fn.ID()))
	fn.Context().Scope = scope
	for _, tp := range fn.TypeParams {
		setScope(tp, scope)
	}
	for _, p := range fn.Params {
		setScope(p, scope)
	}
	setScope(fn.ReturnType, scope)
	body := scope.CreateScope("[body]")
	for _, s := range fn.Statements {
		setScope(s, body)
	}
}

func unitName(root *ast.Root) string {
	if root.Namespace == "" {
		return root.Top.TopName()
	}
	return root.Namespace + "." + root.Top.TopName()
}
