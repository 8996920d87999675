package sem

import (
	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/loc"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// Check runs the semantic passes on a tree,
// declaring its symbols in table.
//
// The returned tree is the input tree
// with the type names rewritten to their qualified, flat form.
// The errors are sorted by location.
func Check(root *ast.Root, table *symbols.Table, cfg Config) (*ast.Root, []*diag.Error) {
	x := newState(cfg, table)
	return x.check(root)
}

func (x *state) check(root *ast.Root) (_ *ast.Root, errs []*diag.Error) {
	defer x.tr("check(%s)", unitName(root))(&errs)

	ast.Link(root)
	initScopes(x, root)
	errs = append(errs, discoverTypes(x, root)...)
	if _, ok := root.Top.Context().Get(symbolKey); !ok {
		return root, diag.Sort(errs)
	}
	if r, changed := qualify(x, root); changed {
		root = r
		relink(root)
	}
	if r, changed := flatten(x, root); changed {
		root = r
		relink(root)
	}
	errs = append(errs, checkNames(x, root)...)
	errs = append(errs, inferTypes(x, root)...)
	return root, diag.Sort(errs)
}

// relink links a rewritten tree
// and points the symbol of its top-level declaration at the new node.
func relink(root *ast.Root) {
	ast.Link(root)
	if v, ok := root.Top.Context().Get(symbolKey); ok {
		v.(*symbols.ThoriumType).Node = root.Top
	}
}

// syntaxError returns the diagnostic of a parse error.
func syntaxError(err error) *diag.Error {
	var pos *loc.Pos
	if p, ok := err.(interface{ Pos() *loc.Pos }); ok {
		pos = p.Pos()
	}
	return diag.At(diag.Syntax, pos, "%s", err.Error())
}
