package sem

import (
	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// symbolKey is the key of the *symbols.ThoriumType of a top-level declaration.
var symbolKey = ast.KeyOf("symbol", (*symbols.ThoriumType)(nil))

// discoverTypes declares the types a tree defines and uses.
//
// The top-level declaration is declared first, under its fully-qualified name,
// so that sources referring to each other resolve.
// Uses, type parameters, and the types named in the tree follow.
// Names not in the table are loaded through the loader chain.
// A tree redeclaring a type is not discovered further.
func discoverTypes(x *state, root *ast.Root) (errs []*diag.Error) {
	defer x.tr("discoverTypes(%s)", unitName(root))(&errs)

	if err := declareTop(x, root); err != nil {
		// The scopes of the tree are those of the first declaration.
		return append(errs, err)
	}
	for _, u := range root.Uses {
		if err := declareUse(x, root, u); err != nil {
			errs = append(errs, err)
		}
	}
	ast.Walk(root, func(n ast.Node) bool {
		if tp, ok := n.(*ast.TypeParameter); ok {
			if err := declareTypeParam(tp); err != nil {
				errs = append(errs, err)
			}
		}
		return true
	})
	ast.Walk(root, func(n ast.Node) bool {
		if s, ok := n.(*ast.TypeSpecSimple); ok {
			if err := discoverType(x, root, s); err != nil {
				errs = append(errs, err)
			}
		}
		return true
	})
	return errs
}

func declareTop(x *state, root *ast.Root) *diag.Error {
	top := root.Top
	fq := unitName(root)
	name := symbols.NewName(fq)
	if syms := x.table.Find(name); len(syms) > 0 {
		err := diag.New(diag.SymbolAlreadyDefined, top, "symbol already defined: %s", fq)
		notePrevious(err, syms[0])
		return err
	}
	sym := &symbols.ThoriumType{Name: fq, Node: top}
	x.table.Declare(name, sym)
	top.Context().Put(symbolKey, sym)
	x.log("declared %s", fq)
	if simple := top.TopName(); simple != fq {
		alias := &symbols.AliasSymbol{Node: top, Target: fq}
		root.Context().RequireScope().Declare(symbols.NewName(simple), alias)
	}
	return nil
}

func declareUse(x *state, root *ast.Root, u *ast.Use) *diag.Error {
	scope := u.Context().RequireScope()
	target := symbols.NewNameIn(u.From, root.Namespace)
	alias := symbols.NewName(u.To)
	if prev, ok := scope.FindInScope(alias); ok {
		if a, ok := prev.(*symbols.AliasSymbol); ok && a.Target == target.FullName() {
			return nil
		}
		err := diag.New(diag.SymbolAlreadyDefined, u, "symbol already defined: %s", u.To)
		notePrevious(err, prev)
		return err
	}
	if resolveType(x, target, u) == nil {
		return diag.New(diag.SymbolNotFound, u, "symbol not found: %s", u.From)
	}
	scope.Declare(alias, &symbols.AliasSymbol{Node: u, Target: target.FullName()})
	return nil
}

func declareTypeParam(tp *ast.TypeParameter) *diag.Error {
	scope := tp.Context().RequireScope()
	name := symbols.NewName(tp.Name)
	if prev, ok := scope.FindInScope(name); ok {
		err := diag.New(diag.SymbolAlreadyDefined, tp, "symbol already defined: %s", tp.Name)
		notePrevious(err, prev)
		return err
	}
	scope.Declare(name, &symbols.ThoriumType{Name: tp.Name, Node: tp})
	return nil
}

// discoverType loads the type named by s if it is not visible from s.
// A type loaded for a simple name gets an alias in the root scope of the tree.
func discoverType(x *state, root *ast.Root, s *ast.TypeSpecSimple) *diag.Error {
	name := symbols.NewName(s.Type)
	if len(s.Context().RequireScope().Find(name)) > 0 {
		return nil
	}
	for _, cand := range typeCandidates(s.Type, root.Namespace) {
		if resolveType(x, cand, s) == nil {
			continue
		}
		if !name.IsQualified() {
			alias := &symbols.AliasSymbol{Node: s, Target: cand.FullName()}
			root.Context().RequireScope().Declare(name, alias)
		}
		return nil
	}
	return diag.New(diag.TypeNotDefined, s, "type not defined: %s", s.Type)
}

// typeCandidates returns the fully-qualified names a type name can denote:
// the name in the namespace, then a simple name in the runtime library.
func typeCandidates(name, namespace string) []symbols.Name {
	n := symbols.NewNameIn(name, namespace)
	if symbols.NewName(name).IsQualified() || namespace == LibNamespace {
		return []symbols.Name{n}
	}
	return []symbols.Name{n, symbols.NewName(LibNamespace + "." + name)}
}

// resolveType returns the symbol of a fully-qualified name,
// loading and declaring it if it is not yet in the table.
func resolveType(x *state, name symbols.Name, trigger ast.Node) symbols.Symbol {
	if syms := x.table.Find(name); len(syms) > 0 {
		return syms[0]
	}
	sym := x.loader.Load(name, trigger)
	if sym == nil {
		return nil
	}
	x.table.Declare(name, sym)
	x.log("loaded %s: %s", name, sym)
	return sym
}

func notePrevious(err *diag.Error, prev symbols.Symbol) {
	if d := prev.Decl(); d != nil && d.Pos() != nil {
		diag.Note(err, "previously defined at %s", d.Pos().Loc)
	}
}
