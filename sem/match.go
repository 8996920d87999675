package sem

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// A candidate is a method a call may target.
type candidate struct {
	sym    symbols.Symbol
	node   ast.Node
	params []ast.TypeSpec
}

// findBestMatch returns the candidates whose parameter types
// are the argument types, position by position.
// Types are compared by their string.
// A nil argument type is unknown and matches any parameter.
//
// Candidates come from the overload set of the call's arity,
// so a candidate with a different number of parameters is a bug;
// findBestMatch panics.
func findBestMatch(args []ast.TypeSpec, cands []candidate) []candidate {
	var matches []candidate
	for _, c := range cands {
		if len(c.params) != len(args) {
			panic(fmt.Sprintf("candidate %s has %d parameters, the call has %d arguments",
				c.sym, len(c.params), len(args)))
		}
		if paramsMatch(args, c.params) {
			matches = append(matches, c)
		}
	}
	return matches
}

func paramsMatch(args, params []ast.TypeSpec) bool {
	for i, a := range args {
		if a != nil && a.String() != params[i].String() {
			return false
		}
	}
	return true
}

// candidates returns the methods of an overload set.
// Symbols that do not declare a method are skipped.
func candidates(syms []symbols.Symbol) []candidate {
	var cs []candidate
	for _, sym := range syms {
		var params []*ast.Parameter
		n := declNode(sym)
		switch n := n.(type) {
		case *ast.Method:
			params = n.Signature.Params
		case *ast.MethodSignature:
			params = n.Params
		default:
			continue
		}
		c := candidate{sym: sym, node: n}
		for _, p := range params {
			c.params = append(c.params, p.Type)
		}
		cs = append(cs, c)
	}
	return cs
}

// declNode returns the node declaring a symbol, or nil.
func declNode(sym symbols.Symbol) ast.Node {
	n, _ := sym.Decl().(ast.Node)
	return n
}
