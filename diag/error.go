// Package diag holds the diagnostics reported while checking Thorium source.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/loc"
)

// Kind classifies an Error.
type Kind int

const (
	Syntax Kind = iota
	SymbolAlreadyDefined
	SymbolNotDefined
	SymbolNotFound
	TypeNotDefined
	TargetNotFound
	TooManyAlternatives
	TypeNotInferable
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case SymbolAlreadyDefined:
		return "symbol-already-defined"
	case SymbolNotDefined:
		return "symbol-not-defined"
	case SymbolNotFound:
		return "symbol-not-found"
	case TypeNotDefined:
		return "type-not-defined"
	case TargetNotFound:
		return "target-not-found"
	case TooManyAlternatives:
		return "too-many-alternatives"
	case TypeNotInferable:
		return "type-not-inferable"
	default:
		panic("impossible")
	}
}

// An Error is a diagnostic.
// Errors are collected by the passes, never panicked.
type Error struct {
	Kind Kind
	// Node is the offending node, or nil for syntax errors.
	Node ast.Node
	// Pos is the source position, or nil if unknown.
	Pos   *loc.Pos
	Msg   string
	Notes []string
}

// New returns a new Error on a node.
func New(kind Kind, n ast.Node, f string, vs ...interface{}) *Error {
	return &Error{Kind: kind, Node: n, Pos: n.Pos(), Msg: fmt.Sprintf(f, vs...)}
}

// At returns a new Error at a source position.
func At(kind Kind, pos *loc.Pos, f string, vs ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(f, vs...)}
}

// Note adds a note to the error.
func Note(err *Error, f string, vs ...interface{}) {
	err.Notes = append(err.Notes, fmt.Sprintf(f, vs...))
}

// Loc returns the location of the error, or the zero Loc.
func (err *Error) Loc() loc.Loc {
	if err.Pos == nil {
		return loc.Loc{}
	}
	return err.Pos.Loc
}

// Message returns the message followed by the notes, one per line.
func (err *Error) Message() string {
	return strings.Join(append([]string{err.Msg}, err.Notes...), "\n")
}

func (err *Error) Error() string {
	var s strings.Builder
	if err.Pos != nil {
		s.WriteString(err.Pos.Loc.String())
		s.WriteString(": ")
	}
	s.WriteString(err.Msg)
	for _, n := range err.Notes {
		s.WriteString("\n\t")
		s.WriteString(n)
	}
	return s.String()
}

// Format renders the error with a Formatter.
func (err *Error) Format(f Formatter) string {
	var pos loc.Pos
	if err.Pos != nil {
		pos = *err.Pos
	}
	return f.Format(pos, err.Message())
}

// Sort returns the errors sorted by location,
// with duplicates of the same location and message removed.
func Sort(errs []*Error) []*Error {
	if len(errs) == 0 {
		return errs
	}
	sort.SliceStable(errs, func(i, j int) bool {
		switch ei, ej := errs[i].Loc(), errs[j].Loc(); {
		case ei.Path == ej.Path && ei.Line[0] == ej.Line[0]:
			return ei.Col[0] < ej.Col[0]
		case ei.Path == ej.Path:
			return ei.Line[0] < ej.Line[0]
		default:
			return ei.Path < ej.Path
		}
	})
	dedup := []*Error{errs[0]}
	for _, e := range errs[1:] {
		d := dedup[len(dedup)-1]
		if e.Loc() != d.Loc() || e.Msg != d.Msg {
			dedup = append(dedup, e)
		}
	}
	return dedup
}

// Errors returns the errors as a []error.
func Errors(errs []*Error) []error {
	var es []error
	for _, e := range errs {
		es = append(es, e)
	}
	return es
}

// Count returns the number of errors of a kind.
func Count(errs []*Error, kind Kind) int {
	var n int
	for _, e := range errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
