// Copyright © 2020 The Thorium Authors under an MIT-style license.

package ast

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/eaburns/peggy/peg"
	"github.com/thoriumlang/thc-sub002/loc"
)

// A Parser parses source code files of one namespace.
type Parser struct {
	roots     []*Root
	namespace string
	locs      *loc.Files
}

// NewParser returns a new parser for the named namespace.
func NewParser(namespace string) *Parser {
	return &Parser{namespace: namespace, locs: new(loc.Files)}
}

// NewParserWithLocs returns a new parser for the named namespace.
// The parser appends file location information to the given loc.Files,
// so that several parsers can share one set of files.
// If locs is nil, the parser uses its own loc.Files.
func NewParserWithLocs(namespace string, locs *loc.Files) *Parser {
	if locs == nil {
		locs = new(loc.Files)
	}
	return &Parser{namespace: namespace, locs: locs}
}

// Roots returns the trees of the successfully parsed files.
func (p *Parser) Roots() []*Root { return p.roots }

// Files returns the location information of the parsed files.
func (p *Parser) Files() *loc.Files { return p.locs }

// Parse parses a *Root from an io.Reader.
// The first argument is the file path or "" if unspecified.
func (p *Parser) Parse(path string, r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	text := string(data)
	offs := p.locs.Add(path, text)
	root, perr := parse(p.namespace, text, offs, p.locs)
	if perr != nil {
		perr.path = path
		perr.pos = p.locs.Pos(loc.Range{offs + perr.loc, offs + perr.loc})
		return *perr
	}
	Link(root)
	p.roots = append(p.roots, root)
	return nil
}

// ParseFile parses the source in the file specified by a path.
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Parse(path, f)
}

type parseError struct {
	path string
	loc  int
	text string
	fail *peg.Fail
	pos  *loc.Pos
}

// Tree returns the failure tree of the parse.
func (err parseError) Tree() *peg.Fail { return err.fail }

// Offset returns the byte offset of the failure within the file.
func (err parseError) Offset() int { return err.loc }

// Pos returns the source position of the failure.
func (err parseError) Pos() *loc.Pos { return err.pos }

func (err parseError) Error() string {
	e := peg.SimpleError(err.text, err.fail)
	e.FilePath = err.path
	return e.Error()
}
