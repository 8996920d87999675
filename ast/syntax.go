// Copyright © 2020 The Thorium Authors under an MIT-style license.

package ast

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eaburns/peggy/peg"
	"github.com/thoriumlang/thc-sub002/loc"
)

// ObjectType is the supertype of declarations that do not name one.
const ObjectType = "org.thoriumlang.Object"

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind       tokKind
	text       string
	start, end int
}

var keywords = map[string]bool{
	"use":       true,
	"type":      true,
	"class":     true,
	"val":       true,
	"var":       true,
	"public":    true,
	"private":   true,
	"namespace": true,
	"true":      true,
	"false":     true,
	"none":      true,
}

// syntaxFail is panicked by the parser at the first syntax error.
type syntaxFail struct {
	pos  int
	want []string
}

func lex(text string) ([]token, *syntaxFail) {
	var toks []token
	for i := skipSpace(text, 0); i < len(text); i = skipSpace(text, i) {
		start := i
		r, _ := utf8.DecodeRuneInString(text[i:])
		kind := tokPunct
		switch {
		case r == '_' || unicode.IsLetter(r):
			kind = tokIdent
			i = scan(text, i, isIdentRune)
		case unicode.IsDigit(r):
			kind = tokNumber
			i = scan(text, i, unicode.IsDigit)
			if i+1 < len(text) && text[i] == '.' && '0' <= text[i+1] && text[i+1] <= '9' {
				i = scan(text, i+1, unicode.IsDigit)
			}
		case r == '"':
			kind = tokString
			j, ok := scanString(text, i)
			if !ok {
				return nil, &syntaxFail{pos: start, want: []string{`"\""`}}
			}
			i = j
		case strings.HasPrefix(text[i:], "=>"):
			i += 2
		case strings.ContainsRune("{}()[]:;,.=|&", r):
			i++
		default:
			return nil, &syntaxFail{pos: start, want: []string{"token"}}
		}
		toks = append(toks, token{kind: kind, text: text[start:i], start: start, end: i})
	}
	toks = append(toks, token{kind: tokEOF, start: len(text), end: len(text)})
	return toks, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		if strings.HasPrefix(text[i:], "//") {
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				return len(text)
			}
			i += nl + 1
			continue
		}
		r, w := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			return i
		}
		i += w
	}
	return i
}

func scan(text string, i int, f func(rune) bool) int {
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		if !f(r) {
			break
		}
		i += w
	}
	return i
}

func scanString(text string, i int) (int, bool) {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

type parser struct {
	ns   string
	text string
	offs int
	locs *loc.Files
	toks []token
	i    int
}

func parse(ns, text string, offs int, locs *loc.Files) (root *Root, perr *parseError) {
	toks, fail := lex(text)
	if fail != nil {
		return nil, newParseError(text, *fail)
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(syntaxFail)
		if !ok {
			panic(r)
		}
		root, perr = nil, newParseError(text, f)
	}()
	p := &parser{ns: ns, text: text, offs: offs, locs: locs, toks: toks}
	return p.root(), nil
}

func newParseError(text string, f syntaxFail) *parseError {
	fail := &peg.Fail{Name: "Root", Pos: 0}
	for _, w := range f.want {
		fail.Kids = append(fail.Kids, &peg.Fail{Pos: f.pos, Want: w})
	}
	return &parseError{loc: f.pos, text: text, fail: fail}
}

func (p *parser) tok() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) at(text string) bool {
	return p.peekAt(0, text)
}

func (p *parser) peekAt(k int, text string) bool {
	if p.i+k >= len(p.toks) {
		return false
	}
	t := p.toks[p.i+k]
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) peekIdent(k int) bool {
	if p.i+k >= len(p.toks) {
		return false
	}
	t := p.toks[p.i+k]
	return t.kind == tokIdent && !keywords[t.text]
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) token {
	if !p.at(text) {
		p.fail(strconv.Quote(text))
	}
	return p.next()
}

func (p *parser) fail(want ...string) {
	panic(syntaxFail{pos: p.tok().start, want: want})
}

func (p *parser) ident() token {
	if !p.peekIdent(0) {
		p.fail("identifier")
	}
	return p.next()
}

func (p *parser) qname() (string, token) {
	t := p.ident()
	parts := []string{t.text}
	for p.at(".") && p.peekIdent(1) {
		p.next()
		t = p.ident()
		parts = append(parts, t.text)
	}
	return strings.Join(parts, "."), t
}

// meta returns a Meta spanning from start to the end of the last consumed token.
func (p *parser) meta(start int) Meta {
	end := start
	if p.i > 0 && p.toks[p.i-1].end > start {
		end = p.toks[p.i-1].end
	}
	return p.metaRange(start, end)
}

func (p *parser) metaTok(t token) Meta { return p.metaRange(t.start, t.end) }

func (p *parser) metaRange(start, end int) Meta {
	m := NewMeta()
	m.ctx.Pos = p.locs.Pos(loc.Range{p.offs + start, p.offs + end})
	return m
}

func (p *parser) root() *Root {
	var uses []*Use
	for p.at("use") {
		uses = append(uses, p.use())
	}
	top := p.topLevel()
	if p.tok().kind != tokEOF {
		p.fail("EOF")
	}
	return &Root{Meta: p.metaRange(0, len(p.text)), Namespace: p.ns, Uses: uses, Top: top}
}

func (p *parser) use() *Use {
	start := p.expect("use").start
	from, last := p.qname()
	to := last.text
	if p.accept(":") {
		to = p.ident().text
	}
	m := p.meta(start)
	p.accept(";")
	return &Use{Meta: m, From: from, To: to}
}

func (p *parser) visibility(def Visibility) Visibility {
	switch {
	case p.accept("public"):
		return Public
	case p.accept("private"):
		return Private
	case p.accept("namespace"):
		return Namespace
	}
	return def
}

func (p *parser) topLevel() TopLevel {
	start := p.tok().start
	vis := p.visibility(Namespace)
	switch {
	case p.accept("type"):
		return p.typeDecl(start, vis)
	case p.accept("class"):
		return p.classDecl(start, vis)
	}
	p.fail(`"type"`, `"class"`)
	panic("impossible")
}

func (p *parser) typeDecl(start int, vis Visibility) *Type {
	name := p.ident()
	tps := p.typeParams()
	super := p.superType(name)
	p.expect("{")
	var sigs []*MethodSignature
	for !p.at("}") {
		sigs = append(sigs, p.methodSig())
		p.accept(";")
	}
	p.expect("}")
	return &Type{
		Meta:       p.meta(start),
		Visibility: vis,
		Name:       name.text,
		TypeParams: tps,
		SuperType:  super,
		Methods:    sigs,
	}
}

func (p *parser) classDecl(start int, vis Visibility) *Class {
	name := p.ident()
	tps := p.typeParams()
	super := p.superType(name)
	p.expect("{")
	var attrs []*Attribute
	var methods []*Method
	for !p.at("}") {
		if p.at("val") || p.at("var") {
			attrs = append(attrs, p.attribute())
			continue
		}
		methods = append(methods, p.method())
	}
	p.expect("}")
	return &Class{
		Meta:       p.meta(start),
		Visibility: vis,
		Name:       name.text,
		TypeParams: tps,
		SuperType:  super,
		Attributes: attrs,
		Methods:    methods,
	}
}

func (p *parser) superType(name token) TypeSpec {
	if p.accept(":") {
		return p.typeSpec()
	}
	return &TypeSpecSimple{Meta: p.metaTok(name), Type: ObjectType}
}

func (p *parser) typeParams() []*TypeParameter {
	if !p.accept("[") {
		return nil
	}
	var tps []*TypeParameter
	for {
		t := p.ident()
		tps = append(tps, &TypeParameter{Meta: p.metaTok(t), Name: t.text})
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return tps
}

func (p *parser) mode() Mode {
	if p.accept("var") {
		return Var
	}
	p.expect("val")
	return Val
}

// optType parses an optional ": type".
// A missing type is inferred and positioned at t.
func (p *parser) optType(t token) TypeSpec {
	if p.accept(":") {
		return p.typeSpec()
	}
	return &TypeSpecInferred{Meta: p.metaTok(t)}
}

func (p *parser) attribute() *Attribute {
	start := p.tok().start
	mode := p.mode()
	name := p.ident()
	typ := p.optType(name)
	var value Value
	if p.accept("=") {
		value = p.value()
	}
	m := p.meta(start)
	p.accept(";")
	return &Attribute{Meta: m, Mode: mode, Name: name.text, Type: typ, Value: value}
}

func (p *parser) method() *Method {
	start := p.tok().start
	sig := p.methodSig()
	p.expect("{")
	stmts := p.statements()
	p.expect("}")
	return &Method{Meta: p.meta(start), Signature: sig, Statements: stmts}
}

func (p *parser) methodSig() *MethodSignature {
	start := p.tok().start
	vis := p.visibility(Public)
	name := p.ident()
	tps := p.typeParams()
	params := p.params()
	ret := p.optType(name)
	return &MethodSignature{
		Meta:       p.meta(start),
		Visibility: vis,
		Name:       name.text,
		TypeParams: tps,
		Params:     params,
		ReturnType: ret,
	}
}

func (p *parser) params() []*Parameter {
	p.expect("(")
	var ps []*Parameter
	for !p.at(")") {
		start := p.tok().start
		name := p.ident()
		p.expect(":")
		typ := p.typeSpec()
		ps = append(ps, &Parameter{Meta: p.meta(start), Name: name.text, Type: typ})
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return ps
}

func (p *parser) statements() []*Statement {
	var ss []*Statement
	for !p.at("}") {
		start := p.tok().start
		v := p.value()
		m := p.meta(start)
		p.accept(";")
		ss = append(ss, &Statement{Meta: m, Value: v})
	}
	if len(ss) > 0 {
		ss[len(ss)-1].Last = true
	}
	return ss
}

func (p *parser) value() Value {
	start := p.tok().start
	v := p.primary()
	for p.at(".") {
		p.next()
		name := p.ident()
		ref := &Reference{Meta: p.metaTok(name), Name: name.text}
		switch {
		case p.accept("="):
			value := p.value()
			return &IndirectAssignmentValue{Meta: p.meta(start), Indirect: v, Ref: ref, Value: value}
		case p.at("(") || p.at("["):
			ref.AllowForward = true
			call := p.call(name.start, ref)
			v = &NestedValue{Meta: p.meta(start), Outer: v, Inner: call}
		default:
			id := &IdentifierValue{Meta: p.metaTok(name), Ref: ref}
			v = &NestedValue{Meta: p.meta(start), Outer: v, Inner: id}
		}
	}
	return v
}

func (p *parser) primary() Value {
	t := p.tok()
	switch {
	case t.kind == tokString:
		p.next()
		s, err := strconv.Unquote(t.text)
		if err != nil {
			s = t.text[1 : len(t.text)-1]
		}
		return &StringValue{Meta: p.metaTok(t), Value: s}
	case t.kind == tokNumber:
		p.next()
		return &NumberValue{Meta: p.metaTok(t), Value: t.text}
	case p.at("true") || p.at("false"):
		p.next()
		return &BooleanValue{Meta: p.metaTok(t), Value: t.text == "true"}
	case p.at("none"):
		p.next()
		return &NoneValue{Meta: p.metaTok(t)}
	case p.at("val") || p.at("var"):
		return p.newAssignment()
	case p.at("(") || p.at("["):
		return p.functionValue()
	case p.peekIdent(0):
		p.next()
		switch {
		case p.at("(") || p.at("["):
			ref := &Reference{Meta: p.metaTok(t), Name: t.text, AllowForward: true}
			return p.call(t.start, ref)
		case p.accept("="):
			ref := &Reference{Meta: p.metaTok(t), Name: t.text}
			value := p.value()
			return &DirectAssignmentValue{Meta: p.meta(t.start), Ref: ref, Value: value}
		}
		ref := &Reference{Meta: p.metaTok(t), Name: t.text}
		return &IdentifierValue{Meta: p.metaTok(t), Ref: ref}
	}
	p.fail("value")
	panic("impossible")
}

func (p *parser) call(start int, ref *Reference) *MethodCallValue {
	var targs []TypeSpec
	if p.accept("[") {
		for {
			targs = append(targs, p.typeSpec())
			if !p.accept(",") {
				break
			}
		}
		p.expect("]")
	}
	p.expect("(")
	var args []Value
	for !p.at(")") {
		args = append(args, p.value())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return &MethodCallValue{Meta: p.meta(start), Ref: ref, TypeArgs: targs, Args: args}
}

func (p *parser) newAssignment() *NewAssignmentValue {
	start := p.tok().start
	mode := p.mode()
	name := p.ident()
	typ := p.optType(name)
	p.expect("=")
	value := p.value()
	return &NewAssignmentValue{Meta: p.meta(start), Mode: mode, Name: name.text, Type: typ, Value: value}
}

func (p *parser) functionValue() *FunctionValue {
	start := p.tok().start
	tps := p.typeParams()
	params := p.params()
	ret := p.optType(p.toks[p.i-1])
	p.expect("=>")
	p.expect("{")
	stmts := p.statements()
	p.expect("}")
	return &FunctionValue{
		Meta:       p.meta(start),
		TypeParams: tps,
		Params:     params,
		ReturnType: ret,
		Statements: stmts,
	}
}

func (p *parser) typeSpec() TypeSpec {
	start := p.tok().start
	t := p.intersection()
	if !p.at("|") {
		return t
	}
	ts := []TypeSpec{t}
	for p.accept("|") {
		ts = append(ts, p.intersection())
	}
	return &TypeSpecUnion{Meta: p.meta(start), Types: ts}
}

func (p *parser) intersection() TypeSpec {
	start := p.tok().start
	t := p.typeAtom()
	if !p.at("&") {
		return t
	}
	ts := []TypeSpec{t}
	for p.accept("&") {
		ts = append(ts, p.typeAtom())
	}
	return &TypeSpecIntersection{Meta: p.meta(start), Types: ts}
}

func (p *parser) typeAtom() TypeSpec {
	start := p.tok().start
	if p.accept("(") {
		var ts []TypeSpec
		for !p.at(")") {
			ts = append(ts, p.typeSpec())
			if !p.accept(",") {
				break
			}
		}
		p.expect(")")
		if p.accept(":") {
			ret := p.typeSpec()
			return &TypeSpecFunction{Meta: p.meta(start), Params: ts, Return: ret}
		}
		if len(ts) != 1 {
			p.fail(`":"`)
		}
		return ts[0]
	}
	name, _ := p.qname()
	var args []TypeSpec
	if p.accept("[") {
		for {
			args = append(args, p.typeSpec())
			if !p.accept(",") {
				break
			}
		}
		p.expect("]")
	}
	return &TypeSpecSimple{Meta: p.meta(start), Type: name, Args: args}
}
