package ast

import (
	"strings"
	"testing"

	"github.com/eaburns/peggy/peg"
	"github.com/eaburns/pretty"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/thoriumlang/thc-sub002/loc"
)

func object() *TypeSpecSimple { return &TypeSpecSimple{Type: ObjectType} }

func ident(name string) *IdentifierValue {
	return &IdentifierValue{Ref: &Reference{Name: name}}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Root
	}{
		{
			name: "empty class",
			src:  "class C { }",
			want: &Root{
				Namespace: "p",
				Top:       &Class{Name: "C", SuperType: object()},
			},
		},
		{
			name: "uses and type",
			src: `
				use a.b.C;
				use d.E: F;
				public type T[X] : S {
					f(x: X): (A | B & C);
					private g[Y](): (Y, X): X
				}`,
			want: &Root{
				Namespace: "p",
				Uses: []*Use{
					{From: "a.b.C", To: "C"},
					{From: "d.E", To: "F"},
				},
				Top: &Type{
					Visibility: Public,
					Name:       "T",
					TypeParams: []*TypeParameter{{Name: "X"}},
					SuperType:  &TypeSpecSimple{Type: "S"},
					Methods: []*MethodSignature{
						{
							Visibility: Public,
							Name:       "f",
							Params:     []*Parameter{{Name: "x", Type: &TypeSpecSimple{Type: "X"}}},
							ReturnType: &TypeSpecUnion{Types: []TypeSpec{
								&TypeSpecSimple{Type: "A"},
								&TypeSpecIntersection{Types: []TypeSpec{
									&TypeSpecSimple{Type: "B"},
									&TypeSpecSimple{Type: "C"},
								}},
							}},
						},
						{
							Visibility: Private,
							Name:       "g",
							TypeParams: []*TypeParameter{{Name: "Y"}},
							ReturnType: &TypeSpecFunction{
								Params: []TypeSpec{&TypeSpecSimple{Type: "Y"}, &TypeSpecSimple{Type: "X"}},
								Return: &TypeSpecSimple{Type: "X"},
							},
						},
					},
				},
			},
		},
		{
			name: "attributes",
			src:  `class C : List[Number] { var a: Number = 1 val b; }`,
			want: &Root{
				Namespace: "p",
				Top: &Class{
					Name: "C",
					SuperType: &TypeSpecSimple{
						Type: "List",
						Args: []TypeSpec{&TypeSpecSimple{Type: "Number"}},
					},
					Attributes: []*Attribute{
						{
							Mode:  Var,
							Name:  "a",
							Type:  &TypeSpecSimple{Type: "Number"},
							Value: &NumberValue{Value: "1"},
						},
						{Mode: Val, Name: "b", Type: &TypeSpecInferred{}},
					},
				},
			},
		},
		{
			name: "statements",
			src: `class C {
				m(): Boolean {
					val x = "s";
					x = true
					this.a = none
					f(x, 2.5)
					x.g[A]()
					this.a
				}
			}`,
			want: &Root{
				Namespace: "p",
				Top: &Class{
					Name:      "C",
					SuperType: object(),
					Methods: []*Method{{
						Signature: &MethodSignature{
							Visibility: Public,
							Name:       "m",
							ReturnType: &TypeSpecSimple{Type: "Boolean"},
						},
						Statements: []*Statement{
							{Value: &NewAssignmentValue{
								Mode:  Val,
								Name:  "x",
								Type:  &TypeSpecInferred{},
								Value: &StringValue{Value: "s"},
							}},
							{Value: &DirectAssignmentValue{
								Ref:   &Reference{Name: "x"},
								Value: &BooleanValue{Value: true},
							}},
							{Value: &IndirectAssignmentValue{
								Indirect: ident("this"),
								Ref:      &Reference{Name: "a"},
								Value:    &NoneValue{},
							}},
							{Value: &MethodCallValue{
								Ref:  &Reference{Name: "f", AllowForward: true},
								Args: []Value{ident("x"), &NumberValue{Value: "2.5"}},
							}},
							{Value: &NestedValue{
								Outer: ident("x"),
								Inner: &MethodCallValue{
									Ref:      &Reference{Name: "g", AllowForward: true},
									TypeArgs: []TypeSpec{&TypeSpecSimple{Type: "A"}},
								},
							}},
							{
								Value: &NestedValue{Outer: ident("this"), Inner: ident("a")},
								Last:  true,
							},
						},
					}},
				},
			},
		},
		{
			name: "function value",
			src:  `class C { f() { (x: A): B => { x } } }`,
			want: &Root{
				Namespace: "p",
				Top: &Class{
					Name:      "C",
					SuperType: object(),
					Methods: []*Method{{
						Signature: &MethodSignature{
							Visibility: Public,
							Name:       "f",
							ReturnType: &TypeSpecInferred{},
						},
						Statements: []*Statement{{
							Value: &FunctionValue{
								Params:     []*Parameter{{Name: "x", Type: &TypeSpecSimple{Type: "A"}}},
								ReturnType: &TypeSpecSimple{Type: "B"},
								Statements: []*Statement{{Value: ident("x"), Last: true}},
							},
							Last: true,
						}},
					}},
				},
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			p := NewParser("p")
			if err := p.Parse("", strings.NewReader(test.src)); err != nil {
				t.Fatalf("failed to parse: %s", err)
			}
			got := p.Roots()[0]
			if diff := cmp.Diff(test.want, got, cmpopts.IgnoreUnexported(Meta{})); diff != "" {
				t.Errorf("parse mismatch (-want +got):\n%s\n%s", diff, pretty.String(got))
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		src  string
		line int
		col  int
		want string
	}{
		{src: "", line: 1, col: 1, want: `"type"`},
		{src: "class C {", line: 1, col: 10, want: "identifier"},
		{src: "class C { }\nclass D { }", line: 2, col: 1, want: "EOF"},
		{src: "class C { f() { val = 1 } }", line: 1, col: 21, want: "identifier"},
		{src: "type T { f(x): X }", line: 1, col: 13, want: `":"`},
		{src: "class C { f() { # } }", line: 1, col: 17, want: "token"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.src, func(t *testing.T) {
			t.Parallel()
			p := NewParser("p")
			err := p.Parse("test.th", strings.NewReader(test.src))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", test.src)
			}
			perr, ok := err.(interface {
				Pos() *loc.Pos
				Tree() *peg.Fail
			})
			if !ok {
				t.Fatalf("error %T has no position", err)
			}
			pos := perr.Pos()
			if pos == nil || pos.Line[0] != test.line || pos.Col[0] != test.col {
				t.Errorf("error position=%v, want %d.%d", pos, test.line, test.col)
			}
			var wants []string
			for _, k := range perr.Tree().Kids {
				wants = append(wants, k.Want)
			}
			if !contains(wants, test.want) {
				t.Errorf("wanted %v, want %s", wants, test.want)
			}
			if len(p.Roots()) != 0 {
				t.Errorf("a failed parse added a root")
			}
		})
	}
}

func contains(ss []string, s string) bool {
	for _, t := range ss {
		if t == s {
			return true
		}
	}
	return false
}

func TestParsePositions(t *testing.T) {
	src := "class C {\n\tm(): X {\n\t\tval x = 1\n\t}\n}\n"
	p := NewParser("p")
	if err := p.Parse("c.th", strings.NewReader(src)); err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	class := p.Roots()[0].Top.(*Class)
	method := class.Methods[0]
	assign := method.Statements[0].Value.(*NewAssignmentValue)
	tests := []struct {
		node  Node
		loc   string
		lines []string
	}{
		{node: class, loc: "c.th:1.1-5.1", lines: []string{"class C {", "\tm(): X {", "\t\tval x = 1", "\t}", "}"}},
		{node: method, loc: "c.th:2.2-4.2", lines: []string{"\tm(): X {", "\t\tval x = 1", "\t}"}},
		{node: assign, loc: "c.th:3.3-3.11", lines: []string{"\t\tval x = 1"}},
		{node: assign.Value, loc: "c.th:3.11", lines: []string{"\t\tval x = 1"}},
		// The implicit supertype is positioned at the class name.
		{node: class.SuperType, loc: "c.th:1.7", lines: []string{"class C {"}},
	}
	for _, test := range tests {
		pos := test.node.Pos()
		if pos == nil {
			t.Errorf("%T has no position", test.node)
			continue
		}
		if got := pos.Loc.String(); got != test.loc {
			t.Errorf("%T at %s, want %s", test.node, got, test.loc)
		}
		if diff := cmp.Diff(test.lines, pos.Lines); diff != "" {
			t.Errorf("%T lines mismatch (-want +got):\n%s", test.node, diff)
		}
	}
}

func TestSharedFiles(t *testing.T) {
	files := new(loc.Files)
	p0 := NewParserWithLocs("a", files)
	p1 := NewParserWithLocs("b", files)
	if err := p0.Parse("a.th", strings.NewReader("class A { }")); err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	if err := p1.Parse("b.th", strings.NewReader("\n\nclass B { }")); err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	if len(*files) != 2 {
		t.Fatalf("got %d files, want 2", len(*files))
	}
	pos := p1.Roots()[0].Top.Pos()
	if pos.Path != "b.th" || pos.Line[0] != 3 {
		t.Errorf("B at %s, want b.th:3", pos.Loc)
	}
	if got := p1.Roots()[0].Namespace; got != "b" {
		t.Errorf("namespace=%q, want b", got)
	}
}
