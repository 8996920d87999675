package ast

import (
	"strings"
	"testing"
)

func TestTypeSpecString(t *testing.T) {
	tests := []struct {
		spec TypeSpec
		want string
	}{
		{spec: Simple("A"), want: "A"},
		{spec: Simple("List", Simple("A"), Simple("B")), want: "List[A, B]"},
		{spec: Union(Simple("A"), Simple("B")), want: "(A | B)"},
		{spec: Intersection(Simple("A"), Union(Simple("B"), Simple("C"))), want: "(A & (B | C))"},
		{spec: Function(Simple("R"), Simple("A"), Simple("B")), want: "(A, B): R"},
		{spec: Function(Simple("R")), want: "(): R"},
		{spec: Inferred(), want: "[inferred]"},
	}
	for _, test := range tests {
		if got := test.spec.String(); got != test.want {
			t.Errorf("String()=%q, want %q", got, test.want)
		}
	}
}

func TestMethodNames(t *testing.T) {
	src := `class C {
		private f[T](a: Number, b: (A | B)): T { g(a, b, 1) }
		h() { }
	}`
	p := NewParser("p")
	if err := p.Parse("", strings.NewReader(src)); err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	class := p.Roots()[0].Top.(*Class)
	f := class.Methods[0]
	if got, want := f.Signature.SymbolName(), "f(Number,(A | B))"; got != want {
		t.Errorf("SymbolName()=%q, want %q", got, want)
	}
	if got, want := f.Signature.String(), "private f[T](a: Number, b: (A | B)): T"; got != want {
		t.Errorf("String()=%q, want %q", got, want)
	}
	call := f.Statements[0].Value.(*MethodCallValue)
	if got, want := call.CallName(), "g(_,_,_)"; got != want {
		t.Errorf("CallName()=%q, want %q", got, want)
	}
	if got, want := class.Methods[1].Signature.SymbolName(), "h()"; got != want {
		t.Errorf("SymbolName()=%q, want %q", got, want)
	}
}
