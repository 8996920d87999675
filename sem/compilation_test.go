package sem

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/symbols"
	"github.com/thoriumlang/thc-sub002/types"
)

type source struct {
	name, namespace, text string
}

func compilation(t *testing.T, cfg Config, srcs ...source) *Compilation {
	t.Helper()
	c := NewCompilation(cfg)
	for _, src := range srcs {
		path := strings.Replace(src.name, ".", "/", -1) + ".th"
		if err := c.Add(src.name, src.namespace, path, src.text); err != nil {
			t.Fatalf("failed to add %s: %s", src.name, err)
		}
	}
	return c
}

func TestCompileForwardTypeReference(t *testing.T) {
	c := compilation(t, Config{},
		source{name: "p.C", namespace: "p", text: `class C { val d: D; m(): Number { 1 } }`},
		source{name: "p.D", namespace: "p", text: `class D : C { }`},
	)
	u, err := c.Compile("p.C")
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}
	if len(u.Errs) > 0 {
		t.Fatalf("unexpected errors: %v", u.Errs)
	}
	if got := u.Root.Top.(*ast.Class).Attributes[0].Type.String(); got != "p.D" {
		t.Errorf("d is of type %s, want p.D", got)
	}
	d := c.Units()[1]
	if d.Root == nil || d.status != compiled {
		t.Fatalf("p.D was not compiled while compiling p.C")
	}
	if got := d.Root.Top.(*ast.Class).SuperType.String(); got != "p.C" {
		t.Errorf("D's supertype is %s, want p.C", got)
	}

	// The type algebra sees the checked trees.
	typ := types.FromSpec(ast.Simple("p.D"), c.Table())
	var methods []string
	for _, m := range typ.Methods() {
		methods = append(methods, m.Signature())
	}
	if diff := cmp.Diff([]string{"m(): org.thoriumlang.Number"}, methods); diff != "" {
		t.Errorf("p.D methods mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileAcrossNamespaces(t *testing.T) {
	c := compilation(t, Config{},
		source{name: "a.A", namespace: "a", text: `use b.B; class A { val b: B; }`},
		source{name: "b.B", namespace: "b", text: `use a.A; class B { val a: A; }`},
	)
	if errs := c.CompileAll(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	tests := []struct {
		unit int
		want string
	}{
		{unit: 0, want: "b.B"},
		{unit: 1, want: "a.A"},
	}
	for _, test := range tests {
		u := c.Units()[test.unit]
		if got := u.Root.Top.(*ast.Class).Attributes[0].Type.String(); got != test.want {
			t.Errorf("%s attribute is of type %s, want %s", u.Name, got, test.want)
		}
	}
	for _, name := range []string{"a.A", "b.B"} {
		syms := c.Table().Find(symbols.NewName(name))
		if len(syms) != 1 || syms[0].String() != "(th: "+name+")" {
			t.Errorf("Find(%s)=%v", name, syms)
		}
	}
}

func TestCompileCycle(t *testing.T) {
	var trace strings.Builder
	c := compilation(t, Config{Trace: true, TraceOut: &trace},
		source{name: "p.A", namespace: "p", text: `class A { val b: B; }`},
		source{name: "p.B", namespace: "p", text: `class B : A { val a: A; }`},
	)
	if errs := c.CompileAll(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, u := range c.Units() {
		if u.status != compiled {
			t.Errorf("%s not compiled", u.Name)
		}
	}
	if n := strings.Count(trace.String(), "compile(p.B)"); n != 1 {
		t.Errorf("p.B compiled %d times, want once:\n%s", n, trace.String())
	}

	// A unit requested while it is being compiled
	// answers with its declared symbol.
	a := c.Units()[0]
	a.status = compiling
	trace.Reset()
	sym := c.Load(symbols.NewName("p.A"), nil)
	if sym == nil || sym != symbols.Symbol(a.Symbol()) {
		t.Errorf("Load(p.A)=%v, want %v", sym, a.Symbol())
	}
	if !strings.Contains(trace.String(), "cycle: p.A is being compiled") {
		t.Errorf("no cycle in the trace:\n%s", trace.String())
	}
	if a.status != compiling {
		t.Errorf("Load compiled an in-flight unit")
	}
}

func TestCompileErrors(t *testing.T) {
	c := compilation(t, Config{},
		source{name: "p.Bad", namespace: "p", text: `class Bad {`},
		source{name: "p.C", namespace: "p", text: `class C { val b: Bad; val a = 1 val a = 2 }`},
		source{name: "p.Dup", namespace: "p", text: `class C { }`},
	)
	errs := c.CompileAll()
	var got []string
	for _, err := range errs {
		got = append(got, err.Kind.String())
	}
	want := []string{
		diag.Syntax.String(),
		// p.Bad failed to parse, so it declares nothing.
		diag.TypeNotDefined.String(),
		diag.SymbolAlreadyDefined.String(),
		// p.Dup declares p.C again.
		diag.SymbolAlreadyDefined.String(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("error kinds mismatch (-want +got):\n%s\n%v", diff, errs)
	}
	if errs[0].Pos == nil || errs[0].Pos.Path != "p/Bad.th" || errs[0].Pos.Line[0] != 1 {
		t.Errorf("syntax error at %v, want p/Bad.th:1", errs[0].Pos)
	}
	if c.Units()[0].Root != nil {
		t.Errorf("a unit that failed to parse has a tree")
	}
	if got := c.Units()[2].Symbol(); got != nil {
		t.Errorf("the duplicate declaration has symbol %v", got)
	}
}

func TestCompilationAdd(t *testing.T) {
	c := NewCompilation(Config{})
	if err := c.Add("p.C", "p", "C.th", `class C { }`); err != nil {
		t.Fatalf("Add failed: %s", err)
	}
	if err := c.Add("p.C", "p", "other/C.th", `class C { }`); err == nil {
		t.Errorf("Add succeeded on a duplicate unit")
	}
	if _, err := c.Compile("p.D"); err == nil {
		t.Errorf("Compile succeeded on an unknown unit")
	}
	if sym := c.Load(symbols.NewName("p.D"), nil); sym != nil {
		t.Errorf("Load(p.D)=%v, want nil", sym)
	}
}
