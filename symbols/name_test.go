package symbols

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestName(t *testing.T) {
	tests := []struct {
		name       string
		parts      []string
		simple     string
		normalized string
		qualified  bool
		method     bool
	}{
		{
			name:       "x",
			parts:      []string{"x"},
			simple:     "x",
			normalized: "x",
		},
		{
			name:       "org.thoriumlang.String",
			parts:      []string{"org", "thoriumlang", "String"},
			simple:     "String",
			normalized: "String",
			qualified:  true,
		},
		{
			name:       "f()",
			parts:      []string{"f()"},
			simple:     "f()",
			normalized: "f()",
			method:     true,
		},
		{
			name:       "f(org.thoriumlang.Number,org.thoriumlang.String)",
			parts:      []string{"f(org.thoriumlang.Number,org.thoriumlang.String)"},
			simple:     "f(org.thoriumlang.Number,org.thoriumlang.String)",
			normalized: "f(_,_)",
			method:     true,
		},
		{
			name:       "a.b.f(List[A, B])",
			parts:      []string{"a", "b", "f(List[A, B])"},
			simple:     "f(List[A, B])",
			normalized: "f(_)",
			qualified:  true,
			method:     true,
		},
		{
			name:       "f((A | B),(C, D): E)",
			parts:      []string{"f((A | B),(C, D): E)"},
			simple:     "f((A | B),(C, D): E)",
			normalized: "f(_,_)",
			method:     true,
		},
		{
			name:       "f(_,_,_)",
			parts:      []string{"f(_,_,_)"},
			simple:     "f(_,_,_)",
			normalized: "f(_,_,_)",
			method:     true,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			n := NewName(test.name)
			if got := n.FullName(); got != test.name {
				t.Errorf("FullName()=%q, want %q", got, test.name)
			}
			if diff := cmp.Diff(test.parts, n.Parts()); diff != "" {
				t.Errorf("Parts() mismatch (-want +got):\n%s", diff)
			}
			if got := n.SimpleName(); got != test.simple {
				t.Errorf("SimpleName()=%q, want %q", got, test.simple)
			}
			if got := n.NormalizedSimpleName(); got != test.normalized {
				t.Errorf("NormalizedSimpleName()=%q, want %q", got, test.normalized)
			}
			if got := n.IsQualified(); got != test.qualified {
				t.Errorf("IsQualified()=%v, want %v", got, test.qualified)
			}
			if got := n.IsMethod(); got != test.method {
				t.Errorf("IsMethod()=%v, want %v", got, test.method)
			}
		})
	}
}

func TestNewNameIn(t *testing.T) {
	tests := []struct {
		name, namespace, want string
	}{
		{name: "C", namespace: "a.b", want: "a.b.C"},
		{name: "x.C", namespace: "a.b", want: "x.C"},
		{name: "C", namespace: "", want: "C"},
	}
	for _, test := range tests {
		if got := NewNameIn(test.name, test.namespace).FullName(); got != test.want {
			t.Errorf("NewNameIn(%q, %q)=%q, want %q", test.name, test.namespace, got, test.want)
		}
	}
}
