package sem

import (
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/symbols"
)

// inferTypes sets the Type of the declarations and values of a tree.
//
// Declarations are inferred on demand,
// so a method may be called before it is inferred.
// A declaration that is being inferred has no type yet;
// recursion through it yields an unknown type.
func inferTypes(x *state, root *ast.Root) (errs []*diag.Error) {
	defer x.tr("inferTypes(%s)", unitName(root))(&errs)
	in := &inferrer{
		x:        x,
		done:     make(map[ast.Node]bool),
		visiting: make(map[ast.Node]bool),
		reported: make(map[ast.Node]bool),
	}
	switch top := root.Top.(type) {
	case *ast.Type:
		for _, m := range top.Methods {
			in.decl(m)
		}
	case *ast.Class:
		top.Context().Type = ast.Union(top.SuperType, ast.Simple(unitName(root)))
		in.done[top] = true
		for _, a := range top.Attributes {
			in.decl(a)
		}
		for _, m := range top.Methods {
			in.decl(m)
		}
	default:
		panic(fmt.Sprintf("impossible top-level type: %T", top))
	}
	ast.Walk(root, func(n ast.Node) bool {
		if t := n.Context().Type; t != nil {
			if f, changed := flattenSpec(t); changed {
				n.Context().Type = f
			}
		}
		return true
	})
	if class, ok := root.Top.(*ast.Class); ok {
		removeNone(class)
	}
	return in.errs
}

type inferrer struct {
	x        *state
	done     map[ast.Node]bool
	visiting map[ast.Node]bool
	reported map[ast.Node]bool
	errs     []*diag.Error
}

// report adds an error, at most one per node.
func (in *inferrer) report(kind diag.Kind, n ast.Node, f string, vs ...interface{}) *diag.Error {
	if in.reported[n] {
		return nil
	}
	in.reported[n] = true
	err := diag.New(kind, n, f, vs...)
	in.errs = append(in.errs, err)
	return err
}

func libType(name string) ast.TypeSpec {
	return ast.Simple(LibNamespace + "." + name)
}

// declared returns the declared type, or inferred if the type was omitted.
func declared(t, inferred ast.TypeSpec) ast.TypeSpec {
	if _, ok := t.(*ast.TypeSpecInferred); ok {
		return inferred
	}
	return t
}

// decl returns the type of a declaration, inferring it if needed.
func (in *inferrer) decl(n ast.Node) ast.TypeSpec {
	if in.done[n] || in.visiting[n] {
		return n.Context().Type
	}
	in.visiting[n] = true
	t := in.declType(n)
	delete(in.visiting, n)
	in.done[n] = true
	if t != nil {
		n.Context().Type = t
	}
	return n.Context().Type
}

func (in *inferrer) declType(n ast.Node) ast.TypeSpec {
	switch n := n.(type) {
	case *ast.Attribute:
		var vt ast.TypeSpec
		if n.Value != nil {
			vt = in.value(n.Value)
		}
		t := declared(n.Type, vt)
		if t == nil {
			in.report(diag.TypeNotInferable, n, "cannot infer type")
		}
		return t

	case *ast.Parameter:
		t := declared(n.Type, nil)
		if t == nil {
			in.report(diag.TypeNotInferable, n, "cannot infer type")
		}
		return t

	case *ast.Method:
		for _, p := range n.Signature.Params {
			in.decl(p)
		}
		t := in.statements(n.Statements)
		t = declared(n.Signature.ReturnType, t)
		if t != nil {
			n.Signature.Context().Type = t
		}
		return t

	case *ast.MethodSignature:
		for _, p := range n.Params {
			in.decl(p)
		}
		t := declared(n.ReturnType, nil)
		if t == nil {
			in.report(diag.TypeNotInferable, n, "cannot infer type")
		}
		return t

	case *ast.TypeParameter:
		return ast.Simple(n.Name)

	case *ast.Class, *ast.NewAssignmentValue:
		// Typed before any reference to them.
		return n.Context().Type

	case *ast.Type, *ast.Use, *ast.TypeSpecSimple:
		// A type name used as a value.
		return nil

	default:
		panic(fmt.Sprintf("impossible declaration type: %T", n))
	}
}

// statements infers the types of the statements of a body
// and returns the type of its last statement.
// An empty body is of type None.
func (in *inferrer) statements(ss []*ast.Statement) ast.TypeSpec {
	if len(ss) == 0 {
		return libType("None")
	}
	var lasts []ast.TypeSpec
	for _, s := range ss {
		t := in.value(s.Value)
		if t != nil {
			s.Context().Type = t
		}
		if !s.Last {
			continue
		}
		if t == nil {
			return nil
		}
		lasts = append(lasts, t)
	}
	if len(lasts) == 1 {
		return lasts[0]
	}
	t, _ := flattenSpec(ast.Intersection(lasts...))
	return t
}

// value infers and sets the type of a value.
// It returns nil if the type is unknown.
func (in *inferrer) value(v ast.Value) ast.TypeSpec {
	t := in.valueType(v)
	if t != nil {
		v.Context().Type = t
	}
	return t
}

func (in *inferrer) valueType(v ast.Value) ast.TypeSpec {
	switch v := v.(type) {
	case *ast.StringValue:
		return libType("String")
	case *ast.NumberValue:
		return libType("Number")
	case *ast.BooleanValue:
		return libType("Boolean")
	case *ast.NoneValue:
		return libType("None")

	case *ast.IdentifierValue:
		n := in.target(v.Ref)
		if n == nil {
			return nil
		}
		t := in.decl(n)
		if t != nil {
			v.Ref.Context().Type = t
		}
		return t

	case *ast.NewAssignmentValue:
		t := declared(v.Type, in.value(v.Value))
		if t == nil {
			in.report(diag.TypeNotInferable, v, "cannot infer type")
		}
		in.done[v] = true
		return t

	case *ast.DirectAssignmentValue:
		t := in.value(v.Value)
		n := in.target(v.Ref)
		if n == nil || t == nil {
			return t
		}
		if old := in.decl(n); old != nil {
			n.Context().Type, _ = flattenSpec(ast.Intersection(old, t))
		}
		return t

	case *ast.IndirectAssignmentValue:
		in.value(v.Indirect)
		return in.value(v.Value)

	case *ast.MethodCallValue:
		args := make([]ast.TypeSpec, len(v.Args))
		for i, a := range v.Args {
			args[i] = in.value(a)
		}
		n := in.call(v, args)
		if n == nil {
			return nil
		}
		t := in.decl(n)
		if t != nil {
			v.Ref.Context().Type = t
		}
		return t

	case *ast.NestedValue:
		in.value(v.Outer)
		return in.value(v.Inner)

	case *ast.FunctionValue:
		for _, p := range v.Params {
			in.decl(p)
		}
		in.statements(v.Statements)
		return libType("Function")

	default:
		panic(fmt.Sprintf("impossible value type: %T", v))
	}
}

// target returns the declaration a non-method reference resolved to, or nil.
func (in *inferrer) target(ref *ast.Reference) ast.Node {
	v, ok := ref.Context().Get(referencedKey)
	if !ok {
		return nil
	}
	syms := v.([]symbols.Symbol)
	if len(syms) != 1 {
		return nil
	}
	return declNode(syms[0])
}

// call returns the method a call targets, or nil.
// On success, the call's reference is narrowed to the targeted method.
func (in *inferrer) call(v *ast.MethodCallValue, args []ast.TypeSpec) ast.Node {
	refd, ok := v.Ref.Context().Get(referencedKey)
	if !ok {
		return nil
	}
	matches := findBestMatch(args, candidates(refd.([]symbols.Symbol)))
	switch len(matches) {
	case 0:
		in.report(diag.TargetNotFound, v.Ref, "no alternatives found")
		return nil
	case 1:
		v.Ref.Context().Put(referencedKey, []symbols.Symbol{matches[0].sym})
		in.x.log("%s resolved to %s", v.CallName(), matches[0].sym)
		return matches[0].node
	default:
		if err := in.report(diag.TooManyAlternatives, v.Ref, "too many alternatives found"); err != nil {
			diag.Note(err, "found %d alternatives", len(matches))
		}
		return nil
	}
}

// removeNone removes None from the type of the attributes
// that every constructor assigns.
// Constructors are the methods named after the class.
func removeNone(class *ast.Class) {
	var ctors int
	assigned := make(map[ast.Node]int)
	for _, m := range class.Methods {
		if m.Signature.Name != class.Name {
			continue
		}
		ctors++
		seen := make(map[ast.Node]bool)
		for _, s := range m.Statements {
			a, ok := s.Value.(*ast.DirectAssignmentValue)
			if !ok {
				continue
			}
			refd, ok := a.Ref.Context().Get(referencedKey)
			if !ok {
				continue
			}
			for _, sym := range refd.([]symbols.Symbol) {
				if n, ok := declNode(sym).(*ast.Attribute); ok && !seen[n] {
					seen[n] = true
					assigned[n]++
				}
			}
		}
	}
	if ctors == 0 {
		return
	}
	none := LibNamespace + ".None"
	for _, a := range class.Attributes {
		if assigned[a] != ctors {
			continue
		}
		inter, ok := a.Context().Type.(*ast.TypeSpecIntersection)
		if !ok {
			continue
		}
		var types []ast.TypeSpec
		for _, t := range inter.Types {
			if t.String() != none {
				types = append(types, t)
			}
		}
		if len(types) == 0 || len(types) == len(inter.Types) {
			continue
		}
		a.Context().Type, _ = flattenSpec(&ast.TypeSpecIntersection{Meta: inter.Meta.Derive(), Types: types})
	}
}
