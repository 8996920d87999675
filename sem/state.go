package sem

import (
	"fmt"
	"os"
	"reflect"

	"github.com/thoriumlang/thc-sub002/symbols"
)

type state struct {
	cfg    Config
	table  *symbols.Table
	loader Loaders

	indent string
}

func newState(cfg Config, table *symbols.Table) *state {
	x := &state{cfg: cfg, table: table}
	setConfigDefaults(x)
	return x
}

func setConfigDefaults(x *state) {
	if x.cfg.TraceOut == nil {
		x.cfg.TraceOut = os.Stdout
	}
	if x.cfg.Loaders == nil {
		x.cfg.Loaders = []TypeLoader{LibLoader{}}
	}
	x.loader = Loaders(x.cfg.Loaders)
}

// The argument to the returned function,
// if non-empty, only the first element of vs is used.
// It must be a either pointer to a slice,
// or a pointer to a value that is logged if non-nil.
func (x *state) tr(f string, vs ...interface{}) func(...interface{}) {
	if !x.cfg.Trace {
		return func(...interface{}) {}
	}
	x.log(f, vs...)
	olddent := x.indent
	x.indent += "---"
	return func(errs ...interface{}) {
		defer func() { x.indent = olddent }()
		if len(errs) == 0 {
			return
		}
		v := reflect.ValueOf(errs[0])
		if v.IsNil() || v.Elem().Kind() == reflect.Slice && v.Elem().Len() == 0 {
			return
		}
		if v.Elem().Kind() == reflect.Ptr && v.Elem().IsNil() {
			return
		}
		x.log("%v", v.Elem().Interface())
	}
}

func (x *state) log(f string, vs ...interface{}) {
	if !x.cfg.Trace {
		return
	}
	fmt.Fprint(x.cfg.TraceOut, x.indent)
	fmt.Fprintf(x.cfg.TraceOut, f, vs...)
	fmt.Fprintln(x.cfg.TraceOut, "")
}
