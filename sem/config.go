// Package sem implements the semantic passes of the Thorium compiler.
//
// A tree goes through a fixed pipeline:
// scopes are created, declarations are discovered,
// type names are qualified and flattened,
// symbolic names are checked, and types are inferred.
// Each pass collects diagnostics instead of stopping at the first one.
package sem

import "io"

// Config are configuration parameters for the semantic passes.
type Config struct {
	// Loaders resolve type names that are not declared
	// in the symbol table of the run.
	// They are consulted in order; the first symbol found wins.
	//
	// If nil, only the Thorium runtime library is loaded.
	Loaders []TypeLoader

	// Trace turns on tracing of the passes.
	Trace bool

	// TraceOut is where the trace is written.
	// If nil, os.Stdout is used.
	TraceOut io.Writer
}
