// thc checks Thorium projects.
//
// Usage:
//	thc check [-format default|plain|json] [-trace] [-classpath file] <project dir>
//	thc symbols <project dir>   (the symbol table and the method set of each type)
//	thc index -o <index file> <project dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/thoriumlang/thc-sub002/diag"
	"github.com/thoriumlang/thc-sub002/index"
	"github.com/thoriumlang/thc-sub002/mod"
	"github.com/thoriumlang/thc-sub002/sem"
)

var (
	errorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoStyle  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}

	cli := olive.NewCLI("thc", "thc checks Thorium projects", true)

	checkCmd := cli.AddSubcommand("check", "check a project and report its errors", true)
	checkCmd.AddPrimaryArg("project-dir", "the project directory", true)
	formatArg := checkCmd.AddSelectorArg("format", "f", "the error format", false, []string{"default", "plain", "json"})
	formatArg.SetDefaultValue("default")
	checkCmd.AddFlag("trace", "t", "trace the semantic passes")
	checkCmd.AddStringArg("classpath", "cp", "the host class path manifest, overriding the project's", false)

	symbolsCmd := cli.AddSubcommand("symbols", "print the symbol table of a project", true)
	symbolsCmd.AddPrimaryArg("project-dir", "the project directory", true)

	indexCmd := cli.AddSubcommand("index", "write the symbol index of a project", true)
	indexCmd.AddPrimaryArg("project-dir", "the project directory", true)
	indexCmd.AddStringArg("output", "o", "the index file", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		die("Usage", err)
	}
	name, sub, _ := result.Subcommand()
	switch name {
	case "check":
		os.Exit(check(sub))
	case "symbols":
		c, _ := compile(sub, sem.Config{})
		printSymbols(c)
	case "index":
		c, _ := compile(sub, sem.Config{})
		writeIndex(c, sub.Arguments["output"].(string))
	}
}

func check(result *olive.ArgParseResult) int {
	cfg := sem.Config{Trace: result.HasFlag("trace")}
	c, errs := compile(result, cfg)
	var f diag.Formatter
	switch result.Arguments["format"].(string) {
	case "plain":
		f = diag.PlainFormatter{}
	case "json":
		f = diag.NewJSONFormatter()
	default:
		f = diag.DefaultFormatter{}
	}
	for _, err := range errs {
		if _, ok := f.(*diag.JSONFormatter); ok {
			fmt.Println(err.Format(f))
			continue
		}
		pterm.FgRed.Println(err.Format(f))
	}
	if len(errs) > 0 {
		errorStyle.Print("Failed")
		pterm.FgRed.Printf(" %d errors in %d sources\n", len(errs), len(c.Units()))
		return 1
	}
	infoStyle.Print("OK")
	pterm.FgLightGreen.Printf(" %d sources\n", len(c.Units()))
	return 0
}

// compile loads and compiles the project named by the primary argument.
func compile(result *olive.ArgParseResult, cfg sem.Config) (*sem.Compilation, []*diag.Error) {
	dir, _ := result.PrimaryArg()
	m, err := mod.Load(dir)
	if err != nil {
		die("Project Error", err)
	}
	if v, ok := result.Arguments["classpath"]; ok {
		path, err := filepath.Abs(v.(string))
		if err != nil {
			die("Path Error", err)
		}
		m.Config.ClassPath = path
	}
	c, err := m.NewCompilation(cfg)
	if err != nil {
		die("Project Error", err)
	}
	return c, c.CompileAll()
}

// printSymbols prints the symbol table,
// then the method set of each type the sources declare.
func printSymbols(c *sem.Compilation) {
	fmt.Print(c.Table().String())
	for _, u := range c.Units() {
		if u.Symbol() == nil {
			continue
		}
		infoStyle.Print(u.Name)
		fmt.Println()
		for _, sig := range index.MethodSet(u.Name, c.Table()) {
			fmt.Println("  " + sig)
		}
	}
}

func writeIndex(c *sem.Compilation, path string) {
	db, err := index.Open(path)
	if err != nil {
		die("Index Error", err)
	}
	if err := db.Write(c.Units(), c.Table()); err != nil {
		db.Close()
		die("Index Error", err)
	}
	if err := db.Close(); err != nil {
		die("Index Error", err)
	}
	infoStyle.Print("Indexed")
	pterm.FgLightGreen.Printf(" %d sources to %s\n", len(c.Units()), path)
}

func die(tag string, err error) {
	errorStyle.Print(tag)
	pterm.FgRed.Println(" " + err.Error())
	os.Exit(1)
}
