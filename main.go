package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eaburns/peggy/peg"
	"github.com/eaburns/pretty"
	"github.com/thoriumlang/thc-sub002/ast"
)

var namespace = flag.String("ns", "", "the namespace of the sources")

func main() {
	flag.Parse()
	pretty.Indent = "    "

	p := ast.NewParser(*namespace)

	if flag.NArg() == 0 {
		if err := p.Parse("", os.Stdin); err != nil {
			die(err)
		}
	} else {
		for _, file := range flag.Args() {
			if err := p.ParseFile(file); err != nil {
				die(err)
			}
		}
	}

	for _, root := range p.Roots() {
		if pos := root.Top.Pos(); pos != nil {
			fmt.Println(pos.Loc)
		}
		pretty.Print(root)
		fmt.Println("")
	}
	fmt.Println("")
}

func die(err error) {
	if pe, ok := err.(interface{ Tree() *peg.Fail }); ok {
		peg.PrettyWrite(os.Stdout, pe.Tree())
		fmt.Println("")
	}
	fmt.Println(err)
	os.Exit(1)
}
