/*
Weft is an interpreter for a small macro language whose only datatype
is the string. A weft document is a sequence of definitions and
expressions that, evaluated in order, emit a single string:

    let greet(name) => "hello " .. name;
    greet("world")

For more detail, see: https://github.com/weftlang/weft

Weft is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/weftlang/weft/internal/common/tree"
	"github.com/weftlang/weft/internal/engine/eval"
	"github.com/weftlang/weft/internal/reader/lexer"
	"github.com/weftlang/weft/internal/reader/parser"
	"github.com/weftlang/weft/internal/sexpr"
	"github.com/weftlang/weft/internal/system/options"
	"github.com/weftlang/weft/internal/ui"
)

func main() {
	options.Parse()

	if options.Repl() {
		os.Exit(ui.Repl(options.Warnings(), options.MaxDepth()))
	}

	os.Exit(run(options.Input()))
}

// run evaluates the document in fname. Output is buffered until
// evaluation completes so that nothing partial is ever written.
func run(fname string) int {
	data, err := os.ReadFile(fname)
	if err != nil {
		fmt.Fprintln(os.Stderr, "file not found.")

		return 1
	}

	// Relative file and source paths in the document resolve
	// against the document's own directory.
	abs, err := filepath.Abs(fname)
	if err == nil {
		err = os.Chdir(filepath.Dir(abs))
	}

	if err != nil {
		ui.Error(err)

		return 1
	}

	t := tree.New()

	l := lexer.New(fname)
	l.Scan(string(data))

	root, err := parser.New(l.Token, t).Document()
	if err != nil {
		ui.Error(err)

		return 1
	}

	if options.Debug() {
		spew.Fdump(os.Stderr, t)
	}

	var out string

	if options.Sexpr() {
		out = sexpr.String(t, root) + "\n"
	} else {
		env := eval.NewEnvironment(filepath.Dir(abs), t)
		env.Warnings = options.Warnings()
		env.Warn = ui.Warning
		env.MaxDepth = options.MaxDepth()

		out, err = eval.Eval(root, env, nil)
		if err != nil {
			ui.Error(err)

			return 1
		}
	}

	if path := options.Output(); path != "" {
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			ui.Error(err)

			return 1
		}

		return 0
	}

	os.Stdout.WriteString(out)

	return 0
}
