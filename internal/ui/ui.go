// Released under an MIT license. See LICENSE.

// Package ui provides weft's interactive prompt and its diagnostic
// printing. Diagnostics go to standard error, coloured when standard
// error is a terminal; evaluated output never passes through here.
package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/weftlang/weft/internal/common/fault"
	"github.com/weftlang/weft/internal/common/struct/loc"
	"github.com/weftlang/weft/internal/common/tree"
	"github.com/weftlang/weft/internal/common/warn"
	"github.com/weftlang/weft/internal/engine/eval"
	"github.com/weftlang/weft/internal/reader/lexer"
	"github.com/weftlang/weft/internal/reader/parser"
)

const (
	prompt      = "=> "
	historyFile = ".weft_history"
)

const (
	bold   = "\x1b[1m"
	red    = "\x1b[31m"
	reset  = "\x1b[0m"
	yellow = "\x1b[33m"
)

// Error prints err as a positioned diagnostic on standard error.
func Error(err error) {
	if f, ok := err.(*fault.T); ok && f.Source.Name != "" {
		diagnostic(&f.Source, red, "error", f.Msg)

		return
	}

	fmt.Fprintf(os.Stderr, "%s: %s\n", paint(red, "error"), err)
}

// Warning prints a positioned warning on standard error. It has the
// signature the evaluator expects of its warning sink.
func Warning(source *loc.T, msg string) {
	diagnostic(source, yellow, "warning", msg)
}

func diagnostic(source *loc.T, colour, label, msg string) {
	if source == nil || source.Name == "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", paint(colour, label), msg)

		return
	}

	fmt.Fprintf(os.Stderr, "%s: %s: %s\n", paint(bold, source.String()), paint(colour, label), msg)
}

func paint(colour, s string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return s
	}

	return colour + s + reset
}

// Repl runs the interactive prompt. Each submitted line is parsed as a
// document and evaluated against a persistent environment; results go
// to standard output and diagnostics to standard error. The prompt
// survives evaluation failures. It returns weft's exit status.
func Repl(warnings warn.Set, maxDepth int) int {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	hpath := historyPath()
	if hpath != "" {
		if f, err := os.Open(hpath); err == nil {
			cli.ReadHistory(f)
			f.Close()
		}
	}

	base, err := os.Getwd()
	if err != nil {
		Error(err)

		return 1
	}

	t := tree.New()

	env := eval.NewEnvironment(base, t)
	env.Warnings = warnings
	env.Warn = Warning
	env.MaxDepth = maxDepth

	fmt.Println("weft. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	for {
		line, err := cli.Prompt(prompt)

		switch err {
		case nil:
			// Keep going.
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Println()
			saveHistory(cli, hpath)

			return 0
		default:
			Error(err)
			saveHistory(cli, hpath)

			return 1
		}

		if line == "" {
			continue
		}

		if line == ":quit" {
			saveHistory(cli, hpath)

			return 0
		}

		cli.AppendHistory(line)

		l := lexer.New("<repl>")
		l.Scan(line + "\n")

		root, err := parser.New(l.Token, t).Document()
		if err != nil {
			Error(err)

			continue
		}

		v, err := eval.Eval(root, env, nil)
		if err != nil {
			Error(err)

			continue
		}

		if v != "" {
			fmt.Println(v)
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, historyFile)
}

func saveHistory(cli *liner.State, hpath string) {
	if hpath == "" {
		return
	}

	f, err := os.Create(hpath)
	if err != nil {
		return
	}

	cli.WriteHistory(f)
	f.Close()
}
