// Released under an MIT license. See LICENSE.

// Package options provides weft's command-line handling.
package options

import (
	"github.com/docopt/docopt-go"

	"github.com/weftlang/weft/internal/common/warn"
	"github.com/weftlang/weft/internal/engine/eval"
)

//nolint:gochecknoglobals
var (
	debug    bool
	input    string
	maxDepth int
	output   string
	repl     bool
	sexpr    bool
	warnings warn.Set
	usage    = `weft

Usage:
  weft [-dsw] -i INPUT [-o OUTPUT] [--max-depth=N]
  weft [-dw] -r [--max-depth=N]
  weft -h

Options:
  -i, --input=INPUT    File to read input from.
  -o, --output=OUTPUT  File to output to (stdout by default).
  -s, --sexpr          Print AST as S-expression.
  -r, --repl           Start an interactive prompt.
  -d, --debug          Dump the node arena after parsing.
  -w, --no-warnings    Disable all warnings.
      --max-depth=N    Maximum call depth [default: 2048].
  -h, --help           Display this help.
`
)

func Debug() bool {
	return debug
}

func Input() string {
	return input
}

func MaxDepth() int {
	return maxDepth
}

func Output() string {
	return output
}

func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	debug, _ = opts.Bool("--debug")
	input, _ = opts.String("--input")
	output, _ = opts.String("--output")
	repl, _ = opts.Bool("--repl")
	sexpr, _ = opts.Bool("--sexpr")

	warnings = warn.All

	if off, _ := opts.Bool("--no-warnings"); off {
		warnings = 0
	}

	maxDepth, err = opts.Int("--max-depth")
	if err != nil || maxDepth <= 0 {
		maxDepth = eval.DefaultMaxDepth
	}
}

func Repl() bool {
	return repl
}

func Sexpr() bool {
	return sexpr
}

func Warnings() warn.Set {
	return warnings
}
