// Released under an MIT license. See LICENSE.

package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/weftlang/weft/internal/common/fault"
	"github.com/weftlang/weft/internal/common/struct/loc"
	"github.com/weftlang/weft/internal/common/tree"
	"github.com/weftlang/weft/internal/reader/lexer"
	"github.com/weftlang/weft/internal/reader/parser"
	"github.com/weftlang/weft/internal/system/process"
)

// intrinsic checks arity and dispatches to one of the built-ins.
func intrinsic(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	if len(n.Args) != n.Kind.Arity() {
		return "", fault.Newf(n.Pos(), "%s takes exactly %d arguments.", n.Name, n.Kind.Arity())
	}

	switch n.Kind {
	case tree.IntrinsicAssert:
		return assert(n, env, scope)

	case tree.IntrinsicError:
		msg, err := Eval(n.Args[0], env, scope)
		if err != nil {
			return "", err
		}

		return "", fault.New(n.Pos(), msg)

	case tree.IntrinsicFile:
		return file(n, env, scope)

	case tree.IntrinsicSource:
		return source(n, env, scope)

	case tree.IntrinsicLog:
		v, err := Eval(n.Args[0], env, scope)
		if err != nil {
			return "", err
		}

		fmt.Fprint(env.Diag, v)

		return "", nil

	case tree.IntrinsicEscape:
		v, err := Eval(n.Args[0], env, scope)
		if err != nil {
			return "", err
		}

		return escape(v), nil

	case tree.IntrinsicSlice:
		return slice(n, env, scope)

	case tree.IntrinsicFind:
		return find(n, env, scope)

	case tree.IntrinsicLength:
		v, err := Eval(n.Args[0], env, scope)
		if err != nil {
			return "", err
		}

		return strconv.Itoa(len(v)), nil

	case tree.IntrinsicEval:
		return codeify(n.Args[0], n.Pos(), env, scope)

	case tree.IntrinsicRun:
		return run(n, env, scope)

	case tree.IntrinsicPipe:
		return pipe(n, env, scope)
	}

	return "", fault.Newf(n.Pos(), "unknown intrinsic %s.", n.Name)
}

func assert(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	lhs, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	rhs, err := Eval(n.Args[1], env, scope)
	if err != nil {
		return "", err
	}

	if lhs != rhs {
		return "", fault.New(n.Pos(), "assertion failed!")
	}

	return "", nil
}

// codeify evaluates an expression to a source string and then lexes,
// parses, and evaluates that string as a document. It backs both the
// eval intrinsic and the codeify node. Failures inside the generated
// source are reported at the call site.
func codeify(expr tree.ID, pos *loc.T, env *Environment, scope Scope) (string, error) {
	code, err := Eval(expr, env, scope)
	if err != nil {
		return "", err
	}

	if env.depth++; env.depth > env.MaxDepth {
		env.depth--

		return "", fault.New(pos, "recursion too deep.")
	}
	defer func() { env.depth-- }()

	l := lexer.New("<eval>")
	l.Scan(code)

	root, err := parser.New(l.Token, env.Tree).Document()
	if err != nil {
		return "", fault.Newf(pos, "inside eval: %s", fault.Message(err))
	}

	v, err := Eval(root, env, scope)
	if err != nil {
		return "", fault.Newf(pos, "inside eval: %s", fault.Message(err))
	}

	return v, nil
}

func escape(s string) string {
	b := &strings.Builder{}
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func file(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	fname, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return "", fault.Newf(n.Pos(), "failed reading file '%s'", fname)
	}

	return string(data), nil
}

func find(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	s, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	pattern, err := Eval(n.Args[1], env, scope)
	if err != nil {
		return "", err
	}

	i := strings.Index(s, pattern)
	if i < 0 {
		return "", nil
	}

	return strconv.Itoa(i), nil
}

func pipe(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	if !process.Available {
		return "", fault.New(n.Pos(), "pipe not available.")
	}

	command, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	input, err := Eval(n.Args[1], env, scope)
	if err != nil {
		return "", err
	}

	out, status, err := process.Pipe(command, input)
	if err != nil || status != 0 {
		return "", fault.New(n.Pos(), "subprocess exited with non-zero status.")
	}

	return out, nil
}

func run(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	if !process.Available {
		return "", fault.New(n.Pos(), "run not available.")
	}

	command, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	out, status, err := process.Run(command)
	if err != nil || status != 0 {
		return "", fault.New(n.Pos(), "subprocess exited with non-zero status.")
	}

	return out, nil
}

func slice(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	s, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	startRaw, err := Eval(n.Args[1], env, scope)
	if err != nil {
		return "", err
	}

	endRaw, err := Eval(n.Args[2], env, scope)
	if err != nil {
		return "", err
	}

	start, serr := strconv.Atoi(startRaw)
	end, eerr := strconv.Atoi(endRaw)

	if serr != nil || eerr != nil {
		return "", fault.New(n.Pos(), "slice range must be numerical.")
	}

	length := len(s)

	begin := start
	if start < 0 {
		begin = length + start
	}

	count := end - begin + 1
	if end < 0 {
		count = (length + end) - begin + 1
	}

	switch {
	case count <= 0:
		return "", fault.New(n.Pos(), "end of slice cannot be before the start.")
	case length < begin+count:
		return "", fault.New(n.Pos(), "slice extends outside of string bounds.")
	case start < 0 && end >= 0:
		return "", fault.New(n.Pos(), "start cannot be negative where end is positive.")
	case begin < 0:
		return "", fault.New(n.Pos(), "slice extends outside of string bounds.")
	}

	return s[begin : begin+count], nil
}

// source includes another weft file: the included document is lexed
// with a label relative to the environment base, and evaluated with
// the working directory set to the file's parent. The previous working
// directory is restored on every exit path.
func source(n *tree.Intrinsic, env *Environment, scope Scope) (string, error) {
	fname, err := Eval(n.Args[0], env, scope)
	if err != nil {
		return "", err
	}

	prev, err := os.Getwd()
	if err != nil {
		return "", fault.Newf(n.Pos(), "file '%s' not found.", fname)
	}

	path := fname
	if !filepath.IsAbs(path) {
		path = filepath.Join(prev, fname)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return "", fault.Newf(n.Pos(), "file '%s' not found.", fname)
	}

	label, err := filepath.Rel(env.Base, path)
	if err != nil {
		label = fname
	}

	l := lexer.New(label)
	l.Scan(string(data))

	root, err := parser.New(l.Token, env.Tree).Document()
	if err != nil {
		return "", err
	}

	if env.depth++; env.depth > env.MaxDepth {
		env.depth--

		return "", fault.New(n.Pos(), "recursion too deep.")
	}
	defer func() { env.depth-- }()

	if err := os.Chdir(filepath.Dir(path)); err != nil {
		return "", fault.Newf(n.Pos(), "file '%s' not found.", fname)
	}
	defer os.Chdir(prev)

	return Eval(root, env, scope)
}
