// Released under an MIT license. See LICENSE.

// Package eval provides the weft evaluator. Evaluation reduces a node
// to a string, growing the function table as definitions are seen and
// rewriting the tree where the language requires it (variable
// memoisation, prefix renames).
package eval

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/weftlang/weft/internal/common/fault"
	"github.com/weftlang/weft/internal/common/struct/loc"
	"github.com/weftlang/weft/internal/common/tree"
	"github.com/weftlang/weft/internal/common/warn"
)

// DefaultMaxDepth bounds call recursion unless the driver overrides it.
const DefaultMaxDepth = 2048

// Environment is the per-run evaluation state.
type Environment struct {
	Base      string     // Directory source include labels are made relative to.
	Functions Functions  // Visible definitions, keyed by name and arity.
	Tree      *tree.T    // The node arena.
	Warnings  warn.Set   // Enabled warnings.
	Diag      io.Writer  // Destination for the log intrinsic.
	Warn      WarnFunc   // Warning sink.
	MaxDepth  int        // Call depth limit.

	depth int
}

// WarnFunc receives enabled warnings as they are emitted.
type WarnFunc func(source *loc.T, msg string)

// Scope maps parameter names to their evaluated values for one call.
type Scope map[string]string

// NewEnvironment creates an environment for evaluating nodes in t.
// Base anchors the labels given to included files.
func NewEnvironment(base string, t *tree.T) *Environment {
	return &Environment{
		Base:      base,
		Functions: Functions{},
		Tree:      t,
		Warnings:  warn.All,
		Diag:      os.Stderr,
		MaxDepth:  DefaultMaxDepth,
	}
}

func (env *Environment) warnf(w warn.Set, source *loc.T, format string, args ...interface{}) {
	if env.Warn == nil || !env.Warnings.Enabled(w) {
		return
	}

	env.Warn(source, fmt.Sprintf(format, args...))
}

// Eval reduces the node id to a string. A nil scope means top level.
// Failures carry the position of the node that caused them.
func Eval(id tree.ID, env *Environment, scope Scope) (string, error) {
	switch n := env.Tree.Get(id).(type) {
	case *tree.String:
		return n.Value, nil

	case *tree.Concat:
		lhs, err := Eval(n.LHS, env, scope)
		if err != nil {
			return "", err
		}

		rhs, err := Eval(n.RHS, env, scope)
		if err != nil {
			return "", err
		}

		return lhs + rhs, nil

	case *tree.Document:
		s := &strings.Builder{}

		for _, stmt := range n.Stmts {
			v, err := Eval(stmt, env, scope)
			if err != nil {
				return "", err
			}

			s.WriteString(v)
		}

		return s.String(), nil

	case *tree.Block:
		// Statement values are computed, side effects and all, but
		// the trailing expression's value replaces them.
		for _, stmt := range n.Stmts {
			if _, err := Eval(stmt, env, scope); err != nil {
				return "", err
			}
		}

		return Eval(n.Expr, env, scope)

	case *tree.FnInvoke:
		return invoke(n, env, scope)

	case *tree.Fn:
		if env.Functions.Define(n.Identifier, len(n.Params), id) {
			env.warnf(warn.FuncRedefined, n.Pos(), "function '%s' redefined.", n.Identifier)
		}

		return "", nil

	case *tree.Var:
		return define(n, id, env, scope)

	case *tree.Drop:
		return drop(n, env)

	case *tree.Codeify:
		return codeify(n.Expr, n.Pos(), env, scope)

	case *tree.Map:
		return branch(n, env, scope)

	case *tree.Pre:
		return prefixed(n, env, scope)

	case *tree.Intrinsic:
		return intrinsic(n, env, scope)
	}

	node := env.Tree.Get(id)

	return "", fault.New(node.Pos(), "cannot evaluate node")
}

// invoke resolves a call: first against the current argument scope,
// then against the function table by name and arity.
func invoke(n *tree.FnInvoke, env *Environment, scope Scope) (string, error) {
	if scope != nil {
		if v, ok := scope[n.Identifier]; ok {
			if len(n.Args) > 0 {
				return "", fault.Newf(n.Pos(), "calling argument '%s' as if it were a function.", n.Identifier)
			}

			if env.Functions.Exists(n.Identifier, 0) {
				env.warnf(warn.ParamShadowFunc, n.Pos(), "parameter %s is shadowing a function.", n.Identifier)
			}

			return v, nil
		}
	}

	fid, ok := env.Functions.Lookup(n.Identifier, len(n.Args))
	if !ok {
		return "", fault.Newf(n.Pos(), "func not found: %s.", n.Identifier)
	}

	fn, ok := env.Tree.Get(fid).(*tree.Fn)
	if !ok {
		return "", fault.Newf(n.Pos(), "func not found: %s.", n.Identifier)
	}

	if env.depth++; env.depth > env.MaxDepth {
		env.depth--

		return "", fault.New(n.Pos(), "recursion too deep.")
	}
	defer func() { env.depth-- }()

	callee := make(Scope, len(scope)+len(fn.Params))

	for k, v := range scope {
		callee[k] = v
	}

	// Arguments are evaluated left to right in the caller's scope and
	// bound to the callee's parameters, overwriting inherited entries.
	for i, arg := range n.Args {
		v, err := Eval(arg, env, scope)
		if err != nil {
			return "", err
		}

		if _, shadowed := callee[fn.Params[i]]; shadowed {
			env.warnf(warn.ParamShadowParam, fn.Pos(),
				"parameter '%s' inside function '%s' shadows parameter from parent scope.",
				fn.Params[i], fn.Identifier)
		}

		callee[fn.Params[i]] = v
	}

	return Eval(fn.Body, env, callee)
}

// define evaluates a variable definition. The body is evaluated once;
// the result is cached by rewriting the body as a String and the Var
// itself as a zero-parameter Fn registered at arity 0.
func define(n *tree.Var, id tree.ID, env *Environment, scope Scope) (string, error) {
	v, err := Eval(n.Body, env, scope)
	if err != nil {
		return "", err
	}

	env.Tree.Replace(n.Body, &tree.String{Value: v, Source: n.Source})
	env.Tree.Replace(id, &tree.Fn{
		Identifier: n.Identifier,
		Body:       n.Body,
		Source:     n.Source,
	})

	if env.Functions.Define(n.Identifier, 0, id) {
		env.warnf(warn.VarfuncRedefined, &n.Source, "function/variable '%s' redefined.", n.Identifier)
	}

	return "", nil
}

func drop(n *tree.Drop, env *Environment) (string, error) {
	target, ok := env.Tree.Get(n.Target).(*tree.FnInvoke)
	if !ok {
		return "", fault.New(n.Pos(), "invalid function passed to drop.")
	}

	if !env.Functions.Pop(target.Identifier, len(target.Args)) {
		return "", fault.Newf(n.Pos(), "cannot drop undefined function '%s' (%d parameters).",
			target.Identifier, len(target.Args))
	}

	return "", nil
}

// branch evaluates a map: the test once, then each arm's pattern in
// order until one compares equal. Patterns after the match are never
// evaluated.
func branch(n *tree.Map, env *Environment, scope Scope) (string, error) {
	test, err := Eval(n.Test, env, scope)
	if err != nil {
		return "", err
	}

	for _, arm := range n.Arms {
		pattern, err := Eval(arm.Pattern, env, scope)
		if err != nil {
			return "", err
		}

		if pattern == test {
			return Eval(arm.Body, env, scope)
		}
	}

	if n.Default == tree.None {
		return "", fault.New(n.Pos(), "no matches found.")
	}

	return Eval(n.Default, env, scope)
}

// prefixed evaluates a prefix scope. Function definitions among its
// statements have their identifiers rewritten in place; nested prefix
// scopes inherit this scope's prefix expressions.
func prefixed(n *tree.Pre, env *Environment, scope Scope) (string, error) {
	s := &strings.Builder{}

	for _, sid := range n.Stmts {
		switch stmt := env.Tree.Get(sid).(type) {
		case *tree.Fn:
			name := &strings.Builder{}

			// The list is extended at the end by each enclosing
			// scope, so walking it in reverse applies the outermost
			// prefix first.
			for i := len(n.Exprs) - 1; i >= 0; i-- {
				v, err := Eval(n.Exprs[i], env, scope)
				if err != nil {
					return "", err
				}

				name.WriteString(v)
			}

			stmt.Identifier = name.String() + stmt.Identifier

		case *tree.Pre:
			stmt.Exprs = append(stmt.Exprs, n.Exprs...)
		}

		v, err := Eval(sid, env, scope)
		if err != nil {
			return "", err
		}

		s.WriteString(v)
	}

	return s.String(), nil
}
