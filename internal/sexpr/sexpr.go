// Released under an MIT license. See LICENSE.

// Package sexpr renders a parsed document as an S-expression.
package sexpr

import (
	"strconv"
	"strings"

	"github.com/weftlang/weft/internal/common/tree"
)

// String renders the node id and everything below it.
func String(t *tree.T, id tree.ID) string {
	b := &strings.Builder{}

	write(b, t, id)

	return b.String()
}

func write(b *strings.Builder, t *tree.T, id tree.ID) {
	switch n := t.Get(id).(type) {
	case *tree.String:
		b.WriteString(strconv.Quote(n.Value))

	case *tree.Concat:
		list(b, t, "cat", n.LHS, n.RHS)

	case *tree.Block:
		b.WriteString("(block")
		children(b, t, n.Stmts)
		children(b, t, []tree.ID{n.Expr})
		b.WriteString(")")

	case *tree.FnInvoke:
		b.WriteString("(call " + n.Identifier)
		children(b, t, n.Args)
		b.WriteString(")")

	case *tree.Fn:
		b.WriteString("(let (" + strings.Join(append([]string{n.Identifier}, n.Params...), " ") + ") ")
		write(b, t, n.Body)
		b.WriteString(")")

	case *tree.Var:
		b.WriteString("(let " + n.Identifier + " ")
		write(b, t, n.Body)
		b.WriteString(")")

	case *tree.Drop:
		list(b, t, "drop", n.Target)

	case *tree.Codeify:
		list(b, t, "codeify", n.Expr)

	case *tree.Map:
		b.WriteString("(match ")
		write(b, t, n.Test)

		for _, arm := range n.Arms {
			b.WriteString(" (arm ")
			write(b, t, arm.Pattern)
			b.WriteString(" ")
			write(b, t, arm.Body)
			b.WriteString(")")
		}

		if n.Default != tree.None {
			b.WriteString(" (default ")
			write(b, t, n.Default)
			b.WriteString(")")
		}

		b.WriteString(")")

	case *tree.Pre:
		b.WriteString("(prefix (")

		for i, e := range n.Exprs {
			if i > 0 {
				b.WriteString(" ")
			}

			write(b, t, e)
		}

		b.WriteString(")")
		children(b, t, n.Stmts)
		b.WriteString(")")

	case *tree.Intrinsic:
		b.WriteString("(" + n.Name)
		children(b, t, n.Args)
		b.WriteString(")")

	case *tree.Document:
		b.WriteString("(document")
		children(b, t, n.Stmts)
		b.WriteString(")")
	}
}

func children(b *strings.Builder, t *tree.T, ids []tree.ID) {
	for _, id := range ids {
		b.WriteString(" ")
		write(b, t, id)
	}
}

func list(b *strings.Builder, t *tree.T, label string, ids ...tree.ID) {
	b.WriteString("(" + label)
	children(b, t, ids)
	b.WriteString(")")
}
