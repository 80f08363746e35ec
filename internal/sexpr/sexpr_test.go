// Released under an MIT license. See LICENSE.

package sexpr

import (
	"testing"

	"github.com/weftlang/weft/internal/common/tree"
)

func TestString(t *testing.T) {
	tr := tree.New()

	hello := tr.Add(&tree.String{Value: "hello "})
	x := tr.Add(&tree.FnInvoke{Identifier: "x"})
	body := tr.Add(&tree.Concat{LHS: hello, RHS: x})
	fn := tr.Add(&tree.Fn{Identifier: "greet", Params: []string{"x"}, Body: body})

	arg := tr.Add(&tree.String{Value: "world"})
	call := tr.Add(&tree.FnInvoke{Identifier: "greet", Args: []tree.ID{arg}})

	doc := tr.Add(&tree.Document{Stmts: []tree.ID{fn, call}})

	want := `(document (let (greet x) (cat "hello " (call x))) (call greet "world"))`
	if got := String(tr, doc); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestStringQuotesValues(t *testing.T) {
	tr := tree.New()

	id := tr.Add(&tree.String{Value: "a\nb\"c"})

	want := `"a\nb\"c"`
	if got := String(tr, id); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMatchAndPrefixForms(t *testing.T) {
	tr := tree.New()

	test := tr.Add(&tree.String{Value: "b"})
	pa := tr.Add(&tree.String{Value: "a"})
	ba := tr.Add(&tree.String{Value: "1"})
	def := tr.Add(&tree.String{Value: "2"})
	m := tr.Add(&tree.Map{Test: test, Arms: []tree.Arm{{Pattern: pa, Body: ba}}, Default: def})

	want := `(match "b" (arm "a" "1") (default "2"))`
	if got := String(tr, m); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	ns := tr.Add(&tree.String{Value: "ns_"})
	hi := tr.Add(&tree.String{Value: "hi"})
	fn := tr.Add(&tree.Fn{Identifier: "g", Body: hi})
	p := tr.Add(&tree.Pre{Exprs: []tree.ID{ns}, Stmts: []tree.ID{fn}})

	want = `(prefix ("ns_") (let (g) "hi"))`
	if got := String(tr, p); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
