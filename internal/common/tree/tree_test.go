// Released under an MIT license. See LICENSE.

package tree

import (
	"testing"

	"github.com/weftlang/weft/internal/common/struct/loc"
)

func TestHandlesAreDense(t *testing.T) {
	tr := New()

	for i := 0; i < 4; i++ {
		id := tr.Add(&String{Value: "v"})
		if int(id) != i {
			t.Fatalf("expected handle %d, got %d", i, id)
		}
	}

	if tr.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", tr.Len())
	}
}

func TestReplaceKeepsHandle(t *testing.T) {
	tr := New()

	id := tr.Add(&Var{Identifier: "v", Body: None})
	other := tr.Add(&String{Value: "other"})

	tr.Replace(id, &Fn{Identifier: "v", Body: other})

	fn, ok := tr.Get(id).(*Fn)
	if !ok {
		t.Fatalf("expected Fn after replace, got %T", tr.Get(id))
	}

	if fn.Identifier != "v" || fn.Body != other {
		t.Fatalf("replacement lost fields: %+v", fn)
	}

	if s, ok := tr.Get(other).(*String); !ok || s.Value != "other" {
		t.Fatalf("unrelated handle disturbed by replace")
	}
}

func TestMutationThroughGet(t *testing.T) {
	tr := New()

	id := tr.Add(&Fn{Identifier: "f"})

	tr.Get(id).(*Fn).Identifier = "ns_f"

	if tr.Get(id).(*Fn).Identifier != "ns_f" {
		t.Fatalf("in-place mutation not visible through handle")
	}
}

func TestExpression(t *testing.T) {
	source := loc.T{}

	expressions := []Node{
		&String{Source: source},
		&Concat{Source: source},
		&Block{Source: source},
		&FnInvoke{Source: source},
		&Codeify{Source: source},
		&Map{Source: source},
		&Intrinsic{Source: source},
	}

	statements := []Node{
		&Fn{Source: source},
		&Var{Source: source},
		&Drop{Source: source},
		&Pre{Source: source},
		&Document{Source: source},
	}

	for _, n := range expressions {
		if !Expression(n) {
			t.Errorf("%T should be an expression", n)
		}
	}

	for _, n := range statements {
		if Expression(n) {
			t.Errorf("%T should not be an expression", n)
		}
	}
}

func TestIntrinsicLookup(t *testing.T) {
	for name, arity := range map[string]int{
		"assert": 2, "error": 1, "file": 1, "source": 1,
		"log": 1, "escape": 1, "slice": 3, "find": 2,
		"length": 1, "eval": 1, "run": 1, "pipe": 2,
	} {
		k, ok := LookupIntrinsic(name)
		if !ok {
			t.Errorf("intrinsic %s not found", name)

			continue
		}

		if k.Arity() != arity {
			t.Errorf("intrinsic %s: expected arity %d, got %d", name, arity, k.Arity())
		}
	}

	if _, ok := LookupIntrinsic("frobnicate"); ok {
		t.Errorf("frobnicate should not be an intrinsic")
	}
}
