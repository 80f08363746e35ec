// Released under an MIT license. See LICENSE.

package eval

import (
	"testing"

	"github.com/weftlang/weft/internal/common/tree"
)

func TestDefineAndLookup(t *testing.T) {
	f := Functions{}

	if f.Define("f", 1, tree.ID(1)) {
		t.Fatalf("first define reported an existing binding")
	}

	if !f.Define("f", 1, tree.ID(2)) {
		t.Fatalf("second define did not report an existing binding")
	}

	id, ok := f.Lookup("f", 1)
	if !ok || id != tree.ID(2) {
		t.Fatalf("lookup returned %d, %v; want 2, true", id, ok)
	}
}

func TestOverloadsAreIndependent(t *testing.T) {
	f := Functions{}

	f.Define("f", 0, tree.ID(1))
	f.Define("f", 2, tree.ID(2))

	if id, _ := f.Lookup("f", 0); id != tree.ID(1) {
		t.Fatalf("f/0 resolved to %d", id)
	}

	if id, _ := f.Lookup("f", 2); id != tree.ID(2) {
		t.Fatalf("f/2 resolved to %d", id)
	}

	if f.Exists("f", 1) {
		t.Fatalf("f/1 should not exist")
	}
}

func TestPopRevealsShadowed(t *testing.T) {
	f := Functions{}

	f.Define("f", 0, tree.ID(1))
	f.Define("f", 0, tree.ID(2))

	if !f.Pop("f", 0) {
		t.Fatalf("pop failed")
	}

	if id, _ := f.Lookup("f", 0); id != tree.ID(1) {
		t.Fatalf("expected shadowed definition 1, got %d", id)
	}
}

func TestStackHeightMatchesDefinesMinusPops(t *testing.T) {
	f := Functions{}

	for i := 0; i < 5; i++ {
		f.Define("f", 0, tree.ID(i))
	}

	for i := 0; i < 5; i++ {
		if len(f[mangle("f", 0)]) != 5-i {
			t.Fatalf("after %d pops, height %d", i, len(f[mangle("f", 0)]))
		}

		if !f.Pop("f", 0) {
			t.Fatalf("pop %d failed", i)
		}
	}

	if _, ok := f[mangle("f", 0)]; ok {
		t.Fatalf("key should be removed when its stack empties")
	}

	if f.Pop("f", 0) {
		t.Fatalf("pop of an absent key should fail")
	}
}
