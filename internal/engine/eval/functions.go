// Released under an MIT license. See LICENSE.

package eval

import (
	"strconv"

	"github.com/weftlang/weft/internal/common/tree"
)

// Functions maps a mangled name to a stack of definition handles. The
// top of the stack is the current binding; earlier definitions are
// shadowed until dropped back into view.
type Functions map[string][]tree.ID

func mangle(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// Define pushes a definition for name at the given arity. It returns
// true if a binding already existed.
func (f Functions) Define(name string, arity int, id tree.ID) bool {
	key := mangle(name, arity)

	_, existed := f[key]
	f[key] = append(f[key], id)

	return existed
}

// Exists returns true if name is bound at the given arity.
func (f Functions) Exists(name string, arity int) bool {
	_, ok := f.Lookup(name, arity)

	return ok
}

// Lookup returns the current definition for name at the given arity.
func (f Functions) Lookup(name string, arity int) (tree.ID, bool) {
	stack, ok := f[mangle(name, arity)]
	if !ok || len(stack) == 0 {
		return tree.None, false
	}

	return stack[len(stack)-1], true
}

// Pop removes the current definition for name at the given arity,
// revealing the one it shadowed. Popping the last definition removes
// the key entirely. It returns false if name is not bound.
func (f Functions) Pop(name string, arity int) bool {
	key := mangle(name, arity)

	stack, ok := f[key]
	if !ok || len(stack) == 0 {
		return false
	}

	if len(stack) == 1 {
		delete(f, key)
	} else {
		f[key] = stack[:len(stack)-1]
	}

	return true
}
