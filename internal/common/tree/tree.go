// Released under an MIT license. See LICENSE.

// Package tree provides the node arena shared by the weft parser and
// evaluator. Nodes are tagged variants stored in a dense, append-only
// sequence and refer to each other by ID. IDs remain valid for the life
// of the tree; a node may be replaced in place by a different variant
// but never removed.
package tree

import (
	"github.com/weftlang/weft/internal/common/struct/loc"
)

// ID is a handle to a node in a tree.
type ID int

// None is the reserved handle for an absent node.
const None ID = -1

// T (tree) is the node arena.
type T struct {
	nodes []Node
}

type tree = T

// New creates an empty tree.
func New() *T {
	return &T{}
}

// Add appends the node n and returns its handle.
func (t *tree) Add(n Node) ID {
	t.nodes = append(t.nodes, n)

	return ID(len(t.nodes) - 1)
}

// Get returns the node for the handle id.
func (t *tree) Get(id ID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *tree) Len() int {
	return len(t.nodes)
}

// Replace swaps the node at id for n. The handle is unchanged.
func (t *tree) Replace(id ID, n Node) {
	t.nodes[id] = n
}

// Node is a tagged AST variant.
type Node interface {
	Pos() *loc.T
}

// String is a literal string value.
type String struct {
	Value  string
	Source loc.T
}

// Concat joins the evaluations of two expressions, left first.
type Concat struct {
	LHS    ID
	RHS    ID
	Source loc.T
}

// Block is a sequence of statements followed by a trailing expression.
// Only the trailing expression's value survives evaluation.
type Block struct {
	Stmts  []ID
	Expr   ID
	Source loc.T
}

// FnInvoke calls a function, or reads a parameter when Args is empty
// and Identifier names one in the current argument scope.
type FnInvoke struct {
	Identifier string
	Args       []ID
	Source     loc.T
}

// Fn defines a function. Overloads are distinguished by parameter count.
type Fn struct {
	Identifier string
	Params     []string
	Body       ID
	Source     loc.T
}

// Var defines a variable. Its body is evaluated once, on definition.
type Var struct {
	Identifier string
	Body       ID
	Source     loc.T
}

// Drop removes the current definition of the function its target names.
// Target must refer to an FnInvoke.
type Drop struct {
	Target ID
	Source loc.T
}

// Codeify evaluates an expression and then evaluates its result as source.
type Codeify struct {
	Expr   ID
	Source loc.T
}

// Arm is one pattern/body pair in a Map.
type Arm struct {
	Pattern ID
	Body    ID
}

// Map compares a test expression against arm patterns by string equality.
// Default is None when no default arm was given.
type Map struct {
	Test    ID
	Arms    []Arm
	Default ID
	Source  loc.T
}

// Pre prepends an evaluated prefix to the names of the function
// definitions among its statements.
type Pre struct {
	Exprs  []ID
	Stmts  []ID
	Source loc.T
}

// Intrinsic is a call to one of the built-in operations.
type Intrinsic struct {
	Kind   IntrinsicKind
	Name   string
	Args   []ID
	Source loc.T
}

// Document is the root variant: a sequence of top-level statements.
type Document struct {
	Stmts  []ID
	Source loc.T
}

func (n *String) Pos() *loc.T    { return &n.Source }
func (n *Concat) Pos() *loc.T    { return &n.Source }
func (n *Block) Pos() *loc.T     { return &n.Source }
func (n *FnInvoke) Pos() *loc.T  { return &n.Source }
func (n *Fn) Pos() *loc.T        { return &n.Source }
func (n *Var) Pos() *loc.T       { return &n.Source }
func (n *Drop) Pos() *loc.T      { return &n.Source }
func (n *Codeify) Pos() *loc.T   { return &n.Source }
func (n *Map) Pos() *loc.T       { return &n.Source }
func (n *Pre) Pos() *loc.T       { return &n.Source }
func (n *Intrinsic) Pos() *loc.T { return &n.Source }
func (n *Document) Pos() *loc.T  { return &n.Source }

// Expression returns true for variants that produce a value when
// evaluated, as opposed to definitions and other statements.
func Expression(n Node) bool {
	switch n.(type) {
	case *String, *Concat, *Block, *FnInvoke, *Codeify, *Map, *Intrinsic:
		return true
	}

	return false
}
