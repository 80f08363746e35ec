// Released under an MIT license. See LICENSE.

package parser

import (
	"strings"
	"testing"

	"github.com/weftlang/weft/internal/common/fault"
	"github.com/weftlang/weft/internal/common/tree"
	"github.com/weftlang/weft/internal/reader/lexer"
	"github.com/weftlang/weft/internal/sexpr"
)

func check(t *testing.T, src, want string) {
	t.Helper()

	l := lexer.New("test")
	l.Scan(src)

	tr := tree.New()

	root, err := New(l.Token, tr).Document()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	got := sexpr.String(tr, root)
	if got != want {
		t.Fatalf("parse %q:\n got %s\nwant %s", src, got, want)
	}
}

func checkError(t *testing.T, src, want string) {
	t.Helper()

	l := lexer.New("test")
	l.Scan(src)

	_, err := New(l.Token, tree.New()).Document()
	if err == nil {
		t.Fatalf("parse %q: expected failure", src)
	}

	if !strings.Contains(fault.Message(err), want) {
		t.Fatalf("parse %q: expected %q in %q", src, want, fault.Message(err))
	}
}

func TestEmptyDocument(t *testing.T) {
	check(t, "", "(document)")
	check(t, " # only a comment\n;;", "(document)")
}

func TestFunctionDefinition(t *testing.T) {
	check(t,
		`let greet(x) => "hello " .. x; greet("world")`,
		`(document (let (greet x) (cat "hello " (call x))) (call greet "world"))`)
}

func TestVariableDefinition(t *testing.T) {
	check(t,
		`let x => "A"`,
		`(document (let x "A"))`)
}

func TestNullaryFunction(t *testing.T) {
	check(t,
		`let f() => "v"`,
		`(document (let (f) "v"))`)
}

func TestConcatIsLeftAssociative(t *testing.T) {
	check(t,
		`"a" .. "b" .. "c"`,
		`(document (cat (cat "a" "b") "c"))`)
}

func TestBlock(t *testing.T) {
	check(t,
		`{ let a => "x"; a }`,
		`(document (block (let a "x") (call a)))`)
}

func TestBlockTrailingExpression(t *testing.T) {
	checkError(t, `{ let a => "x"; }`, "block must end with an expression")
	checkError(t, `{ }`, "block must end with an expression")
}

func TestMatch(t *testing.T) {
	check(t,
		`match "b" { "a" -> "1", "b" -> "2", * -> "3" }`,
		`(document (match "b" (arm "a" "1") (arm "b" "2") (default "3")))`)
}

func TestMatchNoDefault(t *testing.T) {
	check(t,
		`match x { "a" -> "1" }`,
		`(document (match (call x) (arm "a" "1")))`)
}

func TestMatchDuplicateDefault(t *testing.T) {
	checkError(t, `match x { * -> "1", * -> "2" }`, "duplicate default arm")
}

func TestPrefix(t *testing.T) {
	check(t,
		`prefix "ns_" { let g() => "hi"; } ns_g()`,
		`(document (prefix ("ns_") (let (g) "hi")) (call ns_g))`)
}

func TestNestedPrefix(t *testing.T) {
	check(t,
		`prefix "a" { prefix "b" { let f() => "x" } }`,
		`(document (prefix ("a") (prefix ("b") (let (f) "x"))))`)
}

func TestDrop(t *testing.T) {
	check(t,
		`drop f()`,
		`(document (drop (call f)))`)
	check(t,
		`drop f("a", "b")`,
		`(document (drop (call f "a" "b")))`)
}

func TestCodeify(t *testing.T) {
	check(t,
		`!"x"`,
		`(document (codeify "x"))`)
}

func TestIntrinsics(t *testing.T) {
	check(t,
		`slice("abcdef", "1", "-2")`,
		`(document (slice "abcdef" "1" "-2"))`)
	check(t,
		`assert(f(), "b")`,
		`(document (assert (call f) "b"))`)
	check(t,
		`run("ls")`,
		`(document (run "ls"))`)
}

func TestIntrinsicArityIsNotCheckedHere(t *testing.T) {
	// Wrong arity is an evaluation failure, not a parse failure.
	check(t,
		`length("a", "b")`,
		`(document (length "a" "b"))`)
}

func TestErrorsCarryPositions(t *testing.T) {
	l := lexer.New("test")
	l.Scan("let x \"oops\"")

	_, err := New(l.Token, tree.New()).Document()
	if err == nil {
		t.Fatalf("expected failure")
	}

	f, ok := err.(*fault.T)
	if !ok {
		t.Fatalf("expected a fault, got %T", err)
	}

	if f.Source.Name != "test" || f.Source.Line != 1 || f.Source.Char != 7 {
		t.Fatalf("fault at %s, expected test:1:7", f.Source.String())
	}
}

func TestUnexpectedEndOfInput(t *testing.T) {
	checkError(t, `let`, "unexpected end of input")
	checkError(t, `"a" ..`, "unexpected end of input")
}

func TestLexicalErrorSurfaces(t *testing.T) {
	checkError(t, `"unterminated`, "unterminated string")
}
