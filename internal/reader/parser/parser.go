// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the weft
// language. It consumes tokens and appends nodes to a shared tree.
package parser

import (
	"github.com/weftlang/weft/internal/common/fault"
	"github.com/weftlang/weft/internal/common/struct/loc"
	"github.com/weftlang/weft/internal/common/struct/token"
	"github.com/weftlang/weft/internal/common/tree"
)

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	item  func() *token.T // Function to call to get another token.
	last  *loc.T          // Location of the most recent token.
	token *token.T        // Token lookahead.
	tree  *tree.T         // Tree nodes are appended to.
}

type parser = T

// New creates a new parser. It connects a producer of tokens with the
// tree that parsed nodes are added to.
func New(item func() *token.T, t *tree.T) *T {
	return &T{item: item, tree: t}
}

// Document consumes every remaining token and returns the handle of a
// Document node holding the parsed statements.
func (p *parser) Document() (id tree.ID, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if f, ok := r.(*fault.T); ok {
			err = f

			return
		}

		panic(r)
	}()

	doc := &tree.Document{}

	if t := p.peek(); t != nil {
		doc.Source = *t.Source()
	}

	for {
		for p.peek().Is(';') {
			p.consume()
		}

		if p.peek() == nil {
			break
		}

		doc.Stmts = append(doc.Stmts, p.statement())
	}

	return p.tree.Add(doc), nil
}

func (p *parser) consume() *token.T {
	t := p.peek()
	if t != nil {
		p.ahead = 0
	}

	return t
}

func (p *parser) peek() *token.T {
	if p.ahead == 0 {
		p.token = p.item()
		p.ahead = 1

		if p.token != nil {
			p.last = p.token.Source()
		}

		if p.token.Is(token.Error) {
			p.fail(p.token, p.token.Value())
		}
	}

	return p.token
}

func (p *parser) expect(c token.Class, expected string) *token.T {
	t := p.peek()
	if !t.Is(c) {
		p.failUnexpected(t, expected)
	}

	return p.consume()
}

func (p *parser) fail(t *token.T, msg string) {
	source := p.last
	if t != nil {
		source = t.Source()
	}

	panic(fault.New(source, msg))
}

func (p *parser) failUnexpected(t *token.T, expected string) {
	if t == nil {
		p.fail(nil, "unexpected end of input, expected "+expected)
	}

	p.fail(t, "unexpected '"+t.Value()+"', expected "+expected)
}

// statement parses a single definition, drop, prefix scope, or
// expression. Stray semicolons before a statement are skipped.
func (p *parser) statement() tree.ID {
	for p.peek().Is(';') {
		p.consume()
	}

	t := p.peek()

	switch {
	case t == nil:
		p.failUnexpected(t, "a statement")
	case t.Is(token.Let):
		return p.definition()
	case t.Is(token.Drop):
		return p.drop()
	case t.Is(token.Prefix):
		return p.prefix()
	}

	return p.expression()
}

// definition parses a let statement. A parameter list, even an empty
// one, makes a function; its absence makes a variable.
func (p *parser) definition() tree.ID {
	source := *p.expect(token.Let, "'let'").Source()

	name := p.expect(token.Symbol, "a name").Value()

	if !p.peek().Is('(') {
		p.expect(token.Arrow, "'=>'")

		return p.tree.Add(&tree.Var{
			Identifier: name,
			Body:       p.expression(),
			Source:     source,
		})
	}

	p.consume()

	params := []string{}

	for !p.peek().Is(')') {
		if len(params) > 0 {
			p.expect(',', "','")
		}

		params = append(params, p.expect(token.Symbol, "a parameter name").Value())
	}

	p.consume()
	p.expect(token.Arrow, "'=>'")

	return p.tree.Add(&tree.Fn{
		Identifier: name,
		Params:     params,
		Body:       p.expression(),
		Source:     source,
	})
}

// drop parses a drop statement. The target is recorded as an FnInvoke
// so the name and arity to drop are available to the evaluator.
func (p *parser) drop() tree.ID {
	source := *p.expect(token.Drop, "'drop'").Source()

	target := p.invoke()

	return p.tree.Add(&tree.Drop{Target: target, Source: source})
}

// prefix parses a prefix scope: an expression followed by a braced list
// of statements.
func (p *parser) prefix() tree.ID {
	source := *p.expect(token.Prefix, "'prefix'").Source()

	expr := p.expression()

	p.expect('{', "'{'")

	stmts := []tree.ID{}

	for !p.peek().Is('}') {
		stmts = append(stmts, p.statement())

		for p.peek().Is(';') {
			p.consume()
		}
	}

	p.consume()

	return p.tree.Add(&tree.Pre{
		Exprs:  []tree.ID{expr},
		Stmts:  stmts,
		Source: source,
	})
}

// expression parses one or more terms joined by '..'. Concatenation is
// left-associative.
func (p *parser) expression() tree.ID {
	id := p.term()

	for p.peek().Is(token.Concat) {
		source := *p.consume().Source()

		id = p.tree.Add(&tree.Concat{
			LHS:    id,
			RHS:    p.term(),
			Source: source,
		})
	}

	return id
}

func (p *parser) term() tree.ID {
	t := p.peek()
	if t == nil {
		p.failUnexpected(t, "an expression")
	}

	switch {
	case t.Is(token.String):
		p.consume()

		return p.tree.Add(&tree.String{Value: t.Value(), Source: *t.Source()})

	case t.Is('!'):
		source := *p.consume().Source()

		return p.tree.Add(&tree.Codeify{Expr: p.term(), Source: source})

	case t.Is('{'):
		return p.block()

	case t.Is(token.Match):
		return p.match()

	case t.Is(token.Symbol):
		return p.invoke()
	}

	p.failUnexpected(t, "an expression")

	return tree.None
}

// block parses a braced sequence of statements whose final entry must
// be an expression: the block's value.
func (p *parser) block() tree.ID {
	source := *p.expect('{', "'{'").Source()

	stmts := []tree.ID{}

	for !p.peek().Is('}') {
		stmts = append(stmts, p.statement())

		for p.peek().Is(';') {
			p.consume()
		}
	}

	end := p.consume()

	if len(stmts) == 0 {
		p.fail(end, "block must end with an expression")
	}

	last := stmts[len(stmts)-1]
	if !tree.Expression(p.tree.Get(last)) {
		p.fail(end, "block must end with an expression")
	}

	return p.tree.Add(&tree.Block{
		Stmts:  stmts[:len(stmts)-1],
		Expr:   last,
		Source: source,
	})
}

// match parses a match expression: a test, arms of the form
// pattern -> body, and an optional default arm, * -> body.
func (p *parser) match() tree.ID {
	source := *p.expect(token.Match, "'match'").Source()

	m := &tree.Map{
		Test:    p.expression(),
		Default: tree.None,
		Source:  source,
	}

	p.expect('{', "'{'")

	for !p.peek().Is('}') {
		if p.peek().Is('*') {
			star := p.consume()

			if m.Default != tree.None {
				p.fail(star, "duplicate default arm")
			}

			p.expect(token.MapsTo, "'->'")
			m.Default = p.expression()
		} else {
			pattern := p.expression()
			p.expect(token.MapsTo, "'->'")
			m.Arms = append(m.Arms, tree.Arm{Pattern: pattern, Body: p.expression()})
		}

		if !p.peek().Is('}') {
			p.expect(',', "',' or '}'")
		}
	}

	p.consume()

	return p.tree.Add(m)
}

// invoke parses a name with an optional argument list. Intrinsic names
// are recognized here and produce Intrinsic nodes; the evaluator checks
// their arity. A bare name is a zero-argument invocation.
func (p *parser) invoke() tree.ID {
	t := p.expect(token.Symbol, "a name")

	args := []tree.ID{}

	if p.peek().Is('(') {
		p.consume()

		for !p.peek().Is(')') {
			if len(args) > 0 {
				p.expect(',', "','")
			}

			args = append(args, p.expression())
		}

		p.consume()
	}

	if kind, ok := tree.LookupIntrinsic(t.Value()); ok {
		return p.tree.Add(&tree.Intrinsic{
			Kind:   kind,
			Name:   t.Value(),
			Args:   args,
			Source: *t.Source(),
		})
	}

	return p.tree.Add(&tree.FnInvoke{
		Identifier: t.Value(),
		Args:       args,
		Source:     *t.Source(),
	})
}
