// SPDX-License-Identifier: MIT

package grammar

// functions lists the recognised call names.
var functions = map[string]bool{
	"tr": true, "trace": true, "logdet": true, "inv": true, "diag": true,
}

type parser struct {
	toks []token
	i    int
}

// Parse builds the syntax tree of src.
//
// Errors: a *ParseError wrapping amd.ErrInvalidExpression for unknown
// characters, unknown functions, unbalanced parentheses, missing operands and
// trailing input.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxErrorf(t.pos, "unexpected %s after expression", t)
	}

	return e, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}

	return t
}

// acceptOp consumes the next token when it is one of ops.
func (p *parser) acceptOp(ops ...string) (token, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return t, false
	}
	for _, op := range ops {
		if t.text == op {
			p.i++
			return t, true
		}
	}

	return t, false
}

func (p *parser) expression() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right, Offset: t.pos}
	}
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.acceptOp("*", "/", ".*")
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right, Offset: t.pos}
	}
}

func (p *parser) unary() (Expr, error) {
	if t, ok := p.acceptOp("-", "+"); ok {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			return x, nil
		}

		return &Unary{Op: '-', X: x, Offset: t.pos}, nil
	}

	return p.postfix()
}

func (p *parser) postfix() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.acceptOp("'", "_")
		if !ok {
			return x, nil
		}
		x = &Unary{Op: t.text[0], X: x, Offset: t.pos}
	}
}

func (p *parser) primary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokName:
		return &Name{Ident: t.text, Offset: t.pos}, nil
	case tokNumber:
		return &Number{Value: t.num, Offset: t.pos}, nil
	case tokLParen:
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(t); err != nil {
			return nil, err
		}

		return e, nil
	case tokFunc:
		if !functions[t.text] {
			return nil, syntaxErrorf(t.pos, "unknown function %s", t)
		}
		open := p.next()
		if open.kind != tokLParen {
			return nil, syntaxErrorf(open.pos, "expected \"(\" after %s, got %s", t, open)
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(open); err != nil {
			return nil, err
		}

		return &Call{Fn: t.text, Arg: arg, Offset: t.pos}, nil
	}

	return nil, syntaxErrorf(t.pos, "expected operand, got %s", t)
}

func (p *parser) closeParen(open token) error {
	if t := p.next(); t.kind != tokRParen {
		return syntaxErrorf(t.pos, "expected \")\" closing offset %d, got %s", open.pos, t)
	}

	return nil
}
