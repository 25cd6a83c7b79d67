// SPDX-License-Identifier: MIT

package grammar

import (
	"github.com/katalvlaran/amd/amd"
	"github.com/pkg/errors"
)

// Env binds names to matrices. Variable names the matrix to differentiate
// with respect to; every other name compiles to a constant.
type Env[M, S any] struct {
	Adaptor  amd.Adaptor[M, S]
	Matrices map[string]M
	Variable string
}

// Value is the result of compiling a sub-expression: exactly one of Matrix
// and Scalar is set.
type Value[M, S any] struct {
	Matrix *amd.Node[M, S]
	Scalar *amd.Scalar[M, S]
}

// IsScalar reports whether v holds a scalar.
func (v Value[M, S]) IsScalar() bool { return v.Scalar != nil }

// Compile lowers e onto amd nodes. opts are forwarded to the Trace and LogDet
// calls made for tr and logdet.
//
// Errors: amd.ErrNullReference for a missing adaptor, amd.ErrInvalidExpression
// for unknown names and ill-typed operands (matrix + scalar, tr of a scalar),
// and any amd construction error, each annotated with the offending offset.
func Compile[M, S any](e Expr, env Env[M, S], opts ...amd.Option) (Value[M, S], error) {
	if env.Adaptor == nil {
		return Value[M, S]{}, errors.Wrap(amd.ErrNullReference, "grammar: compile without adaptor")
	}
	if _, ok := env.Matrices[env.Variable]; !ok {
		return Value[M, S]{}, errors.Wrapf(amd.ErrInvalidExpression, "grammar: variable %q has no value", env.Variable)
	}
	c := &compiler[M, S]{env: env, opts: opts}

	return c.compile(e)
}

// Differentiate parses src, compiles it and returns the resulting scalar:
// its value and derivative with respect to env.Variable. The expression must
// be scalar-valued, typically tr(...) or logdet(...).
func Differentiate[M, S any](src string, env Env[M, S], opts ...amd.Option) (*amd.Scalar[M, S], error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	v, err := Compile(e, env, opts...)
	if err != nil {
		return nil, err
	}
	if !v.IsScalar() {
		return nil, errors.WithStack(&ParseError{Offset: 0, Msg: "expression is a matrix; wrap it in tr() or logdet()"})
	}

	return v.Scalar, nil
}

type compiler[M, S any] struct {
	env  Env[M, S]
	opts []amd.Option
}

// at annotates err with the offset of e.
func at(e Expr, err error) error {
	return errors.Wrapf(err, "grammar: at offset %d (%s)", e.Pos(), e)
}

func typeError(e Expr, msg string) error {
	return errors.WithStack(&ParseError{Offset: e.Pos(), Msg: msg + " in " + e.String()})
}

func (c *compiler[M, S]) compile(e Expr) (Value[M, S], error) {
	switch x := e.(type) {
	case *Name:
		m, ok := c.env.Matrices[x.Ident]
		if !ok {
			return Value[M, S]{}, typeError(x, "unknown matrix "+x.Ident)
		}
		n, err := amd.NewLeaf(c.env.Adaptor, m, x.Ident == c.env.Variable)

		return Value[M, S]{Matrix: n}, err
	case *Number:
		s, err := c.number(x.Value)

		return Value[M, S]{Scalar: s}, err
	case *Unary:
		v, err := c.compile(x.X)
		if err != nil {
			return v, err
		}
		out, err := c.unary(x.Op, v)
		if err != nil {
			return out, at(x, err)
		}

		return out, nil
	case *Binary:
		l, err := c.compile(x.L)
		if err != nil {
			return l, err
		}
		r, err := c.compile(x.R)
		if err != nil {
			return r, err
		}
		if x.Op != "*" && x.Op != "/" && x.Op != ".*" && l.IsScalar() != r.IsScalar() {
			return Value[M, S]{}, typeError(x, "cannot mix a matrix and a scalar with "+x.Op)
		}
		out, err := c.binary(x.Op, l, r)
		if err != nil {
			return out, at(x, err)
		}

		return out, nil
	case *Call:
		v, err := c.compile(x.Arg)
		if err != nil {
			return v, err
		}
		if v.IsScalar() {
			return Value[M, S]{}, typeError(x, x.Fn+" needs a matrix argument")
		}
		out, err := c.call(x.Fn, v.Matrix)
		if err != nil {
			return out, at(x, err)
		}

		return out, nil
	}

	return Value[M, S]{}, errors.Wrapf(amd.ErrInvalidExpression, "grammar: unsupported node %T", e)
}

func (c *compiler[M, S]) number(f float64) (*amd.Scalar[M, S], error) {
	a := c.env.Adaptor

	return amd.ConstScalar(a, a.ScalarFromFloat(f), 0, 0)
}

func (c *compiler[M, S]) unary(op byte, v Value[M, S]) (Value[M, S], error) {
	if v.IsScalar() {
		switch op {
		case '-':
			s, err := amd.NegScalar(v.Scalar)
			return Value[M, S]{Scalar: s}, err
		case '\'':
			return v, nil
		}
		one, err := c.number(1)
		if err != nil {
			return Value[M, S]{}, err
		}
		s, err := amd.DivScalar(one, v.Scalar)

		return Value[M, S]{Scalar: s}, err
	}
	var (
		n   *amd.Node[M, S]
		err error
	)
	switch op {
	case '-':
		n, err = amd.Neg(v.Matrix)
	case '\'':
		n, err = amd.Transpose(v.Matrix)
	default:
		n, err = amd.Inverse(v.Matrix)
	}

	return Value[M, S]{Matrix: n}, err
}

func (c *compiler[M, S]) binary(op string, l, r Value[M, S]) (Value[M, S], error) {
	if l.IsScalar() && r.IsScalar() {
		return c.scalarBinary(op, l.Scalar, r.Scalar)
	}
	var (
		n   *amd.Node[M, S]
		err error
	)
	switch op {
	case "+":
		n, err = amd.Add(l.Matrix, r.Matrix)
	case "-":
		n, err = amd.Sub(l.Matrix, r.Matrix)
	case "*", ".*":
		switch {
		case l.IsScalar():
			n, err = amd.ScaleLeft(l.Scalar, r.Matrix)
		case r.IsScalar():
			n, err = amd.ScaleRight(l.Matrix, r.Scalar)
		case op == "*":
			n, err = amd.Mul(l.Matrix, r.Matrix)
		default:
			n, err = amd.Hadamard(l.Matrix, r.Matrix)
		}
	case "/":
		switch {
		case r.IsScalar():
			var inv *amd.Scalar[M, S]
			if inv, err = c.reciprocal(r.Scalar); err == nil {
				n, err = amd.ScaleRight(l.Matrix, inv)
			}
		default:
			var inv *amd.Node[M, S]
			if inv, err = amd.Inverse(r.Matrix); err == nil {
				if l.IsScalar() {
					n, err = amd.ScaleLeft(l.Scalar, inv)
				} else {
					n, err = amd.Mul(l.Matrix, inv)
				}
			}
		}
	default:
		err = errors.Wrapf(amd.ErrInvalidExpression, "unknown operator %q", op)
	}

	return Value[M, S]{Matrix: n}, err
}

func (c *compiler[M, S]) reciprocal(s *amd.Scalar[M, S]) (*amd.Scalar[M, S], error) {
	one, err := c.number(1)
	if err != nil {
		return nil, err
	}

	return amd.DivScalar(one, s)
}

func (c *compiler[M, S]) scalarBinary(op string, f, g *amd.Scalar[M, S]) (Value[M, S], error) {
	var (
		s   *amd.Scalar[M, S]
		err error
	)
	switch op {
	case "+":
		s, err = amd.AddScalar(f, g)
	case "-":
		s, err = amd.SubScalar(f, g)
	case "*", ".*":
		s, err = amd.MulScalar(f, g)
	case "/":
		s, err = amd.DivScalar(f, g)
	default:
		err = errors.Wrapf(amd.ErrInvalidExpression, "unknown operator %q", op)
	}

	return Value[M, S]{Scalar: s}, err
}

func (c *compiler[M, S]) call(fn string, m *amd.Node[M, S]) (Value[M, S], error) {
	switch fn {
	case "tr", "trace":
		s, err := amd.Trace(m, c.opts...)
		return Value[M, S]{Scalar: s}, err
	case "logdet":
		s, err := amd.LogDet(m, c.opts...)
		return Value[M, S]{Scalar: s}, err
	case "inv":
		n, err := amd.Inverse(m)
		return Value[M, S]{Matrix: n}, err
	case "diag":
		n, err := amd.Diag(m)
		return Value[M, S]{Matrix: n}, err
	}

	return Value[M, S]{}, errors.Wrapf(amd.ErrInvalidExpression, "unknown function %q", fn)
}
