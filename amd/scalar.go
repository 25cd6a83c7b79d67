// SPDX-License-Identifier: MIT

package amd

// Scalar is the result of Trace or LogDet: a scalar function value together
// with its derivative with respect to the variable.
//
// Derivative always has the variable's shape, or 0×0 when Constant is set.
// Tree is populated only under WithDerivativeTree. Scalars are immutable and
// may be shared between nodes.
type Scalar[M, S any] struct {
	Value      S
	Derivative M
	Tree       *Node[M, S]
	Constant   bool

	adaptor Adaptor[M, S]
}

// Adaptor returns the backend s computes with.
func (s *Scalar[M, S]) Adaptor() Adaptor[M, S] { return s.adaptor }

// String renders the value through the adaptor.
func (s *Scalar[M, S]) String() string {
	if s == nil || s.adaptor == nil {
		return "<nil>"
	}

	return s.adaptor.ScalarString(s.Value)
}

// ConstScalar wraps a constant with a rows×cols zero derivative.
// Use 0×0 when the shape of the variable is unknown.
func ConstScalar[M, S any](a Adaptor[M, S], value S, rows, cols int) (*Scalar[M, S], error) {
	if a == nil {
		return nil, amdErrorf("ConstScalar", ErrNullReference)
	}
	z, err := a.Zeros(rows, cols)
	if err != nil {
		return nil, amdErrorf("ConstScalar", err)
	}

	return &Scalar[M, S]{Value: value, Derivative: z, Constant: true, adaptor: a}, nil
}

func checkPair[M, S any](tag string, f, g *Scalar[M, S]) error {
	if f == nil || g == nil || f.adaptor == nil {
		return amdErrorf(tag, ErrNullReference)
	}

	return nil
}

// AddScalar returns f + g.
func AddScalar[M, S any](f, g *Scalar[M, S]) (*Scalar[M, S], error) {
	const tag = "AddScalar"
	if err := checkPair(tag, f, g); err != nil {
		return nil, err
	}
	a := f.adaptor
	v, err := a.ScalarAdd(f.Value, g.Value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	out := &Scalar[M, S]{Value: v, Constant: f.Constant && g.Constant, adaptor: a}
	switch {
	case g.Constant:
		out.Derivative, out.Tree = f.Derivative, f.Tree
	case f.Constant:
		out.Derivative, out.Tree = g.Derivative, g.Tree
	default:
		if out.Derivative, err = a.Add(f.Derivative, g.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if f.Tree != nil && g.Tree != nil {
			if out.Tree, err = Add(f.Tree, g.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}

	return out, nil
}

// SubScalar returns f - g.
func SubScalar[M, S any](f, g *Scalar[M, S]) (*Scalar[M, S], error) {
	const tag = "SubScalar"
	if err := checkPair(tag, f, g); err != nil {
		return nil, err
	}
	a := f.adaptor
	v, err := a.ScalarSub(f.Value, g.Value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	if g.Constant {
		return &Scalar[M, S]{Value: v, Derivative: f.Derivative, Tree: f.Tree, Constant: f.Constant, adaptor: a}, nil
	}
	out := &Scalar[M, S]{Value: v, adaptor: a}
	if f.Constant {
		if out.Derivative, err = a.Negate(g.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if g.Tree != nil {
			if out.Tree, err = Neg(g.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}

		return out, nil
	}
	if out.Derivative, err = a.Sub(f.Derivative, g.Derivative); err != nil {
		return nil, amdErrorf(tag, err)
	}
	if f.Tree != nil && g.Tree != nil {
		if out.Tree, err = Sub(f.Tree, g.Tree); err != nil {
			return nil, amdErrorf(tag, err)
		}
	}

	return out, nil
}

// NegScalar returns -f.
func NegScalar[M, S any](f *Scalar[M, S]) (*Scalar[M, S], error) {
	const tag = "NegScalar"
	if f == nil || f.adaptor == nil {
		return nil, amdErrorf(tag, ErrNullReference)
	}
	a := f.adaptor
	out := &Scalar[M, S]{Value: a.ScalarNeg(f.Value), Derivative: f.Derivative, Constant: f.Constant, adaptor: a}
	if f.Constant {
		return out, nil
	}
	var err error
	if out.Derivative, err = a.Negate(f.Derivative); err != nil {
		return nil, amdErrorf(tag, err)
	}
	if f.Tree != nil {
		if out.Tree, err = Neg(f.Tree); err != nil {
			return nil, amdErrorf(tag, err)
		}
	}

	return out, nil
}

// MulScalar returns f·g with derivative f·dg + df·g.
// The derivative tree scales by f and g themselves, so it stays
// differentiable.
func MulScalar[M, S any](f, g *Scalar[M, S]) (*Scalar[M, S], error) {
	const tag = "MulScalar"
	if err := checkPair(tag, f, g); err != nil {
		return nil, err
	}
	a := f.adaptor
	v, err := a.ScalarMul(f.Value, g.Value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	out := &Scalar[M, S]{Value: v, Constant: f.Constant && g.Constant, adaptor: a}
	if out.Constant {
		out.Derivative = f.Derivative

		return out, nil
	}

	// fdg = f·dg, dfg = g·df; a constant side contributes nothing.
	var (
		fdg, dfg         M
		fdgTree, dfgTree *Node[M, S]
	)
	if !g.Constant {
		if fdg, err = a.Scale(f.Value, g.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if g.Tree != nil {
			if fdgTree, err = ScaleLeft(f, g.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}
	if !f.Constant {
		if dfg, err = a.Scale(g.Value, f.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if f.Tree != nil {
			if dfgTree, err = ScaleLeft(g, f.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}
	switch {
	case f.Constant:
		out.Derivative, out.Tree = fdg, fdgTree
	case g.Constant:
		out.Derivative, out.Tree = dfg, dfgTree
	default:
		if out.Derivative, err = a.Add(fdg, dfg); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if fdgTree != nil && dfgTree != nil {
			if out.Tree, err = Add(fdgTree, dfgTree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}

	return out, nil
}

// DivScalar returns f/g with derivative df/g - (f/g²)·dg.
// In the derivative tree the coefficients 1/g and f/g² enter as scalars that
// carry their own derivatives, so the tree can be differentiated once more.
func DivScalar[M, S any](f, g *Scalar[M, S]) (*Scalar[M, S], error) {
	const tag = "DivScalar"
	if err := checkPair(tag, f, g); err != nil {
		return nil, err
	}
	a := f.adaptor
	v, err := a.ScalarDiv(f.Value, g.Value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	out := &Scalar[M, S]{Value: v, Constant: f.Constant && g.Constant, adaptor: a}
	if out.Constant {
		out.Derivative = f.Derivative

		return out, nil
	}

	q, err := newQuotient(a, f, g)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	var (
		head, tail         M
		headTree, tailTree *Node[M, S]
	)
	if !f.Constant {
		if head, err = a.Scale(q.inv, f.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if f.Tree != nil {
			if headTree, err = q.scaleTree(q.inv, []factor[M, S]{{q.dinv, g}}, f.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}
	if !g.Constant {
		if tail, err = a.Scale(q.coef, g.Derivative); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if g.Tree != nil {
			terms := []factor[M, S]{{q.invSq, f}, {q.dcoef, g}}
			if tailTree, err = q.scaleTree(q.coef, terms, g.Tree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}
	switch {
	case g.Constant:
		out.Derivative, out.Tree = head, headTree
	case f.Constant:
		if out.Derivative, err = a.Negate(tail); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if tailTree != nil {
			if out.Tree, err = Neg(tailTree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	default:
		if out.Derivative, err = a.Sub(head, tail); err != nil {
			return nil, amdErrorf(tag, err)
		}
		if headTree != nil && tailTree != nil {
			if out.Tree, err = Sub(headTree, tailTree); err != nil {
				return nil, amdErrorf(tag, err)
			}
		}
	}

	return out, nil
}

// quotient holds the scalar factors of the quotient rule for f/g:
// inv = 1/g, invSq = 1/g², coef = f/g², and the derivative factors
// dinv = d(1/g)/dg = -1/g² and dcoef = d(f/g²)/dg = -2f/g³.
type quotient[M, S any] struct {
	a                             Adaptor[M, S]
	inv, invSq, coef, dinv, dcoef S
}

func newQuotient[M, S any](a Adaptor[M, S], f, g *Scalar[M, S]) (quotient[M, S], error) {
	q := quotient[M, S]{a: a}
	var (
		gg, ggg, two S
		err          error
	)
	one := a.ScalarFromFloat(1)
	if q.inv, err = a.ScalarDiv(one, g.Value); err != nil {
		return q, err
	}
	if gg, err = a.ScalarMul(g.Value, g.Value); err != nil {
		return q, err
	}
	if q.invSq, err = a.ScalarDiv(one, gg); err != nil {
		return q, err
	}
	if q.coef, err = a.ScalarDiv(f.Value, gg); err != nil {
		return q, err
	}
	q.dinv = a.ScalarNeg(q.invSq)
	if ggg, err = a.ScalarMul(gg, g.Value); err != nil {
		return q, err
	}
	if two, err = a.ScalarMul(a.ScalarFromFloat(2), f.Value); err != nil {
		return q, err
	}
	if q.dcoef, err = a.ScalarDiv(two, ggg); err != nil {
		return q, err
	}
	q.dcoef = a.ScalarNeg(q.dcoef)

	return q, nil
}

// factor is one chain-rule term c·ds of a coefficient's derivative.
type factor[M, S any] struct {
	c S
	s *Scalar[M, S]
}

// scaleTree returns value·t, where value is a coefficient whose derivative is
// the sum of the non-constant terms.
func (q quotient[M, S]) scaleTree(value S, terms []factor[M, S], t *Node[M, S]) (*Node[M, S], error) {
	k, err := coefficientScalar(q.a, value, terms)
	if err != nil {
		return nil, err
	}

	return ScaleLeft(k, t)
}

func coefficientScalar[M, S any](a Adaptor[M, S], value S, terms []factor[M, S]) (*Scalar[M, S], error) {
	var (
		d     M
		found bool
	)
	for _, f := range terms {
		if f.s.Constant {
			continue
		}
		part, err := a.Scale(f.c, f.s.Derivative)
		if err != nil {
			return nil, err
		}
		if !found {
			d, found = part, true

			continue
		}
		if d, err = a.Add(d, part); err != nil {
			return nil, err
		}
	}
	if !found {
		return ConstScalar(a, value, 0, 0)
	}

	return &Scalar[M, S]{Value: value, Derivative: d, adaptor: a}, nil
}
