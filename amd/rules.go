// SPDX-License-Identifier: MIT

package amd

import "fmt"

// apply runs the rule for node.op. Every rule computes the adjoints of its
// non-constant children and the mask handed down, then descends.
//
// Notation: current is the incoming adjoint, G the true gradient of the node
// (current, or currentᵀ when transposed), L and R the child values and N the
// node value.
func (e *engine[M, S]) apply(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	switch node.op {
	case OpConst:
		return nil
	case OpVar:
		return e.ruleVar(current, acc, st)
	case OpPlus:
		return e.descend(node, current, current, Propagation{Transpose: st.inherit(), Identity: st.Identity}, acc, level)
	case OpMinus:
		return e.ruleMinus(node, current, acc, st, level)
	case OpNegation:
		return e.ruleNegation(node, current, acc, st, level)
	case OpTimes:
		return e.ruleTimes(node, current, acc, st, level)
	case OpScalarTimesMatrix, OpMatrixTimesScalar:
		return e.ruleScalar(node, current, acc, st, level)
	case OpElementwise:
		return e.ruleElementwise(node, current, acc, st, level)
	case OpTranspose:
		return e.ruleTranspose(node, current, acc, st, level)
	case OpInverse:
		return e.ruleInverse(node, current, acc, st, level)
	case OpDiag:
		return e.ruleDiag(node, current, acc, st, level)
	case OpNone:
		return ErrInvalidOperation
	}

	return ErrInvalidOperation
}

// ruleVar accumulates G.
func (e *engine[M, S]) ruleVar(current adjoint[M, S], acc *accumulator[M, S], st Propagation) error {
	if st.transposed() {
		t, err := e.transpose(current)
		if err != nil {
			return err
		}
		current = t
	}

	return acc.add(current)
}

// ruleMinus: left gets current, right gets -current. Only the left side
// keeps the identity flag.
func (e *engine[M, S]) ruleMinus(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	var r adjoint[M, S]
	if !node.right.constant {
		var err error
		if r, err = e.neg(current); err != nil {
			return err
		}
	}
	next := Propagation{Transpose: st.inherit()}
	ls := Propagation{Transpose: next.Transpose & TransposeLeft, Identity: st.Identity}

	return e.descendWith(node, current, r, ls, next.right(), acc, level)
}

// ruleNegation: -current keeps the orientation of current.
func (e *engine[M, S]) ruleNegation(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	l, err := e.neg(current)
	if err != nil {
		return err
	}

	return e.descend(node, l, adjoint[M, S]{}, Propagation{Transpose: st.inherit()}, acc, level)
}

// ruleTranspose: G_L = Gᵀ, so current passes unchanged with the flag toggled.
// The identity is its own transpose.
func (e *engine[M, S]) ruleTranspose(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	next := Propagation{Transpose: st.inherit(), Identity: st.Identity}
	if !st.Identity {
		next.Transpose ^= TransposeBoth
	}

	return e.descend(node, current, adjoint[M, S]{}, next, acc, level)
}

// ruleTimes: N = L·R gives G_L = G·Rᵀ and G_R = Lᵀ·G.
//
//   - identity: G_L = Rᵀ, so R is passed with the left bit set, or S without
//     it when R = Sᵀ. The right side is symmetric.
//   - transposed: R·current and current·L, both still transposed.
//   - otherwise: current·Rᵀ and Lᵀ·current.
func (e *engine[M, S]) ruleTimes(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	left, right := node.left, node.right
	var (
		l, r adjoint[M, S]
		next Propagation
		err  error
	)
	switch {
	case st.Identity:
		if !left.constant {
			if right.op == OpTranspose && right.left != nil {
				l = e.lift(right.left)
			} else {
				l = e.lift(right)
				next.Transpose |= TransposeLeft
			}
		}
		if !right.constant {
			if left.op == OpTranspose && left.left != nil {
				r = e.lift(left.left)
			} else {
				r = e.lift(left)
				next.Transpose |= TransposeRight
			}
		}
	case st.transposed():
		next.Transpose = TransposeBoth
		if !left.constant {
			if l, err = e.mul(e.lift(right), current); err != nil {
				return err
			}
		}
		if !right.constant {
			if r, err = e.mul(current, e.lift(left)); err != nil {
				return err
			}
		}
	default:
		if !left.constant {
			rt, err := e.transpose(e.lift(right))
			if err != nil {
				return err
			}
			if l, err = e.mul(current, rt); err != nil {
				return err
			}
		}
		if !right.constant {
			lt, err := e.transpose(e.lift(left))
			if err != nil {
				return err
			}
			if r, err = e.mul(lt, current); err != nil {
				return err
			}
		}
	}

	return e.descend(node, l, r, next, acc, level)
}

// ruleElementwise: N = L∘R gives G_L = G∘R and G_R = G∘L.
//
//   - identity: I∘R keeps the diagonal of R.
//   - transposed: current∘Rᵀ and current∘Lᵀ, still transposed.
func (e *engine[M, S]) ruleElementwise(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	left, right := node.left, node.right
	var (
		l, r adjoint[M, S]
		next Propagation
	)
	other := func(sibling *Node[M, S]) (adjoint[M, S], error) {
		switch {
		case st.Identity:
			return e.diag(e.lift(sibling))
		case st.transposed():
			t, err := e.transpose(e.lift(sibling))
			if err != nil {
				return t, err
			}

			return e.hadamard(current, t)
		}

		return e.hadamard(current, e.lift(sibling))
	}
	if st.transposed() && !st.Identity {
		next.Transpose = TransposeBoth
	}
	var err error
	if !left.constant {
		if l, err = other(right); err != nil {
			return err
		}
	}
	if !right.constant {
		if r, err = other(left); err != nil {
			return err
		}
	}

	return e.descend(node, l, r, next, acc, level)
}

// ruleScalar handles s·M and M·s alike: the matrix child receives s·current,
// and the scalar contributes ⟨G, M⟩·ds/dX straight into the accumulator.
// ⟨G, M⟩ is trace(M) under identity, trace(current·M) when transposed and
// trace(Mᵀ·current) otherwise.
func (e *engine[M, S]) ruleScalar(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	s, m := node.scalar, node.left
	if !s.Constant {
		if err := e.scalarContribution(s, m, current, acc, st); err != nil {
			return err
		}
	}
	if m.constant {
		return nil
	}
	l, err := e.scale(s, current)
	if err != nil {
		return err
	}

	return e.descend(node, l, adjoint[M, S]{}, Propagation{Transpose: st.inherit()}, acc, level)
}

func (e *engine[M, S]) scalarContribution(s *Scalar[M, S], m *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation) error {
	if !e.trees() {
		p, err := e.pairing(m.value, current.value, st)
		if err != nil {
			return err
		}
		c, err := e.a.Trace(p)
		if err != nil {
			return err
		}
		v, err := e.a.Scale(c, s.Derivative)
		if err != nil {
			return err
		}

		return acc.add(adjoint[M, S]{value: v})
	}

	if s.Tree == nil {
		return fmt.Errorf("non-constant scalar %s has no derivative tree: %w", s, ErrInvalidOperation)
	}
	k, err := e.coefficient(m, current, st)
	if err != nil {
		return err
	}
	contrib, err := e.fromTree(ScaleLeft(k, s.Tree))
	if err != nil {
		return err
	}

	return acc.add(contrib)
}

// pairing returns the matrix whose trace is ⟨G, M⟩ for the given state.
func (e *engine[M, S]) pairing(m, current M, st Propagation) (M, error) {
	a := e.a
	switch {
	case st.Identity:
		return m, nil
	case st.transposed():
		return a.Mul(current, m)
	}
	mt, err := a.Transpose(m)
	if err != nil {
		return mt, err
	}

	return a.Mul(mt, current)
}

// coefficient builds ⟨G, M⟩ as a node expression over the forward subtree
// and the adjoint tree, and differentiates its trace once. The resulting
// scalar carries its own derivative, so the contribution tree stays exact
// under one more differentiation.
func (e *engine[M, S]) coefficient(m *Node[M, S], current adjoint[M, S], st Propagation) (*Scalar[M, S], error) {
	lm := m.Clone()
	var (
		inner *Node[M, S]
		err   error
	)
	switch {
	case st.Identity:
		inner = lm
	case st.transposed():
		inner, err = Mul(current.tree, lm)
	default:
		var mt *Node[M, S]
		if mt, err = Transpose(lm); err == nil {
			inner, err = Mul(mt, current.tree)
		}
	}
	if err != nil {
		return nil, err
	}
	o := e.opts
	o.DerivativeTree = false

	return traceWith(inner, o)
}

// ruleInverse: N = L⁻¹ gives G_L = -Nᵀ·G·Nᵀ, handed down transposed:
// -(N·N) under identity, -(N·current·N) when transposed and
// -(N·currentᵀ·N) otherwise.
func (e *engine[M, S]) ruleInverse(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	n := e.lift(node)
	var (
		prod adjoint[M, S]
		err  error
	)
	switch {
	case st.Identity:
		prod, err = e.mul(n, n)
	case st.transposed():
		if prod, err = e.mul(n, current); err == nil {
			prod, err = e.mul(prod, n)
		}
	default:
		var ct adjoint[M, S]
		if ct, err = e.transpose(current); err == nil {
			if prod, err = e.mul(n, ct); err == nil {
				prod, err = e.mul(prod, n)
			}
		}
	}
	if err != nil {
		return err
	}
	l, err := e.neg(prod)
	if err != nil {
		return err
	}

	return e.descend(node, l, adjoint[M, S]{}, Propagation{Transpose: TransposeBoth}, acc, level)
}

// ruleDiag: G_L = diag(G), and diag commutes with transposition.
func (e *engine[M, S]) ruleDiag(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	l, err := e.diag(current)
	if err != nil {
		return err
	}

	return e.descend(node, l, adjoint[M, S]{}, Propagation{Transpose: st.inherit(), Identity: st.Identity}, acc, level)
}
