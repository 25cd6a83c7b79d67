// SPDX-License-Identifier: MIT

package amd

import "log/slog"

// Trace differentiates trace(node) with respect to the variable.
//
// Implementation:
//   - Stage 1: node must be square (ErrNonSquare).
//   - Stage 2: the value trace(N) is computed; constant trees stop here with a
//     zero derivative of the gradient shape (0×0).
//   - Stage 3: the traversal starts from the identity adjoint with the
//     identity flag on (off under WithoutShortcuts) and no transpose.
//
// Errors: ErrNullReference, ErrNonSquare, ErrDimensionMismatch,
// ErrInvalidOperation, backend failures. No partial result is returned.
//
// Complexity: one rule application per non-constant node, each costing at
// most a few backend products.
func Trace[M, S any](node *Node[M, S], opts ...Option) (*Scalar[M, S], error) {
	return traceWith(node, gatherOptions(opts...))
}

// LogDet differentiates log(det(node)) with respect to the variable.
//
// With shortcuts on, logdet(Yᵀ) is evaluated as logdet(Y) and logdet(Y⁻¹) as
// -logdet(Y). Otherwise the traversal starts from N⁻¹ handed down transposed,
// since d logdet(N) = ⟨N⁻ᵀ, dN⟩.
//
// Errors: as Trace, plus backend failures for singular or non-positive
// determinants.
func LogDet[M, S any](node *Node[M, S], opts ...Option) (*Scalar[M, S], error) {
	return logDetWith(node, gatherOptions(opts...))
}

func checkRoot[M, S any](tag string, node *Node[M, S]) error {
	if node == nil || node.adaptor == nil {
		return amdErrorf(tag, ErrNullReference)
	}
	if node.adaptor.Rows(node.value) != node.adaptor.Cols(node.value) {
		return amdErrorf(tag, ErrNonSquare)
	}

	return nil
}

func traceWith[M, S any](node *Node[M, S], o Options) (*Scalar[M, S], error) {
	const tag = "Trace"
	if err := checkRoot(tag, node); err != nil {
		return nil, err
	}
	a := node.adaptor
	value, err := a.Trace(node.value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	e := newEngine(a, o)
	if node.constant {
		return e.constant(tag, node, value)
	}
	seed, err := e.identity(a.Rows(node.value))
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	e.log.Debug("trace", slog.String("root", node.op.String()), slog.Int("nodes", node.Size()),
		slog.Bool("tree", o.DerivativeTree), slog.Int("parallel", o.ParallelDepth))

	return e.run(tag, node, value, seed, Propagation{Identity: o.Shortcuts})
}

func logDetWith[M, S any](node *Node[M, S], o Options) (*Scalar[M, S], error) {
	const tag = "LogDet"
	if err := checkRoot(tag, node); err != nil {
		return nil, err
	}
	e := newEngine(node.adaptor, o)
	if o.Shortcuts && node.left != nil {
		switch node.op {
		case OpTranspose:
			e.log.Debug("logdet shortcut", slog.String("rule", "logdet(Y') = logdet(Y)"))
			s, err := logDetWith(node.left, o)
			if err != nil {
				return nil, amdErrorf(tag, err)
			}

			return s, nil
		case OpInverse:
			e.log.Debug("logdet shortcut", slog.String("rule", "logdet(inv(Y)) = -logdet(Y)"))
			s, err := logDetWith(node.left, o)
			if err != nil {
				return nil, amdErrorf(tag, err)
			}
			if s, err = NegScalar(s); err != nil {
				return nil, amdErrorf(tag, err)
			}

			return s, nil
		}
	}
	a := node.adaptor
	value, err := a.LogDet(node.value)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	if node.constant {
		return e.constant(tag, node, value)
	}
	seed, err := e.inverse(e.lift(node))
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	e.log.Debug("logdet", slog.String("root", node.op.String()), slog.Int("nodes", node.Size()),
		slog.Bool("tree", o.DerivativeTree), slog.Int("parallel", o.ParallelDepth))

	return e.run(tag, node, value, seed, Propagation{Transpose: TransposeLeft})
}

// run drives the traversal from the root and packages the result.
func (e *engine[M, S]) run(tag string, node *Node[M, S], value S, seed adjoint[M, S], st Propagation) (*Scalar[M, S], error) {
	acc := e.newAccumulator()
	if err := e.gradientVec(node, seed, acc, st, 0); err != nil {
		err = amdErrorf(tag, err)
		e.log.Debug("traversal failed", slog.String("trail", formatTrail(err)), slog.Any("err", err))

		return nil, err
	}
	if acc.empty {
		return e.constant(tag, node, value)
	}

	return &Scalar[M, S]{Value: value, Derivative: acc.sum.value, Tree: acc.sum.tree, adaptor: e.a}, nil
}

// constant wraps value with a zero derivative of node's gradient shape.
func (e *engine[M, S]) constant(tag string, node *Node[M, S], value S) (*Scalar[M, S], error) {
	s, err := ConstScalar(e.a, value, node.rows, node.cols)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	if e.trees() {
		if s.Tree, err = Zeros(e.a, node.rows, node.cols); err != nil {
			return nil, amdErrorf(tag, err)
		}
	}

	return s, nil
}
