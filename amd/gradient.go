// SPDX-License-Identifier: MIT

package amd

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// gradientVec pushes current into node and, through the operator rule,
// into its subtree, summing every contribution that reaches the variable
// into acc.
//
// Implementation:
//   - Stage 1: constant subtrees are pruned.
//   - Stage 2: a non-empty accumulator must already have node's gradient shape.
//   - Stage 3: arity and adjoint shape are checked, then the rule for node.op
//     runs and recurses left, then right.
//
// Errors are tagged with the operator name, so Trail reads as the path from
// the root to the failing node.
func (e *engine[M, S]) gradientVec(node *Node[M, S], current adjoint[M, S], acc *accumulator[M, S], st Propagation, level int) error {
	if node == nil {
		return ErrNullReference
	}
	if node.constant {
		return nil
	}
	if !acc.empty && (e.a.Rows(acc.sum.value) != node.rows || e.a.Cols(acc.sum.value) != node.cols) {
		return amdErrorf(node.op.String(), ErrDimensionMismatch)
	}
	if err := e.precheck(node, current, st); err != nil {
		return amdErrorf(node.op.String(), err)
	}
	if err := e.apply(node, current, acc, st, level); err != nil {
		return amdErrorf(node.op.String(), err)
	}

	return nil
}

// precheck validates arity against the tag and the adjoint shape against
// the node value (transposed when the state says so).
func (e *engine[M, S]) precheck(node *Node[M, S], current adjoint[M, S], st Propagation) error {
	hasL, hasR, hasS := node.left != nil, node.right != nil, node.scalar != nil
	var ok bool
	switch {
	case node.op.IsLeaf():
		ok = !hasL && !hasR && !hasS
	case node.op.IsBinary():
		ok = hasL && hasR && !hasS
	case node.op.IsScalarOp():
		ok = hasL && !hasR && hasS
	case node.op.IsUnary():
		ok = hasL && !hasR && !hasS
	}
	if !ok {
		return fmt.Errorf("arity of %s node: %w", node.op, ErrInvalidOperation)
	}
	if e.trees() && current.tree == nil {
		return ErrNullReference
	}
	wr, wc := e.a.Rows(node.value), e.a.Cols(node.value)
	if st.transposed() {
		wr, wc = wc, wr
	}
	if e.a.Rows(current.value) != wr || e.a.Cols(current.value) != wc {
		return fmt.Errorf("adjoint %dx%d for value %dx%d: %w",
			e.a.Rows(current.value), e.a.Cols(current.value), wr, wc, ErrDimensionMismatch)
	}

	return nil
}

// descend recurses into the children with their narrowed states. Under
// WithParallel the two children of a binary node run concurrently with
// private accumulators that are merged left, then right.
func (e *engine[M, S]) descend(node *Node[M, S], l, r adjoint[M, S], st Propagation, acc *accumulator[M, S], level int) error {
	return e.descendWith(node, l, r, st.left(), st.right(), acc, level)
}

// descendWith is descend with a separate state per child.
func (e *engine[M, S]) descendWith(node *Node[M, S], l, r adjoint[M, S], ls, rs Propagation, acc *accumulator[M, S], level int) error {
	left, right := node.left, node.right
	if right == nil || right.constant {
		return e.gradientVec(left, l, acc, ls, level+1)
	}
	if left.constant {
		return e.gradientVec(right, r, acc, rs, level+1)
	}
	if level >= e.opts.ParallelDepth {
		if err := e.gradientVec(left, l, acc, ls, level+1); err != nil {
			return err
		}

		return e.gradientVec(right, r, acc, rs, level+1)
	}

	la, ra := e.newAccumulator(), e.newAccumulator()
	var g errgroup.Group
	g.Go(func() error { return e.gradientVec(left, l, la, ls, level+1) })
	g.Go(func() error { return e.gradientVec(right, r, ra, rs, level+1) })
	if err := g.Wait(); err != nil {
		return err
	}
	if err := acc.merge(la); err != nil {
		return err
	}

	return acc.merge(ra)
}
