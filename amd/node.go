// SPDX-License-Identifier: MIT

package amd

import "strings"

// Structure marks leaves whose value is known structurally.
type Structure uint8

const (
	// StructureGeneral is any value without a known structure.
	StructureGeneral Structure = iota
	// StructureIdentity marks a leaf built by Identity.
	StructureIdentity
	// StructureZero marks a leaf built by Zeros.
	StructureZero
)

// Node is one vertex of an expression tree over matrices of type M with
// scalars of type S.
//
// The forward value is computed once, when the node is built, and never
// changes. Children are owned exclusively: operators deep-copy their operands.
// The scalar operand of the two scalar-times-matrix operators is shared.
//
// Gradient dimensions are the shape of the variable the node depends on, or
// 0×0 for constant subtrees.
type Node[M, S any] struct {
	value      M
	op         Op
	constant   bool
	rows, cols int
	structure  Structure

	left, right *Node[M, S]
	scalar      *Scalar[M, S]

	adaptor Adaptor[M, S]
}

// Value returns the forward value.
func (n *Node[M, S]) Value() M { return n.value }

// Op returns the operator tag.
func (n *Node[M, S]) Op() Op { return n.op }

// IsConstant reports whether no variable leaf lies beneath n.
func (n *Node[M, S]) IsConstant() bool { return n.constant }

// GradientDims returns the shape of d(·)/dX for this node, 0×0 if constant.
func (n *Node[M, S]) GradientDims() (rows, cols int) { return n.rows, n.cols }

// Rows returns the number of rows of the forward value.
func (n *Node[M, S]) Rows() int { return n.adaptor.Rows(n.value) }

// Cols returns the number of columns of the forward value.
func (n *Node[M, S]) Cols() int { return n.adaptor.Cols(n.value) }

// Structure reports whether n is a structural identity or zero leaf.
func (n *Node[M, S]) Structure() Structure { return n.structure }

// Left returns the first child, or nil.
func (n *Node[M, S]) Left() *Node[M, S] { return n.left }

// Right returns the second child, or nil.
func (n *Node[M, S]) Right() *Node[M, S] { return n.right }

// ScalarOperand returns the scalar of a scalar-times-matrix node, or nil.
func (n *Node[M, S]) ScalarOperand() *Scalar[M, S] { return n.scalar }

// Adaptor returns the backend n computes with.
func (n *Node[M, S]) Adaptor() Adaptor[M, S] { return n.adaptor }

// Clone returns a deep copy of the subtree rooted at n. Matrix values are
// immutable and therefore shared; the scalar operand stays shared as well.
//
// Complexity: O(size of subtree).
func (n *Node[M, S]) Clone() *Node[M, S] {
	if n == nil {
		return nil
	}
	c := *n
	c.left = n.left.Clone()
	c.right = n.right.Clone()

	return &c
}

// ShallowCopy copies the value, tag, constness, gradient dims and structure
// without children or scalar operand.
func (n *Node[M, S]) ShallowCopy() *Node[M, S] {
	if n == nil {
		return nil
	}

	return &Node[M, S]{
		value:     n.value,
		op:        n.op,
		constant:  n.constant,
		rows:      n.rows,
		cols:      n.cols,
		structure: n.structure,
		adaptor:   n.adaptor,
	}
}

// Reset re-initialises a leaf with a new value. Internal nodes are rejected
// with ErrInternalNode because their value is derived from the children.
func (n *Node[M, S]) Reset(m M, isVariable bool) error {
	if n == nil {
		return amdErrorf("Reset", ErrNullReference)
	}
	if n.left != nil || n.right != nil || n.scalar != nil {
		return amdErrorf("Reset", ErrInternalNode)
	}
	if n.adaptor == nil {
		return amdErrorf("Reset", ErrNullReference)
	}
	*n = *leaf(n.adaptor, m, isVariable)

	return nil
}

// Size returns the number of nodes in the subtree, scalar operands excluded.
func (n *Node[M, S]) Size() int {
	if n == nil {
		return 0
	}

	return 1 + n.left.Size() + n.right.Size()
}

// String renders the tree: leaves print their value, internal nodes print
// op(child[, child]), and scalar operands print through the adaptor.
func (n *Node[M, S]) String() string {
	var sb strings.Builder
	n.write(&sb)

	return sb.String()
}

func (n *Node[M, S]) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if n.op.IsLeaf() {
		sb.WriteString(n.adaptor.String(n.value))
		return
	}
	sb.WriteString(n.op.String())
	sb.WriteByte('(')
	if n.scalar != nil && n.op == OpScalarTimesMatrix {
		sb.WriteString(n.adaptor.ScalarString(n.scalar.Value))
		sb.WriteString(", ")
	}
	n.left.write(sb)
	if n.right != nil {
		sb.WriteString(", ")
		n.right.write(sb)
	}
	if n.scalar != nil && n.op == OpMatrixTimesScalar {
		sb.WriteString(", ")
		sb.WriteString(n.adaptor.ScalarString(n.scalar.Value))
	}
	sb.WriteByte(')')
}
