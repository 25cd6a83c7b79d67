// SPDX-License-Identifier: MIT

package amd

// Simplify rebuilds the tree bottom-up, folding structural identities and
// zeros:
//
//	X+0 → X    0+X → X    X-0 → X    0-X → -X
//	X·I → X    I·X → X    X·0 → 0    0·X → 0
//	(Xᵀ)ᵀ → X  Iᵀ → I     0ᵀ → 0
//	(X⁻¹)⁻¹ → X           I⁻¹ → I
//	-(-X) → X  -0 → 0     diag(I) → I
//
// Only leaves built by Identity and Zeros count as structural; a constant
// that merely happens to equal I is left alone. The input is not modified.
func Simplify[M, S any](n *Node[M, S]) (*Node[M, S], error) {
	if n == nil {
		return nil, amdErrorf("Simplify", ErrNullReference)
	}
	if n.op.IsLeaf() {
		return n.Clone(), nil
	}
	l, err := Simplify(n.left)
	if err != nil {
		return nil, err
	}
	var r *Node[M, S]
	if n.right != nil {
		if r, err = Simplify(n.right); err != nil {
			return nil, err
		}
	}

	switch n.op {
	case OpPlus:
		switch {
		case isZero(r):
			return l, nil
		case isZero(l):
			return r, nil
		}

		return Add(l, r)
	case OpMinus:
		switch {
		case isZero(r):
			return l, nil
		case isZero(l):
			return simplifyNeg(r)
		}

		return Sub(l, r)
	case OpTimes:
		switch {
		case isZero(l) || isZero(r):
			return Zeros(n.adaptor, l.Rows(), r.Cols())
		case isIdentity(r):
			return l, nil
		case isIdentity(l):
			return r, nil
		}

		return Mul(l, r)
	case OpElementwise:
		if isZero(l) || isZero(r) {
			return Zeros(n.adaptor, l.Rows(), l.Cols())
		}

		return Hadamard(l, r)
	case OpNegation:
		return simplifyNeg(l)
	case OpTranspose:
		switch {
		case isIdentity(l):
			return l, nil
		case isZero(l):
			return Zeros(n.adaptor, l.Cols(), l.Rows())
		}

		return Transpose(l)
	case OpInverse:
		if isIdentity(l) {
			return l, nil
		}

		return Inverse(l)
	case OpDiag:
		if l.structure != StructureGeneral {
			return l, nil
		}

		return Diag(l)
	case OpScalarTimesMatrix:
		if isZero(l) {
			return l, nil
		}

		return ScaleLeft(n.scalar, l)
	case OpMatrixTimesScalar:
		if isZero(l) {
			return l, nil
		}

		return ScaleRight(l, n.scalar)
	}

	return nil, amdErrorf("Simplify", ErrInvalidOperation)
}

func simplifyNeg[M, S any](x *Node[M, S]) (*Node[M, S], error) {
	switch {
	case isZero(x):
		return x, nil
	case x.op == OpNegation:
		return x.left.Clone(), nil
	}

	return Neg(x)
}

func isZero[M, S any](n *Node[M, S]) bool {
	return n != nil && n.structure == StructureZero
}

func isIdentity[M, S any](n *Node[M, S]) bool {
	return n != nil && n.structure == StructureIdentity
}
