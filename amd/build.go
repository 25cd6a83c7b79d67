// SPDX-License-Identifier: MIT

package amd

// Operation tags used when wrapping construction errors.
const (
	opNewLeaf   = "NewLeaf"
	opIdentity  = "Identity"
	opZeros     = "Zeros"
	opAdd       = "Add"
	opSub       = "Sub"
	opNeg       = "Neg"
	opMul       = "Mul"
	opHadamard  = "Hadamard"
	opTranspose = "Transpose"
	opInverse   = "Inverse"
	opDiag      = "Diag"
	opScale     = "Scale"
)

// leaf builds a CONST or VAR node; a must be non-nil.
func leaf[M, S any](a Adaptor[M, S], m M, isVariable bool) *Node[M, S] {
	n := &Node[M, S]{value: m, op: OpConst, constant: true, adaptor: a}
	if isVariable {
		n.op = OpVar
		n.constant = false
		n.rows, n.cols = a.Rows(m), a.Cols(m)
	}

	return n
}

// NewLeaf builds a constant leaf, or the variable when isVariable is set.
// Errors: ErrNullReference if a is nil.
func NewLeaf[M, S any](a Adaptor[M, S], m M, isVariable bool) (*Node[M, S], error) {
	if a == nil {
		return nil, amdErrorf(opNewLeaf, ErrNullReference)
	}

	return leaf(a, m, isVariable), nil
}

// NewConst builds a constant leaf.
func NewConst[M, S any](a Adaptor[M, S], m M) (*Node[M, S], error) {
	return NewLeaf(a, m, false)
}

// NewVar builds the variable leaf. Its shape becomes the gradient shape of
// every expression built on it.
func NewVar[M, S any](a Adaptor[M, S], m M) (*Node[M, S], error) {
	return NewLeaf(a, m, true)
}

// Identity builds a constant n×n identity leaf marked StructureIdentity.
func Identity[M, S any](a Adaptor[M, S], n int) (*Node[M, S], error) {
	if a == nil {
		return nil, amdErrorf(opIdentity, ErrNullReference)
	}
	m, err := a.Identity(n)
	if err != nil {
		return nil, amdErrorf(opIdentity, err)
	}
	out := leaf(a, m, false)
	out.structure = StructureIdentity

	return out, nil
}

// Zeros builds a constant rows×cols zero leaf marked StructureZero.
func Zeros[M, S any](a Adaptor[M, S], rows, cols int) (*Node[M, S], error) {
	if a == nil {
		return nil, amdErrorf(opZeros, ErrNullReference)
	}
	m, err := a.Zeros(rows, cols)
	if err != nil {
		return nil, amdErrorf(opZeros, err)
	}
	out := leaf(a, m, false)
	out.structure = StructureZero

	return out, nil
}

// gradientDims merges the gradient shapes of two operands. Two variable
// operands must agree.
func gradientDims(constA bool, ra, ca int, constB bool, rb, cb int) (rows, cols int, err error) {
	switch {
	case constA && constB:
		return 0, 0, nil
	case constA:
		return rb, cb, nil
	case constB:
		return ra, ca, nil
	case ra != rb || ca != cb:
		return 0, 0, ErrDimensionMismatch
	}

	return ra, ca, nil
}

// binary validates x and y and assembles an internal node around value.
//
// Implementation:
//   - Stage 1: nil checks, then the caller-supplied shape check.
//   - Stage 2: gradient shapes merged; the backend computes the value.
//   - Stage 3: both children are deep-copied into the new node.
func binary[M, S any](
	tag string, op Op, x, y *Node[M, S],
	shapeOK func(a Adaptor[M, S]) bool,
	compute func(a Adaptor[M, S]) (M, error),
) (*Node[M, S], error) {
	if x == nil || y == nil || x.adaptor == nil {
		return nil, amdErrorf(tag, ErrNullReference)
	}
	a := x.adaptor
	if !shapeOK(a) {
		return nil, amdErrorf(tag, ErrDimensionMismatch)
	}
	rows, cols, err := gradientDims(x.constant, x.rows, x.cols, y.constant, y.rows, y.cols)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}
	v, err := compute(a)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}

	return &Node[M, S]{
		value:    v,
		op:       op,
		constant: x.constant && y.constant,
		rows:     rows,
		cols:     cols,
		left:     x.Clone(),
		right:    y.Clone(),
		adaptor:  a,
	}, nil
}

// unary assembles a one-child node after the optional square check.
func unary[M, S any](
	tag string, op Op, x *Node[M, S], square bool,
	compute func(a Adaptor[M, S]) (M, error),
) (*Node[M, S], error) {
	if x == nil || x.adaptor == nil {
		return nil, amdErrorf(tag, ErrNullReference)
	}
	a := x.adaptor
	if square && a.Rows(x.value) != a.Cols(x.value) {
		return nil, amdErrorf(tag, ErrNonSquare)
	}
	v, err := compute(a)
	if err != nil {
		return nil, amdErrorf(tag, err)
	}

	return &Node[M, S]{
		value:    v,
		op:       op,
		constant: x.constant,
		rows:     x.rows,
		cols:     x.cols,
		left:     x.Clone(),
		adaptor:  a,
	}, nil
}

func sameShape[M, S any](a Adaptor[M, S], x, y M) bool {
	return a.Rows(x) == a.Rows(y) && a.Cols(x) == a.Cols(y)
}

// Add returns x + y.
func Add[M, S any](x, y *Node[M, S]) (*Node[M, S], error) {
	return binary(opAdd, OpPlus, x, y,
		func(a Adaptor[M, S]) bool { return sameShape(a, x.value, y.value) },
		func(a Adaptor[M, S]) (M, error) { return a.Add(x.value, y.value) })
}

// Sub returns x - y.
func Sub[M, S any](x, y *Node[M, S]) (*Node[M, S], error) {
	return binary(opSub, OpMinus, x, y,
		func(a Adaptor[M, S]) bool { return sameShape(a, x.value, y.value) },
		func(a Adaptor[M, S]) (M, error) { return a.Sub(x.value, y.value) })
}

// Mul returns the matrix product x·y.
func Mul[M, S any](x, y *Node[M, S]) (*Node[M, S], error) {
	return binary(opMul, OpTimes, x, y,
		func(a Adaptor[M, S]) bool { return a.Cols(x.value) == a.Rows(y.value) },
		func(a Adaptor[M, S]) (M, error) { return a.Mul(x.value, y.value) })
}

// Hadamard returns the element-wise product x∘y.
func Hadamard[M, S any](x, y *Node[M, S]) (*Node[M, S], error) {
	return binary(opHadamard, OpElementwise, x, y,
		func(a Adaptor[M, S]) bool { return sameShape(a, x.value, y.value) },
		func(a Adaptor[M, S]) (M, error) { return a.Hadamard(x.value, y.value) })
}

// Neg returns -x.
func Neg[M, S any](x *Node[M, S]) (*Node[M, S], error) {
	return unary(opNeg, OpNegation, x, false,
		func(a Adaptor[M, S]) (M, error) { return a.Negate(x.value) })
}

// Transpose returns xᵀ. Transposing a transpose returns a copy of the
// inner operand.
func Transpose[M, S any](x *Node[M, S]) (*Node[M, S], error) {
	if x != nil && x.op == OpTranspose && x.left != nil {
		return x.left.Clone(), nil
	}

	return unary(opTranspose, OpTranspose, x, false,
		func(a Adaptor[M, S]) (M, error) { return a.Transpose(x.value) })
}

// Inverse returns x⁻¹. Inverting an inverse returns a copy of the inner
// operand.
// Errors: ErrNonSquare, backend failures such as a singular value.
func Inverse[M, S any](x *Node[M, S]) (*Node[M, S], error) {
	if x != nil && x.op == OpInverse && x.left != nil {
		return x.left.Clone(), nil
	}

	return unary(opInverse, OpInverse, x, true,
		func(a Adaptor[M, S]) (M, error) { return a.Inverse(x.value) })
}

// Diag keeps the main diagonal of a square x.
func Diag[M, S any](x *Node[M, S]) (*Node[M, S], error) {
	return unary(opDiag, OpDiag, x, true,
		func(a Adaptor[M, S]) (M, error) { return a.Diag(x.value) })
}

// ScaleLeft returns s·x.
func ScaleLeft[M, S any](s *Scalar[M, S], x *Node[M, S]) (*Node[M, S], error) {
	return scaled(OpScalarTimesMatrix, s, x)
}

// ScaleRight returns x·s.
func ScaleRight[M, S any](x *Node[M, S], s *Scalar[M, S]) (*Node[M, S], error) {
	return scaled(OpMatrixTimesScalar, s, x)
}

// scaled builds a scalar-times-matrix node. The scalar's derivative shape
// takes part in the gradient shape check like a second operand.
func scaled[M, S any](op Op, s *Scalar[M, S], x *Node[M, S]) (*Node[M, S], error) {
	if s == nil || x == nil || x.adaptor == nil {
		return nil, amdErrorf(opScale, ErrNullReference)
	}
	a := x.adaptor
	var sr, sc int
	if !s.Constant {
		sr, sc = a.Rows(s.Derivative), a.Cols(s.Derivative)
	}
	rows, cols, err := gradientDims(x.constant, x.rows, x.cols, s.Constant, sr, sc)
	if err != nil {
		return nil, amdErrorf(opScale, err)
	}
	v, err := a.Scale(s.Value, x.value)
	if err != nil {
		return nil, amdErrorf(opScale, err)
	}

	return &Node[M, S]{
		value:    v,
		op:       op,
		constant: x.constant && s.Constant,
		rows:     rows,
		cols:     cols,
		left:     x.Clone(),
		scalar:   s,
		adaptor:  a,
	}, nil
}
