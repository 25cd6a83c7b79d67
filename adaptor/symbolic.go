// SPDX-License-Identifier: MIT

package adaptor

import (
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/symbolic"
)

// Symbolic is the MATLAB-string backend. Values are immutable, so Copy
// returns its argument.
type Symbolic struct{}

// NewSymbolic returns Symbolic typed as amd.Adaptor.
func NewSymbolic() amd.Adaptor[symbolic.Matrix, symbolic.Scalar] { return Symbolic{} }

func (Symbolic) Rows(m symbolic.Matrix) int { return m.Rows() }
func (Symbolic) Cols(m symbolic.Matrix) int { return m.Cols() }

func (Symbolic) Add(a, b symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Add(a, b)

	return m, translate(err)
}

func (Symbolic) Sub(a, b symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Sub(a, b)

	return m, translate(err)
}

func (Symbolic) Mul(a, b symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Mul(a, b)

	return m, translate(err)
}

func (Symbolic) Hadamard(a, b symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Hadamard(a, b)

	return m, translate(err)
}

func (Symbolic) Transpose(a symbolic.Matrix) (symbolic.Matrix, error) {
	return symbolic.Transpose(a), nil
}

func (Symbolic) Negate(a symbolic.Matrix) (symbolic.Matrix, error) {
	return symbolic.Negate(a), nil
}

func (Symbolic) Inverse(a symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Inverse(a)

	return m, translate(err)
}

func (Symbolic) Diag(a symbolic.Matrix) (symbolic.Matrix, error) {
	m, err := symbolic.Diag(a)

	return m, translate(err)
}

func (Symbolic) Scale(s symbolic.Scalar, a symbolic.Matrix) (symbolic.Matrix, error) {
	return symbolic.Scale(a, s), nil
}

func (Symbolic) Trace(a symbolic.Matrix) (symbolic.Scalar, error) {
	s, err := symbolic.Trace(a)

	return s, translate(err)
}

func (Symbolic) LogDet(a symbolic.Matrix) (symbolic.Scalar, error) {
	s, err := symbolic.LogDet(a)

	return s, translate(err)
}

func (Symbolic) Identity(n int) (symbolic.Matrix, error) { return symbolic.Eye(n), nil }

func (Symbolic) Zeros(rows, cols int) (symbolic.Matrix, error) { return symbolic.Zeros(rows, cols), nil }

func (Symbolic) Copy(a symbolic.Matrix) symbolic.Matrix { return a }

func (Symbolic) ScalarAdd(a, b symbolic.Scalar) (symbolic.Scalar, error) { return a.Plus(b), nil }
func (Symbolic) ScalarSub(a, b symbolic.Scalar) (symbolic.Scalar, error) { return a.Minus(b), nil }
func (Symbolic) ScalarMul(a, b symbolic.Scalar) (symbolic.Scalar, error) { return a.Times(b), nil }
func (Symbolic) ScalarDiv(a, b symbolic.Scalar) (symbolic.Scalar, error) { return a.Over(b), nil }

func (Symbolic) ScalarNeg(a symbolic.Scalar) symbolic.Scalar { return a.Neg() }

func (Symbolic) ScalarFromFloat(f float64) symbolic.Scalar { return symbolic.Number(f) }

func (Symbolic) ScalarString(s symbolic.Scalar) string { return s.String() }

func (Symbolic) String(m symbolic.Matrix) string { return m.String() }
