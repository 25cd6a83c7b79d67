// SPDX-License-Identifier: MIT

package adaptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
)

// Dense is the numeric backend. It is stateless and safe for concurrent use.
type Dense struct{}

// NewDense returns Dense typed as amd.Adaptor so generic constructors such as
// amd.NewVar infer their type parameters from it.
func NewDense() amd.Adaptor[matrix.Matrix, float64] { return Dense{} }

func (Dense) Rows(m matrix.Matrix) int { return m.Rows() }
func (Dense) Cols(m matrix.Matrix) int { return m.Cols() }

func (Dense) Add(a, b matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Add(a, b)

	return m, translate(err)
}

func (Dense) Sub(a, b matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Sub(a, b)

	return m, translate(err)
}

func (Dense) Mul(a, b matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Mul(a, b)

	return m, translate(err)
}

func (Dense) Hadamard(a, b matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Hadamard(a, b)

	return m, translate(err)
}

func (Dense) Transpose(a matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Transpose(a)

	return m, translate(err)
}

func (Dense) Negate(a matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Negate(a)

	return m, translate(err)
}

func (Dense) Inverse(a matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Inverse(a)

	return m, translate(err)
}

func (Dense) Diag(a matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Diag(a)

	return m, translate(err)
}

func (Dense) Scale(s float64, a matrix.Matrix) (matrix.Matrix, error) {
	m, err := matrix.Scale(a, s)

	return m, translate(err)
}

func (Dense) Trace(a matrix.Matrix) (float64, error) {
	v, err := matrix.Trace(a)

	return v, translate(err)
}

func (Dense) LogDet(a matrix.Matrix) (float64, error) {
	v, err := matrix.LogDet(a)

	return v, translate(err)
}

func (Dense) Identity(n int) (matrix.Matrix, error) {
	m, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, translate(err)
	}

	return m, nil
}

func (Dense) Zeros(rows, cols int) (matrix.Matrix, error) {
	m, err := matrix.NewZeros(rows, cols)
	if err != nil {
		return nil, translate(err)
	}

	return m, nil
}

func (Dense) Copy(a matrix.Matrix) matrix.Matrix { return a.Clone() }

func (Dense) ScalarAdd(a, b float64) (float64, error) { return a + b, nil }
func (Dense) ScalarSub(a, b float64) (float64, error) { return a - b, nil }
func (Dense) ScalarMul(a, b float64) (float64, error) { return a * b, nil }

// ScalarDiv fails on a zero divisor instead of producing ±Inf.
func (Dense) ScalarDiv(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %w", amd.ErrBackend, errDivisionByZero)
	}

	return a / b, nil
}

func (Dense) ScalarNeg(a float64) float64 { return -a }

func (Dense) ScalarFromFloat(f float64) float64 { return f }

func (Dense) ScalarString(s float64) string { return strconv.FormatFloat(s, 'g', -1, 64) }

// String prints one bracketed row per line.
func (Dense) String(m matrix.Matrix) string {
	if d, ok := m.(*matrix.Dense); ok {
		return strings.TrimSuffix(d.String(), "\n")
	}

	return fmt.Sprintf("%dx%d matrix", m.Rows(), m.Cols())
}
