// SPDX-License-Identifier: MIT
package symbolic_test

import (
	"testing"

	"github.com/katalvlaran/amd/symbolic"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, name string, r, c int) symbolic.Matrix {
	t.Helper()
	m, err := symbolic.New(name, r, c)
	require.NoError(t, err)

	return m
}

func TestRemoveParenthesis(t *testing.T) {
	tests := []struct{ in, want string }{
		{"(A+B)", "A+B"},
		{"(A)+(B)", "(A)+(B)"},
		{"A", "A"},
		{"((A))", "(A)"},
		{"", ""},
		{"inv(A)", "inv(A)"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, symbolic.RemoveParenthesis(tc.in), tc.in)
	}
}

func TestMatrixOps(t *testing.T) {
	a := mustNew(t, "A", 3, 3)
	b := mustNew(t, "B", 3, 3)
	x := mustNew(t, "X", 3, 2)

	sum, err := symbolic.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, "A+B", sum.String())
	require.Equal(t, "(A+B)", sum.Symbol())

	diff, err := symbolic.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, "A-B", diff.String())

	prod, err := symbolic.Mul(a, x)
	require.NoError(t, err)
	require.Equal(t, "A*X", prod.String())
	require.Equal(t, 3, prod.Rows())
	require.Equal(t, 2, prod.Cols())

	had, err := symbolic.Hadamard(a, b)
	require.NoError(t, err)
	require.Equal(t, "A.*B", had.String())

	require.Equal(t, "X'", symbolic.Transpose(x).String())
	require.Equal(t, 2, symbolic.Transpose(x).Rows())
	require.Equal(t, "(A*X)'", symbolic.Transpose(prod).String())
	require.Equal(t, "X", symbolic.Transpose(symbolic.Transpose(x)).String())

	require.Equal(t, "-A", symbolic.Negate(a).String())
	require.Equal(t, "A", symbolic.Negate(symbolic.Negate(a)).String())

	inv, err := symbolic.Inverse(sum)
	require.NoError(t, err)
	require.Equal(t, "inv(A+B)", inv.String())
	back, err := symbolic.Inverse(inv)
	require.NoError(t, err)
	require.Equal(t, "(A+B)", back.Symbol())

	d, err := symbolic.Diag(a)
	require.NoError(t, err)
	require.Equal(t, "diag(A)", d.String())

	two := symbolic.Number(2)
	require.Equal(t, "2.*A", symbolic.Scale(a, two).String())
	require.Equal(t, "(-2).*A", symbolic.Scale(a, symbolic.Number(-2)).String())

	tr, err := symbolic.Trace(sum)
	require.NoError(t, err)
	require.Equal(t, "trace(A+B)", tr.String())

	ld, err := symbolic.LogDet(a)
	require.NoError(t, err)
	require.Equal(t, "log(det(A))", ld.String())
}

func TestIdentityAndZeroFolding(t *testing.T) {
	a := mustNew(t, "A", 2, 2)
	eye := symbolic.Eye(2)
	zero := symbolic.Zeros(2, 2)

	require.Equal(t, "eye(2)", eye.String())
	require.Equal(t, symbolic.Identity, eye.Kind())
	require.Equal(t, "zeros(2,2)", zero.String())

	m, err := symbolic.Mul(eye, a)
	require.NoError(t, err)
	require.Equal(t, "A", m.String())
	m, err = symbolic.Mul(a, zero)
	require.NoError(t, err)
	require.Equal(t, symbolic.Zero, m.Kind())
	m, err = symbolic.Add(zero, a)
	require.NoError(t, err)
	require.Equal(t, "A", m.String())
	m, err = symbolic.Sub(zero, a)
	require.NoError(t, err)
	require.Equal(t, "-A", m.String())
	require.Equal(t, "-eye(2)", symbolic.Negate(eye).String())
	require.Equal(t, eye, symbolic.Transpose(eye))

	inv, err := symbolic.Inverse(eye)
	require.NoError(t, err)
	require.Equal(t, eye, inv)

	tr, err := symbolic.Trace(eye)
	require.NoError(t, err)
	require.Equal(t, "2", tr.String())
	ld, err := symbolic.LogDet(eye)
	require.NoError(t, err)
	require.True(t, ld.IsZero())

	require.Equal(t, a, symbolic.Scale(a, symbolic.Number(1)))
	require.Equal(t, symbolic.Zero, symbolic.Scale(a, symbolic.Number(0)).Kind())
}

func TestShapeErrors(t *testing.T) {
	a := mustNew(t, "A", 2, 3)
	b := mustNew(t, "B", 3, 2)

	_, err := symbolic.Add(a, b)
	require.ErrorIs(t, err, symbolic.ErrDimensionMismatch)
	_, err = symbolic.Sub(a, b)
	require.ErrorIs(t, err, symbolic.ErrDimensionMismatch)
	_, err = symbolic.Hadamard(a, b)
	require.ErrorIs(t, err, symbolic.ErrDimensionMismatch)
	_, err = symbolic.Mul(a, a)
	require.ErrorIs(t, err, symbolic.ErrDimensionMismatch)
	_, err = symbolic.Inverse(a)
	require.ErrorIs(t, err, symbolic.ErrNonSquare)
	_, err = symbolic.Trace(a)
	require.ErrorIs(t, err, symbolic.ErrNonSquare)
	_, err = symbolic.LogDet(a)
	require.ErrorIs(t, err, symbolic.ErrNonSquare)
	_, err = symbolic.Diag(a)
	require.ErrorIs(t, err, symbolic.ErrNonSquare)

	_, err = symbolic.New("", 1, 1)
	require.ErrorIs(t, err, symbolic.ErrEmptySymbol)
	_, err = symbolic.New("A", 0, 1)
	require.ErrorIs(t, err, symbolic.ErrInvalidDimensions)
}

func TestScalarOps(t *testing.T) {
	f, err := symbolic.NewScalar("trace(X)")
	require.NoError(t, err)
	g, err := symbolic.NewScalar("log(det(X))")
	require.NoError(t, err)
	zero, one := symbolic.Number(0), symbolic.Number(1)

	require.Equal(t, "trace(X)+log(det(X))", f.Plus(g).String())
	require.Equal(t, "trace(X)-log(det(X))", f.Minus(g).String())
	require.Equal(t, "trace(X)*log(det(X))", f.Times(g).String())
	require.Equal(t, "trace(X)/log(det(X))", f.Over(g).String())
	require.Equal(t, "-trace(X)", f.Neg().String())
	require.Equal(t, f, f.Neg().Neg())
	require.Equal(t, "sqrt(trace(X))", f.Sqrt().String())

	require.Equal(t, f, zero.Plus(f))
	require.Equal(t, f, f.Minus(zero))
	require.Equal(t, "-trace(X)", zero.Minus(f).String())
	require.True(t, f.Times(zero).IsZero())
	require.Equal(t, f, one.Times(f))
	require.Equal(t, f, f.Over(one))
	require.Equal(t, "(-1.5)", symbolic.Number(-1.5).Symbol())

	_, err = symbolic.NewScalar("")
	require.ErrorIs(t, err, symbolic.ErrEmptySymbol)
}
