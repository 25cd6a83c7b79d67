// SPDX-License-Identifier: MIT

package adaptor_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/katalvlaran/amd/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dense(t *testing.T, rows [][]float64) matrix.Matrix {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestDenseDelegates(t *testing.T) {
	a := adaptor.NewDense()
	x := dense(t, [][]float64{{1, 2}, {3, 4}})
	y := dense(t, [][]float64{{2, 0}, {0, 2}})

	sum, err := a.Add(x, y)
	require.NoError(t, err)
	assert.Equal(t, "[3, 2]\n[3, 6]", a.String(sum))

	prod, err := a.Mul(x, y)
	require.NoError(t, err)
	assert.Equal(t, "[2, 4]\n[6, 8]", a.String(prod))

	tr, err := a.Trace(x)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, tr, 1e-12)

	ld, err := a.LogDet(y)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4), ld, 1e-12)

	scaled, err := a.Scale(0.5, y)
	require.NoError(t, err)
	assert.Equal(t, "[1, 0]\n[0, 1]", a.String(scaled))

	assert.Equal(t, 2, a.Rows(x))
	assert.Equal(t, 2, a.Cols(x))
}

func TestDenseZerosAndCopy(t *testing.T) {
	a := adaptor.NewDense()

	empty, err := a.Zeros(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Rows(empty))

	eye, err := a.Identity(2)
	require.NoError(t, err)
	c := a.Copy(eye)
	require.NoError(t, c.Set(0, 0, 7))
	v, err := eye.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 0, "Copy must not alias its argument")
}

func TestDenseErrorsAreTranslated(t *testing.T) {
	a := adaptor.NewDense()
	sq := dense(t, [][]float64{{1, 2}, {3, 4}})
	rect := dense(t, [][]float64{{1, 2, 3}})
	singular := dense(t, [][]float64{{1, 2}, {2, 4}})
	negDet := dense(t, [][]float64{{1, 2}, {3, 4}})

	_, err := a.Add(sq, rect)
	require.ErrorIs(t, err, amd.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.Equal(t, amd.KindDimensionMismatch, amd.KindOf(err))

	_, err = a.Trace(rect)
	require.ErrorIs(t, err, amd.ErrNonSquare)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = a.Inverse(singular)
	require.ErrorIs(t, err, amd.ErrBackend)
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = a.LogDet(negDet)
	require.ErrorIs(t, err, amd.ErrBackend)
	require.ErrorIs(t, err, matrix.ErrNonPositiveDeterminant)

	_, err = a.Transpose(nil)
	require.ErrorIs(t, err, amd.ErrNullReference)

	_, err = a.ScalarDiv(1, 0)
	require.ErrorIs(t, err, amd.ErrBackend)
	assert.Equal(t, amd.KindBackend, amd.KindOf(err))
}

func TestDenseScalars(t *testing.T) {
	a := adaptor.NewDense()
	q, err := a.ScalarDiv(3, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, q, 0)
	assert.Equal(t, "0.75", a.ScalarString(q))
	assert.InDelta(t, -2.0, a.ScalarNeg(a.ScalarFromFloat(2)), 0)
}

func TestSymbolicDelegates(t *testing.T) {
	a := adaptor.NewSymbolic()
	x, err := symbolic.New("X", 3, 3)
	require.NoError(t, err)
	y, err := symbolic.New("Y", 3, 3)
	require.NoError(t, err)

	prod, err := a.Mul(x, y)
	require.NoError(t, err)
	assert.Equal(t, "X*Y", a.String(prod))

	xt, err := a.Transpose(x)
	require.NoError(t, err)
	assert.Equal(t, "X'", a.String(xt))

	inv, err := a.Inverse(x)
	require.NoError(t, err)
	assert.Equal(t, "inv(X)", a.String(inv))

	ld, err := a.LogDet(x)
	require.NoError(t, err)
	assert.Equal(t, "log(det(X))", a.ScalarString(ld))

	eye, err := a.Identity(3)
	require.NoError(t, err)
	assert.Equal(t, "eye(3)", a.String(eye))
	assert.Equal(t, symbolic.Identity, eye.Kind())

	zero, err := a.Zeros(2, 3)
	require.NoError(t, err)
	assert.Equal(t, symbolic.Zero, zero.Kind())
	assert.Equal(t, x, a.Copy(x))
}

func TestSymbolicScalarFolding(t *testing.T) {
	a := adaptor.NewSymbolic()
	one, zero := a.ScalarFromFloat(1), a.ScalarFromFloat(0)
	s, err := symbolic.NewScalar("s")
	require.NoError(t, err)

	sum, err := a.ScalarAdd(zero, s)
	require.NoError(t, err)
	assert.Equal(t, "s", a.ScalarString(sum))

	prod, err := a.ScalarMul(one, s)
	require.NoError(t, err)
	assert.Equal(t, "s", a.ScalarString(prod))

	quot, err := a.ScalarDiv(s, one)
	require.NoError(t, err)
	assert.Equal(t, "s", a.ScalarString(quot))
}

func TestSymbolicErrorsAreTranslated(t *testing.T) {
	a := adaptor.NewSymbolic()
	x, err := symbolic.New("X", 3, 3)
	require.NoError(t, err)
	r, err := symbolic.New("R", 2, 3)
	require.NoError(t, err)

	_, err = a.Mul(x, r)
	require.ErrorIs(t, err, amd.ErrDimensionMismatch)
	require.ErrorIs(t, err, symbolic.ErrDimensionMismatch)

	_, err = a.Inverse(r)
	require.ErrorIs(t, err, amd.ErrNonSquare)

	_, err = a.Trace(r)
	require.ErrorIs(t, err, amd.ErrNonSquare)
}
