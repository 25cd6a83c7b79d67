// SPDX-License-Identifier: MIT
package amd_test

import (
	"testing"

	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// IdentitiesSuite checks closed-form gradients from the matrix cookbook.
type IdentitiesSuite struct {
	suite.Suite
	x, a, b    *matrix.Dense
	xn, an, bn *dnode
}

func (s *IdentitiesSuite) SetupTest() {
	t := s.T()
	s.x, s.a, s.b = psd(t, n, 21), psd(t, n, 22), psd(t, n, 23)
	s.xn, s.an, s.bn = mustVar(t, s.x), mustConst(t, s.a), mustConst(t, s.b)
}

func (s *IdentitiesSuite) mat(m matrix.Matrix, err error) matrix.Matrix {
	require.NoError(s.T(), err)

	return m
}

func (s *IdentitiesSuite) node(nd *dnode, err error) *dnode {
	require.NoError(s.T(), err)

	return nd
}

func (s *IdentitiesSuite) trace(nd *dnode) *dscalar {
	sc, err := amd.Trace(nd)
	require.NoError(s.T(), err)

	return sc
}

// d tr(A X⁻¹ B) = -(X⁻¹ B A X⁻¹)ᵀ
func (s *IdentitiesSuite) TestTraceOfInverseSandwich() {
	xi := s.node(amd.Inverse(s.xn))
	got := s.trace(s.node(amd.Mul(s.node(amd.Mul(s.an, xi)), s.bn)))

	inv := s.mat(matrix.Inverse(s.x))
	inner := s.mat(matrix.Mul(s.mat(matrix.Mul(s.mat(matrix.Mul(inv, s.b)), s.a)), inv))
	want := s.mat(matrix.Negate(s.mat(matrix.Transpose(inner))))
	requireClose(s.T(), want, got.Derivative, 1e-9)
}

// d tr(Xᵀ A X) = (A + Aᵀ) X
func (s *IdentitiesSuite) TestQuadraticForm() {
	xt := s.node(amd.Transpose(s.xn))
	got := s.trace(s.node(amd.Mul(s.node(amd.Mul(xt, s.an)), s.xn)))

	sym := s.mat(matrix.Add(s.a, s.mat(matrix.Transpose(s.a))))
	want := s.mat(matrix.Mul(sym, s.x))
	requireClose(s.T(), want, got.Derivative, 1e-9)
}

// d logdet(A X B) = X⁻ᵀ
func (s *IdentitiesSuite) TestLogDetIgnoresConstantFactors() {
	axb := s.node(amd.Mul(s.node(amd.Mul(s.an, s.xn)), s.bn))
	got, err := amd.LogDet(axb)
	s.Require().NoError(err)

	want := s.mat(matrix.Transpose(s.mat(matrix.Inverse(s.x))))
	requireClose(s.T(), want, got.Derivative, 1e-8)
}

// d tr(X∘A) = diag(A)
func (s *IdentitiesSuite) TestTraceOfHadamard() {
	got := s.trace(s.node(amd.Hadamard(s.xn, s.an)))
	want := s.mat(matrix.Diag(s.a))
	requireClose(s.T(), want, got.Derivative, 1e-12)
}

// d tr(tr(AX)·X) = tr(X)·Aᵀ + tr(AX)·I
func (s *IdentitiesSuite) TestScalarTimesMatrixProductRule() {
	inner := s.trace(s.node(amd.Mul(s.an, s.xn)))
	got := s.trace(s.node(amd.ScaleLeft(inner, s.xn)))

	tx, err := matrix.Trace(s.x)
	s.Require().NoError(err)
	eye := s.mat(matrix.NewIdentity(n))
	want := s.mat(matrix.Add(
		s.mat(matrix.Scale(s.mat(matrix.Transpose(s.a)), tx)),
		s.mat(matrix.Scale(eye, inner.Value)),
	))
	requireClose(s.T(), want, got.Derivative, 1e-9)
	s.InDelta(inner.Value*tx, got.Value, 1e-9)
}

func TestIdentitiesSuite(t *testing.T) {
	suite.Run(t, new(IdentitiesSuite))
}
