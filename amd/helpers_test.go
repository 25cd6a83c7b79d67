// SPDX-License-Identifier: MIT
package amd_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/stretchr/testify/require"
)

type (
	dnode   = amd.Node[matrix.Matrix, float64]
	dscalar = amd.Scalar[matrix.Matrix, float64]
)

var dense = adaptor.NewDense()

// finite-difference step and comparison tolerance for gradient checks.
const (
	fdStep = 1e-6
	fdTol  = 1e-5
)

func psd(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.RandomPSD(n, seed)
	require.NoError(t, err)

	return m
}

func from(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func mustVar(t *testing.T, m matrix.Matrix) *dnode {
	t.Helper()
	n, err := amd.NewVar(dense, m)
	require.NoError(t, err)

	return n
}

func mustConst(t *testing.T, m matrix.Matrix) *dnode {
	t.Helper()
	n, err := amd.NewConst(dense, m)
	require.NoError(t, err)

	return n
}

// slices flattens m row by row.
func slices(t *testing.T, m matrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// requireClose compares element-wise with absolute and relative slack.
func requireClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	if diff := cmp.Diff(slices(t, want), slices(t, got), cmpopts.EquateApprox(tol, tol)); diff != "" {
		t.Fatalf("matrices differ (-want +got):\n%s", diff)
	}
}

// builder turns the variable node into the expression under test.
type builder func(x *dnode) (*dnode, error)

// root is Trace or LogDet bound to options.
type root func(n *dnode, opts ...amd.Option) (*dscalar, error)

var (
	traceRoot  root = amd.Trace[matrix.Matrix, float64]
	logDetRoot root = amd.LogDet[matrix.Matrix, float64]
)

// value evaluates root(build(X)) at x.
func value(t *testing.T, build builder, r root, x matrix.Matrix) float64 {
	t.Helper()
	n, err := build(mustVar(t, x))
	require.NoError(t, err)
	s, err := r(n)
	require.NoError(t, err)

	return s.Value
}

// numericGradient approximates d root(build(X)) / dX by central differences.
func numericGradient(t *testing.T, build builder, r root, x *matrix.Dense) matrix.Matrix {
	t.Helper()
	g, err := matrix.NewDense(x.Rows(), x.Cols())
	require.NoError(t, err)
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			v, err := x.At(i, j)
			require.NoError(t, err)
			plus, minus := x.Clone(), x.Clone()
			require.NoError(t, plus.Set(i, j, v+fdStep))
			require.NoError(t, minus.Set(i, j, v-fdStep))
			d := (value(t, build, r, plus) - value(t, build, r, minus)) / (2 * fdStep)
			require.NoError(t, g.Set(i, j, d))
		}
	}

	return g
}
