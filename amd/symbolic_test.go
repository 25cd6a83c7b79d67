// SPDX-License-Identifier: MIT
package amd_test

import (
	"testing"

	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/symbolic"
	"github.com/stretchr/testify/require"
)

func TestSymbolicEndToEnd(t *testing.T) {
	x := symVar(t, "X", 3, 3)
	y := symConst(t, "Y", 3, 3)

	xy, err := amd.Mul(x, y)
	require.NoError(t, err)
	s, err := amd.Trace(xy)
	require.NoError(t, err)
	require.Equal(t, "Y'", s.Derivative.String())
	require.Equal(t, "trace(X*Y)", s.Value.String())

	ymx, err := amd.Sub(y, x)
	require.NoError(t, err)
	s, err = amd.Trace(ymx)
	require.NoError(t, err)
	require.Equal(t, "-eye(3)", s.Derivative.String())
	require.Equal(t, "(-eye(3))", s.Derivative.Symbol())

	s, err = amd.LogDet(x)
	require.NoError(t, err)
	require.Equal(t, "inv(X)'", s.Derivative.String())
	require.Equal(t, "log(det(X))", s.Value.String())
}

func TestSymbolicRules(t *testing.T) {
	x := symVar(t, "X", 3, 3)
	a := symConst(t, "A", 3, 3)

	tests := []struct {
		name   string
		build  func() (*snode, error)
		logdet bool
		want   string
	}{
		{"trace(X)", func() (*snode, error) { return x, nil }, false, "eye(3)"},
		{"trace(A*X)", func() (*snode, error) { return amd.Mul(a, x) }, false, "A'"},
		{"trace(X')", func() (*snode, error) { return amd.Transpose(x) }, false, "eye(3)"},
		{"trace(-X)", func() (*snode, error) { return amd.Neg(x) }, false, "-eye(3)"},
		{"trace(X.*A)", func() (*snode, error) { return amd.Hadamard(x, a) }, false, "diag(A)"},
		{"trace(X*A')", func() (*snode, error) {
			at, err := amd.Transpose(a)
			if err != nil {
				return nil, err
			}

			return amd.Mul(x, at)
		}, false, "A"},
		{"trace(inv(X))", func() (*snode, error) { return amd.Inverse(x) }, false, "(-(inv(X)*inv(X)))'"},
		{"logdet(X')", func() (*snode, error) { return amd.Transpose(x) }, true, "inv(X)'"},
		{"logdet(inv(X))", func() (*snode, error) { return amd.Inverse(x) }, true, "-inv(X)'"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := tc.build()
			require.NoError(t, err)
			var s *amd.Scalar[symbolic.Matrix, symbolic.Scalar]
			if tc.logdet {
				s, err = amd.LogDet(node)
			} else {
				s, err = amd.Trace(node)
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, s.Derivative.String())
		})
	}
}

func TestSymbolicDerivativeTreePrints(t *testing.T) {
	x := symVar(t, "X", 3, 3)
	y := symConst(t, "Y", 3, 3)
	xy, err := amd.Mul(x, y)
	require.NoError(t, err)
	s, err := amd.Trace(xy, amd.WithDerivativeTree())
	require.NoError(t, err)
	require.Equal(t, "transpose(Y)", s.Tree.String())
	require.Equal(t, "Y'", s.Tree.Value().String())
}
