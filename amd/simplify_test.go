// SPDX-License-Identifier: MIT
package amd_test

import (
	"testing"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/symbolic"
	"github.com/stretchr/testify/require"
)

type snode = amd.Node[symbolic.Matrix, symbolic.Scalar]

var sym = adaptor.NewSymbolic()

func symVar(t *testing.T, name string, r, c int) *snode {
	t.Helper()
	m, err := symbolic.New(name, r, c)
	require.NoError(t, err)
	x, err := amd.NewVar(sym, m)
	require.NoError(t, err)

	return x
}

func symConst(t *testing.T, name string, r, c int) *snode {
	t.Helper()
	m, err := symbolic.New(name, r, c)
	require.NoError(t, err)
	k, err := amd.NewConst(sym, m)
	require.NoError(t, err)

	return k
}

func TestSimplify(t *testing.T) {
	x := symVar(t, "X", 2, 2)
	a := symConst(t, "A", 2, 2)
	eye, err := amd.Identity(sym, 2)
	require.NoError(t, err)
	zero, err := amd.Zeros(sym, 2, 2)
	require.NoError(t, err)

	type build func() (*snode, error)
	neg := func(b build) build {
		return func() (*snode, error) {
			v, err := b()
			if err != nil {
				return nil, err
			}

			return amd.Neg(v)
		}
	}
	leaf := func(n *snode) build { return func() (*snode, error) { return n, nil } }
	tests := []struct {
		name  string
		build build
		want  string
	}{
		{"x+0", func() (*snode, error) { return amd.Add(x, zero) }, "X"},
		{"0+x", func() (*snode, error) { return amd.Add(zero, x) }, "X"},
		{"x-0", func() (*snode, error) { return amd.Sub(x, zero) }, "X"},
		{"0-x", func() (*snode, error) { return amd.Sub(zero, x) }, "negation(X)"},
		{"x*I", func() (*snode, error) { return amd.Mul(x, eye) }, "X"},
		{"I*x", func() (*snode, error) { return amd.Mul(eye, x) }, "X"},
		{"x*0", func() (*snode, error) { return amd.Mul(x, zero) }, "zeros(2,2)"},
		{"I'", func() (*snode, error) { return amd.Transpose(eye) }, "eye(2)"},
		{"0'", func() (*snode, error) { return amd.Transpose(zero) }, "zeros(2,2)"},
		{"inv(I)", func() (*snode, error) { return amd.Inverse(eye) }, "eye(2)"},
		{"--x", neg(neg(leaf(x))), "X"},
		{"-0", neg(leaf(zero)), "zeros(2,2)"},
		{"diag(I)", func() (*snode, error) { return amd.Diag(eye) }, "eye(2)"},
		{"a+x kept", func() (*snode, error) { return amd.Add(a, x) }, "plus(A, X)"},
		{"nested", func() (*snode, error) {
			xi, err := amd.Mul(x, eye)
			if err != nil {
				return nil, err
			}
			sum, err := amd.Add(xi, zero)
			if err != nil {
				return nil, err
			}

			return amd.Mul(a, sum)
		}, "times(A, X)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := tc.build()
			require.NoError(t, err)
			before := in.String()
			out, err := amd.Simplify(in)
			require.NoError(t, err)
			require.Equal(t, tc.want, out.String())
			require.Equal(t, before, in.String())
		})
	}

	_, err = amd.Simplify[symbolic.Matrix, symbolic.Scalar](nil)
	require.ErrorIs(t, err, amd.ErrNullReference)
}

func TestSimplifyKeepsDerivative(t *testing.T) {
	x := mustVar(t, psd(t, 3, 1))
	eye, err := amd.Identity(dense, 3)
	require.NoError(t, err)
	zero, err := amd.Zeros(dense, 3, 3)
	require.NoError(t, err)
	xi, err := amd.Mul(eye, x)
	require.NoError(t, err)
	xx, err := amd.Mul(xi, x)
	require.NoError(t, err)
	expr, err := amd.Sub(xx, zero)
	require.NoError(t, err)

	simple, err := amd.Simplify(expr)
	require.NoError(t, err)
	require.Less(t, simple.Size(), expr.Size())

	s1, err := amd.Trace(expr)
	require.NoError(t, err)
	s2, err := amd.Trace(simple)
	require.NoError(t, err)
	requireClose(t, s1.Derivative, s2.Derivative, 1e-12)
}
