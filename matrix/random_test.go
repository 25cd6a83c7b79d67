// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/amd/matrix"
	"github.com/stretchr/testify/require"
)

func TestRandomPSDDeterministicAndSymmetric(t *testing.T) {
	for _, n := range []int{1, 3, 6} {
		a, err := matrix.RandomPSD(n, 42)
		require.NoError(t, err)
		b, err := matrix.RandomPSD(n, 42)
		require.NoError(t, err)
		require.Equal(t, a.ToSlices(), b.ToSlices(), "same seed, same matrix")

		at, err := matrix.Transpose(a)
		require.NoError(t, err)
		RequireClose(t, a, at)

		_, err = matrix.LogDet(a) // positive determinant
		require.NoError(t, err)
	}

	zero, err := matrix.RandomDense(2, 2, 0)
	require.NoError(t, err)
	one, err := matrix.RandomDense(2, 2, 1)
	require.NoError(t, err)
	require.Equal(t, zero.ToSlices(), one.ToSlices(), "seed 0 maps to the default seed")

	_, err = matrix.RandomPSD(0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
