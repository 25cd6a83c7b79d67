// SPDX-License-Identifier: MIT

// Package matrix - deterministic random inputs for numeric derivative checks.
//
// Goals:
//   - Determinism: same seed ⇒ identical matrices across platforms.
//   - No time-based sources hidden anywhere; seed==0 maps to a fixed default.
//
// Concurrency:
//   - Each call owns its *rand.Rand; the functions are safe for concurrent use.
package matrix

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// RandomDense returns an r×c matrix with entries drawn uniformly from [-1, 1).
//
// Errors: ErrInvalidDimensions for non-positive sizes.
// Complexity: O(r*c).
func RandomDense(rows, cols int, seed int64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf("RandomDense", err)
	}
	rng := rngFromSeed(seed)
	for idx := range m.data {
		m.data[idx] = 2*rng.Float64() - 1
	}

	return m, nil
}

// RandomPSD returns a symmetric positive definite n×n matrix A + Aᵀ + (2n+1)·I,
// with A from RandomDense. Every |entry| of A + Aᵀ is below 2, so the result is
// strictly diagonally dominant with a positive diagonal: LU never meets a zero
// pivot and the determinant is positive.
//
// Errors: ErrInvalidDimensions for n <= 0.
// Complexity: O(n^2).
func RandomPSD(n int, seed int64) (*Dense, error) {
	a, err := RandomDense(n, n, seed)
	if err != nil {
		return nil, matrixErrorf("RandomPSD", err)
	}
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("RandomPSD", err)
	}
	shift := float64(2*n + 1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = a.data[i*n+j] + a.data[j*n+i]
		}
		out.data[i*n+i] += shift
	}

	return out, nil
}
