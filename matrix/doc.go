// SPDX-License-Identifier: MIT

// Package matrix is the dense numeric backend of the differentiation engine.
//
// The matrix package provides:
//
//   - The Matrix interface and its row-major implementation *Dense with safe
//     accessors (At/Set return errors instead of panicking).
//   - Canonical kernels used by the engine: Add, Sub, Mul, Transpose, Scale,
//     Negate, Hadamard, Inverse, LU, Trace, LogDet and Diag.
//   - Central validators (nil, shape, square, multiply compatibility).
//   - Deterministic random symmetric positive definite inputs (RandomPSD)
//     for numeric checks of derivatives.
//
// All kernels allocate a fresh result and never mutate their operands, so a
// matrix value can be shared by any number of expression nodes.
//
// See the examples in this package and in package amd for usage patterns.
package matrix
