// SPDX-License-Identifier: MIT

// Package adaptor binds the matrix backends of this module to amd.Adaptor.
//
//   - Dense computes numerically over matrix.Matrix with float64 scalars.
//   - Symbolic builds MATLAB expressions over symbolic.Matrix and
//     symbolic.Scalar.
//
// Backend errors are translated: the result wraps both the matching amd
// sentinel and the original backend sentinel, so errors.Is succeeds against
// either.
package adaptor
