// SPDX-License-Identifier: MIT

package amd

// Adaptor is the backend contract the engine computes with. M is the matrix
// representation and S the scalar one; values of both are treated as
// immutable once handed to the engine.
//
// Fallible operations return an error that wraps one of this package's
// sentinels (ErrDimensionMismatch, ErrNonSquare, ErrBackend) so KindOf can
// classify it; the backend's own sentinel may be wrapped alongside.
//
// Implementations must be safe for concurrent use when parallel traversal is
// enabled.
type Adaptor[M, S any] interface {
	Rows(m M) int
	Cols(m M) int

	Add(a, b M) (M, error)
	Sub(a, b M) (M, error)
	Mul(a, b M) (M, error)
	Hadamard(a, b M) (M, error)
	Transpose(m M) (M, error)
	Negate(m M) (M, error)
	Inverse(m M) (M, error)
	// Diag keeps the main diagonal of a square matrix and zeroes the rest.
	Diag(m M) (M, error)
	// Scale returns s·m.
	Scale(s S, m M) (M, error)

	Trace(m M) (S, error)
	LogDet(m M) (S, error)

	// Identity returns the n×n identity.
	Identity(n int) (M, error)
	// Zeros returns an r×c zero matrix; 0×0 must be supported.
	Zeros(rows, cols int) (M, error)
	// Copy returns a value that does not alias m.
	Copy(m M) M

	ScalarAdd(a, b S) (S, error)
	ScalarSub(a, b S) (S, error)
	ScalarMul(a, b S) (S, error)
	ScalarDiv(a, b S) (S, error)
	ScalarNeg(a S) S
	ScalarFromFloat(f float64) S
	ScalarString(s S) string

	// String renders m for diagnostics and tree printing.
	String(m M) string
}
