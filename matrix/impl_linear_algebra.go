// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scaling, negation, Hadamard product, inverse, LU, trace, log-determinant and
// diagonal extraction. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel allocates a fresh *Dense result; operands are never mutated.
//   - Non-*Dense operands are materialized once through asDense, then the
//     flat-slice loop runs for every input type.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opNegate    = "Negate"
	opInverse   = "Inverse"
	opLU        = "LU"
	opHadamard  = "Hadamard"
	opTrace     = "Trace"
	opLogDet    = "LogDet"
	opDiag      = "Diag"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a *Dense copy built
// through At. The caller must have validated m as non-nil.
//
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := newDenseZeroOK(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation, allocation, and the loop.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: single flat loop 0..n-1 over both buffers.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateBinarySameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add returns a + b element-wise. Shapes must match.
// Complexity: O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a - b element-wise. Shapes must match.
// Complexity: O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product a×b (r×n · n×c → r×c).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate Dense(r, c).
//   - Stage 2: i→k→j loop over flat buffers; zero a[i,k] entries are skipped.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order i→k→j.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < dm.r; i++ {
		base := i * dm.c
		for j := 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[base+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m. alpha = 0 yields an explicit zero matrix of the same shape.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// Negate returns -m.
// Complexity: O(r*c).
func Negate(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNegate, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opNegate, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opNegate, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = -v
	}

	return res, nil
}

// Hadamard computes the elementwise product (a ⊙ b) with a fresh Dense result.
// Both inputs must be non-nil and have identical shapes.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateBinarySameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - Hadamard ≠ matrix multiplication; it is elementwise. Use Mul for A×B.
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] * db.data[idx]
	}

	return res, nil
}

// Diag keeps the main diagonal of a square matrix and zeroes every other cell
// (the MATLAB diag(diag(A)) shape, equal to A ⊙ I).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^2) for the zeroed allocation, O(n) copies.
func Diag(m Matrix) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	n := dm.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	for i := 0; i < n; i++ {
		res.data[i*n+i] = dm.data[i*n+i]
	}

	return res, nil
}

// Trace returns Σ m[i,i] for a square matrix.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n), Space O(1).
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	sum := ZeroSum
	if dm, ok := m.(*Dense); ok {
		for i := 0; i < dm.r; i++ {
			sum += dm.data[i*dm.c+i]
		}

		return sum, nil
	}
	var v float64
	var err error
	for i := 0; i < m.Rows(); i++ {
		if v, err = m.At(i, i); err != nil {
			return 0, matrixErrorf(opTrace, err)
		}
		sum += v
	}

	return sum, nil
}

// Inverse computes A⁻¹ from the pivoted factorization P·A = L·U, followed by
// one forward and one backward substitution per column.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); lu(m) yields L, U and the row order.
//   - Stage 2: for each column e_col solve L·y = P·e_col, then U·x = y.
//   - Stage 3: write x into column col of the result.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//   - ErrSingular (a column with no nonzero pivot candidate).
//
// Determinism:
//   - Ties in the pivot search keep the lowest row index.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	f, err := lu(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := f.l.r
	L, U := f.l.data, f.u.data
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col (L has unit diagonal).
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L[i*n+k] * y[k]
			}
			if f.perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y; pivots are nonzero after lu.
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += U[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / U[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// LU computes the factorization P·A = L·U with partial row pivoting: P is a
// permutation matrix, L is unit lower triangular and U is upper triangular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (a column has no nonzero pivot).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (P, L, U Matrix, err error) {
	if err = ValidateSquareNonNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	f, err := lu(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	n := f.l.r
	p, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	for i, src := range f.perm {
		p.data[i*n+src] = 1.0
	}

	return p, f.l, f.u, nil
}

// factors is the result of lu: row i of P·A is row perm[i] of A, and sign is
// det(P).
type factors struct {
	l, u *Dense
	perm []int
	sign float64
}

// lu is the shared kernel behind LU, Inverse and LogDet: Gaussian
// elimination in place on a copy of m, choosing the largest |a[i,k]| of each
// column as pivot. The caller validates m as square and non-nil.
func lu(m Matrix) (factors, error) {
	a, err := asDense(m)
	if err != nil {
		return factors{}, err
	}
	n := a.r
	w := make([]float64, len(a.data))
	copy(w, a.data)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var i, j, k, p int
	var best, v, f float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(w[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(w[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == ZeroPivot {
			return factors{}, ErrSingular
		}
		if p != k {
			// swap whole rows so earlier multipliers follow their row
			for j = 0; j < n; j++ {
				w[k*n+j], w[p*n+j] = w[p*n+j], w[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}
		for i = k + 1; i < n; i++ {
			f = w[i*n+k] / w[k*n+k]
			w[i*n+k] = f
			for j = k + 1; j < n; j++ {
				w[i*n+j] -= f * w[k*n+j]
			}
		}
	}

	L, err := NewDense(n, n)
	if err != nil {
		return factors{}, err
	}
	U, err := NewDense(n, n)
	if err != nil {
		return factors{}, err
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case j < i:
				L.data[i*n+j] = w[i*n+j]
			case j == i:
				L.data[i*n+j] = 1.0
				U.data[i*n+j] = w[i*n+j]
			default:
				U.data[i*n+j] = w[i*n+j]
			}
		}
	}

	return factors{l: L, u: U, perm: perm, sign: sign}, nil
}

// LogDet returns log(det(m)) for a square matrix with a positive determinant.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); lu(m), so det(m) = det(P)·Π U[i,i].
//   - Stage 2: accumulate Σ log|U[i,i]| and fold the sign of every pivot into
//     det(P).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//   - ErrNonPositiveDeterminant when det(m) < 0.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LogDet(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opLogDet, err)
	}
	f, err := lu(m)
	if err != nil {
		return 0, matrixErrorf(opLogDet, err)
	}
	n := f.u.r
	sum, sign := ZeroSum, f.sign
	for i := 0; i < n; i++ {
		p := f.u.data[i*n+i]
		if p < 0 {
			sign, p = -sign, -p
		}
		sum += math.Log(p)
	}
	if sign < 0 {
		return 0, matrixErrorf(opLogDet, ErrNonPositiveDeterminant)
	}

	return sum, nil
}
