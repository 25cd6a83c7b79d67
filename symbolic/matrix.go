// SPDX-License-Identifier: MIT

package symbolic

import (
	"fmt"
	"strconv"
)

// Kind marks matrices whose value is known structurally.
type Kind uint8

const (
	// General is any matrix without a known structure.
	General Kind = iota
	// Identity is eye(n).
	Identity
	// Zero is zeros(m,n).
	Zero
)

// Matrix is an immutable symbolic matrix: a MATLAB expression plus its shape.
// The zero value is not usable; build matrices with New, Eye or Zeros.
type Matrix struct {
	symbol     string
	rows, cols int
	kind       Kind
}

// New names an r×c matrix.
//
// Errors: ErrEmptySymbol, ErrInvalidDimensions.
func New(symbol string, rows, cols int) (Matrix, error) {
	if symbol == "" {
		return Matrix{}, symbolicErrorf("New", ErrEmptySymbol)
	}
	if rows <= 0 || cols <= 0 {
		return Matrix{}, symbolicErrorf("New", ErrInvalidDimensions)
	}

	return Matrix{symbol: symbol, rows: rows, cols: cols}, nil
}

// Eye returns eye(n).
func Eye(n int) Matrix {
	return Matrix{symbol: "eye(" + strconv.Itoa(n) + ")", rows: n, cols: n, kind: Identity}
}

// Zeros returns zeros(m,n). Empty shapes are allowed.
func Zeros(rows, cols int) Matrix {
	return Matrix{symbol: fmt.Sprintf("zeros(%d,%d)", rows, cols), rows: rows, cols: cols, kind: Zero}
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Kind reports the structural kind.
func (m Matrix) Kind() Kind { return m.kind }

// Symbol returns the raw expression, outer parentheses included.
func (m Matrix) Symbol() string { return m.symbol }

// String returns the expression without redundant outer parentheses.
func (m Matrix) String() string { return RemoveParenthesis(m.symbol) }

func (m Matrix) square() bool { return m.rows == m.cols }

func (m Matrix) sameShape(o Matrix) bool { return m.rows == o.rows && m.cols == o.cols }

// Add returns (a+b).
func Add(a, b Matrix) (Matrix, error) {
	if !a.sameShape(b) {
		return Matrix{}, symbolicErrorf("Add", ErrDimensionMismatch)
	}
	switch {
	case a.kind == Zero:
		return b, nil
	case b.kind == Zero:
		return a, nil
	}

	return Matrix{symbol: "(" + a.symbol + "+" + b.symbol + ")", rows: a.rows, cols: a.cols}, nil
}

// Sub returns (a-b).
func Sub(a, b Matrix) (Matrix, error) {
	if !a.sameShape(b) {
		return Matrix{}, symbolicErrorf("Sub", ErrDimensionMismatch)
	}
	switch {
	case b.kind == Zero:
		return a, nil
	case a.kind == Zero:
		return Negate(b), nil
	}

	return Matrix{symbol: "(" + a.symbol + "-" + b.symbol + ")", rows: a.rows, cols: a.cols}, nil
}

// Mul returns (a*b), folding identity and zero operands.
func Mul(a, b Matrix) (Matrix, error) {
	if a.cols != b.rows {
		return Matrix{}, symbolicErrorf("Mul", ErrDimensionMismatch)
	}
	switch {
	case a.kind == Zero || b.kind == Zero:
		return Zeros(a.rows, b.cols), nil
	case a.kind == Identity:
		return b, nil
	case b.kind == Identity:
		return a, nil
	}

	return Matrix{symbol: "(" + a.symbol + "*" + b.symbol + ")", rows: a.rows, cols: b.cols}, nil
}

// Hadamard returns (a.*b).
func Hadamard(a, b Matrix) (Matrix, error) {
	if !a.sameShape(b) {
		return Matrix{}, symbolicErrorf("Hadamard", ErrDimensionMismatch)
	}
	if a.kind == Zero || b.kind == Zero {
		return Zeros(a.rows, a.cols), nil
	}

	return Matrix{symbol: "(" + a.symbol + ".*" + b.symbol + ")", rows: a.rows, cols: a.cols}, nil
}

// Negate returns (-a); -(-a) folds back to a and -0 stays 0.
func Negate(a Matrix) Matrix {
	if a.kind == Zero {
		return a
	}
	if inner, ok := negated(a.symbol); ok {
		return Matrix{symbol: inner, rows: a.rows, cols: a.cols}
	}

	return Matrix{symbol: "(-" + a.symbol + ")", rows: a.rows, cols: a.cols}
}

// Transpose returns a'; a'' folds back to a.
func Transpose(a Matrix) Matrix {
	switch a.kind {
	case Identity:
		return a
	case Zero:
		return Zeros(a.cols, a.rows)
	}
	n := len(a.symbol)
	if n > 1 && a.symbol[n-1] == '\'' {
		return Matrix{symbol: a.symbol[:n-1], rows: a.cols, cols: a.rows}
	}

	return Matrix{symbol: a.symbol + "'", rows: a.cols, cols: a.rows}
}

// Inverse returns inv(a); inv(eye(n)) is eye(n) and inv(inv(a)) folds to a.
func Inverse(a Matrix) (Matrix, error) {
	if !a.square() {
		return Matrix{}, symbolicErrorf("Inverse", ErrNonSquare)
	}
	if a.kind == Identity {
		return a, nil
	}
	if inner, ok := callArg(a.symbol, "inv"); ok {
		if !atomic(inner) {
			inner = "(" + inner + ")"
		}

		return Matrix{symbol: inner, rows: a.rows, cols: a.cols}, nil
	}

	return Matrix{symbol: "inv(" + RemoveParenthesis(a.symbol) + ")", rows: a.rows, cols: a.cols}, nil
}

// Diag returns diag(a) as a square matrix.
func Diag(a Matrix) (Matrix, error) {
	if !a.square() {
		return Matrix{}, symbolicErrorf("Diag", ErrNonSquare)
	}
	if a.kind != General {
		return a, nil
	}

	return Matrix{symbol: "diag(" + RemoveParenthesis(a.symbol) + ")", rows: a.rows, cols: a.cols}, nil
}

// Scale returns (s.*a), folding s = 0 and s = 1.
func Scale(a Matrix, s Scalar) Matrix {
	switch {
	case a.kind == Zero || s.IsZero():
		return Zeros(a.rows, a.cols)
	case s.IsOne():
		return a
	}

	return Matrix{symbol: "(" + s.symbol + ".*" + a.symbol + ")", rows: a.rows, cols: a.cols}
}

// Trace returns trace(a); trace(eye(n)) is n and trace of zeros is 0.
func Trace(a Matrix) (Scalar, error) {
	if !a.square() {
		return Scalar{}, symbolicErrorf("Trace", ErrNonSquare)
	}
	switch a.kind {
	case Identity:
		return Number(float64(a.rows)), nil
	case Zero:
		return Number(0), nil
	}

	return Scalar{symbol: "trace(" + RemoveParenthesis(a.symbol) + ")"}, nil
}

// LogDet returns log(det(a)); the log-determinant of eye(n) is 0.
func LogDet(a Matrix) (Scalar, error) {
	if !a.square() {
		return Scalar{}, symbolicErrorf("LogDet", ErrNonSquare)
	}
	if a.kind == Identity {
		return Number(0), nil
	}

	return Scalar{symbol: "log(det(" + RemoveParenthesis(a.symbol) + "))"}, nil
}

// atomic reports whether s needs no parentheses to be used as an operand:
// an identifier, a number, a call such as inv(A), or an already wrapped group.
func atomic(s string) bool {
	if wrapped(s) {
		return true
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && (c == '+' || c == '-' || c == '*' || c == '/' || c == '.'):
			if c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				continue // decimal point
			}

			return false
		}
	}

	return true
}
