// SPDX-License-Identifier: MIT

package symbolic

import "strconv"

// Scalar is an immutable symbolic scalar such as trace(X) or log(det(X)).
type Scalar struct {
	symbol string
}

// NewScalar names a scalar.
//
// Errors: ErrEmptySymbol.
func NewScalar(symbol string) (Scalar, error) {
	if symbol == "" {
		return Scalar{}, symbolicErrorf("NewScalar", ErrEmptySymbol)
	}

	return Scalar{symbol: symbol}, nil
}

// Number renders a numeric constant; negative values are parenthesised so
// they can be embedded as operands.
func Number(v float64) Scalar {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 {
		s = "(" + s + ")"
	}

	return Scalar{symbol: s}
}

// Symbol returns the raw expression, outer parentheses included.
func (s Scalar) Symbol() string { return s.symbol }

// String returns the expression without redundant outer parentheses.
func (s Scalar) String() string { return RemoveParenthesis(s.symbol) }

// IsZero reports whether s is the literal 0.
func (s Scalar) IsZero() bool { return s.symbol == "0" }

// IsOne reports whether s is the literal 1.
func (s Scalar) IsOne() bool { return s.symbol == "1" }

// Plus returns (s+o).
func (s Scalar) Plus(o Scalar) Scalar {
	switch {
	case s.IsZero():
		return o
	case o.IsZero():
		return s
	}

	return Scalar{symbol: "(" + s.symbol + "+" + o.symbol + ")"}
}

// Minus returns (s-o).
func (s Scalar) Minus(o Scalar) Scalar {
	switch {
	case o.IsZero():
		return s
	case s.IsZero():
		return o.Neg()
	}

	return Scalar{symbol: "(" + s.symbol + "-" + o.symbol + ")"}
}

// Times returns (s*o).
func (s Scalar) Times(o Scalar) Scalar {
	switch {
	case s.IsZero() || o.IsZero():
		return Number(0)
	case s.IsOne():
		return o
	case o.IsOne():
		return s
	}

	return Scalar{symbol: "(" + s.symbol + "*" + o.symbol + ")"}
}

// Over returns (s/o).
func (s Scalar) Over(o Scalar) Scalar {
	switch {
	case s.IsZero():
		return s
	case o.IsOne():
		return s
	}

	return Scalar{symbol: "(" + s.symbol + "/" + o.symbol + ")"}
}

// Neg returns (-s); -(-s) folds back to s.
func (s Scalar) Neg() Scalar {
	if s.IsZero() {
		return s
	}
	if inner, ok := negated(s.symbol); ok {
		return Scalar{symbol: inner}
	}

	return Scalar{symbol: "(-" + s.symbol + ")"}
}

// Sqrt returns sqrt(s).
func (s Scalar) Sqrt() Scalar {
	return Scalar{symbol: "sqrt(" + RemoveParenthesis(s.symbol) + ")"}
}
