// SPDX-License-Identifier: MIT

package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operand shapes that do not conform.
	ErrDimensionMismatch = errors.New("symbolic: dimension mismatch")

	// ErrNonSquare signals that a square operand was required.
	ErrNonSquare = errors.New("symbolic: matrix is not square")

	// ErrInvalidDimensions is returned for non-positive sizes.
	ErrInvalidDimensions = errors.New("symbolic: invalid dimensions")

	// ErrEmptySymbol is returned when a matrix or scalar is named by "".
	ErrEmptySymbol = errors.New("symbolic: empty symbol")
)

// symbolicErrorf tags err with the operation that detected it.
func symbolicErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
