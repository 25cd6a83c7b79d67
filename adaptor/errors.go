// SPDX-License-Identifier: MIT

package adaptor

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/katalvlaran/amd/symbolic"
)

// translations maps backend sentinels to amd sentinels; the first match wins.
var translations = []struct {
	from, to error
}{
	{matrix.ErrDimensionMismatch, amd.ErrDimensionMismatch},
	{matrix.ErrNonSquare, amd.ErrNonSquare},
	{matrix.ErrNilMatrix, amd.ErrNullReference},
	{symbolic.ErrDimensionMismatch, amd.ErrDimensionMismatch},
	{symbolic.ErrNonSquare, amd.ErrNonSquare},
}

// translate wraps a backend error with its amd counterpart, or with
// amd.ErrBackend when there is none.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, t := range translations {
		if errors.Is(err, t.from) {
			return fmt.Errorf("%w: %w", t.to, err)
		}
	}

	return fmt.Errorf("%w: %w", amd.ErrBackend, err)
}

// errDivisionByZero is wrapped with amd.ErrBackend by the numeric scalar division.
var errDivisionByZero = errors.New("adaptor: division by zero")
