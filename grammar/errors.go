// SPDX-License-Identifier: MIT

package grammar

import (
	"fmt"

	"github.com/katalvlaran/amd/amd"
	"github.com/pkg/errors"
)

// ParseError locates a malformed expression.
type ParseError struct {
	// Offset is the byte offset of the offending token in the source.
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("grammar: offset %d: %s", e.Offset, e.Msg)
}

// Unwrap ties every parse failure to amd.ErrInvalidExpression.
func (e *ParseError) Unwrap() error { return amd.ErrInvalidExpression }

// syntaxErrorf builds a ParseError with a stack trace attached.
func syntaxErrorf(offset int, format string, args ...any) error {
	return errors.WithStack(&ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)})
}
