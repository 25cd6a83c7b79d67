// SPDX-License-Identifier: MIT

package amd

import (
	"errors"
	"strings"
)

// Sentinel errors. Every failure returned by this package wraps exactly one of
// them; callers match with errors.Is or classify with KindOf.
var (
	// ErrDimensionMismatch indicates operand shapes that do not conform, an
	// adjoint whose shape differs from its node, or two variable operands whose
	// gradient shapes disagree.
	ErrDimensionMismatch = errors.New("amd: dimension mismatch")

	// ErrInternalNode is returned when a node that already has children is
	// re-initialised as a leaf.
	ErrInternalNode = errors.New("amd: node has children")

	// ErrInvalidOperation is returned for an unknown operator tag or a node
	// whose arity does not match its tag.
	ErrInvalidOperation = errors.New("amd: invalid operation")

	// ErrNullReference is returned for a nil node, scalar or adaptor.
	ErrNullReference = errors.New("amd: null reference")

	// ErrNonSquare signals that trace, logdet, inverse or diag met a
	// non-square matrix.
	ErrNonSquare = errors.New("amd: matrix is not square")

	// ErrInvalidExpression is returned by front ends for malformed input.
	ErrInvalidExpression = errors.New("amd: invalid expression")

	// ErrBackend marks a backend failure with no dedicated sentinel above,
	// for example a singular matrix.
	ErrBackend = errors.New("amd: backend failure")
)

// Kind classifies an error returned by this module.
type Kind uint8

const (
	// KindUnknown is any error not produced through this package.
	KindUnknown Kind = iota
	KindDimensionMismatch
	KindInternalNode
	KindInvalidOperation
	KindNullReference
	KindNonSquare
	KindInvalidExpression
	KindBackend
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindDimensionMismatch: "dimension mismatch",
	KindInternalNode:      "internal node",
	KindInvalidOperation:  "invalid operation",
	KindNullReference:     "null reference",
	KindNonSquare:         "non-square",
	KindInvalidExpression: "invalid expression",
	KindBackend:           "backend",
}

// String returns a human readable kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return kindNames[KindUnknown]
}

// KindOf maps err to its Kind. A nil error is KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrDimensionMismatch):
		return KindDimensionMismatch
	case errors.Is(err, ErrInternalNode):
		return KindInternalNode
	case errors.Is(err, ErrInvalidOperation):
		return KindInvalidOperation
	case errors.Is(err, ErrNullReference):
		return KindNullReference
	case errors.Is(err, ErrNonSquare):
		return KindNonSquare
	case errors.Is(err, ErrInvalidExpression):
		return KindInvalidExpression
	case errors.Is(err, ErrBackend):
		return KindBackend
	}

	return KindUnknown
}

// tagError prefixes a cause with the operation that observed it.
type tagError struct {
	tag string
	err error
}

func (e *tagError) Error() string { return e.tag + ": " + e.err.Error() }

func (e *tagError) Unwrap() error { return e.err }

// amdErrorf wraps err with an operation tag, preserving the cause for errors.Is.
// Use only when err != nil.
func amdErrorf(tag string, err error) error {
	return &tagError{tag: tag, err: err}
}

// Trail returns the operation tags attached to err, outermost first.
// The result reads as the path from the entry point down to the failing rule.
func Trail(err error) []string {
	var tags []string
	for err != nil {
		var te *tagError
		if !errors.As(err, &te) {
			break
		}
		tags = append(tags, te.tag)
		err = te.err
	}

	return tags
}

// formatTrail joins a trail for log output.
func formatTrail(err error) string {
	return strings.Join(Trail(err), " > ")
}
