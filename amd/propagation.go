// SPDX-License-Identifier: MIT

package amd

// TransposeMask tells which children receive their adjoint transposed.
// A child receives mask&TransposeLeft or mask&TransposeRight; any nonzero
// value it receives means "my adjoint arrives transposed".
type TransposeMask uint8

const (
	TransposeNone  TransposeMask = 0
	TransposeLeft  TransposeMask = 1
	TransposeRight TransposeMask = 2
	TransposeBoth                = TransposeLeft | TransposeRight
)

// Propagation is the per-call traversal state. It is passed by value, so a
// rule can never leak a change into a sibling.
type Propagation struct {
	// Transpose set means the adjoint handed to the node is the transpose of
	// its true gradient.
	Transpose TransposeMask

	// Identity means the adjoint is the identity, which lets products
	// substitute the sibling instead of multiplying.
	Identity bool
}

func (p Propagation) transposed() bool { return p.Transpose != TransposeNone }

// inherit keeps the transpose flag for every child.
func (p Propagation) inherit() TransposeMask {
	if p.transposed() {
		return TransposeBoth
	}

	return TransposeNone
}

// left and right narrow the mask to one child.
func (p Propagation) left() Propagation {
	return Propagation{Transpose: p.Transpose & TransposeLeft, Identity: p.Identity}
}

func (p Propagation) right() Propagation {
	return Propagation{Transpose: p.Transpose & TransposeRight, Identity: p.Identity}
}
