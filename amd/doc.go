// SPDX-License-Identifier: MIT

// Package amd computes derivatives of trace(f(X)) and logdet(f(X)) with respect
// to a matrix variable X by reverse-mode propagation over an expression tree.
//
// An expression is built bottom-up from leaves (NewConst, NewVar, Identity,
// Zeros) and operators (Add, Sub, Neg, Mul, Hadamard, Transpose, Inverse, Diag,
// ScaleLeft, ScaleRight). Each node computes its forward value when it is
// built, through an Adaptor that supplies the actual matrix arithmetic. The
// same tree therefore works over a dense numeric backend or over a symbolic
// backend whose values are MATLAB expressions.
//
// Trace and LogDet seed an adjoint at the root (I, or N⁻¹ handed down
// transposed) and push it to the leaves, one rule per operator:
//
//	op            left adjoint                  right adjoint
//	plus          current                       current
//	minus         current                       -current
//	negation      -current
//	transpose     current, transpose toggled
//	times         current·Rᵀ                    Lᵀ·current
//	elementwise   current∘R                     current∘L
//	s·M, M·s      s·current  (and ⟨G,M⟩·ds/dX into the result)
//	inverse       -(N·currentᵀ·N), transposed
//	diag          diag(current)
//
// To save products the adjoint may travel transposed, and while it is still
// the identity a product substitutes the sibling instead of multiplying by I.
// Both tricks are switched off by WithoutShortcuts.
//
// Options:
//
//   - WithDerivativeTree builds the derivative as a Node as well, so it can be
//     printed, simplified (Simplify) or differentiated again.
//   - WithParallel(depth) traverses both children of the top depth levels
//     concurrently with errgroup; results equal the sequential ones.
//   - WithLogger attaches a *slog.Logger for Debug records.
//
// Errors (sentinel, classified by KindOf):
//
//   - ErrDimensionMismatch, ErrNonSquare for shape violations, reported at
//     construction time whenever possible.
//   - ErrNullReference, ErrInvalidOperation, ErrInternalNode for malformed trees.
//   - ErrInvalidExpression for front-end parse failures.
//   - ErrBackend for backend failures such as a singular inverse.
//
// Trail(err) lists the operators the failure propagated through.
//
// Example:
//
//	a := adaptor.NewDense()
//	x, _ := amd.NewVar(a, xv)
//	c, _ := amd.NewConst(a, cv)
//	cx, _ := amd.Mul(c, x)
//	s, _ := amd.Trace(cx)
//	// s.Derivative == cvᵀ
package amd
