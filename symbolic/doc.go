// SPDX-License-Identifier: MIT

// Package symbolic provides string-valued "matrices" and "scalars" whose
// arithmetic builds MATLAB-compatible expressions instead of numbers.
//
// Plugged into the differentiation engine through adaptor.Symbolic, it turns
// the reverse pass into a closed-form derivative printer:
//
//	trace(X*Y)  ->  Y'
//	trace(Y-X)  ->  -eye(3)
//	logdet(X)   ->  inv(X)'
//
// Shapes are tracked so dimension errors surface exactly as they would
// numerically. Identity (eye(n)) and zero (zeros(m,n)) operands are
// recognised and folded away, which keeps printed derivatives short.
package symbolic
