// SPDX-License-Identifier: MIT

// Package amd is the root of a reverse-mode matrix differentiation toolkit.
//
// Given an expression tree f(X) built from matrix operations, it computes the
// value and the gradient of trace(f(X)) and logdet(f(X)) with respect to X,
// either numerically or as a closed-form symbolic expression.
//
// Subpackages:
//
//	amd/      expression nodes, the reverse-mode engine, scalar functions,
//	          derivative trees and the tree simplifier
//	matrix/   dense float64 backend (row-major *Dense, LU, Inverse, LogDet)
//	symbolic/ string-valued matrices that print MATLAB-style formulas
//	adaptor/  binds matrix and symbolic to the engine's Adaptor interface
//	grammar/  parser and compiler for textual expressions like "tr(A*X)"
//	cmd/amd/  command-line front end (derive, eval, check)
//
// Quick start:
//
//	a := adaptor.NewSymbolic()
//	x, _ := symbolic.New("X", 3, 3)
//	xn, _ := amd.NewVar(a, x)
//	s, _ := amd.LogDet(xn)
//	fmt.Println(s.Derivative) // inv(X)'
package amd
