// SPDX-License-Identifier: MIT

package amd

// Op tags the operation that produced a node.
type Op uint8

const (
	OpNone Op = iota
	OpConst
	OpVar
	OpPlus
	OpMinus
	OpNegation
	OpTimes
	OpScalarTimesMatrix
	OpMatrixTimesScalar
	OpElementwise
	OpTranspose
	OpInverse
	OpDiag
)

var opNames = [...]string{
	OpNone:              "none",
	OpConst:             "const",
	OpVar:               "var",
	OpPlus:              "plus",
	OpMinus:             "minus",
	OpNegation:          "negation",
	OpTimes:             "times",
	OpScalarTimesMatrix: "scalar_times_matrix",
	OpMatrixTimesScalar: "matrix_times_scalar",
	OpElementwise:       "elementwise",
	OpTranspose:         "transpose",
	OpInverse:           "inverse",
	OpDiag:              "diag",
}

// String returns the lower-case operator name.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}

	return "invalid"
}

// IsLeaf reports whether o tags a leaf.
func (o Op) IsLeaf() bool { return o == OpConst || o == OpVar }

// IsBinary reports whether o takes two matrix children.
func (o Op) IsBinary() bool {
	return o == OpPlus || o == OpMinus || o == OpTimes || o == OpElementwise
}

// IsScalarOp reports whether o takes a matrix child plus a scalar operand.
func (o Op) IsScalarOp() bool {
	return o == OpScalarTimesMatrix || o == OpMatrixTimesScalar
}

// IsUnary reports whether o takes exactly one matrix child.
func (o Op) IsUnary() bool {
	return o == OpNegation || o == OpTranspose || o == OpInverse || o == OpDiag
}
