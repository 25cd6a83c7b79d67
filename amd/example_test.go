package amd_test

import (
	"fmt"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/katalvlaran/amd/symbolic"
)

// ExampleTrace differentiates trace(A·X) numerically; the result is Aᵀ.
func ExampleTrace() {
	a := adaptor.NewDense()
	av, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	xv, _ := matrix.NewIdentity(2)

	c, _ := amd.NewConst(a, matrix.Matrix(av))
	x, _ := amd.NewVar(a, matrix.Matrix(xv))
	cx, _ := amd.Mul(c, x)
	s, _ := amd.Trace(cx)

	fmt.Println("value:", s.Value)
	fmt.Print(s.Derivative)
	// Output:
	// value: 5
	// [1, 3]
	// [2, 4]
}

// ExampleLogDet prints the closed form of d logdet(X) / dX.
func ExampleLogDet() {
	a := adaptor.NewSymbolic()
	xv, _ := symbolic.New("X", 3, 3)
	x, _ := amd.NewVar(a, xv)
	s, _ := amd.LogDet(x)

	fmt.Println(s.Value)
	fmt.Println(s.Derivative)
	// Output:
	// log(det(X))
	// inv(X)'
}
