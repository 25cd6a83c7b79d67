package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/amd/matrix"
)

// ExampleInverse inverts a diagonal matrix and prints its log-determinant.
func ExampleInverse() {
	a, _ := matrix.NewDenseFrom([][]float64{{2, 0}, {0, 4}})
	inv, _ := matrix.Inverse(a)
	fmt.Print(inv)

	ld, _ := matrix.LogDet(a)
	fmt.Printf("logdet=%.4f\n", ld)

	// Output:
	// [0.5, 0]
	// [0, 0.25]
	// logdet=2.0794
}
