// SPDX-License-Identifier: MIT

// Command amd differentiates trace and logdet matrix expressions.
//
//	amd derive --wrt X --dims 3x3 'tr(A*X)'          # closed form: A'
//	amd eval   --wrt X --n 3 --seed 7 'logdet(X)'    # value and gradient
//	amd check  --wrt X --n 3 'tr(inv(A*X))'          # gradient vs finite differences
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
