// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
//
// Notes:
//   - validateNaNInf controls whether Set/Apply reject NaN and ±Inf.
//   - DefaultRTol and DefaultATol are the AllClose tolerances shared by the
//     tests of every package that compares dense results.
package matrix

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set and Apply.
	DefaultValidateNaNInf = true

	// DefaultRTol is the relative tolerance used by callers of AllClose that have
	// no better estimate of their numeric noise.
	DefaultRTol = 1e-9

	// DefaultATol is the absolute tolerance paired with DefaultRTol.
	DefaultATol = 1e-9
)
