// SPDX-License-Identifier: MIT

package symbolic

// RemoveParenthesis strips one pair of enclosing parentheses when they wrap
// the whole string: "(A+B)" becomes "A+B", while "(A)+(B)" is left intact
// because its first '(' closes before the end.
func RemoveParenthesis(s string) string {
	if !wrapped(s) {
		return s
	}

	return s[1 : len(s)-1]
}

// wrapped reports whether s starts with '(' whose matching ')' is the last byte.
func wrapped(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}

	return depth == 0
}

// callArg returns the argument of fn(...) when s is exactly one call of fn.
func callArg(s, fn string) (string, bool) {
	if len(s) <= len(fn) || s[:len(fn)] != fn {
		return "", false
	}
	rest := s[len(fn):]
	if !wrapped(rest) {
		return "", false
	}

	return rest[1 : len(rest)-1], true
}

// negated returns x when s is "(-x)".
func negated(s string) (string, bool) {
	if len(s) < 4 || s[1] != '-' || !wrapped(s) {
		return "", false
	}

	return s[2 : len(s)-1], true
}
