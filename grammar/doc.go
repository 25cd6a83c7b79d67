// SPDX-License-Identifier: MIT

// Package grammar parses textual matrix expressions and lowers them onto amd
// expression trees.
//
// Grammar (whitespace is ignored):
//
//	expression = term { ("+" | "-") term }
//	term       = unary { ("*" | "/" | ".*") unary }
//	unary      = ("-" | "+") unary | postfix
//	postfix    = primary { "'" | "_" }
//	primary    = NAME | NUMBER | "(" expression ")" | FUNC "(" expression ")"
//	FUNC       = "tr" | "trace" | "logdet" | "inv" | "diag"
//
// NAME starts with an upper-case letter and continues with letters or
// digits. "'" is transpose and "_" is inverse. Postfix operators bind tighter
// than a leading sign, so -A' is -(A').
//
// Numbers are scalars: 2*X scales X, X/2 scales by 1/2 and A/B is A*inv(B).
// tr and logdet produce scalars, which may be combined arithmetically and used
// as scale factors: tr(A*X)*X + logdet(X)*B.
//
// Every parse failure wraps amd.ErrInvalidExpression and carries the byte
// offset of the offending token (see ParseError).
package grammar
