// SPDX-License-Identifier: MIT

package grammar

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// Expr is a parsed expression.
type Expr interface {
	// Pos is the byte offset where the expression starts.
	Pos() int
	// String renders the expression fully parenthesised.
	String() string
}

// Name references a matrix from the environment.
type Name struct {
	Ident  string
	Offset int
}

// Number is a scalar literal.
type Number struct {
	Value  float64
	Offset int
}

// Unary is a prefix sign ('-') or a postfix transpose ('\'') or inverse ('_').
type Unary struct {
	Op     byte
	X      Expr
	Offset int
}

// Binary is one of + - * / .*
type Binary struct {
	Op     string
	L, R   Expr
	Offset int
}

// Call applies tr, trace, logdet, inv or diag.
type Call struct {
	Fn     string
	Arg    Expr
	Offset int
}

func (e *Name) Pos() int   { return e.Offset }
func (e *Number) Pos() int { return e.Offset }
func (e *Unary) Pos() int  { return e.Offset }
func (e *Binary) Pos() int { return e.Offset }
func (e *Call) Pos() int   { return e.Offset }

func (e *Name) String() string { return e.Ident }

func (e *Number) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

func (e *Unary) String() string {
	if e.Op == '-' {
		return "(-" + e.X.String() + ")"
	}

	return e.X.String() + string(e.Op)
}

func (e *Binary) String() string { return "(" + e.L.String() + e.Op + e.R.String() + ")" }

func (e *Call) String() string { return e.Fn + "(" + e.Arg.String() + ")" }

// Names returns the distinct matrix names referenced by e, sorted.
func Names(e Expr) []string {
	var out []string
	walk(e, func(x Expr) {
		if n, ok := x.(*Name); ok {
			out = append(out, n.Ident)
		}
	})
	out = lo.Uniq(out)
	sort.Strings(out)

	return out
}

// walk visits e and its sub-expressions in pre-order.
func walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch x := e.(type) {
	case *Unary:
		walk(x.X, visit)
	case *Binary:
		walk(x.L, visit)
		walk(x.R, visit)
	case *Call:
		walk(x.Arg, visit)
	}
}
