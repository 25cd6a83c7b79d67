// SPDX-License-Identifier: MIT

package amd

import "log/slog"

// adjoint is the gradient flowing into a node. Under WithDerivativeTree the
// tree is authoritative and value mirrors tree.value.
type adjoint[M, S any] struct {
	value M
	tree  *Node[M, S]
}

// engine evaluates adjoint arithmetic either directly on the backend or by
// building nodes, depending on Options.DerivativeTree.
type engine[M, S any] struct {
	a    Adaptor[M, S]
	opts Options
	log  *slog.Logger
}

func newEngine[M, S any](a Adaptor[M, S], opts Options) *engine[M, S] {
	return &engine[M, S]{a: a, opts: opts, log: opts.Logger}
}

func (e *engine[M, S]) trees() bool { return e.opts.DerivativeTree }

func (e *engine[M, S]) fromTree(t *Node[M, S], err error) (adjoint[M, S], error) {
	if err != nil {
		return adjoint[M, S]{}, err
	}

	return adjoint[M, S]{value: t.value, tree: t}, nil
}

// lift turns a node's forward value into an adjoint operand. In tree mode the
// whole subtree is referenced so the result remains differentiable.
func (e *engine[M, S]) lift(n *Node[M, S]) adjoint[M, S] {
	if e.trees() {
		return adjoint[M, S]{value: n.value, tree: n.Clone()}
	}

	return adjoint[M, S]{value: n.value}
}

func (e *engine[M, S]) identity(n int) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Identity(e.a, n))
	}
	v, err := e.a.Identity(n)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) add(x, y adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Add(x.tree, y.tree))
	}
	v, err := e.a.Add(x.value, y.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) mul(x, y adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Mul(x.tree, y.tree))
	}
	v, err := e.a.Mul(x.value, y.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) hadamard(x, y adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Hadamard(x.tree, y.tree))
	}
	v, err := e.a.Hadamard(x.value, y.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) neg(x adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Neg(x.tree))
	}
	v, err := e.a.Negate(x.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) transpose(x adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Transpose(x.tree))
	}
	v, err := e.a.Transpose(x.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) inverse(x adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Inverse(x.tree))
	}
	v, err := e.a.Inverse(x.value)

	return adjoint[M, S]{value: v}, err
}

func (e *engine[M, S]) diag(x adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(Diag(x.tree))
	}
	v, err := e.a.Diag(x.value)

	return adjoint[M, S]{value: v}, err
}

// scale returns s·x; in tree mode s enters the tree with its own derivative.
func (e *engine[M, S]) scale(s *Scalar[M, S], x adjoint[M, S]) (adjoint[M, S], error) {
	if e.trees() {
		return e.fromTree(ScaleLeft(s, x.tree))
	}
	v, err := e.a.Scale(s.Value, x.value)

	return adjoint[M, S]{value: v}, err
}

// accumulator sums the contributions that reach the variable. It is empty
// exactly while no contribution has arrived.
type accumulator[M, S any] struct {
	e     *engine[M, S]
	sum   adjoint[M, S]
	empty bool
}

func (e *engine[M, S]) newAccumulator() *accumulator[M, S] {
	return &accumulator[M, S]{e: e, empty: true}
}

// add assigns the first contribution (copied, so it never aliases a node
// value) and sums every later one.
func (acc *accumulator[M, S]) add(x adjoint[M, S]) error {
	if acc.empty {
		if !acc.e.trees() {
			x.value = acc.e.a.Copy(x.value)
		}
		acc.sum, acc.empty = x, false

		return nil
	}
	s, err := acc.e.add(acc.sum, x)
	if err != nil {
		return err
	}
	acc.sum = s

	return nil
}

// merge folds another accumulator into acc.
func (acc *accumulator[M, S]) merge(o *accumulator[M, S]) error {
	if o.empty {
		return nil
	}

	return acc.add(o.sum)
}
