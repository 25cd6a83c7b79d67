// SPDX-License-Identifier: MIT

package amd

import (
	"io"
	"log/slog"
)

// Default option values.
const (
	// DefaultDerivativeTree leaves derivative trees off; only values are computed.
	DefaultDerivativeTree = false

	// DefaultShortcuts enables the logdet short-circuits and the identity
	// substitution in products.
	DefaultShortcuts = true

	// DefaultParallelDepth keeps the traversal sequential.
	DefaultParallelDepth = 0
)

// Options configures Trace and LogDet.
type Options struct {
	// DerivativeTree also builds the derivative as an expression tree.
	DerivativeTree bool

	// Shortcuts enables algebraic fast paths. Results are identical either way.
	Shortcuts bool

	// ParallelDepth is the number of tree levels whose two children are
	// traversed concurrently.
	ParallelDepth int

	// Logger receives Debug records; never nil after gatherOptions.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithDerivativeTree builds Scalar.Tree alongside Scalar.Derivative. The tree
// references the variable, so it can be differentiated again. Every
// non-constant scalar inside the expression must carry a Tree as well.
func WithDerivativeTree() Option {
	return func(o *Options) {
		o.DerivativeTree = true
	}
}

// WithoutShortcuts forces the direct traversal: no logdet short-circuits and
// no identity substitution.
func WithoutShortcuts() Option {
	return func(o *Options) {
		o.Shortcuts = false
	}
}

// WithParallel traverses both children of binary nodes concurrently for the
// top depth levels.
// Panics if depth < 0.
func WithParallel(depth int) Option {
	if depth < 0 {
		panic("amd: WithParallel(depth): depth must be >= 0")
	}

	return func(o *Options) {
		o.ParallelDepth = depth
	}
}

// WithLogger sets the Debug logger. A nil logger restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultOptions() Options {
	return Options{
		DerivativeTree: DefaultDerivativeTree,
		Shortcuts:      DefaultShortcuts,
		ParallelDepth:  DefaultParallelDepth,
	}
}

// gatherOptions applies opts over the defaults; later options win.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	o.Logger = o.Logger.With(slog.String("component", "amd"))

	return o
}
