// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/grammar"
	"github.com/katalvlaran/amd/symbolic"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type deriveFlags struct {
	wrt      string
	dims     string
	override map[string]string
	tree     bool
}

func newDeriveCmd(g *globals) *cobra.Command {
	f := &deriveFlags{}
	cmd := &cobra.Command{
		Use:   "derive EXPR",
		Short: "Print the closed-form derivative of a scalar matrix expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, g, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.wrt, "wrt", "X", "variable to differentiate with respect to")
	cmd.Flags().StringVar(&f.dims, "dims", "3x3", "default shape of every matrix, RxC")
	cmd.Flags().StringToStringVar(&f.override, "dim", nil, "per-matrix shape, e.g. --dim A=2x3")
	cmd.Flags().BoolVar(&f.tree, "tree", false, "also print the simplified derivative tree")

	return cmd
}

func runDerive(cmd *cobra.Command, g *globals, f *deriveFlags, src string) error {
	e, err := grammar.Parse(src)
	if err != nil {
		return err
	}
	r, c, err := parseDims(f.dims)
	if err != nil {
		return err
	}
	env := grammar.Env[symbolic.Matrix, symbolic.Scalar]{
		Adaptor:  adaptor.NewSymbolic(),
		Matrices: map[string]symbolic.Matrix{},
		Variable: f.wrt,
	}
	for _, name := range lo.Uniq(append(grammar.Names(e), f.wrt)) {
		mr, mc := r, c
		if shape, ok := f.override[name]; ok {
			if mr, mc, err = parseDims(shape); err != nil {
				return fmt.Errorf("--dim %s: %w", name, err)
			}
		}
		m, err := symbolic.New(name, mr, mc)
		if err != nil {
			return err
		}
		env.Matrices[name] = m
	}
	g.logger.Debug("derive", slog.String("expr", e.String()), slog.String("wrt", f.wrt))

	opts := []amd.Option{amd.WithLogger(g.logger)}
	if f.tree {
		opts = append(opts, amd.WithDerivativeTree())
	}
	v, err := grammar.Compile(e, env, opts...)
	if err != nil {
		return err
	}
	if !v.IsScalar() {
		return fmt.Errorf("%w: %q is a matrix; wrap it in tr() or logdet()", amd.ErrInvalidExpression, src)
	}
	res := result{
		Expression: e.String(),
		Variable:   f.wrt,
		Value:      v.Scalar.Value.String(),
		Derivative: v.Scalar.Derivative.String(),
	}
	if f.tree && v.Scalar.Tree != nil {
		simple, err := amd.Simplify(v.Scalar.Tree)
		if err != nil {
			return err
		}
		res.Tree = simple.String()
	}

	return write(cmd.OutOrStdout(), g.json, res)
}

// parseDims reads "RxC".
func parseDims(s string) (rows, cols int, err error) {
	rs, cs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("shape %q: want RxC", s)
	}
	if rows, err = strconv.Atoi(rs); err != nil {
		return 0, 0, fmt.Errorf("shape %q: %w", s, err)
	}
	if cols, err = strconv.Atoi(cs); err != nil {
		return 0, 0, fmt.Errorf("shape %q: %w", s, err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("shape %q: sizes must be positive", s)
	}

	return rows, cols, nil
}
