// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/grammar"
	"github.com/katalvlaran/amd/matrix"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type evalFlags struct {
	wrt      string
	n        int
	seed     int64
	parallel int
	step     float64
	tol      float64
}

type denseEnv = grammar.Env[matrix.Matrix, float64]

func (f *evalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.wrt, "wrt", "X", "variable to differentiate with respect to")
	cmd.Flags().IntVar(&f.n, "n", 3, "size of every (square) input matrix")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "seed of the random positive definite inputs")
	cmd.Flags().IntVar(&f.parallel, "parallel", amd.DefaultParallelDepth, "depth down to which sibling subtrees run concurrently")
}

func newEvalCmd(g *globals) *cobra.Command {
	f := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate a scalar expression and its gradient on random positive definite inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, s, err := evaluate(g, f, args[0])
			if err != nil {
				return err
			}

			grad, err := rows(s.Derivative)
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), g.json, result{
				Expression: args[0],
				Variable:   f.wrt,
				Value:      env.Adaptor.ScalarString(s.Value),
				Gradient:   grad,
			})
		},
	}
	f.register(cmd)

	return cmd
}

func newCheckCmd(g *globals) *cobra.Command {
	f := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "check EXPR",
		Short: "Compare the gradient against central finite differences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, s, err := evaluate(g, f, args[0])
			if err != nil {
				return err
			}
			fd, err := finiteDifferences(env, args[0], f.step)
			if err != nil {
				return err
			}
			grad := s.Derivative
			if grad.Rows() == 0 {
				// constant expression: the empty derivative stands for zeros
				if grad, err = matrix.ZerosLike(fd); err != nil {
					return err
				}
			}
			maxErr, err := maxAbsDiff(grad, fd)
			if err != nil {
				return err
			}
			g.logger.Info("check", slog.String("expr", args[0]), slog.Float64("max_error", maxErr))

			out, err := rows(s.Derivative)
			if err != nil {
				return err
			}
			res := result{
				Expression: args[0],
				Variable:   f.wrt,
				Value:      env.Adaptor.ScalarString(s.Value),
				Gradient:   out,
				MaxError:   &maxErr,
			}
			if err := write(cmd.OutOrStdout(), g.json, res); err != nil {
				return err
			}
			if maxErr > f.tol || math.IsNaN(maxErr) {
				return fmt.Errorf("check: max error %g exceeds tolerance %g", maxErr, f.tol)
			}

			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&f.step, "step", 1e-6, "finite difference step")
	cmd.Flags().Float64Var(&f.tol, "tol", 1e-5, "maximum accepted absolute error")

	return cmd
}

// evaluate builds one random positive definite input per matrix name and
// differentiates src with respect to f.wrt.
func evaluate(g *globals, f *evalFlags, src string) (denseEnv, *amd.Scalar[matrix.Matrix, float64], error) {
	if f.parallel < 0 {
		return denseEnv{}, nil, fmt.Errorf("--parallel: depth must be >= 0, got %d", f.parallel)
	}
	e, err := grammar.Parse(src)
	if err != nil {
		return denseEnv{}, nil, err
	}
	names := lo.Uniq(append(grammar.Names(e), f.wrt))
	inputs := make(map[string]matrix.Matrix, len(names))
	for i, name := range names {
		m, err := matrix.RandomPSD(f.n, f.seed+int64(i))
		if err != nil {
			return denseEnv{}, nil, err
		}
		inputs[name] = m
	}
	env := denseEnv{Adaptor: adaptor.NewDense(), Matrices: inputs, Variable: f.wrt}
	g.logger.Debug("eval", slog.String("expr", e.String()), slog.Any("inputs", names), slog.Int("n", f.n))

	s, err := grammar.Differentiate(src, env, amd.WithParallel(f.parallel), amd.WithLogger(g.logger))
	if err != nil {
		return denseEnv{}, nil, err
	}

	return env, s, nil
}

// finiteDifferences returns the central-difference gradient of src at env.
func finiteDifferences(env denseEnv, src string, h float64) (matrix.Matrix, error) {
	x := env.Matrices[env.Variable]
	out, err := matrix.ZerosLike(x)
	if err != nil {
		return nil, err
	}
	at := func(i, j int, delta float64) (float64, error) {
		moved := x.Clone()
		v, err := moved.At(i, j)
		if err != nil {
			return 0, err
		}
		if err := moved.Set(i, j, v+delta); err != nil {
			return 0, err
		}
		shifted := denseEnv{
			Adaptor:  env.Adaptor,
			Matrices: lo.Assign(env.Matrices, map[string]matrix.Matrix{env.Variable: moved}),
			Variable: env.Variable,
		}
		s, err := grammar.Differentiate(src, shifted)
		if err != nil {
			return 0, err
		}

		return s.Value, nil
	}
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			plus, err := at(i, j, h)
			if err != nil {
				return nil, err
			}
			minus, err := at(i, j, -h)
			if err != nil {
				return nil, err
			}
			if err := out.Set(i, j, (plus-minus)/(2*h)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func maxAbsDiff(a, b matrix.Matrix) (float64, error) {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return 0, fmt.Errorf("%w: gradient %dx%d vs finite differences %dx%d",
			amd.ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	diffs := make([]float64, 0, a.Rows()*a.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			x, err := a.At(i, j)
			if err != nil {
				return 0, err
			}
			y, err := b.At(i, j)
			if err != nil {
				return 0, err
			}
			diffs = append(diffs, math.Abs(x-y))
		}
	}

	return lo.Max(diffs), nil
}

// rows copies m into a [][]float64.
func rows(m matrix.Matrix) ([][]float64, error) {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}
