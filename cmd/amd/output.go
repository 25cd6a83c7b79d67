// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// result is what every subcommand prints. Empty fields are omitted.
type result struct {
	Expression string
	Variable   string
	Value      string
	Derivative string
	Tree       string
	Gradient   [][]float64
	MaxError   *float64
}

func (r result) fields() map[string]any {
	m := map[string]any{
		"expression": r.Expression,
		"variable":   r.Variable,
		"value":      r.Value,
	}
	if r.Derivative != "" {
		m["derivative"] = r.Derivative
	}
	if r.Tree != "" {
		m["tree"] = r.Tree
	}
	if r.Gradient != nil {
		grad := make([]any, len(r.Gradient))
		for i, row := range r.Gradient {
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			grad[i] = cells
		}
		m["gradient"] = grad
	}
	if r.MaxError != nil {
		m["max_error"] = *r.MaxError
	}

	return m
}

func write(w io.Writer, asJSON bool, r result) error {
	if asJSON {
		s, err := structpb.NewStruct(r.fields())
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))

		return err
	}

	fmt.Fprintf(w, "expression: %s\n", r.Expression)
	fmt.Fprintf(w, "value:      %s\n", r.Value)
	if r.Derivative != "" {
		fmt.Fprintf(w, "d/d%s:      %s\n", r.Variable, r.Derivative)
	}
	if r.Tree != "" {
		fmt.Fprintf(w, "tree:       %s\n", r.Tree)
	}
	if r.Gradient != nil {
		fmt.Fprintf(w, "d/d%s:\n", r.Variable)
		for _, row := range r.Gradient {
			fmt.Fprintf(w, "  %v\n", row)
		}
	}
	if r.MaxError != nil {
		fmt.Fprintf(w, "max error:  %.3g\n", *r.MaxError)
	}

	return nil
}
