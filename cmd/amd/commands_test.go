// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/amd/adaptor"
	"github.com/katalvlaran/amd/amd"
	"github.com/katalvlaran/amd/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func decode(t *testing.T, out string) *structpb.Struct {
	t.Helper()
	s := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal([]byte(out), s))

	return s
}

func TestDeriveText(t *testing.T) {
	out, err := run(t, "derive", "--wrt", "X", "tr(A*X)")
	require.NoError(t, err)
	assert.Contains(t, out, "d/dX:      A'")
	assert.Contains(t, out, "value:      trace(A*X)")
}

func TestDeriveJSON(t *testing.T) {
	out, err := run(t, "--json", "derive", "logdet(X)")
	require.NoError(t, err)
	s := decode(t, out)
	assert.Equal(t, "inv(X)'", s.Fields["derivative"].GetStringValue())
	assert.Equal(t, "X", s.Fields["variable"].GetStringValue())
}

func TestDeriveTree(t *testing.T) {
	out, err := run(t, "--json", "derive", "--tree", "tr(X*Y)")
	require.NoError(t, err)
	s := decode(t, out)
	assert.Equal(t, "Y'", s.Fields["derivative"].GetStringValue())
	assert.Contains(t, s.Fields["tree"].GetStringValue(), "transpose(Y)")
}

func TestDerivePerMatrixShape(t *testing.T) {
	_, err := run(t, "derive", "--dims", "3x3", "--dim", "R=2x3", "tr(X*R)")
	require.ErrorIs(t, err, amd.ErrDimensionMismatch)

	out, err := run(t, "derive", "--dims", "3x3", "--dim", "R=3x2", "--dim", "X=2x3", "tr(X*R)")
	require.NoError(t, err)
	assert.Contains(t, out, "R'")
}

func TestDeriveRejectsMatrixResult(t *testing.T) {
	_, err := run(t, "derive", "A*X")
	require.ErrorIs(t, err, amd.ErrInvalidExpression)
}

func TestEvalJSON(t *testing.T) {
	out, err := run(t, "--json", "eval", "--n", "2", "--seed", "7", "tr(X)")
	require.NoError(t, err)
	s := decode(t, out)
	grad := s.Fields["gradient"].GetListValue().GetValues()
	require.Len(t, grad, 2)
	first := grad[0].GetListValue().GetValues()
	second := grad[1].GetListValue().GetValues()
	assert.InDelta(t, 1.0, first[0].GetNumberValue(), 1e-12)
	assert.InDelta(t, 0.0, first[1].GetNumberValue(), 1e-12)
	assert.InDelta(t, 1.0, second[1].GetNumberValue(), 1e-12)
}

func TestEvalParallelMatchesSequential(t *testing.T) {
	gradient := func(args ...string) []*structpb.Value {
		out, err := run(t, append([]string{"--json", "eval", "--seed", "3"}, args...)...)
		require.NoError(t, err)

		return decode(t, out).Fields["gradient"].GetListValue().GetValues()
	}
	seq := gradient("tr(A*X*B) + logdet(X)")
	par := gradient("--parallel", "4", "tr(A*X*B) + logdet(X)")
	require.Len(t, par, len(seq))
	for i := range seq {
		want := seq[i].GetListValue().GetValues()
		got := par[i].GetListValue().GetValues()
		for j := range want {
			assert.InDelta(t, want[j].GetNumberValue(), got[j].GetNumberValue(), 1e-12)
		}
	}
}

func TestCheckPasses(t *testing.T) {
	for _, src := range []string{
		"tr(A*X)",
		"logdet(X)",
		"tr(inv(A*X+B))",
		"tr(X.*A) * logdet(X)",
	} {
		t.Run(src, func(t *testing.T) {
			out, err := run(t, "--json", "check", "--n", "3", "--seed", "11", src)
			require.NoError(t, err)
			s := decode(t, out)
			assert.Less(t, s.Fields["max_error"].GetNumberValue(), 1e-5)
		})
	}
}

func TestCheckFailsOnTightTolerance(t *testing.T) {
	_, err := run(t, "check", "--step", "0.5", "--tol", "1e-12", "tr(X*X*X)")
	require.Error(t, err)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "derive", "tr(X)")
	require.Error(t, err)

	_, err = run(t, "--log-level", "loud", "derive", "tr(X)")
	require.Error(t, err)

	_, err = run(t, "derive", "--dims", "3by3", "tr(X)")
	require.Error(t, err)
}

func TestParseDims(t *testing.T) {
	r, c, err := parseDims("2X5")
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 5}, [2]int{r, c})

	for _, bad := range []string{"", "3", "ax3", "0x2", "2x-1"} {
		_, _, err := parseDims(bad)
		assert.Errorf(t, err, "shape %q", bad)
	}
}

// brokenCell fails every read of cell (1,1).
type brokenCell struct{ *matrix.Dense }

func (b brokenCell) At(i, j int) (float64, error) {
	if i == 1 && j == 1 {
		return 0, matrix.ErrOutOfRange
	}

	return b.Dense.At(i, j)
}

func (b brokenCell) Clone() matrix.Matrix {
	return brokenCell{b.Dense.Clone().(*matrix.Dense)}
}

func TestReadErrorsPropagate(t *testing.T) {
	d, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	bad := brokenCell{d}

	_, err = rows(bad)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = maxAbsDiff(d, bad)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = maxAbsDiff(bad, d)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	env := denseEnv{
		Adaptor:  adaptor.NewDense(),
		Matrices: map[string]matrix.Matrix{"X": bad},
		Variable: "X",
	}
	_, err = finiteDifferences(env, "tr(X)", 1e-6)
	require.Error(t, err)

	got, err := rows(d)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, got)
}
