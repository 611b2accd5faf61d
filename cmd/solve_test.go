package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomathieu/mathieu"
)

func TestRunSolve(t *testing.T) {
	var (
		dir    = t.TempDir()
		input  = filepath.Join(dir, "input.yaml")
		output = filepath.Join(dir, "out.yaml")
	)
	require.NoError(t, os.WriteFile(input, []byte(`
Title: Test Case
Class: ce2n
TruncationOrder: 10
QList: [[0, 0], [1, 0], [0, 1.5]]
GridPoints: 5
Harmonics: [0]
`), 0644))
	{ // YAML output with coefficients and functions
		sr := &SolveRun{ICFile: input, OutFile: output, Coefficients: true}
		require.NoError(t, RunSolve(sr))
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		var so SolveOutput
		require.NoError(t, yaml.Unmarshal(data, &so))
		assert.Equal(t, "Test Case", so.Title)
		assert.Equal(t, "ce2n", so.Class)
		assert.Equal(t, "classical", so.Normalization)
		require.Len(t, so.Samples, 3)
		assert.Equal(t, [2]float64{1, 0}, so.Samples[1].Q)
		assert.Equal(t, "symmetric", so.Samples[1].Method)
		assert.Equal(t, "realized", so.Samples[2].Method)
		assert.Len(t, so.Samples[0].Values, 5)
		assert.InDelta(t, -0.45513860, so.Samples[1].Values[0][0], 1.e-7)
		assert.Len(t, so.Samples[0].Coefficients, 5)
		assert.Len(t, so.Samples[0].Functions, 1)
		assert.Len(t, so.Samples[0].Functions[0], 5)
		assert.Len(t, so.Grid, 5)
	}
	{ // Missing input file is an error
		assert.Error(t, RunSolve(&SolveRun{}))
		assert.Error(t, RunSolve(&SolveRun{ICFile: filepath.Join(dir, "missing.yaml")}))
	}
}

func TestSolveOutput(t *testing.T) {
	sv, err := mathieu.NewSolver(mathieu.DefaultConfig(mathieu.EvenPi, 6))
	require.NoError(t, err)
	sp, err := sv.Solve([]complex128{0.5, 2i})
	require.NoError(t, err)
	sp.Samples[0].Err = mathieu.ErrNoConvergence
	{ // Failed samples keep only their error
		so := NewSolveOutput("", sp, nil, false)
		assert.Equal(t, mathieu.ErrNoConvergence.Error(), so.Samples[0].Error)
		assert.Empty(t, so.Samples[0].Values)
		assert.Len(t, so.Samples[1].Values, 3)
		assert.Empty(t, so.Samples[1].Coefficients)
		_, err = yaml.Marshal(so)
		assert.NoError(t, err)
	}
	{ // CSV has a header and one row per sample
		var buf bytes.Buffer
		require.NoError(t, writeValuesCSV(&buf, sp))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"re_q", "im_q", "status", "re_a0", "im_a0", "re_a2", "im_a2", "re_a4", "im_a4"}, rows[0])
		assert.Equal(t, "failed", rows[1][2])
		assert.Equal(t, "2", rows[2][1])
	}
}
