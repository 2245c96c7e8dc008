package main

import (
	"bytes"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/playground"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Equal(t, "backprop "+version+"\n", out.String())
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "Commands:")

	out.Reset()
	err := run([]string{"spirals"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spirals")
}

func TestRunXOR(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"xor", "-epochs", "200", "-log-every", "50", "-grid"}, &out))

	text := out.String()
	assert.Contains(t, text, "Experiment: xor")
	assert.Contains(t, text, "[2 8 1]")
	assert.Contains(t, text, "tanh hidden, sigmoid output")
	assert.Contains(t, text, "Epoch  200")
	assert.Contains(t, text, "Accuracy:   100.00%")
	assert.Equal(t, 5, strings.Count(text, "Epoch "), "initial plus every 50 epochs")

	rows := 0
	for _, line := range strings.Split(text, "\n") {
		if len(line) == gridCols && strings.Trim(line, ".#") == "" {
			rows++
		}
	}
	assert.Equal(t, gridRows, rows)
}

func TestRunRegression(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"regression", "-log-every", "0", "-grid"}, &out))

	text := out.String()
	assert.Contains(t, text, "Fit:        y = 1.8")
	assert.Contains(t, text, "f(-1.00)")
	assert.NotContains(t, text, "Accuracy")
	assert.Equal(t, 1, strings.Count(text, "Epoch "))
}

func TestRunFlags(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"moons", "-hidden", "4", "-activation", "relu", "-epochs", "2", "-seed", "3"}, &out))
	text := out.String()
	assert.Contains(t, text, "[2 4 1]")
	assert.Contains(t, text, "relu hidden")
	assert.Contains(t, text, "seed=3")

	out.Reset()
	err := run([]string{"xor", "-activation", "softmax"}, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nn.ErrUnknownActivation) || strings.Contains(err.Error(), "softmax"))

	out.Reset()
	err = run([]string{"xor", "-h"}, &out)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, out.String(), "-log-every")

	err = run([]string{"xor", "extra"}, &out)
	assert.Error(t, err)
}

func TestRenderGrid(t *testing.T) {
	g := playground.Grid{Cols: 3, Rows: 2, Values: []float64{0, 0.5, 1, 0.49, 0.7, 0.1}}
	assert.Equal(t, ".##\n.#.\n", renderGrid(g))
}

func TestRunSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.bprp")

	var out bytes.Buffer
	require.NoError(t, run([]string{"xor", "-epochs", "100", "-log-every", "0", "-save", path}, &out))
	assert.Contains(t, out.String(), "Saved checkpoint to "+path+" (epoch 100)")

	out.Reset()
	require.NoError(t, run([]string{"xor", "-epochs", "100", "-log-every", "100", "-load", path}, &out))
	text := out.String()
	assert.Contains(t, text, "Resumed:    "+path+" at epoch 100")
	assert.Contains(t, text, "Epoch  100")
	assert.Contains(t, text, "Epoch  200")

	// Resuming 100 + 100 matches a straight 200 epoch run.
	var whole bytes.Buffer
	require.NoError(t, run([]string{"xor", "-epochs", "200", "-log-every", "0"}, &whole))
	final := func(s string) string {
		_, after, _ := strings.Cut(s, "Final loss: ")
		line, _, _ := strings.Cut(after, "\n")
		return line
	}
	assert.Equal(t, final(whole.String()), final(text))

	out.Reset()
	err := run([]string{"xor", "-hidden", "4", "-load", path}, &out)
	assert.True(t, errors.Is(err, playground.ErrInvalidExperiment))

	err = run([]string{"xor", "-load", filepath.Join(t.TempDir(), "none.bprp")}, &out)
	assert.Error(t, err)
}
