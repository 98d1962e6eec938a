package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amyap6/Perceptrons/pkg/config"
	"github.com/amyap6/Perceptrons/pkg/model"
	"github.com/amyap6/Perceptrons/pkg/optim"
	"github.com/amyap6/Perceptrons/pkg/stats"
)

func TestCandidate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	single, err := candidate(cfg, kindSingle, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &model.LinearClassifier{}, single.New())

	ens, err := candidate(cfg, kindEnsemble, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &model.BaggedEnsemble{}, ens.New())

	_, err = candidate(cfg, "forest", zerolog.Nop())
	assert.Error(t, err)
}

func TestFoldFactoryCentersDegenerateColumns(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	clf, ok := foldFactory(cfg)(optim.Batch).(*model.LinearClassifier)
	require.True(t, ok)
	assert.Equal(t, stats.CenterDegenerate, clf.Degenerate)
	assert.Equal(t, optim.Batch, clf.Algorithm)
	assert.False(t, clf.ModelSelection)
}

func TestBenchmarkNeedsMatchingFiles(t *testing.T) {
	cmd := benchmarkCMD()
	cmd.SetArgs([]string{"--train", "a.csv,b.csv", "--test", "a_test.csv"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matching --train and --test")
}
