package model

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amyap6/Perceptrons/pkg/optim"
)

func TestNumFolds(t *testing.T) {
	assert.Equal(t, 10, NumFolds(10))
	assert.Equal(t, 10, NumFolds(500))
	assert.Equal(t, 9, NumFolds(9))
	assert.Equal(t, 2, NumFolds(2))
}

func TestChooseAlgorithm(t *testing.T) {
	assert.Equal(t, optim.Online, chooseAlgorithm(80, 80))
	assert.Equal(t, optim.Online, chooseAlgorithm(90, 80))
	assert.Equal(t, optim.Batch, chooseAlgorithm(80, 80.5))
}

func TestModelSelectorDeterministic(t *testing.T) {
	ds := wideSeparableDataset(t)
	factory := func(a optim.Algorithm) Classifier {
		return rawClassifier(11, WithAlgorithm(a), WithMaxEpochs(100))
	}

	var buf bytes.Buffer
	sel := NewModelSelector(factory, zerolog.New(&buf).Level(zerolog.DebugLevel))
	first, err := sel.Select(context.Background(), ds)
	require.NoError(t, err)
	second, err := sel.Select(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, first.Folds)
	assert.Contains(t, buf.String(), "online")
}

func TestModelSelectorTooFewInstances(t *testing.T) {
	ds := mustDataset(t, [][]float64{{1, 1}}, []int{1})
	sel := NewModelSelector(func(a optim.Algorithm) Classifier {
		return rawClassifier(1, WithAlgorithm(a))
	}, zerolog.Nop())
	_, err := sel.Select(context.Background(), ds)
	assert.True(t, errors.Is(err, ErrInvalidFolds))
}

func TestModelSelectorLeaveOneOut(t *testing.T) {
	ds := separableDataset(t)
	sel := NewModelSelector(func(a optim.Algorithm) Classifier {
		return rawClassifier(2, WithAlgorithm(a))
	}, zerolog.Nop())
	report, err := sel.Select(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), report.Folds)
	assert.Equal(t, 100.0, report.OnlineAccuracy)
	assert.Equal(t, optim.Online, report.Chosen)
}
