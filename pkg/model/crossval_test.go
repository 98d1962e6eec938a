package model

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amyap6/Perceptrons/pkg/data"
)

// constClassifier always predicts the same class.
type constClassifier struct{ label int }

func (c constClassifier) Fit(context.Context, *data.Dataset) error { return nil }
func (c constClassifier) Predict([]float64) (int, error)           { return c.label, nil }

var errBoom = errors.New("boom")

type failingClassifier struct{}

func (failingClassifier) Fit(context.Context, *data.Dataset) error { return errBoom }
func (failingClassifier) Predict([]float64) (int, error)           { return 0, nil }

func TestCrossValidateCountsEveryInstanceOnce(t *testing.T) {
	ds := wideSeparableDataset(t)
	ev, err := CrossValidate(context.Background(), func() Classifier { return constClassifier{1} }, ds, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, ev.Folds)
	assert.Equal(t, ds.Len(), ev.Total)
	assert.Equal(t, 10, ev.Correct)
	assert.InDelta(t, 50.0, ev.PctCorrect(), 1e-9)
}

func TestCrossValidateLinear(t *testing.T) {
	ds := wideSeparableDataset(t)
	ev, err := CrossValidate(context.Background(), func() Classifier { return rawClassifier(8) }, ds, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ev.PctCorrect())
}

func TestCrossValidateInvalidFolds(t *testing.T) {
	ds := separableDataset(t)
	factory := func() Classifier { return constClassifier{0} }
	for _, k := range []int{0, 1, ds.Len() + 1} {
		_, err := CrossValidate(context.Background(), factory, ds, k, 1)
		assert.True(t, errors.Is(err, ErrInvalidFolds), "k=%d", k)
	}
}

func TestCrossValidatePropagatesFitError(t *testing.T) {
	_, err := CrossValidate(context.Background(), func() Classifier { return failingClassifier{} }, separableDataset(t), 3, 1)
	assert.True(t, errors.Is(err, errBoom))
}

func TestCrossValidateEmpty(t *testing.T) {
	_, err := CrossValidate(context.Background(), func() Classifier { return constClassifier{0} }, data.New(nil, nil), 2, 1)
	assert.True(t, errors.Is(err, data.ErrEmptyDataset))
}

func TestEvaluationPctCorrectEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Evaluation{}.PctCorrect())
}
