package model

import (
	"context"

	"github.com/amyap6/Perceptrons/pkg/data"
)

// Classifier is a binary classifier over continuous feature vectors.
type Classifier interface {
	Fit(ctx context.Context, ds *data.Dataset) error
	Predict(x []float64) (int, error)
}

// BatchClassifier additionally predicts many rows at once.
type BatchClassifier interface {
	Classifier
	PredictBatch(X [][]float64) ([]int, error)
}

// Factory returns an untrained classifier. Each call must return an
// independent instance so that cross-validation folds can train in parallel.
type Factory func() Classifier
