package model

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/optim"
)

// DefaultSelectionSeed fixes the fold assignment used to compare algorithms.
const DefaultSelectionSeed = 1

// SelectionReport records the cross-validated accuracy of both algorithms.
type SelectionReport struct {
	Folds          int
	OnlineAccuracy float64 // percent correct
	BatchAccuracy  float64 // percent correct
	Chosen         optim.Algorithm
}

// ModelSelector decides between online and batch training by k-fold
// cross-validation on identical folds.
type ModelSelector struct {
	Seed    int64
	Factory func(optim.Algorithm) Classifier

	logger *zerolog.Logger
}

func NewModelSelector(factory func(optim.Algorithm) Classifier, logger zerolog.Logger) *ModelSelector {
	return &ModelSelector{Seed: DefaultSelectionSeed, Factory: factory, logger: &logger}
}

var nop = zerolog.Nop()

func logOrNop(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		return &nop
	}
	return l
}

// NumFolds is 10, or leave-one-out below ten instances.
func NumFolds(n int) int {
	if n >= 10 {
		return 10
	}
	return n
}

// chooseAlgorithm prefers Online unless Batch is strictly better.
func chooseAlgorithm(online, batch float64) optim.Algorithm {
	if batch > online {
		return optim.Batch
	}
	return optim.Online
}

// Select cross-validates both algorithms and returns the winner.
func (s *ModelSelector) Select(ctx context.Context, ds *data.Dataset) (SelectionReport, error) {
	if err := ds.Validate(); err != nil {
		return SelectionReport{}, err
	}
	k := NumFolds(ds.Len())

	accuracy := func(alg optim.Algorithm) (float64, error) {
		ev, err := CrossValidate(ctx, func() Classifier { return s.Factory(alg) }, ds, k, s.Seed)
		if err != nil {
			return 0, err
		}
		return ev.PctCorrect(), nil
	}

	online, err := accuracy(optim.Online)
	if err != nil {
		return SelectionReport{}, err
	}
	batch, err := accuracy(optim.Batch)
	if err != nil {
		return SelectionReport{}, err
	}

	r := SelectionReport{
		Folds:          k,
		OnlineAccuracy: online,
		BatchAccuracy:  batch,
		Chosen:         chooseAlgorithm(online, batch),
	}
	logOrNop(s.logger).Debug().
		Int("folds", k).
		Float64("online_pct", online).
		Float64("batch_pct", batch).
		Str("chosen", r.Chosen.String()).
		Msg("algorithm selected")
	return r, nil
}
