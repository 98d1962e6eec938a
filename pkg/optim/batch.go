package optim

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/amyap6/Perceptrons/pkg/data"
)

// BatchTrainer accumulates the update of a full pass and applies it once per
// epoch. It always runs MaxEpochs epochs.
type BatchTrainer struct {
	cfg Config
}

func NewBatchTrainer(cfg Config) *BatchTrainer { return &BatchTrainer{cfg: cfg} }

func (t *BatchTrainer) Algorithm() Algorithm { return Batch }

func (t *BatchTrainer) Train(ctx context.Context, ds *data.Dataset) (Result, error) {
	if err := t.cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := checkTrainable(ds); err != nil {
		return Result{}, err
	}
	w := initWeights(ds.NumFeatures(), t.cfg)
	rule := newRule(t.cfg)
	delta := make([]float64, len(w.W))
	res := Result{}

	for epoch := 1; epoch <= t.cfg.MaxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for k := range delta {
			delta[k] = 0
		}
		deltaB := 0.0
		changed := false
		for _, inst := range ds.Instances {
			// each instance is scored against the weights of the previous epoch
			e := t.cfg.target(inst.Label) - sign(t.cfg.score(w, inst.Features))
			if e == 0 {
				continue
			}
			scale := rule.Scale(e)
			if rule.Step(delta, scale, inst.Features) {
				changed = true
			}
			if t.cfg.Bias {
				deltaB += scale
				changed = true
			}
		}
		floats.Add(w.W, delta)
		w.B += deltaB
		res.Epochs = epoch
		res.Converged = !changed
	}
	res.Weights = w
	return res, nil
}
