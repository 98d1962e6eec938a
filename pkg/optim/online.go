package optim

import (
	"context"

	"github.com/amyap6/Perceptrons/pkg/data"
)

// OnlineTrainer applies the perceptron update after every instance and stops
// at MaxEpochs or after the first epoch that left every weight untouched.
type OnlineTrainer struct {
	cfg Config
}

func NewOnlineTrainer(cfg Config) *OnlineTrainer { return &OnlineTrainer{cfg: cfg} }

func (t *OnlineTrainer) Algorithm() Algorithm { return Online }

func (t *OnlineTrainer) Train(ctx context.Context, ds *data.Dataset) (Result, error) {
	if err := t.cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := checkTrainable(ds); err != nil {
		return Result{}, err
	}
	w := initWeights(ds.NumFeatures(), t.cfg)
	rule := newRule(t.cfg)
	res := Result{}

	for epoch := 1; epoch <= t.cfg.MaxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		changed := false
		for _, inst := range ds.Instances {
			e := t.cfg.target(inst.Label) - sign(t.cfg.score(w, inst.Features))
			if e == 0 {
				continue
			}
			scale := rule.Scale(e)
			if rule.Step(w.W, scale, inst.Features) {
				changed = true
			}
			if t.cfg.Bias {
				w.B += scale
				changed = true
			}
		}
		res.Epochs = epoch
		if !changed {
			res.Converged = true
			break
		}
	}
	res.Weights = w
	return res, nil
}
