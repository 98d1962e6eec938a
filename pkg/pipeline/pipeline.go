package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/model"
)

// Candidate is a named classifier family. New must return a fresh, untrained
// classifier on every call.
type Candidate struct {
	Name string
	New  func() model.BatchClassifier
}

// Task is one train/test pair.
type Task struct {
	Name  string
	Train *data.Dataset
	Test  *data.Dataset
}

// Pipeline trains every candidate on every task and scores it on the task's
// test set.
type Pipeline struct {
	candidates []Candidate
	logger     zerolog.Logger
}

func NewPipeline(logger zerolog.Logger, candidates ...Candidate) *Pipeline {
	return &Pipeline{candidates: candidates, logger: logger}
}

// Run evaluates the candidates task by task. The first failure stops the run.
func (p *Pipeline) Run(ctx context.Context, tasks ...Task) ([]Result, error) {
	results := make([]Result, 0, len(tasks)*len(p.candidates))
	for _, task := range tasks {
		for _, c := range p.candidates {
			r, err := p.evaluate(ctx, task, c)
			if err != nil {
				return nil, errors.Wrapf(err, "%s on %s", c.Name, task.Name)
			}
			p.logger.Info().
				Str("dataset", r.Dataset).
				Str("model", r.Model).
				Float64("accuracy", r.Accuracy).
				Float64("balanced_accuracy", r.BalancedAccuracy).
				Dur("fit_time", r.FitTime).
				Msg("evaluated")
			results = append(results, r)
		}
	}
	return results, nil
}

func (p *Pipeline) evaluate(ctx context.Context, task Task, c Candidate) (Result, error) {
	if err := task.Test.Validate(); err != nil {
		return Result{}, errors.Wrap(err, "test set")
	}
	clf := c.New()
	start := time.Now()
	if err := clf.Fit(ctx, task.Train); err != nil {
		return Result{}, err
	}
	fitTime := time.Since(start)

	X, y := task.Test.Matrix()
	pred, err := clf.PredictBatch(X)
	if err != nil {
		return Result{}, err
	}
	cm := model.ConfusionMatrix(y, pred)
	prec, _, f1 := model.PrecisionRecallF1(y, pred)
	return Result{
		Dataset:          task.Name,
		Model:            c.Name,
		Accuracy:         model.Accuracy(y, pred),
		TPR:              model.TPR(cm),
		TNR:              model.TNR(cm),
		BalancedAccuracy: model.BalancedAccuracy(cm),
		Precision:        prec,
		F1:               f1,
		FitTime:          fitTime,
	}, nil
}
