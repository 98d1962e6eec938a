package model

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/optim"
	"github.com/amyap6/Perceptrons/pkg/stats"
)

var ErrNotFitted = errors.New("model: classifier is not fitted")

// LinearClassifier is a perceptron-style linear model. Its decision rule
// compares w·x + b against the sum of the feature weights.
type LinearClassifier struct {
	// Hyperparameters / options
	Standardize     bool
	StandardizeMode stats.Mode
	Degenerate      stats.DegeneratePolicy
	Algorithm       optim.Algorithm
	ModelSelection  bool
	Bias            bool
	MaxEpochs       int
	LearningRate    float64
	RawTargets      bool
	Seed            int64

	logger *zerolog.Logger

	// Internal state
	scaler    *stats.Standardizer
	result    optim.Result
	chosen    optim.Algorithm
	selection *SelectionReport
	nFeatures int
	fit       bool
}

// Option functional config for LinearClassifier
type Option func(*LinearClassifier)

func WithStandardize(b bool) Option { return func(c *LinearClassifier) { c.Standardize = b } }
func WithStandardizeMode(m stats.Mode) Option {
	return func(c *LinearClassifier) { c.StandardizeMode = m }
}
func WithDegeneratePolicy(p stats.DegeneratePolicy) Option {
	return func(c *LinearClassifier) { c.Degenerate = p }
}
func WithAlgorithm(a optim.Algorithm) Option { return func(c *LinearClassifier) { c.Algorithm = a } }
func WithModelSelection(b bool) Option       { return func(c *LinearClassifier) { c.ModelSelection = b } }
func WithBias(b bool) Option                 { return func(c *LinearClassifier) { c.Bias = b } }
func WithMaxEpochs(n int) Option             { return func(c *LinearClassifier) { c.MaxEpochs = n } }
func WithLearningRate(lr float64) Option     { return func(c *LinearClassifier) { c.LearningRate = lr } }
func WithRawTargets(b bool) Option           { return func(c *LinearClassifier) { c.RawTargets = b } }
func WithSeed(seed int64) Option             { return func(c *LinearClassifier) { c.Seed = seed } }
func WithLogger(l zerolog.Logger) Option     { return func(c *LinearClassifier) { c.logger = &l } }

// NewLinearClassifier returns a classifier that standardizes its inputs and
// trains online with a bias, without model selection.
func NewLinearClassifier(opts ...Option) *LinearClassifier {
	c := &LinearClassifier{
		Standardize:     true,
		StandardizeMode: stats.ZScore,
		Degenerate:      stats.FailOnDegenerate,
		Algorithm:       optim.Online,
		Bias:            true,
		MaxEpochs:       optim.DefaultMaxEpochs,
		LearningRate:    optim.DefaultLearningRate,
		Seed:            time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// withAlgorithm returns an untrained copy of the configuration that trains
// with alg and skips model selection. A fold may hold a column that is
// constant only within that fold, so fold models center such columns
// instead of failing.
func (c *LinearClassifier) withAlgorithm(alg optim.Algorithm) *LinearClassifier {
	return &LinearClassifier{
		Standardize:     c.Standardize,
		StandardizeMode: c.StandardizeMode,
		Degenerate:      stats.CenterDegenerate,
		Algorithm:       alg,
		Bias:            c.Bias,
		MaxEpochs:       c.MaxEpochs,
		LearningRate:    c.LearningRate,
		RawTargets:      c.RawTargets,
		Seed:            c.Seed,
	}
}

func (c *LinearClassifier) trainerConfig() optim.Config {
	return optim.Config{
		MaxEpochs:    c.MaxEpochs,
		LearningRate: c.LearningRate,
		Bias:         c.Bias,
		Seed:         c.Seed,
		RawTargets:   c.RawTargets,
	}
}

// Fit trains the classifier on ds. ds is not modified. A previous model is
// replaced only when training succeeds.
func (c *LinearClassifier) Fit(ctx context.Context, ds *data.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	alg := c.Algorithm
	var report *SelectionReport
	if c.ModelSelection {
		sel := &ModelSelector{
			Seed:    DefaultSelectionSeed,
			Factory: func(a optim.Algorithm) Classifier { return c.withAlgorithm(a) },
			logger:  c.logger,
		}
		r, err := sel.Select(ctx, ds)
		if err != nil {
			return errors.Wrap(err, "model: algorithm selection")
		}
		alg, report = r.Chosen, &r
	}

	train := ds
	var scaler *stats.Standardizer
	if c.Standardize {
		scaler = stats.NewStandardizer(c.StandardizeMode, c.Degenerate)
		var err error
		if train, err = scaler.FitDataset(ds); err != nil {
			return err
		}
	}

	trainer, err := optim.New(alg, c.trainerConfig())
	if err != nil {
		return err
	}
	res, err := trainer.Train(ctx, train)
	if err != nil {
		return err
	}

	c.scaler = scaler
	c.result = res
	c.chosen = alg
	c.selection = report
	c.nFeatures = ds.NumFeatures()
	c.fit = true
	logOrNop(c.logger).Debug().
		Str("algorithm", alg.String()).
		Int("features", c.nFeatures).
		Int("epochs", res.Epochs).
		Bool("converged", res.Converged).
		Msg("linear classifier trained")
	return nil
}

// Predict returns 0 or 1 for x. x is not modified.
func (c *LinearClassifier) Predict(x []float64) (int, error) {
	if !c.fit {
		return 0, ErrNotFitted
	}
	if len(x) != c.nFeatures {
		return 0, errors.Wrapf(data.ErrDimensionMismatch, "got %d features, want %d", len(x), c.nFeatures)
	}
	return c.predict(x), nil
}

func (c *LinearClassifier) predict(x []float64) int {
	q := x
	if c.scaler != nil {
		q = append([]float64(nil), x...)
		c.scaler.TransformInPlace(q)
	}
	return c.result.Weights.Decide(q)
}

// PredictBatch predicts every row of X, spreading rows across CPU cores.
func (c *LinearClassifier) PredictBatch(X [][]float64) ([]int, error) {
	if !c.fit {
		return nil, ErrNotFitted
	}
	for i, row := range X {
		if len(row) != c.nFeatures {
			return nil, errors.Wrapf(data.ErrDimensionMismatch, "row %d has %d features, want %d", i, len(row), c.nFeatures)
		}
	}
	out := make([]int, len(X))
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		s := w * rowsPerWorker
		e := min(s+rowsPerWorker, len(X))
		if s >= e {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				out[i] = c.predict(X[i])
			}
		}(s, e)
	}
	wg.Wait()
	return out, nil
}

// Weights returns a copy of the trained weights.
func (c *LinearClassifier) Weights() optim.Weights { return c.result.Weights.Clone() }

// Result returns the outcome of the last training run.
func (c *LinearClassifier) Result() optim.Result {
	r := c.result
	r.Weights = r.Weights.Clone()
	return r
}

// TrainedWith returns the algorithm used by the last Fit.
func (c *LinearClassifier) TrainedWith() optim.Algorithm { return c.chosen }

// Selection returns the cross-validation report when model selection ran.
func (c *LinearClassifier) Selection() (SelectionReport, bool) {
	if c.selection == nil {
		return SelectionReport{}, false
	}
	return *c.selection, true
}

// Standardizer returns the fitted standardization parameters, or nil.
func (c *LinearClassifier) Standardizer() *stats.Standardizer { return c.scaler }

func (c *LinearClassifier) NumFeatures() int { return c.nFeatures }
