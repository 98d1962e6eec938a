package optim

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/amyap6/Perceptrons/pkg/data"
)

const (
	DefaultMaxEpochs    = 1000
	DefaultLearningRate = 1.0
)

// Algorithm names a weight-learning rule.
type Algorithm int

const (
	Online Algorithm = iota
	Batch
)

func (a Algorithm) String() string {
	switch a {
	case Online:
		return "online"
	case Batch:
		return "batch"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "online", "perceptron":
		return Online, nil
	case "batch", "offline", "gradient":
		return Batch, nil
	}
	return 0, errors.Errorf("optim: unknown algorithm %q", s)
}

// Config holds the per-run training parameters. Nothing here is shared
// between trainers.
type Config struct {
	MaxEpochs    int
	LearningRate float64
	Bias         bool
	Seed         int64
	// RawTargets computes the error as label - sign(w·x + b) with label in
	// {0,1}, instead of mapping class 0 to -1 and scoring with Margin.
	RawTargets bool
}

func DefaultConfig() Config {
	return Config{MaxEpochs: DefaultMaxEpochs, LearningRate: DefaultLearningRate}
}

func (c Config) validate() error {
	if c.MaxEpochs <= 0 {
		return errors.Errorf("optim: max epochs must be positive, got %d", c.MaxEpochs)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("optim: learning rate must be positive, got %g", c.LearningRate)
	}
	return nil
}

// Weights is a linear model: one weight per feature plus a separate bias.
// B stays 0 when the bias is disabled.
type Weights struct {
	W []float64
	B float64
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	return Weights{W: append([]float64(nil), w.W...), B: w.B}
}

// Activation returns w·x + b.
func (w Weights) Activation(x []float64) float64 {
	return floats.Dot(w.W, x) + w.B
}

// Margin returns w·x + b - Σw. The model predicts class 1 exactly when it is
// positive.
func (w Weights) Margin(x []float64) float64 {
	return w.Activation(x) - floats.Sum(w.W)
}

// Decide applies the decision rule w·x + b > Σw.
func (w Weights) Decide(x []float64) int {
	if w.Margin(x) > 0 {
		return 1
	}
	return 0
}

// Result is the outcome of one training run.
type Result struct {
	Weights   Weights
	Epochs    int
	Converged bool // an epoch finished without changing any weight
}

// Trainer learns a weight vector from a dataset.
type Trainer interface {
	Train(ctx context.Context, ds *data.Dataset) (Result, error)
	Algorithm() Algorithm
}

// New returns the trainer for alg.
func New(alg Algorithm, cfg Config) (Trainer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	switch alg {
	case Online:
		return &OnlineTrainer{cfg: cfg}, nil
	case Batch:
		return &BatchTrainer{cfg: cfg}, nil
	}
	return nil, errors.Errorf("optim: unknown algorithm %d", int(alg))
}

// initWeights draws every weight, and the bias when enabled, from U[0,1).
func initWeights(p int, cfg Config) Weights {
	rnd := rand.New(rand.NewSource(cfg.Seed))
	w := Weights{W: make([]float64, p)}
	for i := range w.W {
		w.W[i] = rnd.Float64()
	}
	if cfg.Bias {
		w.B = rnd.Float64()
	}
	return w
}

// sign is the three-valued signum.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (c Config) target(label int) float64 {
	if c.RawTargets {
		return float64(label)
	}
	return float64(2*label - 1)
}

// score is the quantity whose sign is compared with the target.
func (c Config) score(w Weights, x []float64) float64 {
	if c.RawTargets {
		return w.Activation(x)
	}
	return w.Margin(x)
}

// shift is subtracted from every feature in the update. Margin is linear in
// x - 1, so signed training steps along x - 1.
func (c Config) shift() float64 {
	if c.RawTargets {
		return 0
	}
	return 1
}

// Rule is the shared perceptron update: delta = 0.5 * rate * error * (x - shift).
type Rule struct {
	LearningRate float64
	Shift        float64
}

func newRule(cfg Config) Rule {
	return Rule{LearningRate: cfg.LearningRate, Shift: cfg.shift()}
}

// Scale returns the multiplier applied to x for the given error.
func (r Rule) Scale(err float64) float64 { return 0.5 * r.LearningRate * err }

// Step adds scale*(x - Shift) into dst and reports whether any entry changed.
func (r Rule) Step(dst []float64, scale float64, x []float64) bool {
	changed := false
	for k, v := range x {
		if d := scale * (v - r.Shift); d != 0 {
			dst[k] += d
			changed = true
		}
	}
	return changed
}

func checkTrainable(ds *data.Dataset) error {
	if err := ds.Validate(); err != nil {
		return errors.Wrap(err, "optim: dataset rejected")
	}
	return nil
}
