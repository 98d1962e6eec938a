package model

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/dataprep"
)

var (
	ErrExhaustedRandomDraw = errors.New("model: cannot draw enough distinct feature indices")
	ErrInvalidProportion   = errors.New("model: feature proportion must be in (0, 1]")
	ErrInvalidSize         = errors.New("model: ensemble size must be positive")
)

const (
	DefaultEnsembleSize = 50
	DefaultProportion   = 0.5
)

// Member is one linear classifier and the feature columns it never sees.
type Member struct {
	Classifier *LinearClassifier
	Excluded   []int // dataset feature indices, in draw order
	kept       []int
}

// Kept returns the dataset feature indices the member was trained on, ascending.
func (m Member) Kept() []int { return append([]int(nil), m.kept...) }

// BaggedEnsemble trains Size linear classifiers, each on a random subset of the
// features, and predicts by majority vote. A tie goes to class 1.
type BaggedEnsemble struct {
	// Hyperparameters / options
	Size          int
	Proportion    float64 // fraction of features each member keeps
	RandomState   int64
	MemberOptions []Option

	logger *zerolog.Logger

	// Internal state
	members   []Member
	nFeatures int
}

// EnsembleOption functional config for BaggedEnsemble
type EnsembleOption func(*BaggedEnsemble)

func WithSize(n int) EnsembleOption             { return func(e *BaggedEnsemble) { e.Size = n } }
func WithProportion(p float64) EnsembleOption   { return func(e *BaggedEnsemble) { e.Proportion = p } }
func WithRandomState(seed int64) EnsembleOption { return func(e *BaggedEnsemble) { e.RandomState = seed } }
func WithMemberOptions(opts ...Option) EnsembleOption {
	return func(e *BaggedEnsemble) { e.MemberOptions = append(e.MemberOptions, opts...) }
}
func WithEnsembleLogger(l zerolog.Logger) EnsembleOption {
	return func(e *BaggedEnsemble) { e.logger = &l }
}

// NewBaggedEnsemble initializes the ensemble with 50 members keeping half of the features.
func NewBaggedEnsemble(opts ...EnsembleOption) *BaggedEnsemble {
	e := &BaggedEnsemble{
		Size:        DefaultEnsembleSize,
		Proportion:  DefaultProportion,
		RandomState: time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// drawExcluded picks count distinct indices in [0, n), retrying on collision.
func drawExcluded(rnd *rand.Rand, n, count int) ([]int, error) {
	if count < 0 || count > n {
		return nil, errors.Wrapf(ErrExhaustedRandomDraw, "%d of %d", count, n)
	}
	maxDraws := 64 * (n + 1)
	picked := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	for draws := 0; len(out) < count; draws++ {
		if draws >= maxDraws {
			return nil, errors.Wrapf(ErrExhaustedRandomDraw, "%d of %d after %d draws", count, n, draws)
		}
		idx := rnd.Intn(n)
		if _, ok := picked[idx]; ok {
			continue
		}
		picked[idx] = struct{}{}
		out = append(out, idx)
	}
	return out, nil
}

// numExcluded is floor(p * (1 - proportion)), tolerating the rounding error
// of 1 - proportion.
func (e *BaggedEnsemble) numExcluded(p int) int {
	return int(math.Floor(float64(p)*(1-e.Proportion) + 1e-9))
}

// Fit trains every member concurrently. Member i draws its features from
// RandomState+i and uses the same value as its classifier seed.
func (e *BaggedEnsemble) Fit(ctx context.Context, ds *data.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if e.Size <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %d", e.Size)
	}
	if !(e.Proportion > 0 && e.Proportion <= 1) {
		return errors.Wrapf(ErrInvalidProportion, "got %g", e.Proportion)
	}
	p := ds.NumFeatures()
	nExcluded := e.numExcluded(p)
	if nExcluded >= p {
		return errors.Wrapf(ErrExhaustedRandomDraw, "excluding %d of %d features leaves none", nExcluded, p)
	}

	members := make([]Member, e.Size)
	var wg sync.WaitGroup
	errCh := make(chan error, e.Size)

	for i := 0; i < e.Size; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Use a new rand source for each goroutine to avoid contention
			seed := e.RandomState + int64(idx)
			memberRand := rand.New(rand.NewSource(seed))

			excluded, err := drawExcluded(memberRand, p, nExcluded)
			if err != nil {
				errCh <- err
				return
			}
			kept := dataprep.KeptIndices(p, excluded)

			opts := append(append([]Option(nil), e.MemberOptions...), WithSeed(seed))
			clf := NewLinearClassifier(opts...)
			if err := clf.Fit(ctx, ds.Project(kept)); err != nil {
				errCh <- errors.Wrapf(err, "member %d", idx)
				return
			}
			members[idx] = Member{Classifier: clf, Excluded: excluded, kept: kept}
		}(i)
	}
	wg.Wait()
	close(errCh)

	// Check for any errors from goroutines.
	for err := range errCh {
		if err != nil {
			return err
		}
	}

	e.members = members
	e.nFeatures = p
	logOrNop(e.logger).Debug().
		Int("members", e.Size).
		Int("features", p).
		Int("excluded_per_member", nExcluded).
		Msg("ensemble trained")
	return nil
}

// Members returns the trained members in training order.
func (e *BaggedEnsemble) Members() []Member { return append([]Member(nil), e.members...) }

// Votes returns how many members predicted class 0 and class 1 for x.
func (e *BaggedEnsemble) Votes(x []float64) ([2]int, error) {
	var votes [2]int
	if len(e.members) == 0 {
		return votes, ErrNotFitted
	}
	if len(x) != e.nFeatures {
		return votes, errors.Wrapf(data.ErrDimensionMismatch, "got %d features, want %d", len(x), e.nFeatures)
	}
	for _, m := range e.members {
		votes[m.Classifier.predict(dataprep.SelectRow(x, m.kept))]++
	}
	return votes, nil
}

func majority(votes [2]int) int {
	if votes[0] > votes[1] {
		return 0
	}
	return 1
}

// Predict returns the majority vote for x.
func (e *BaggedEnsemble) Predict(x []float64) (int, error) {
	votes, err := e.Votes(x)
	if err != nil {
		return 0, err
	}
	return majority(votes), nil
}

// DistributionForInstance returns the fraction of votes for class 0 and class 1.
func (e *BaggedEnsemble) DistributionForInstance(x []float64) ([]float64, error) {
	votes, err := e.Votes(x)
	if err != nil {
		return nil, err
	}
	n := float64(votes[0] + votes[1])
	return []float64{float64(votes[0]) / n, float64(votes[1]) / n}, nil
}

type voteResult struct {
	index      int
	prediction int
	err        error
}

// PredictBatch returns the majority vote of every row, voting rows in parallel.
func (e *BaggedEnsemble) PredictBatch(X [][]float64) ([]int, error) {
	n := len(X)
	finalPred := make([]int, n)
	voteCh := make(chan voteResult, n)
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		s := w * rowsPerWorker
		end := min(s+rowsPerWorker, n)
		if s >= end {
			continue
		}
		wg.Add(1)
		go func(s, end int) {
			defer wg.Done()
			for i := s; i < end; i++ {
				pred, err := e.Predict(X[i])
				voteCh <- voteResult{i, pred, err}
			}
		}(s, end)
	}

	wg.Wait()
	close(voteCh)

	for result := range voteCh {
		if result.err != nil {
			return nil, errors.Wrapf(result.err, "row %d", result.index)
		}
		finalPred[result.index] = result.prediction
	}
	return finalPred, nil
}
