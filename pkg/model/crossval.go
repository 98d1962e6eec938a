package model

import (
	"context"
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/loader"
)

var ErrInvalidFolds = errors.New("model: invalid number of folds")

// Evaluation aggregates held-out predictions over all folds.
type Evaluation struct {
	Folds   int
	Correct int
	Total   int
}

// PctCorrect returns the held-out accuracy in percent.
func (e Evaluation) PctCorrect() float64 {
	if e.Total == 0 {
		return 0
	}
	return 100 * float64(e.Correct) / float64(e.Total)
}

type foldResult struct {
	correct int
	total   int
}

// CrossValidate runs stratified k-fold cross-validation. Fold assignment is
// drawn from seed, so two calls with the same seed see the same partitions.
// Folds are trained concurrently, each on its own copy of the data.
func CrossValidate(ctx context.Context, factory Factory, ds *data.Dataset, k int, seed int64) (Evaluation, error) {
	if err := ds.Validate(); err != nil {
		return Evaluation{}, err
	}
	n := ds.Len()
	if k < 2 || k > n {
		return Evaluation{}, errors.Wrapf(ErrInvalidFolds, "k=%d for %d instances", k, n)
	}
	folds := loader.StratifiedKFold(ds.Labels(), k, rand.New(rand.NewSource(seed)))

	results := make([]foldResult, k)
	var wg sync.WaitGroup
	errCh := make(chan error, k)

	for i := range folds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			train := ds.Subset(loader.Complement(folds, i))
			test := ds.Subset(folds[i])

			clf := factory()
			if err := clf.Fit(ctx, train); err != nil {
				errCh <- errors.Wrapf(err, "fold %d", i)
				return
			}
			r := foldResult{total: test.Len()}
			for _, inst := range test.Instances {
				pred, err := clf.Predict(inst.Features)
				if err != nil {
					errCh <- errors.Wrapf(err, "fold %d", i)
					return
				}
				if pred == inst.Label {
					r.correct++
				}
			}
			results[i] = r
		}(i)
	}
	wg.Wait()
	close(errCh)

	// Check for any errors from goroutines.
	for err := range errCh {
		if err != nil {
			return Evaluation{}, err
		}
	}

	ev := Evaluation{Folds: k}
	for _, r := range results {
		ev.Correct += r.correct
		ev.Total += r.total
	}
	return ev, nil
}
