package model

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amyap6/Perceptrons/pkg/data"
)

// mirroredDataset repeats one value across four columns. Class 1 sits at
// 10..12 and class 0 at -10..-12, so any subset of columns separates them.
func mirroredDataset(t *testing.T) *data.Dataset {
	var X [][]float64
	var y []int
	for _, v := range []float64{10, 11, 12} {
		X = append(X, []float64{v, v, v, v})
		y = append(y, 1)
		X = append(X, []float64{-v, -v, -v, -v})
		y = append(y, 0)
	}
	return mustDataset(t, X, y)
}

func fill(v float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = v
	}
	return x
}

func TestBaggedEnsembleVotes(t *testing.T) {
	ens := NewBaggedEnsemble(WithSize(7), WithRandomState(5))
	require.NoError(t, ens.Fit(context.Background(), mirroredDataset(t)))
	require.Len(t, ens.Members(), 7)

	votes, err := ens.Votes(fill(30, 4))
	require.NoError(t, err)
	assert.Equal(t, 7, votes[0]+votes[1])
	assert.Equal(t, [2]int{0, 7}, votes)

	got, err := ens.Predict(fill(30, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	got, err = ens.Predict(fill(-30, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	dist, err := ens.DistributionForInstance(fill(-30, 4))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0}, dist, 1e-12)
}

func TestBaggedEnsembleMemberFeatures(t *testing.T) {
	ens := NewBaggedEnsemble(WithSize(10), WithProportion(0.5), WithRandomState(99))
	require.NoError(t, ens.Fit(context.Background(), mirroredDataset(t)))

	for _, m := range ens.Members() {
		require.Len(t, m.Excluded, 2)
		assert.NotEqual(t, m.Excluded[0], m.Excluded[1])
		kept := m.Kept()
		assert.Len(t, kept, 2)
		assert.True(t, sort.IntsAreSorted(kept))
		for _, k := range kept {
			assert.NotContains(t, m.Excluded, k)
		}
		assert.Equal(t, 2, m.Classifier.NumFeatures())
	}
}

func TestBaggedEnsembleFullProportion(t *testing.T) {
	ens := NewBaggedEnsemble(WithSize(3), WithProportion(1), WithRandomState(1))
	require.NoError(t, ens.Fit(context.Background(), mirroredDataset(t)))
	for _, m := range ens.Members() {
		assert.Empty(t, m.Excluded)
		assert.Equal(t, []int{0, 1, 2, 3}, m.Kept())
	}
}

func TestBaggedEnsembleDeterministic(t *testing.T) {
	ds := mirroredDataset(t)
	a := NewBaggedEnsemble(WithSize(5), WithRandomState(17))
	b := NewBaggedEnsemble(WithSize(5), WithRandomState(17))
	require.NoError(t, a.Fit(context.Background(), ds))
	require.NoError(t, b.Fit(context.Background(), ds))

	am, bm := a.Members(), b.Members()
	for i := range am {
		assert.Equal(t, am[i].Excluded, bm[i].Excluded)
		assert.Equal(t, am[i].Classifier.Weights(), bm[i].Classifier.Weights())
	}
}

func TestBaggedEnsembleInvalidConfig(t *testing.T) {
	ds := mirroredDataset(t)
	for _, p := range []float64{0, -0.5, 1.5} {
		err := NewBaggedEnsemble(WithProportion(p)).Fit(context.Background(), ds)
		assert.True(t, errors.Is(err, ErrInvalidProportion), "proportion %g", p)
	}
	err := NewBaggedEnsemble(WithSize(0)).Fit(context.Background(), ds)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestBaggedEnsembleNotFitted(t *testing.T) {
	ens := NewBaggedEnsemble()
	_, err := ens.Predict([]float64{1})
	assert.True(t, errors.Is(err, ErrNotFitted))
}

func TestBaggedEnsembleDimensionMismatch(t *testing.T) {
	ens := NewBaggedEnsemble(WithSize(3), WithRandomState(2))
	require.NoError(t, ens.Fit(context.Background(), mirroredDataset(t)))
	_, err := ens.Votes([]float64{1, 2})
	assert.True(t, errors.Is(err, data.ErrDimensionMismatch))
}

func TestBaggedEnsemblePredictBatch(t *testing.T) {
	ens := NewBaggedEnsemble(WithSize(9), WithRandomState(3))
	require.NoError(t, ens.Fit(context.Background(), mirroredDataset(t)))

	X := [][]float64{fill(30, 4), fill(-30, 4), fill(45, 4), fill(-45, 4)}
	got, err := ens.PredictBatch(X)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 0}, got)

	_, err = ens.PredictBatch([][]float64{fill(1, 3)})
	assert.True(t, errors.Is(err, data.ErrDimensionMismatch))
}

func TestBaggedEnsembleMemberErrorPropagates(t *testing.T) {
	ds := data.New(
		[]data.Attribute{{Name: "a", Kind: data.Continuous}, {Name: "b", Kind: data.Continuous}},
		[]data.Instance{{Features: []float64{1, 5}, Label: 1}, {Features: []float64{2, 5}, Label: 0}},
	)
	// Every member keeps both columns, and the second one is constant.
	err := NewBaggedEnsemble(WithSize(2), WithProportion(1)).Fit(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member")
}

func TestNumExcluded(t *testing.T) {
	cases := []struct {
		p          int
		proportion float64
		want       int
	}{
		{10, 0.9, 1},
		{10, 0.7, 3},
		{4, 0.5, 2},
		{5, 0.5, 2},
		{4, 1, 0},
		{3, 0.1, 2},
	}
	for _, c := range cases {
		e := NewBaggedEnsemble(WithProportion(c.proportion))
		assert.Equal(t, c.want, e.numExcluded(c.p), "p=%d proportion=%g", c.p, c.proportion)
	}
}

func TestDrawExcluded(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	got, err := drawExcluded(rnd, 5, 5)
	require.NoError(t, err)
	sorted := append([]int(nil), got...)
	sort.Ints(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, sorted)

	_, err = drawExcluded(rnd, 3, 4)
	assert.True(t, errors.Is(err, ErrExhaustedRandomDraw))

	got, err = drawExcluded(rnd, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
