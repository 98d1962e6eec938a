package stats

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amyap6/Perceptrons/pkg/data"
)

func TestStandardizerZScore(t *testing.T) {
	X := [][]float64{{1, 10}, {3, 20}, {5, 30}}
	s := NewStandardizer(ZScore, FailOnDegenerate)
	Z, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{3, 20}, s.Mean, 1e-12)
	sd := math.Sqrt(8.0 / 3)
	assert.InDelta(t, sd, s.Std[0], 1e-12)
	assert.InDelta(t, -2/sd, Z[0][0], 1e-12)
	assert.InDelta(t, 0, Z[1][1], 1e-12)

	// The input is left alone.
	assert.Equal(t, 1.0, X[0][0])

	for j := 0; j < 2; j++ {
		var sum, sq float64
		for i := range Z {
			sum += Z[i][j]
			sq += Z[i][j] * Z[i][j]
		}
		assert.InDelta(t, 0, sum/3, 1e-12)
		assert.InDelta(t, 1, sq/3, 1e-12)
	}
}

func TestStandardizerLegacy(t *testing.T) {
	s := NewStandardizer(Legacy, FailOnDegenerate)
	require.NoError(t, s.Fit([][]float64{{1}, {3}, {5}}))
	x := []float64{4}
	s.TransformInPlace(x)
	assert.InDelta(t, 4-3/math.Sqrt(8.0/3), x[0], 1e-12)
}

func TestStandardizerDegenerate(t *testing.T) {
	X := [][]float64{{1, 7}, {2, 7}}
	err := NewStandardizer(ZScore, FailOnDegenerate).Fit(X)
	assert.True(t, errors.Is(err, ErrDegenerateStandardization))

	s := NewStandardizer(ZScore, CenterDegenerate)
	Z, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, 0.0, Z[0][1])
	assert.Equal(t, 0.0, Z[1][1])
}

func TestStandardizerEmpty(t *testing.T) {
	err := NewStandardizer(ZScore, FailOnDegenerate).Fit(nil)
	assert.True(t, errors.Is(err, data.ErrEmptyDataset))
}

func TestStandardizerInvert(t *testing.T) {
	X := [][]float64{{1, 10}, {3, 20}, {5, 40}}
	for _, mode := range []Mode{ZScore, Legacy} {
		s := NewStandardizer(mode, FailOnDegenerate)
		require.NoError(t, s.Fit(X))
		for _, row := range X {
			for j, v := range row {
				assert.InDelta(t, v, s.Invert(j, s.Scale(j, v)), 1e-9, "mode %d feature %d", mode, j)
			}
		}
	}

	legacy := NewStandardizer(Legacy, FailOnDegenerate)
	require.NoError(t, legacy.Fit(X))
	zscore := NewStandardizer(ZScore, FailOnDegenerate)
	require.NoError(t, zscore.Fit(X))
	assert.NotEqual(t, zscore.Invert(1, 0.5), legacy.Invert(1, 0.5))
}

func TestStandardizerRaggedRows(t *testing.T) {
	for _, X := range [][][]float64{
		{{1, 2}, {3}},
		{{1}, {3, 4}},
	} {
		s := NewStandardizer(ZScore, FailOnDegenerate)
		err := s.Fit(X)
		assert.True(t, errors.Is(err, data.ErrDimensionMismatch), "rows %v", X)
		assert.False(t, s.Fitted())
	}
}

func TestStandardizerDataset(t *testing.T) {
	ds, err := data.FromMatrix([][]float64{{0, 1}, {2, 3}}, []int{0, 1})
	require.NoError(t, err)

	s := NewStandardizer(ZScore, FailOnDegenerate)
	_, err = s.TransformDataset(ds)
	assert.True(t, errors.Is(err, ErrNotFitted))

	out, err := s.FitDataset(ds)
	require.NoError(t, err)
	assert.True(t, s.Fitted())
	assert.Equal(t, []float64{-1, -1}, out.Instances[0].Features)
	assert.Equal(t, []float64{1, 1}, out.Instances[1].Features)
	assert.Equal(t, []float64{0, 1}, ds.Instances[0].Features)

	short, err := data.FromMatrix([][]float64{{1}}, []int{0})
	require.NoError(t, err)
	_, err = s.TransformDataset(short)
	assert.True(t, errors.Is(err, data.ErrDimensionMismatch))
}
