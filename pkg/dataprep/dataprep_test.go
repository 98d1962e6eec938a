package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeptIndices(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, KeptIndices(5, []int{3, 1}))
	assert.Equal(t, []int{0, 1, 2}, KeptIndices(3, nil))
	assert.Empty(t, KeptIndices(2, []int{1, 0}))
}

func TestFeatureSelect(t *testing.T) {
	X := [][]float64{{1, 2, 3}, {4, 5, 6}}
	got := FeatureSelect(X, []int{2, 0})
	assert.Equal(t, [][]float64{{3, 1}, {6, 4}}, got)

	got[0][0] = 99
	assert.Equal(t, 3.0, X[0][2])
}

func TestLabelEncode(t *testing.T) {
	codes, mapping := LabelEncode([]string{"b", "a", "b", "c"})
	assert.Equal(t, []int{0, 1, 0, 2}, codes)
	assert.Equal(t, map[string]int{"b": 0, "a": 1, "c": 2}, mapping)
}

func TestBinarizeLabels(t *testing.T) {
	assert.Equal(t, []int{1, 0, 1}, BinarizeLabels([]string{"yes", "no", "yes"}))
	assert.Equal(t, []int{0, 1}, BinarizeLabels([]string{"0", "1"}))
	assert.Equal(t, []int{0, 0}, BinarizeLabels([]string{"only", "only"}))

	// More than two classes: the most frequent one is positive.
	assert.Equal(t, []int{0, 1, 1, 0}, BinarizeLabels([]string{"cat", "dog", "dog", "bird"}))
	// Ties go to the smallest label.
	assert.Equal(t, []int{1, 0, 1, 0, 0}, BinarizeLabels([]string{"a", "b", "a", "b", "c"}))
}
