package loader

import (
	"math/rand"
	"sort"
)

// TrainTestSplit partitions the indices [0, n) into a train and a test set.
// testRatio of the shuffled indices go to the test set.
func TrainTestSplit(n int, testRatio float64, rnd *rand.Rand) (train, test []int) {
	indices := rnd.Perm(n)
	nTest := int(float64(n) * testRatio)
	return indices[nTest:], indices[:nTest]
}

// StratifiedKFold shuffles the indices of labels, groups them by class while
// keeping the shuffled order inside each class, and deals them round-robin into
// k folds so every fold sees the class ratio of the whole set.
func StratifiedKFold(labels []int, k int, rnd *rand.Rand) [][]int {
	indices := rnd.Perm(len(labels))
	sort.SliceStable(indices, func(a, b int) bool {
		return labels[indices[a]] < labels[indices[b]]
	})
	folds := make([][]int, k)
	for i, idx := range indices {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds
}

// Complement returns the indices of all folds except fold i, concatenated in fold order.
func Complement(folds [][]int, i int) []int {
	var out []int
	for j, f := range folds {
		if j != i {
			out = append(out, f...)
		}
	}
	return out
}
