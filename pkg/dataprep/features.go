package dataprep

// FeatureSelect selects columns by indices.
func FeatureSelect(X [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = SelectRow(row, indices)
	}
	return out
}

// SelectRow copies the entries of row at indices, in that order.
func SelectRow(row []float64, indices []int) []float64 {
	selected := make([]float64, len(indices))
	for j, idx := range indices {
		selected[j] = row[idx]
	}
	return selected
}

// KeptIndices returns the ascending column indices in [0, n) not listed in excluded.
// Projecting through this fixed set avoids the index shift of deleting columns one by one.
func KeptIndices(n int, excluded []int) []int {
	drop := make(map[int]struct{}, len(excluded))
	for _, e := range excluded {
		drop[e] = struct{}{}
	}
	keep := make([]int, 0, n)
	for j := 0; j < n; j++ {
		if _, ok := drop[j]; !ok {
			keep = append(keep, j)
		}
	}
	return keep
}
