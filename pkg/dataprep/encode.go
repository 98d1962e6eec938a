package dataprep

import "sort"

// LabelEncode encodes categories as integers in order of first appearance.
func LabelEncode(data []string) ([]int, map[string]int) {
	unique := map[string]int{}
	out := make([]int, len(data))
	for i, v := range data {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
		out[i] = unique[v]
	}
	return out, unique
}

// BinarizeLabels maps class labels onto {0, 1}.
//
// With at most two distinct labels the sorted order decides: the smaller label
// becomes 0. With more, the most frequent label becomes 1 and every other
// label 0; among equally frequent labels the smallest wins.
func BinarizeLabels(labels []string) []int {
	codes, unique := LabelEncode(labels)
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]int, len(labels))
	if len(names) <= 2 {
		rank := make(map[string]int, len(names))
		for i, name := range names {
			rank[name] = i
		}
		for i, v := range labels {
			out[i] = rank[v]
		}
		return out
	}

	counts := make([]int, len(unique))
	for _, c := range codes {
		counts[c]++
	}
	majority, best := "", -1
	for _, name := range names {
		if n := counts[unique[name]]; n > best {
			majority, best = name, n
		}
	}
	for i, v := range labels {
		if v == majority {
			out[i] = 1
		}
	}
	return out
}
