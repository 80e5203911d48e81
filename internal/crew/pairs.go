// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import "iter"

// Pair is an unordered pair of candidate indexes with I < J.
type Pair struct {
	I, J int
}

// IndexPairs yields every 2-combination of [0, n) in lexicographic order, skipping the
// excluded index. Pass a negative exclude to keep every index.
func IndexPairs(n, exclude int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for i := 0; i < n; i++ {
			if i == exclude {
				continue
			}
			for j := i + 1; j < n; j++ {
				if j == exclude {
					continue
				}
				if !yield(Pair{I: i, J: j}) {
					return
				}
			}
		}
	}
}

// countPairs is the number of pairs IndexPairs yields for n candidates with one excluded.
func countPairs(n int) int {
	m := n - 1
	if m < 2 {
		return 0
	}
	return m * (m - 1) / 2
}
