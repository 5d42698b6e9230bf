package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the middle value of xs, averaging the two middle values
// for even lengths. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	sorted := sortedCopy(xs)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return stat.Mean(sorted[mid-1:mid+1], nil)
}

// Percentile returns the p-quantile (p in [0, 1]) of xs using linear
// interpolation of the empirical distribution.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	return stat.Quantile(p, stat.LinInterp, sortedCopy(xs), nil)
}

func sortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return sorted
}

// SizeRange mirrors range(start, stop, step) with a positive step.
func SizeRange(start, stop, step int) []int {
	if step <= 0 {
		return nil
	}

	var sizes []int
	for n := start; n < stop; n += step {
		sizes = append(sizes, n)
	}

	return sizes
}

func DistinctSizes(sizes []int) int {
	seen := make(map[int]struct{}, len(sizes))
	for _, n := range sizes {
		seen[n] = struct{}{}
	}

	return len(seen)
}

func MaxOf(vars ...int) int {
	max := vars[0]

	for _, i := range vars {
		if max < i {
			max = i
		}
	}

	return max
}

func IsFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
