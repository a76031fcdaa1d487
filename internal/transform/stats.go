package transform

import "sort"

// mean returns the arithmetic mean of values. Returns 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value (or midpoint of the two middle values).
func median(values []float64) float64 {
	return quantile(values, 0.5)
}

// mode returns the most frequent value; ties break toward the smaller value
// so the result is deterministic.
func mode(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}

// quantile returns the p-th quantile (0 <= p <= 1) using linear interpolation
// between ranks: rank h = (n-1)*p, interpolated between the values at
// floor(h) and floor(h)+1. This matches the method used consistently for the
// outlier fences so results are reproducible across runs.
func quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(h)
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
