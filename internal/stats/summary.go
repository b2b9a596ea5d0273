package stats

import (
	"math"
	"sort"
)

// Summary describes the distribution of a series of counts
type Summary struct {
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
	Zeros  int     `json:"zeros"` // Entries equal to zero
}

// Summarize computes the summary of values. values is not modified.
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	for _, v := range sorted {
		s.Total += v
		if v == 0 {
			s.Zeros++
		}
	}
	s.Mean = s.Total / float64(len(sorted))
	s.Median = quantileSorted(sorted, 0.5)
	s.P90 = quantileSorted(sorted, 0.9)
	s.Max = sorted[len(sorted)-1]
	return s
}

// SummarizeInts is Summarize over integer counts
func SummarizeInts(values []int) Summary {
	f := make([]float64, len(values))
	for i, v := range values {
		f[i] = float64(v)
	}
	return Summarize(f)
}

func quantileSorted(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
