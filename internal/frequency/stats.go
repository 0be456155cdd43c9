package frequency

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Bucket is one equal-width histogram bin over [Low, High). The last bucket
// is closed on both ends so the maximum lands inside it.
type Bucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Summary holds descriptive statistics over a frequency series.
// Immutable once produced.
type Summary struct {
	Count   int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
	Q1      float64
	Q3      float64
	Buckets []Bucket
}

// Summarize computes descriptive statistics and an equal-width histogram with
// the given number of buckets. Deterministic and pure: the series has already
// passed validation, so there are no failure modes. A series where min == max
// degenerates to a single bucket holding every value. bucketCount values
// below 1 are treated as 1.
func Summarize(s Series, bucketCount int) Summary {
	values := s.Values()
	n := len(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[n-1]

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	// Sample standard deviation (N-1). gonum returns NaN for a single
	// element; the defined value is 0.
	stddev := 0.0
	if n > 1 {
		stddev = stat.StdDev(sorted, nil)
	}

	var q1, q3 float64
	if n == 1 {
		q1, q3 = sorted[0], sorted[0]
	} else {
		q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
		q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	}

	if bucketCount < 1 {
		bucketCount = 1
	}

	return Summary{
		Count:   n,
		Mean:    stat.Mean(sorted, nil),
		Median:  median,
		StdDev:  stddev,
		Min:     min,
		Max:     max,
		Q1:      q1,
		Q3:      q3,
		Buckets: histogram(sorted, min, max, bucketCount),
	}
}

// histogram bins sorted values into bucketCount equal-width buckets spanning
// [min, max]. When the span is zero every value falls in one bucket.
func histogram(sorted []float64, min, max float64, bucketCount int) []Bucket {
	width := (max - min) / float64(bucketCount)
	// A span too small to divide (min == max, or subnormal values whose
	// difference underflows) collapses to one bucket; dividing by a zero
	// width would otherwise produce NaN/Inf indices.
	if width == 0 {
		return []Bucket{{Low: min, High: max, Count: len(sorted)}}
	}
	buckets := make([]Bucket, bucketCount)
	for i := range buckets {
		buckets[i].Low = min + float64(i)*width
		buckets[i].High = min + float64(i+1)*width
	}
	// Pin the final edge so max is not a float away from its bucket.
	buckets[bucketCount-1].High = max

	for _, v := range sorted {
		idx := int(math.Floor((v - min) / width))
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		buckets[idx].Count++
	}
	return buckets
}
