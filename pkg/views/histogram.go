package views

import (
	"math"
	"slices"
)

// DefaultBinCount is the approximate number of histogram bins.
const DefaultBinCount = 20

// Bin is one histogram interval. Bins are half-open [X0, X1) except the last,
// which also includes X1.
type Bin struct {
	X0    float64 `json:"x0" yaml:"x0"`
	X1    float64 `json:"x1" yaml:"x1"`
	Count int     `json:"count" yaml:"count"`
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec returns integer tick indices and an increment for roughly count
// ticks over [lo, hi]. A negative inc means each tick is i / -inc, which
// keeps fractional steps exact.
func tickSpec(lo, hi float64, count int) (i1, i2, inc float64) {
	step := (hi - lo) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(lo * inc)
		i2 = math.Round(hi * inc)
		if i1/inc < lo {
			i1++
		}
		if i2/inc > hi {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(lo / inc)
		i2 = math.Round(hi / inc)
		if i1*inc < lo {
			i1++
		}
		if i2*inc > hi {
			i2--
		}
	}
	return i1, i2, inc
}

// NiceTicks returns about count evenly spaced round values (multiples of
// 1, 2 or 5 times a power of ten) within [lo, hi].
func NiceTicks(lo, hi float64, count int) []float64 {
	if count <= 0 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	reverse := hi < lo
	if reverse {
		lo, hi = hi, lo
	}

	i1, i2, inc := tickSpec(lo, hi, count)
	if i2 < i1 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range n {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		slices.Reverse(ticks)
	}
	return ticks
}

// Nice widens [lo, hi] outward so both ends fall on tick values for about
// count ticks.
func Nice(lo, hi float64, count int) (float64, float64) {
	if lo >= hi || count <= 0 {
		return lo, hi
	}
	var prev float64
	for range 10 {
		_, _, step := tickSpec(lo, hi, count)
		if step == prev {
			break
		}
		switch {
		case step > 0:
			lo = math.Floor(lo/step) * step
			hi = math.Ceil(hi/step) * step
		case step < 0:
			lo = math.Ceil(lo*step) / step
			hi = math.Floor(hi*step) / step
		default:
			return lo, hi
		}
		prev = step
	}
	return lo, hi
}

// Histogram bins values over their niced extent using thresholds at
// NiceTicks(count). Every value lands in exactly one bin. An empty input
// yields no bins.
func Histogram(values []float64, count int) []Bin {
	if len(values) == 0 {
		return nil
	}
	if count <= 0 {
		count = DefaultBinCount
	}

	lo, hi := slices.Min(values), slices.Max(values)
	lo, hi = Nice(lo, hi, count)

	var thresholds []float64
	for _, t := range NiceTicks(lo, hi, count) {
		if t > lo && t < hi {
			thresholds = append(thresholds, t)
		}
	}

	bins := make([]Bin, len(thresholds)+1)
	for i := range bins {
		bins[i].X0 = lo
		if i > 0 {
			bins[i].X0 = thresholds[i-1]
		}
		bins[i].X1 = hi
		if i < len(thresholds) {
			bins[i].X1 = thresholds[i]
		}
	}

	for _, v := range values {
		// Index of the first threshold greater than v.
		i, found := slices.BinarySearch(thresholds, v)
		if found {
			i++
		}
		bins[i].Count++
	}
	return bins
}
