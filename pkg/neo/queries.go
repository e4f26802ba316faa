package neo

import (
	"cmp"
	"slices"
)

// DefaultTopN is the ranking length used when TopN is asked for n <= 0.
const DefaultTopN = 10

// Size category thresholds on DiameterAvg, in kilometers. Each bound belongs
// to the larger category.
const (
	MediumThreshold    = 0.1
	LargeThreshold     = 0.5
	VeryLargeThreshold = 1.0
)

// SizeCategory is one of the four diameter classes.
type SizeCategory string

const (
	SizeSmall     SizeCategory = "small"
	SizeMedium    SizeCategory = "medium"
	SizeLarge     SizeCategory = "large"
	SizeVeryLarge SizeCategory = "very_large"
)

// SizeCategoryOrder lists the categories from smallest to largest.
var SizeCategoryOrder = []SizeCategory{SizeSmall, SizeMedium, SizeLarge, SizeVeryLarge}

// Classify returns the size category for an average diameter.
func Classify(diameterAvg float64) SizeCategory {
	switch {
	case diameterAvg < MediumThreshold:
		return SizeSmall
	case diameterAvg < LargeThreshold:
		return SizeMedium
	case diameterAvg < VeryLargeThreshold:
		return SizeLarge
	default:
		return SizeVeryLarge
	}
}

// SizeCategories partitions observations by size category.
type SizeCategories struct {
	Small     []Observation `json:"small" yaml:"small"`
	Medium    []Observation `json:"medium" yaml:"medium"`
	Large     []Observation `json:"large" yaml:"large"`
	VeryLarge []Observation `json:"very_large" yaml:"very_large"`
}

// Get returns the observations in category c.
func (s SizeCategories) Get(c SizeCategory) []Observation {
	switch c {
	case SizeSmall:
		return s.Small
	case SizeMedium:
		return s.Medium
	case SizeLarge:
		return s.Large
	case SizeVeryLarge:
		return s.VeryLarge
	}
	return nil
}

// Len returns the total number of observations across all categories.
func (s SizeCategories) Len() int {
	return len(s.Small) + len(s.Medium) + len(s.Large) + len(s.VeryLarge)
}

// Stats summarizes one metric. Q1 and Q3 are positional, see the package
// documentation.
type Stats struct {
	Metric Metric  `json:"metric" yaml:"metric"`
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Q3     float64 `json:"q3" yaml:"q3"`
}

// DailyCount is the hazard breakdown for one date.
type DailyCount struct {
	Date         string `json:"date" yaml:"date"`
	Hazardous    int    `json:"hazardous" yaml:"hazardous"`
	NonHazardous int    `json:"non_hazardous" yaml:"non_hazardous"`
	Total        int    `json:"total" yaml:"total"`
}

// ByDate partitions the observations by exact date string. Each slice keeps
// the original order. An empty dataset yields an empty, non-nil map.
func (d *Dataset) ByDate() map[string][]Observation {
	grouped := make(map[string][]Observation, len(d.dates))
	for _, o := range d.observations {
		grouped[o.Date] = append(grouped[o.Date], o)
	}
	return grouped
}

// BySizeCategory partitions the observations by DiameterAvg using
// [Classify]. Every observation lands in exactly one category.
func (d *Dataset) BySizeCategory() SizeCategories {
	cats := SizeCategories{
		Small:     []Observation{},
		Medium:    []Observation{},
		Large:     []Observation{},
		VeryLarge: []Observation{},
	}
	for _, o := range d.observations {
		switch Classify(o.DiameterAvg) {
		case SizeSmall:
			cats.Small = append(cats.Small, o)
		case SizeMedium:
			cats.Medium = append(cats.Medium, o)
		case SizeLarge:
			cats.Large = append(cats.Large, o)
		default:
			cats.VeryLarge = append(cats.VeryLarge, o)
		}
	}
	return cats
}

// TopN returns the n observations with the largest value of m, descending.
// Ties keep their original order. n <= 0 means [DefaultTopN].
func (d *Dataset) TopN(m Metric, n int) ([]Observation, error) {
	if _, err := ParseMetric(string(m)); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := slices.Clone(d.observations)
	slices.SortStableFunc(sorted, func(a, b Observation) int {
		return cmp.Compare(b.Value(m), a.Value(m))
	})
	return sorted[:min(n, len(sorted))], nil
}

// Stats computes summary statistics for m. An empty dataset yields a zero
// Stats with Count 0; NO_DATA is reserved for "nothing loaded".
func (d *Dataset) Stats(m Metric) (Stats, error) {
	values, err := d.Values(m)
	if err != nil {
		return Stats{}, err
	}
	if len(values) == 0 {
		return Stats{Metric: m}, nil
	}
	s := Summarize(values)
	s.Metric = m
	return s, nil
}

// Summarize computes Stats over values, which must be non-empty. values is
// not modified.
func Summarize(values []float64) Stats {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Stats{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   sum / float64(n),
		Median: median,
		Q1:     sorted[int(float64(n)*0.25)],
		Q3:     sorted[int(float64(n)*0.75)],
	}
}

// DailyCounts returns one entry per distinct date, in ascending date order.
func (d *Dataset) DailyCounts() []DailyCount {
	byDate := d.ByDate()
	out := make([]DailyCount, 0, len(d.dates))
	for _, date := range d.dates {
		dc := DailyCount{Date: date, Total: len(byDate[date])}
		for _, o := range byDate[date] {
			if o.Hazardous {
				dc.Hazardous++
			} else {
				dc.NonHazardous++
			}
		}
		out = append(out, dc)
	}
	return out
}
