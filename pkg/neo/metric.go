package neo

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/neoscope/pkg/errors"
)

// Metric names a numeric Observation field. The names match the JSON keys.
type Metric string

const (
	MetricDiameterMin       Metric = "diameter_min"
	MetricDiameterMax       Metric = "diameter_max"
	MetricDiameterAvg       Metric = "diameter_avg"
	MetricVelocity          Metric = "velocity"
	MetricMissDistance      Metric = "miss_distance"
	MetricAbsoluteMagnitude Metric = "absolute_magnitude"
)

var metrics = []Metric{
	MetricDiameterMin,
	MetricDiameterMax,
	MetricDiameterAvg,
	MetricVelocity,
	MetricMissDistance,
	MetricAbsoluteMagnitude,
}

// Metrics returns every valid metric in declaration order.
func Metrics() []Metric {
	return slices.Clone(metrics)
}

// ParseMetric resolves a metric name. Matching is exact; an unknown name
// returns an UNKNOWN_METRIC error listing the valid ones.
func ParseMetric(name string) (Metric, error) {
	m := Metric(name)
	if !m.Valid() {
		return "", errs.New(errs.ErrCodeUnknownMetric, "unknown metric %q (available: %s)", name, metricNames())
	}
	return m, nil
}

// Valid reports whether m names a numeric Observation field.
func (m Metric) Valid() bool {
	return slices.Contains(metrics, m)
}

func (m Metric) String() string { return string(m) }

func metricNames() string {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
