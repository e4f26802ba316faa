package neo

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Meta identifies one loaded dataset.
type Meta struct {
	ID        string    `json:"id" yaml:"id" bson:"_id"`
	LoadedAt  time.Time `json:"loaded_at" yaml:"loaded_at" bson:"loaded_at"`
	StartDate string    `json:"start_date,omitempty" yaml:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty" yaml:"end_date,omitempty" bson:"end_date,omitempty"`
}

// Dataset is an immutable, ordered list of observations with metadata
// derived from it at construction. It is safe for concurrent use.
type Dataset struct {
	meta         Meta
	observations []Observation
	dates        []string
	hazardous    int
}

// Summary is the dataset metadata as reported to callers.
type Summary struct {
	Meta              `yaml:",inline"`
	Dates             []string `json:"dates" yaml:"dates"`
	TotalCount        int      `json:"total_count" yaml:"total_count"`
	HazardousCount    int      `json:"hazardous_count" yaml:"hazardous_count"`
	NonHazardousCount int      `json:"non_hazardous_count" yaml:"non_hazardous_count"`
}

// NewDataset builds a Dataset from observations. The slice is copied, so the
// caller may reuse it. An empty meta.ID is replaced with a fresh UUID and a
// zero meta.LoadedAt with the current time.
func NewDataset(observations []Observation, meta Meta) *Dataset {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.LoadedAt.IsZero() {
		meta.LoadedAt = time.Now().UTC()
	}

	ds := &Dataset{
		meta:         meta,
		observations: slices.Clone(observations),
	}
	if ds.observations == nil {
		ds.observations = []Observation{}
	}

	seen := make(map[string]struct{})
	for _, o := range ds.observations {
		if o.Hazardous {
			ds.hazardous++
		}
		if _, ok := seen[o.Date]; !ok {
			seen[o.Date] = struct{}{}
			ds.dates = append(ds.dates, o.Date)
		}
	}
	slices.Sort(ds.dates)
	return ds
}

// Meta returns the dataset's identity.
func (d *Dataset) Meta() Meta { return d.meta }

// ID returns the snapshot ID.
func (d *Dataset) ID() string { return d.meta.ID }

// Observations returns a copy of the observations in original order.
func (d *Dataset) Observations() []Observation {
	return slices.Clone(d.observations)
}

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.observations) }

// Dates returns the distinct observation dates, ascending.
func (d *Dataset) Dates() []string {
	return slices.Clone(d.dates)
}

// HazardousCount returns the number of potentially hazardous observations.
func (d *Dataset) HazardousCount() int { return d.hazardous }

// NonHazardousCount returns the number of observations not flagged hazardous.
func (d *Dataset) NonHazardousCount() int { return len(d.observations) - d.hazardous }

// Summary returns the dataset metadata.
func (d *Dataset) Summary() Summary {
	return Summary{
		Meta:              d.meta,
		Dates:             d.Dates(),
		TotalCount:        d.Len(),
		HazardousCount:    d.HazardousCount(),
		NonHazardousCount: d.NonHazardousCount(),
	}
}

// Values returns the value of m for every observation, in original order.
func (d *Dataset) Values(m Metric) ([]float64, error) {
	if _, err := ParseMetric(string(m)); err != nil {
		return nil, err
	}
	out := make([]float64, len(d.observations))
	for i, o := range d.observations {
		out[i] = o.Value(m)
	}
	return out, nil
}

// Filter returns a new dataset holding the observations for which keep
// returns true. The new dataset shares this dataset's meta.
func (d *Dataset) Filter(keep func(Observation) bool) *Dataset {
	var out []Observation
	for _, o := range d.observations {
		if keep(o) {
			out = append(out, o)
		}
	}
	return NewDataset(out, d.meta)
}

// Snapshot is the serialized form of a Dataset, used by caches and the
// archive.
type Snapshot struct {
	Meta         Meta          `json:"meta" bson:"meta"`
	Observations []Observation `json:"observations" bson:"observations"`
}

// Snapshot returns a copy of the dataset suitable for encoding.
func (d *Dataset) Snapshot() Snapshot {
	return Snapshot{Meta: d.meta, Observations: d.Observations()}
}

// FromSnapshot rebuilds a Dataset, keeping the snapshot's ID and load time.
func FromSnapshot(s Snapshot) *Dataset {
	return NewDataset(s.Observations, s.Meta)
}
