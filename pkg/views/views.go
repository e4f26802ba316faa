// Package views reshapes a [neo.Dataset] into the data each chart type needs.
//
// Every chart in the catalog has an ID, a display title, a section and a
// builder. Builders return plain JSON/YAML-serializable values; drawing them
// is up to the consumer.
//
//	v, err := views.Build("histogram", ds)
package views

import (
	"slices"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// Section groups charts by the kind of question they answer.
type Section string

const (
	SectionCategorical  Section = "categorical"
	SectionDistribution Section = "distribution"
	SectionRelationship Section = "relationship"
	SectionTemporal     Section = "temporal"
)

// Chart describes one entry in the catalog.
type Chart struct {
	ID       string  `json:"id" yaml:"id"`
	Title    string  `json:"title" yaml:"title"`
	Subtitle string  `json:"subtitle" yaml:"subtitle"`
	Section  Section `json:"section" yaml:"section"`

	build func(*neo.Dataset) (any, error)
}

// Build produces the chart's view of ds.
func (c Chart) Build(ds *neo.Dataset) (any, error) {
	return c.build(ds)
}

// Slice is a labeled count for pie and donut charts.
type Slice struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryHazard splits one size category by hazard flag.
type CategoryHazard struct {
	Category  neo.SizeCategory `json:"category" yaml:"category"`
	Hazardous int              `json:"hazardous" yaml:"hazardous"`
	Safe      int              `json:"safe" yaml:"safe"`
}

// HistogramView is a binned distribution of one metric.
type HistogramView struct {
	Metric neo.Metric `json:"metric" yaml:"metric"`
	Bins   []Bin      `json:"bins" yaml:"bins"`
}

// BoxGroup is the five-number summary of one group.
type BoxGroup struct {
	Group string    `json:"group" yaml:"group"`
	Stats neo.Stats `json:"stats" yaml:"stats"`
}

// ValueGroup holds the raw values of one group.
type ValueGroup struct {
	Group  string    `json:"group" yaml:"group"`
	Values []float64 `json:"values" yaml:"values"`
}

// Point is one observation placed on two or three axes.
type Point struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Hazardous bool    `json:"is_hazardous" yaml:"is_hazardous"`
}

// HeatCell counts observations for one date and size category.
type HeatCell struct {
	Date     string           `json:"date" yaml:"date"`
	Category neo.SizeCategory `json:"category" yaml:"category"`
	Count    int              `json:"count" yaml:"count"`
}

// CumulativePoint is a daily total with its running sum.
type CumulativePoint struct {
	Date       string `json:"date" yaml:"date"`
	Total      int    `json:"total" yaml:"total"`
	Cumulative int    `json:"cumulative" yaml:"cumulative"`
}

const (
	groupHazardous    = "hazardous"
	groupNonHazardous = "non_hazardous"
)

var catalog = []Chart{
	{ID: "bar-chart", Title: "Bar Chart", Subtitle: "Largest asteroids by average diameter", Section: SectionCategorical, build: topBy(neo.MetricDiameterAvg)},
	{ID: "horizontal-bar", Title: "Horizontal Bar", Subtitle: "Fastest asteroids by relative velocity", Section: SectionCategorical, build: topBy(neo.MetricVelocity)},
	{ID: "grouped-bar", Title: "Grouped Bar", Subtitle: "Hazardous vs safe per size category", Section: SectionCategorical, build: groupedBar},
	{ID: "stacked-bar", Title: "Stacked Bar", Subtitle: "Daily counts split by hazard", Section: SectionCategorical, build: daily},
	{ID: "pie-chart", Title: "Pie Chart", Subtitle: "Share of potentially hazardous asteroids", Section: SectionCategorical, build: hazardSplit},
	{ID: "donut-chart", Title: "Donut Chart", Subtitle: "Asteroids per size category", Section: SectionCategorical, build: sizeSplit},
	{ID: "histogram", Title: "Histogram", Subtitle: "Distribution of asteroid velocities", Section: SectionDistribution, build: histogram(neo.MetricVelocity)},
	{ID: "box-plot", Title: "Box Plot", Subtitle: "Velocity quartiles by hazard", Section: SectionDistribution, build: boxPlot(neo.MetricVelocity)},
	{ID: "violin-plot", Title: "Violin Plot", Subtitle: "Velocity density by hazard", Section: SectionDistribution, build: violin(neo.MetricVelocity)},
	{ID: "scatter-plot", Title: "Scatter Plot", Subtitle: "Diameter vs velocity", Section: SectionRelationship, build: scatter},
	{ID: "bubble-chart", Title: "Bubble Chart", Subtitle: "Diameter vs velocity sized by miss distance", Section: SectionRelationship, build: bubble},
	{ID: "heatmap", Title: "Heatmap", Subtitle: "Size categories per day", Section: SectionRelationship, build: heatmap},
	{ID: "line-chart", Title: "Line Chart", Subtitle: "Asteroids per day", Section: SectionTemporal, build: daily},
	{ID: "area-chart", Title: "Area Chart", Subtitle: "Cumulative asteroid count", Section: SectionTemporal, build: cumulative},
}

// Catalog returns every chart in display order.
func Catalog() []Chart {
	return slices.Clone(catalog)
}

// Lookup finds a chart by ID.
func Lookup(id string) (Chart, bool) {
	i := slices.IndexFunc(catalog, func(c Chart) bool { return c.ID == id })
	if i < 0 {
		return Chart{}, false
	}
	return catalog[i], true
}

// Build produces the view for chart id. Unknown IDs return NOT_FOUND.
func Build(id string, ds *neo.Dataset) (any, error) {
	c, ok := Lookup(id)
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "unknown chart %q", id)
	}
	return c.Build(ds)
}

// Cumulative adds a running total to daily counts.
func Cumulative(daily []neo.DailyCount) []CumulativePoint {
	out := make([]CumulativePoint, len(daily))
	sum := 0
	for i, d := range daily {
		sum += d.Total
		out[i] = CumulativePoint{Date: d.Date, Total: d.Total, Cumulative: sum}
	}
	return out
}

func topBy(m neo.Metric) func(*neo.Dataset) (any, error) {
	return func(ds *neo.Dataset) (any, error) {
		return ds.TopN(m, neo.DefaultTopN)
	}
}

func groupedBar(ds *neo.Dataset) (any, error) {
	cats := ds.BySizeCategory()
	out := make([]CategoryHazard, 0, len(neo.SizeCategoryOrder))
	for _, c := range neo.SizeCategoryOrder {
		row := CategoryHazard{Category: c}
		for _, o := range cats.Get(c) {
			if o.Hazardous {
				row.Hazardous++
			} else {
				row.Safe++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func daily(ds *neo.Dataset) (any, error) {
	return ds.DailyCounts(), nil
}

func cumulative(ds *neo.Dataset) (any, error) {
	return Cumulative(ds.DailyCounts()), nil
}

func hazardSplit(ds *neo.Dataset) (any, error) {
	return []Slice{
		{Label: groupHazardous, Count: ds.HazardousCount()},
		{Label: groupNonHazardous, Count: ds.NonHazardousCount()},
	}, nil
}

func sizeSplit(ds *neo.Dataset) (any, error) {
	cats := ds.BySizeCategory()
	out := make([]Slice, 0, len(neo.SizeCategoryOrder))
	for _, c := range neo.SizeCategoryOrder {
		out = append(out, Slice{Label: string(c), Count: len(cats.Get(c))})
	}
	return out, nil
}

func histogram(m neo.Metric) func(*neo.Dataset) (any, error) {
	return func(ds *neo.Dataset) (any, error) {
		values, err := ds.Values(m)
		if err != nil {
			return nil, err
		}
		return HistogramView{Metric: m, Bins: Histogram(values, DefaultBinCount)}, nil
	}
}

type hazardGroup struct {
	name string
	ds   *neo.Dataset
}

// hazardGroups splits ds by hazard flag, dropping empty groups.
func hazardGroups(ds *neo.Dataset) []hazardGroup {
	groups := []hazardGroup{
		{groupHazardous, ds.Filter(func(o neo.Observation) bool { return o.Hazardous })},
		{groupNonHazardous, ds.Filter(func(o neo.Observation) bool { return !o.Hazardous })},
	}
	return slices.DeleteFunc(groups, func(g hazardGroup) bool { return g.ds.Len() == 0 })
}

func boxPlot(m neo.Metric) func(*neo.Dataset) (any, error) {
	return func(ds *neo.Dataset) (any, error) {
		out := []BoxGroup{}
		for _, g := range hazardGroups(ds) {
			s, err := g.ds.Stats(m)
			if err != nil {
				return nil, err
			}
			out = append(out, BoxGroup{Group: g.name, Stats: s})
		}
		return out, nil
	}
}

func violin(m neo.Metric) func(*neo.Dataset) (any, error) {
	return func(ds *neo.Dataset) (any, error) {
		out := []ValueGroup{}
		for _, g := range hazardGroups(ds) {
			values, err := g.ds.Values(m)
			if err != nil {
				return nil, err
			}
			out = append(out, ValueGroup{Group: g.name, Values: values})
		}
		return out, nil
	}
}

func scatter(ds *neo.Dataset) (any, error) {
	obs := ds.Observations()
	out := make([]Point, len(obs))
	for i, o := range obs {
		out[i] = Point{ID: o.ID, Name: o.Name, X: o.DiameterAvg, Y: o.Velocity, Hazardous: o.Hazardous}
	}
	return out, nil
}

func bubble(ds *neo.Dataset) (any, error) {
	obs := ds.Observations()
	out := make([]Point, len(obs))
	for i, o := range obs {
		out[i] = Point{ID: o.ID, Name: o.Name, X: o.DiameterAvg, Y: o.Velocity, Size: o.MissDistance, Hazardous: o.Hazardous}
	}
	return out, nil
}

func heatmap(ds *neo.Dataset) (any, error) {
	byDate := ds.ByDate()
	out := make([]HeatCell, 0, len(byDate)*len(neo.SizeCategoryOrder))
	for _, date := range ds.Dates() {
		counts := make(map[neo.SizeCategory]int)
		for _, o := range byDate[date] {
			counts[neo.Classify(o.DiameterAvg)]++
		}
		for _, c := range neo.SizeCategoryOrder {
			out = append(out, HeatCell{Date: date, Category: c, Count: counts[c]})
		}
	}
	return out, nil
}
