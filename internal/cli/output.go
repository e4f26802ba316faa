package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	nio "github.com/matzehuels/neoscope/pkg/io"
	"github.com/matzehuels/neoscope/pkg/neo"
	"github.com/matzehuels/neoscope/pkg/views"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// emit writes v in the selected format. Table output is produced by
// renderTable; structured formats encode v directly.
func (c *CLI) emit(w io.Writer, v any, renderTable func() string) error {
	f, err := nio.ParseFormat(c.format)
	if err != nil {
		return err
	}
	if f == nio.FormatTable {
		_, err := fmt.Fprintln(w, renderTable())
		return err
	}
	return nio.Write(w, f, v)
}

// isTable reports whether human-readable output was requested.
func (c *CLI) isTable() bool {
	f, err := nio.ParseFormat(c.format)
	return err == nil && f == nio.FormatTable
}

// newTable returns a bordered table in the CLI palette. Numeric columns,
// given by index, are right-aligned.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

// =============================================================================
// Renderers
// =============================================================================

func observationTable(obs []neo.Observation) string {
	rows := make([][]string, len(obs))
	for i, o := range obs {
		rows[i] = []string{
			o.Name,
			o.Date,
			formatKm(o.DiameterAvg),
			formatNumber(o.Velocity),
			formatNumber(o.MissDistance),
			strconv.FormatFloat(o.AbsoluteMagnitude, 'f', 1, 64),
			hazardLabel(o.Hazardous),
		}
	}
	return newTable(
		[]string{"Name", "Date", "Diameter km", "Velocity km/h", "Miss km", "H", "Hazardous"},
		rows, 2, 3, 4, 5,
	).Render()
}

func statsTable(s neo.Stats) string {
	rows := [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"min", formatFloat(s.Min)},
		{"q1", formatFloat(s.Q1)},
		{"median", formatFloat(s.Median)},
		{"mean", formatFloat(s.Mean)},
		{"q3", formatFloat(s.Q3)},
		{"max", formatFloat(s.Max)},
	}
	return newTable([]string{string(s.Metric), ""}, rows, 1).Render()
}

func dailyTable(days []neo.DailyCount) string {
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{d.Date, strconv.Itoa(d.Hazardous), strconv.Itoa(d.NonHazardous), strconv.Itoa(d.Total)}
	}
	return newTable([]string{"Date", "Hazardous", "Non-hazardous", "Total"}, rows, 1, 2, 3).Render()
}

func dateTable(dates []string, byDate map[string][]neo.Observation) string {
	rows := make([][]string, len(dates))
	for i, d := range dates {
		rows[i] = []string{d, strconv.Itoa(len(byDate[d]))}
	}
	return newTable([]string{"Date", "Asteroids"}, rows, 1).Render()
}

func sizeTable(cats neo.SizeCategories) string {
	bounds := map[neo.SizeCategory]string{
		neo.SizeSmall:     fmt.Sprintf("< %g km", neo.MediumThreshold),
		neo.SizeMedium:    fmt.Sprintf("%g to %g km", neo.MediumThreshold, neo.LargeThreshold),
		neo.SizeLarge:     fmt.Sprintf("%g to %g km", neo.LargeThreshold, neo.VeryLargeThreshold),
		neo.SizeVeryLarge: fmt.Sprintf(">= %g km", neo.VeryLargeThreshold),
	}
	rows := make([][]string, 0, len(neo.SizeCategoryOrder))
	for _, cat := range neo.SizeCategoryOrder {
		rows = append(rows, []string{string(cat), bounds[cat], strconv.Itoa(len(cats.Get(cat)))})
	}
	return newTable([]string{"Category", "Diameter", "Asteroids"}, rows, 2).Render()
}

func catalogTable(charts []views.Chart) string {
	rows := make([][]string, len(charts))
	for i, c := range charts {
		rows[i] = []string{c.ID, string(c.Section), c.Subtitle}
	}
	return newTable([]string{"ID", "Section", "Shows"}, rows).Render()
}

// =============================================================================
// Formatting
// =============================================================================

func hazardLabel(hazardous bool) string {
	if hazardous {
		return StyleHazard.Render("yes")
	}
	return StyleDim.Render("no")
}

func formatKm(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// formatNumber renders large magnitudes with thousands separators.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func formatFloat(v float64) string {
	if v >= 1000 || v <= -1000 {
		return formatNumber(v)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
