package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/neo"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listCurrentStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	detailKeyStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// browseSorts are the orderings the browser cycles through with "s".
var browseSorts = []neo.Metric{
	neo.MetricDiameterAvg,
	neo.MetricVelocity,
	neo.MetricMissDistance,
	neo.MetricAbsoluteMagnitude,
}

// =============================================================================
// BrowseModel - Interactive observation browser
// =============================================================================

// BrowseModel is the bubbletea model for scrolling through a dataset.
type BrowseModel struct {
	Dataset       *neo.Dataset
	Rows          []neo.Observation
	Cursor        int
	Offset        int
	Height        int
	Sort          int
	HazardousOnly bool
	Detail        bool
}

// NewBrowseModel creates a browser sorted by average diameter.
func NewBrowseModel(ds *neo.Dataset) BrowseModel {
	m := BrowseModel{Dataset: ds, Height: 15}
	m.reload()
	return m
}

// reload recomputes the visible rows after the sort or filter changed.
func (m *BrowseModel) reload() {
	ds := m.Dataset
	if m.HazardousOnly {
		ds = ds.Filter(func(o neo.Observation) bool { return o.Hazardous })
	}
	rows, err := ds.TopN(browseSorts[m.Sort], ds.Len())
	if err != nil {
		rows = ds.Observations()
	}
	m.Rows = rows
	m.Cursor, m.Offset = 0, 0
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.Detail = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.Sort = (m.Sort + 1) % len(browseSorts)
			m.reload()
		case "h":
			m.HazardousOnly = !m.HazardousOnly
			m.reload()
		case "enter":
			if len(m.Rows) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	title := fmt.Sprintf("Asteroids by %s", browseSorts[m.Sort])
	if m.HazardousOnly {
		title += " (hazardous only)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  s sort  h hazardous  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no observations"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		o := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		hz := ""
		if o.Hazardous {
			hz = "!"
		}
		rows = append(rows, []string{cursor, o.Name, o.Date, formatKm(o.DiameterAvg), formatNumber(o.Velocity), hz})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Date", "Diameter km", "Velocity km/h", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listCurrentStyle
			case col == 5:
				return StyleHazard
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m BrowseModel) detailView() string {
	o := m.Rows[m.Cursor]
	var b strings.Builder
	b.WriteString(StyleTitle.Render(o.Name))
	b.WriteString("\n\n")
	for _, kv := range [][2]string{
		{"id", o.ID},
		{"date", o.Date},
		{"diameter min", formatKm(o.DiameterMin) + " km"},
		{"diameter max", formatKm(o.DiameterMax) + " km"},
		{"diameter avg", formatKm(o.DiameterAvg) + " km"},
		{"size", string(neo.Classify(o.DiameterAvg))},
		{"velocity", formatNumber(o.Velocity) + " km/h"},
		{"miss distance", formatNumber(o.MissDistance) + " km"},
		{"magnitude", fmt.Sprintf("%.2f", o.AbsoluteMagnitude)},
		{"hazardous", hazardLabel(o.Hazardous)},
	} {
		b.WriteString(detailKeyStyle.Render(kv[0]))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(kv[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	return b.String()
}

// browseCommand opens the interactive browser on a loaded dataset.
func (c *CLI) browseCommand() *cobra.Command {
	return c.datasetCommand(&cobra.Command{
		Use:   "browse",
		Short: "Browse observations interactively",
		Args:  cobra.NoArgs,
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		p := tea.NewProgram(NewBrowseModel(ds),
			tea.WithContext(cmd.Context()),
			tea.WithAltScreen(),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		_, err := p.Run()
		return err
	})
}
