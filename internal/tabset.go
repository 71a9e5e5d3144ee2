package rpitop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chart is the render target of one chart id
type Chart struct {
	Config      ChartConfig
	Series      Series
	Layout      Layout
	Initialized bool
}

// TabSet manages multiple charts with tab navigation
type TabSet struct {
	charts      []Chart
	selectedTab int
	width       int
	height      int
}

// NewTabSet creates a TabSet with one uninitialized chart per config
func NewTabSet(configs []ChartConfig) *TabSet {
	ts := &TabSet{
		charts:      make([]Chart, 0, len(configs)),
		selectedTab: 0,
		width:       40,
		height:      10,
	}
	for _, cfg := range configs {
		ts.charts = append(ts.charts, Chart{Config: cfg})
	}
	return ts
}

// SetSize sets the dimensions for rendering
func (ts *TabSet) SetSize(width, height int) *TabSet {
	ts.width = width
	ts.height = height
	return ts
}

// SelectTab changes the active tab
func (ts *TabSet) SelectTab(index int) *TabSet {
	if index >= 0 && index < len(ts.charts) {
		ts.selectedTab = index
	}
	return ts
}

// NextTab moves to the next tab (wraps around)
func (ts *TabSet) NextTab() *TabSet {
	if len(ts.charts) > 0 {
		ts.selectedTab = (ts.selectedTab + 1) % len(ts.charts)
	}
	return ts
}

// PrevTab moves to the previous tab (wraps around)
func (ts *TabSet) PrevTab() *TabSet {
	if len(ts.charts) > 0 {
		ts.selectedTab = (ts.selectedTab - 1 + len(ts.charts)) % len(ts.charts)
	}
	return ts
}

// Len returns the number of tabs
func (ts *TabSet) Len() int {
	return len(ts.charts)
}

// GetSelectedTab returns the currently selected tab index
func (ts *TabSet) GetSelectedTab() int {
	return ts.selectedTab
}

// GetChart returns the chart with the given id, or nil
func (ts *TabSet) GetChart(id string) *Chart {
	for i := range ts.charts {
		if ts.charts[i].Config.ID == id {
			return &ts.charts[i]
		}
	}
	return nil
}

// Render renders the tab bar and the selected chart
func (ts *TabSet) Render() string {
	if len(ts.charts) == 0 {
		return "No charts configured"
	}

	var b strings.Builder

	selected := ts.charts[ts.selectedTab]

	if len(ts.charts) > 1 {
		b.WriteString(ts.renderTabs())
		b.WriteString("\n")
	}

	contentHeight := ts.height
	if len(ts.charts) > 1 {
		contentHeight -= 3 // tab bar height
	}

	b.WriteString(ts.renderChartContent(selected, ts.width, contentHeight))

	return b.String()
}

// renderTabs draws one boxed label per chart, highlighting the selected one
func (ts *TabSet) renderTabs() string {
	labels := make([]string, len(ts.charts))
	for i, chart := range ts.charts {
		style := lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			Foreground(lipgloss.Color("240")).
			BorderForeground(lipgloss.Color("236"))
		if i == ts.selectedTab {
			style = style.
				Bold(true).
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				BorderForeground(lipgloss.Color("170"))
		}
		labels[i] = style.Render(chart.Config.Label())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// renderChartContent renders the y axis title, the plot and the x range
func (ts *TabSet) renderChartContent(chart Chart, width, height int) string {
	if !chart.Initialized {
		return "Waiting for data..."
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var content strings.Builder
	if chart.Layout.YAxisTitle != "" {
		content.WriteString(dimStyle.Render(chart.Layout.YAxisTitle))
		content.WriteString("\n")
		height--
	}

	plot := renderPlot(chart.Series, chart.Layout, width, height-1)
	if plot == "" {
		content.WriteString("Not enough room to draw the chart")
		return content.String()
	}
	content.WriteString(plot)
	content.WriteString("\n")

	xRange := chart.Layout.XRange
	if !xRange[0].IsZero() {
		content.WriteString(dimStyle.Render(
			xRange[0].Format("2006-01-02 15:04") + " → " + xRange[1].Format("2006-01-02 15:04"),
		))
	}

	return content.String()
}
