package rpitop

import (
	"github.com/charmbracelet/lipgloss"
)

// Horizontal renders panes side by side
func Horizontal(panes ...Pane) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, renderAll(panes)...)
}

// Vertical renders panes stacked vertically
func Vertical(panes ...Pane) string {
	return lipgloss.JoinVertical(lipgloss.Left, renderAll(panes)...)
}

// splitHeight divides total rows between the readouts pane, whose content
// needs readoutRows, and the chart pane which takes the rest. Both heights
// exclude the borders.
func splitHeight(total, readoutRows int) (int, int) {
	chartHeight := total - (readoutRows + 2) - 2
	if chartHeight < 0 {
		chartHeight = 0
	}
	return readoutRows, chartHeight
}

func renderAll(panes []Pane) []string {
	views := make([]string, len(panes))
	for i, pane := range panes {
		views[i] = pane.Render()
	}
	return views
}
