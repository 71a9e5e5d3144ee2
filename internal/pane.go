package rpitop

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	paneBorderColor  = lipgloss.Color("240")
	paneFocusColor   = lipgloss.Color("170")
	paneHeadingColor = lipgloss.Color("33")
)

// Pane is a bordered panel of the dashboard with an optional heading line.
// Content taller than the pane is cut off at the bottom.
//
//	pane := NewPane("Now · raspberrypi.lan", 40, 10).
//	    SetContent("CPU  42%").
//	    SetFocused(true)
//	fmt.Println(Horizontal(pane, other))
type Pane struct {
	heading string
	body    string
	width   int
	height  int
	focused bool
}

// NewPane creates a pane of the given inner size
func NewPane(heading string, width, height int) Pane {
	return Pane{
		heading: heading,
		width:   width,
		height:  height,
	}
}

// SetContent sets the pane body
func (p Pane) SetContent(body string) Pane {
	p.body = body
	return p
}

// SetFocused highlights the border
func (p Pane) SetFocused(focused bool) Pane {
	p.focused = focused
	return p
}

// InnerSize returns the room left for the body inside the border and heading
func (p Pane) InnerSize() (int, int) {
	height := p.height
	if p.heading != "" {
		height--
	}
	return p.width, max(height, 0)
}

// Render draws the pane
func (p Pane) Render() string {
	borderColor := paneBorderColor
	if p.focused {
		borderColor = paneFocusColor
	}

	_, bodyHeight := p.InnerSize()
	body := lipgloss.NewStyle().MaxHeight(bodyHeight).Render(p.body)
	if p.heading != "" {
		heading := lipgloss.NewStyle().
			Foreground(paneHeadingColor).
			Bold(true).
			MaxWidth(p.width).
			Render(p.heading)
		body = lipgloss.JoinVertical(lipgloss.Left, heading, body)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(p.width).
		Height(p.height).
		Render(body)
}
