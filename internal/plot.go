package rpitop

import (
	"image"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

// plotAxesWidth is the space termui reserves for y axis labels
const plotAxesWidth = 6

var lineColors = map[string]ui.Color{
	"black":   ui.ColorBlack,
	"red":     ui.ColorRed,
	"green":   ui.ColorGreen,
	"yellow":  ui.ColorYellow,
	"blue":    ui.ColorBlue,
	"magenta": ui.ColorMagenta,
	"cyan":    ui.ColorCyan,
	"white":   ui.ColorWhite,
}

// lineColor maps a color name to a termui color, defaulting to red
func lineColor(name string) ui.Color {
	if c, ok := lineColors[strings.ToLower(name)]; ok {
		return c
	}
	return ui.ColorRed
}

// renderPlot draws the visible part of a series as a braille line chart
func renderPlot(series Series, layout Layout, width, height int) string {
	if width < plotAxesWidth+4 || height < 4 {
		return ""
	}

	values := visibleValues(series, layout.XRange)
	if len(values) == 0 {
		return ""
	}
	values = downsample(values, width-plotAxesWidth-1)
	// termui needs two points to draw a line
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}

	plot := widgets.NewPlot()
	plot.Border = false
	plot.Data = [][]float64{values}
	plot.LineColors = []ui.Color{lineColor(layout.LineColor)}
	plot.AxesColor = ui.ColorWhite
	plot.MaxVal = plotMax(values)
	// termui insets the inner area by one cell for the border even when it
	// is hidden
	plot.SetRect(-1, -1, width+1, height+1)

	buf := ui.NewBuffer(image.Rect(0, 0, width, height))
	plot.Draw(buf)

	return bufferString(buf)
}

// renderGauge draws a one-line bar filled to width percent with label
// centered on it. The width is clamped here, not by the caller.
func renderGauge(width BarWidth, label string, columns int) string {
	if columns < 1 {
		return ""
	}

	percent := math.Round(float64(width))
	percent = math.Max(0, math.Min(100, percent))

	gauge := widgets.NewGauge()
	gauge.Border = false
	gauge.Percent = int(percent)
	gauge.Label = label
	gauge.BarColor = ui.ColorGreen
	gauge.SetRect(-1, -1, columns+1, 2)

	buf := ui.NewBuffer(image.Rect(0, 0, columns, 1))
	gauge.Draw(buf)

	return bufferString(buf)
}

// visibleValues returns the values whose timestamp falls inside xRange. A
// zero range keeps everything.
func visibleValues(series Series, xRange [2]time.Time) []float64 {
	if xRange[0].IsZero() && xRange[1].IsZero() {
		return series.Y
	}
	values := make([]float64, 0, len(series.Y))
	for i, x := range series.X {
		if x.Before(xRange[0]) || x.After(xRange[1]) {
			continue
		}
		values = append(values, series.Y[i])
	}
	return values
}

// downsample averages values into at most n buckets
func downsample(values []float64, n int) []float64 {
	if n < 1 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		start := k * len(values) / n
		end := (k + 1) * len(values) / n
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[k] = sum / float64(end-start)
	}
	return out
}

func plotMax(values []float64) float64 {
	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal <= 0 {
		return 1
	}
	return maxVal * 1.1
}

// bufferString converts a termui buffer into text, keeping foreground
// colors. Cells only colored by their background become full blocks.
func bufferString(buf *ui.Buffer) string {
	var b strings.Builder
	for y := buf.Min.Y; y < buf.Max.Y; y++ {
		if y > buf.Min.Y {
			b.WriteString("\n")
		}

		var run strings.Builder
		runColor := ui.ColorClear
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == ui.ColorClear {
				b.WriteString(run.String())
			} else {
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(runColor))))
				b.WriteString(style.Render(run.String()))
			}
			run.Reset()
		}

		for x := buf.Min.X; x < buf.Max.X; x++ {
			cell := buf.GetCell(image.Pt(x, y))
			r, color := cell.Rune, cell.Style.Fg
			if r == 0 {
				r = ' '
			}
			if r == ' ' && cell.Style.Bg != ui.ColorClear {
				r, color = '█', cell.Style.Bg
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}
