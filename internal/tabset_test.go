package rpitop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabSet_Navigation(t *testing.T) {
	t.Parallel()

	ts := NewTabSet(DefaultConfig().Charts)
	require.Equal(t, 3, ts.Len())
	assert.Equal(t, 0, ts.GetSelectedTab())

	ts.NextTab().NextTab().NextTab()
	assert.Equal(t, 0, ts.GetSelectedTab())

	ts.PrevTab()
	assert.Equal(t, 2, ts.GetSelectedTab())

	ts.SelectTab(1)
	assert.Equal(t, 1, ts.GetSelectedTab())
	ts.SelectTab(7)
	assert.Equal(t, 1, ts.GetSelectedTab())
	ts.SelectTab(-1)
	assert.Equal(t, 1, ts.GetSelectedTab())
}

func TestTabSet_GetChart(t *testing.T) {
	t.Parallel()

	ts := NewTabSet(DefaultConfig().Charts)

	chart := ts.GetChart("cpu-temperature")
	require.NotNil(t, chart)
	assert.Equal(t, "CPU temperature", chart.Config.Title)
	assert.False(t, chart.Initialized)

	chart.Initialized = true
	assert.True(t, ts.GetChart("cpu-temperature").Initialized)

	assert.Nil(t, ts.GetChart("gpu-utilization"))
}

func TestTabSet_Render(t *testing.T) {
	t.Parallel()

	t.Run("no charts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "No charts configured", NewTabSet(nil).Render())
	})
	t.Run("uninitialized chart should wait", func(t *testing.T) {
		t.Parallel()

		ts := NewTabSet(DefaultConfig().Charts).SetSize(80, 20)
		out := ts.Render()
		assert.Contains(t, out, "CPU utilization")
		assert.Contains(t, out, "Memory utilization")
		assert.Contains(t, out, "Waiting for data...")
	})
	t.Run("single chart should have no tab bar", func(t *testing.T) {
		t.Parallel()

		ts := NewTabSet([]ChartConfig{{ID: "load", Endpoint: "/load", ValueField: "value"}})
		assert.Equal(t, "Waiting for data...", ts.Render())
	})
	t.Run("initialized chart should show its range", func(t *testing.T) {
		t.Parallel()

		ts := NewTabSet(DefaultConfig().Charts).SetSize(80, 20)
		chart := ts.GetChart("cpu-utilization")
		chart.Series = Series{X: []time.Time{day(1), day(2)}, Y: []float64{10, 20}}
		chart.Layout = ChartLayout(chart.Config, chart.Series, HistoryWindow())
		chart.Initialized = true

		out := ts.Render()
		assert.NotContains(t, out, "Waiting for data...")
		assert.Contains(t, out, "2024-01-01 00:00 → 2024-01-02 00:00")
	})
	t.Run("tiny area should say so", func(t *testing.T) {
		t.Parallel()

		ts := NewTabSet(DefaultConfig().Charts).SetSize(8, 6)
		chart := ts.GetChart("cpu-utilization")
		chart.Series = Series{X: []time.Time{day(1)}, Y: []float64{10}}
		chart.Layout = ChartLayout(chart.Config, chart.Series, HistoryWindow())
		chart.Initialized = true

		assert.Contains(t, ts.Render(), "Not enough room to draw the chart")
	})
}
