package rpitop

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var dashboardLog = logger.GetOrCreate("rpitop/dashboard")

// sideBySideWidth is the terminal width from which readouts and charts are
// placed next to each other
const sideBySideWidth = 160

// readoutLabelWidth is the column width of readout labels
const readoutLabelWidth = 13

type tickMsg time.Time

type readoutMsg ReadoutFrame

type plotMsg struct {
	id     string
	series Series
	layout Layout
	create bool
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Sink is a render target for both readouts and charts
type Sink interface {
	ReadoutSink
	ChartSink
}

// programSink forwards updater output to the dashboard as messages so that
// all render state stays owned by the bubbletea event loop
type programSink struct {
	send func(tea.Msg)
}

// Apply implements ReadoutSink
func (s *programSink) Apply(frame ReadoutFrame) {
	s.send(readoutMsg(frame))
}

// NewPlot implements ChartSink
func (s *programSink) NewPlot(id string, series Series, layout Layout) {
	s.send(plotMsg{id: id, series: series, layout: layout, create: true})
}

// UpdatePlot implements ChartSink
func (s *programSink) UpdatePlot(id string, series Series, layout Layout) {
	s.send(plotMsg{id: id, series: series, layout: layout})
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *programSink) IsInterfaceNil() bool {
	return s == nil
}

type dashboardModel struct {
	source     string
	window     string
	charts     *TabSet
	texts      map[string]string
	bars       map[string]BarWidth
	lastUpdate time.Time
	now        func() time.Time
	width      int
	height     int
	ready      bool
}

func newDashboardModel(source string, window time.Duration, charts []ChartConfig) dashboardModel {
	return dashboardModel{
		source: source,
		window: formatWindow(window),
		charts: NewTabSet(charts),
		texts:  make(map[string]string),
		bars:   make(map[string]BarWidth),
		now:    time.Now,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h", "left", "[":
			m.charts.PrevTab()
		case "l", "right", "]":
			m.charts.NextTab()
		case "g":
			m.charts.SelectTab(0)
		case "G":
			m.charts.SelectTab(m.charts.Len() - 1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case readoutMsg:
		m.texts = maps.Clone(msg.Texts)
		m.bars = maps.Clone(msg.Bars)
		m.lastUpdate = m.now()

	case plotMsg:
		chart := m.charts.GetChart(msg.id)
		if chart == nil {
			dashboardLog.Warn("plot for unknown chart", "chart", msg.id)
			break
		}
		if !msg.create && !chart.Initialized {
			dashboardLog.Warn("update for a chart that was never created", "chart", msg.id)
			break
		}
		chart.Series = msg.series
		chart.Layout = msg.layout
		chart.Initialized = true
		m.lastUpdate = m.now()

	case tickMsg:
		return m, tickCmd()
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// help bar takes the last row
	availableHeight := m.height - 1

	var panesView string
	if m.width >= sideBySideWidth {
		readoutWidth := m.width/3 - 2
		chartWidth := m.width - readoutWidth - 4
		paneHeight := availableHeight - 2
		panesView = Horizontal(
			m.readoutPane(readoutWidth, paneHeight),
			m.chartPane(chartWidth, paneHeight),
		)
	} else {
		readoutHeight, chartHeight := splitHeight(availableHeight, 1+2*len(ReadoutOrder))
		paneWidth := m.width - 2
		panesView = Vertical(
			m.readoutPane(paneWidth, readoutHeight),
			m.chartPane(paneWidth, chartHeight),
		)
	}

	helpBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Background(lipgloss.Color("235")).
		Width(m.width).
		Align(lipgloss.Center).
		Render("h/l=Switch Chart  g/G=First/Last  q=Quit  " + m.updatedText())

	return panesView + "\n" + helpBar
}

// readoutPane renders each readout text with its headroom gauge below
func (m dashboardModel) readoutPane(width, height int) Pane {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Width(readoutLabelWidth)

	rows := make([]string, 0, 2*len(ReadoutOrder))
	for _, r := range ReadoutOrder {
		text, ok := m.texts[r.Readout]
		if !ok {
			text = "..."
		}
		rows = append(rows, labelStyle.Render(r.Label)+text)

		if bar, ok := m.bars[r.Bar]; ok {
			rows = append(rows, renderGauge(bar, "headroom "+bar.String(), width))
		} else {
			rows = append(rows, "")
		}
	}

	return NewPane("Now · "+m.source, width, height).SetContent(strings.Join(rows, "\n"))
}

// chartPane renders the tabbed history charts
func (m dashboardModel) chartPane(width, height int) Pane {
	pane := NewPane("History · last "+m.window, width, height).SetFocused(true)
	innerWidth, innerHeight := pane.InnerSize()
	m.charts.SetSize(innerWidth, innerHeight)
	return pane.SetContent(m.charts.Render())
}

func (m dashboardModel) updatedText() string {
	if m.lastUpdate.IsZero() {
		return "waiting for first update"
	}
	return "updated " + m.now().Sub(m.lastUpdate).Round(time.Second).String() + " ago"
}

func formatWindow(window time.Duration) string {
	if window%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", int(window/(24*time.Hour)))
	}
	return window.String()
}

// Dashboard runs the terminal dashboard until the user quits. Each updater
// polls on its own loop; all loops are stopped before Dashboard returns.
func Dashboard(ctx context.Context, cfg Config, baseURL *url.URL, metrics *Metrics) error {
	m := newDashboardModel(baseURL.Host, cfg.HistoryWindow(), cfg.Charts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	sink := &programSink{send: p.Send}

	handles, err := startUpdaters(ctx, cfg, baseURL, NewHTTPFetcher(cfg.RequestTimeout()), sink, metrics)
	if err != nil {
		return err
	}
	defer func() {
		for _, h := range handles {
			h.Stop()
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

type updater struct {
	name   string
	update func(ctx context.Context) error
}

// startUpdaters starts one poll loop for the readouts and one per chart
func startUpdaters(ctx context.Context, cfg Config, baseURL *url.URL, fetcher Fetcher, sink Sink, metrics *Metrics) ([]*PollHandle, error) {
	snapshotURL, err := seriesURL(baseURL, cfg.SnapshotEndpoint, "")
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot endpoint: %w", err)
	}
	readouts, err := NewReadoutUpdater(snapshotURL, fetcher, sink)
	if err != nil {
		return nil, err
	}

	updaters := []updater{{"readouts", readouts.Update}}
	for _, chartCfg := range cfg.Charts {
		chart, err := NewChartUpdater(chartCfg, ChartDeps{
			BaseURL: baseURL,
			Fetcher: fetcher,
			Sink:    sink,
			Window:  cfg.HistoryWindow(),
		}, metrics)
		if err != nil {
			return nil, err
		}
		updaters = append(updaters, updater{chart.Name(), chart.Update})
	}

	handles := make([]*PollHandle, 0, len(updaters))
	for _, u := range updaters {
		handles = append(handles, StartPolling(ctx, u.name, cfg.Interval(), u.update, metrics))
	}

	return handles, nil
}
