package rpitop

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var chartLog = logger.GetOrCreate("rpitop/chart")

// ChartConfig describes one charted metric
type ChartConfig struct {
	Endpoint   string `toml:"Endpoint"`
	ID         string `toml:"ID"`
	ValueField string `toml:"ValueField"`
	Title      string `toml:"Title"`
	YAxisTitle string `toml:"YAxisTitle"`
	LineColor  string `toml:"LineColor"`
}

// Label returns the title, falling back to the chart id
func (c ChartConfig) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// Series is the full x/y data of a chart
type Series struct {
	X []time.Time
	Y []float64
}

// Layout carries the view options sent with every chart call
type Layout struct {
	Title      string
	YAxisTitle string
	LineColor  string
	DragMode   string
	XRange     [2]time.Time
}

// ChartSink creates and updates charts addressed by id. The chart does not
// support partial appends so every update carries the whole series.
type ChartSink interface {
	NewPlot(id string, series Series, layout Layout)
	UpdatePlot(id string, series Series, layout Layout)
	IsInterfaceNil() bool
}

// ChartState is the per-chart state carried between polls
type ChartState struct {
	Initialized bool
	// LatestDate is the timestamp text of the last point fetched
	LatestDate string
	Points     []SeriesPoint
}

// Series returns a copy of the accumulated points as x/y arrays
func (s *ChartState) Series() Series {
	series := Series{
		X: make([]time.Time, len(s.Points)),
		Y: make([]float64, len(s.Points)),
	}
	for i, p := range s.Points {
		series.X[i] = p.Time
		series.Y[i] = p.Value
	}
	return series
}

// ChartDeps groups what UpdateChart needs besides the chart itself
type ChartDeps struct {
	BaseURL *url.URL
	Fetcher Fetcher
	Sink    ChartSink
	Window  time.Duration
}

// UpdateChart performs one fetch-and-render pass for a chart. The request
// asks only for points after state.LatestDate once a cursor exists. On error
// state is left untouched so the next pass retries from the same cursor.
func UpdateChart(ctx context.Context, deps ChartDeps, cfg ChartConfig, state *ChartState) error {
	requestURL, err := seriesURL(deps.BaseURL, cfg.Endpoint, state.LatestDate)
	if err != nil {
		return &NetworkError{URL: cfg.Endpoint, Err: err}
	}

	body, err := deps.Fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return err
	}

	batch, err := ParseSeries(body, cfg.ValueField)
	if err != nil {
		return &ParseError{URL: requestURL, Err: err}
	}
	if batch.Len() == 0 {
		chartLog.Trace("no new points", "chart", cfg.ID, "after", state.LatestDate)
		return nil
	}
	if len(state.Points) > 0 {
		last := state.Points[len(state.Points)-1]
		if batch.Times[0].Before(last.Time) {
			return &ParseError{URL: requestURL, Err: fmt.Errorf("%s is before the last known point %s", batch.Dates[0], last.Date)}
		}
	}

	for i := 0; i < batch.Len(); i++ {
		state.Points = append(state.Points, batch.Point(i))
	}
	state.LatestDate = batch.Dates[batch.Len()-1]

	series := state.Series()
	layout := ChartLayout(cfg, series, deps.Window)
	if !state.Initialized {
		deps.Sink.NewPlot(cfg.ID, series, layout)
		state.Initialized = true
	} else {
		deps.Sink.UpdatePlot(cfg.ID, series, layout)
	}

	chartLog.Debug("chart updated", "chart", cfg.ID, "new", batch.Len(), "total", len(state.Points), "cursor", state.LatestDate)

	return nil
}

// ChartLayout builds the layout for a series. The x range ends at the
// newest point and starts window earlier, or at the oldest point if that
// is later.
func ChartLayout(cfg ChartConfig, series Series, window time.Duration) Layout {
	layout := Layout{
		Title:      cfg.Title,
		YAxisTitle: cfg.YAxisTitle,
		LineColor:  cfg.LineColor,
		DragMode:   "pan",
	}
	if len(series.X) == 0 {
		return layout
	}

	minDate := slices.MinFunc(series.X, func(a, b time.Time) int { return a.Compare(b) })
	maxDate := slices.MaxFunc(series.X, func(a, b time.Time) int { return a.Compare(b) })
	start := maxDate.Add(-window)
	if minDate.After(start) {
		start = minDate
	}
	layout.XRange = [2]time.Time{start, maxDate}

	return layout
}

func seriesURL(base *url.URL, endpoint, after string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}
	if after != "" {
		query := u.Query()
		query.Set(RECORDED_AFTER_PARAM, after)
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// ChartUpdater owns the state of one chart and updates it on every poll
type ChartUpdater struct {
	cfg     ChartConfig
	deps    ChartDeps
	state   ChartState
	metrics *Metrics
}

// NewChartUpdater creates an updater for a single chart
func NewChartUpdater(cfg ChartConfig, deps ChartDeps, metrics *Metrics) (*ChartUpdater, error) {
	if check.IfNil(deps.Fetcher) {
		return nil, errors.New("nil fetcher")
	}
	if check.IfNil(deps.Sink) {
		return nil, errors.New("nil chart sink")
	}
	if cfg.ID == "" {
		return nil, errors.New("chart without id")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("chart %s: empty endpoint", cfg.ID)
	}
	if cfg.ValueField == "" {
		return nil, fmt.Errorf("chart %s: empty value field", cfg.ID)
	}
	if deps.Window <= 0 {
		deps.Window = HistoryWindow()
	}

	return &ChartUpdater{
		cfg:     cfg,
		deps:    deps,
		metrics: metrics,
	}, nil
}

// Update performs one pass for the chart
func (u *ChartUpdater) Update(ctx context.Context) error {
	err := UpdateChart(ctx, u.deps, u.cfg, &u.state)
	if err == nil {
		u.metrics.ObserveSeries(u.cfg.ID, len(u.state.Points))
	}
	return err
}

// Name returns the chart id
func (u *ChartUpdater) Name() string {
	return u.cfg.ID
}

// State returns a copy of the chart state. It must not be called while the
// updater is being polled.
func (u *ChartUpdater) State() ChartState {
	state := u.state
	state.Points = slices.Clone(u.state.Points)
	return state
}
