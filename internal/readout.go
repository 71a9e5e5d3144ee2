package rpitop

import (
	"context"
	"errors"
	"strconv"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var readoutLog = logger.GetOrCreate("rpitop/readout")

// Readout target ids
const (
	CPUUtilizationReadout     = "current-cpu-utilization"
	CPUTemperatureReadout     = "current-cpu-temperature"
	MemoryUtilizationReadout  = "current-memory-utilization"
	StorageUtilizationReadout = "current-storage-utilization"

	CPUUtilizationBar     = "cpu-utilization-progress"
	CPUTemperatureBar     = "cpu-temperature-progress"
	MemoryUtilizationBar  = "memory-utilization-progress"
	StorageUtilizationBar = "storage-utilization-progress"
)

// ReadoutOrder lists readout targets with the bar shown under each
var ReadoutOrder = []struct {
	Label   string
	Readout string
	Bar     string
}{
	{"CPU", CPUUtilizationReadout, CPUUtilizationBar},
	{"Temperature", CPUTemperatureReadout, CPUTemperatureBar},
	{"Memory", MemoryUtilizationReadout, MemoryUtilizationBar},
	{"Storage", StorageUtilizationReadout, StorageUtilizationBar},
}

// BarWidth is the proportional width of a bar in percent. It is not clamped.
type BarWidth float64

// String formats the width the way it is displayed (e.g., "58%")
func (w BarWidth) String() string {
	return strconv.FormatFloat(float64(w), 'f', -1, 64) + "%"
}

// ReadoutFrame is everything one readout pass writes
type ReadoutFrame struct {
	Texts map[string]string
	Bars  map[string]BarWidth
}

// ReadoutSink receives formatted readouts
type ReadoutSink interface {
	Apply(frame ReadoutFrame)
	IsInterfaceNil() bool
}

// FormatReadouts turns a snapshot into readout texts and headroom bars.
// Bars show 100 - value, the remaining headroom rather than the usage.
func FormatReadouts(s MetricSnapshot) ReadoutFrame {
	return ReadoutFrame{
		Texts: map[string]string{
			CPUUtilizationReadout:     s.CPUPercentage.Text + "%",
			CPUTemperatureReadout:     s.CPUTemperature.Text + " °C",
			MemoryUtilizationReadout:  s.MemoryUsed.Text + " MB (" + s.MemoryPercentage.Text + "%) of " + s.MemoryTotal.Text + " MB",
			StorageUtilizationReadout: s.StorageUsed.Text + " GB (" + s.StoragePercentage.Text + "%) of " + s.StorageTotal.Text + " GB",
		},
		Bars: map[string]BarWidth{
			CPUUtilizationBar:     BarWidth(100 - s.CPUPercentage.Value),
			CPUTemperatureBar:     BarWidth(100 - s.CPUTemperature.Value),
			MemoryUtilizationBar:  BarWidth(100 - s.MemoryPercentage.Value),
			StorageUtilizationBar: BarWidth(100 - s.StoragePercentage.Value),
		},
	}
}

// ReadoutUpdater fetches the current snapshot and writes it to a sink
type ReadoutUpdater struct {
	url     string
	fetcher Fetcher
	sink    ReadoutSink
}

// NewReadoutUpdater creates an updater polling the given snapshot URL
func NewReadoutUpdater(url string, fetcher Fetcher, sink ReadoutSink) (*ReadoutUpdater, error) {
	if check.IfNil(fetcher) {
		return nil, errors.New("nil fetcher")
	}
	if check.IfNil(sink) {
		return nil, errors.New("nil readout sink")
	}

	return &ReadoutUpdater{
		url:     url,
		fetcher: fetcher,
		sink:    sink,
	}, nil
}

// Update performs one fetch-and-render pass. On error the sink is untouched.
func (u *ReadoutUpdater) Update(ctx context.Context) error {
	body, err := u.fetcher.Fetch(ctx, u.url)
	if err != nil {
		return err
	}

	snapshot, err := ParseSnapshot(body)
	if err != nil {
		return &ParseError{URL: u.url, Err: err}
	}

	frame := FormatReadouts(snapshot)
	u.sink.Apply(frame)
	readoutLog.Debug("readouts updated", "cpu", frame.Texts[CPUUtilizationReadout])

	return nil
}
