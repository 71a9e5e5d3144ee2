package rpitop

import (
	"context"
	"sync"
)

// fetcherStub -
type fetcherStub struct {
	FetchHandler func(ctx context.Context, url string) ([]byte, error)
}

// Fetch -
func (stub *fetcherStub) Fetch(ctx context.Context, url string) ([]byte, error) {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, url)
	}

	return []byte("[]"), nil
}

// IsInterfaceNil -
func (stub *fetcherStub) IsInterfaceNil() bool {
	return stub == nil
}

// readoutSinkStub -
type readoutSinkStub struct {
	ApplyHandler func(frame ReadoutFrame)
}

// Apply -
func (stub *readoutSinkStub) Apply(frame ReadoutFrame) {
	if stub.ApplyHandler != nil {
		stub.ApplyHandler(frame)
	}
}

// IsInterfaceNil -
func (stub *readoutSinkStub) IsInterfaceNil() bool {
	return stub == nil
}

// plotCall records one ChartSink call
type plotCall struct {
	create bool
	id     string
	series Series
	layout Layout
}

// chartSinkStub records every call it receives
type chartSinkStub struct {
	mut   sync.Mutex
	calls []plotCall
}

// NewPlot -
func (stub *chartSinkStub) NewPlot(id string, series Series, layout Layout) {
	stub.mut.Lock()
	defer stub.mut.Unlock()
	stub.calls = append(stub.calls, plotCall{create: true, id: id, series: series, layout: layout})
}

// UpdatePlot -
func (stub *chartSinkStub) UpdatePlot(id string, series Series, layout Layout) {
	stub.mut.Lock()
	defer stub.mut.Unlock()
	stub.calls = append(stub.calls, plotCall{id: id, series: series, layout: layout})
}

// Calls -
func (stub *chartSinkStub) Calls() []plotCall {
	stub.mut.Lock()
	defer stub.mut.Unlock()
	return append([]plotCall(nil), stub.calls...)
}

// IsInterfaceNil -
func (stub *chartSinkStub) IsInterfaceNil() bool {
	return stub == nil
}
