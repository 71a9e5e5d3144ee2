package rpitop

import (
	"context"
	"sync"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var pollLog = logger.GetOrCreate("rpitop/poll")

// PollHandle stops a running poll loop
type PollHandle struct {
	name     string
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartPolling calls fn right away and then interval after each call returns,
// until the handle is stopped or ctx is done. Errors are logged and counted;
// the loop keeps going and the next call retries.
func StartPolling(ctx context.Context, name string, interval time.Duration, fn func(ctx context.Context) error, metrics *Metrics) *PollHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &PollHandle{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)

		timer := time.NewTimer(interval)
		defer timer.Stop()

		run := func() {
			err := fn(ctx)
			if ctx.Err() != nil {
				// stopped mid-call
				return
			}
			metrics.ObservePoll(name, err)
			if err != nil {
				pollLog.Warn("poll failed, keeping previous state", "updater", name, "error", err)
			}
		}

		run()
		timer.Reset(interval)
		for {
			select {
			case <-timer.C:
				run()
				timer.Reset(interval)
			case <-ctx.Done():
				return
			}
		}
	}()

	return h
}

// Stop cancels the loop, including any request in flight, and waits for it
// to exit. Calling it more than once is fine.
func (h *PollHandle) Stop() {
	h.stopOnce.Do(func() {
		h.cancel()
		<-h.done
		pollLog.Debug("poll loop stopped", "updater", h.name)
	})
}

// Done is closed once the loop has exited
func (h *PollHandle) Done() <-chan struct{} {
	return h.done
}
