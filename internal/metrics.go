package rpitop

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var metricsLog = logger.GetOrCreate("rpitop/metrics")

const (
	outcomeSuccess      = "success"
	outcomeNetworkError = "network_error"
	outcomeParseError   = "parse_error"
	outcomeOtherError   = "error"
)

// Metrics instruments the poll loops. A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	polls       *prometheus.CounterVec
	points      *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rpitop",
			Name:      "polls_total",
			Help:      "Poll cycles by updater and outcome.",
		}, []string{"updater", "outcome"}),
		points: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rpitop",
			Name:      "series_points",
			Help:      "Points accumulated per chart.",
		}, []string{"chart"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rpitop",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful poll per updater.",
		}, []string{"updater"}),
	}
	m.registry.MustRegister(m.polls, m.points, m.lastSuccess)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePoll records the outcome of one poll cycle
func (m *Metrics) ObservePoll(updater string, err error) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(updater, pollOutcome(err)).Inc()
	if err == nil {
		m.lastSuccess.WithLabelValues(updater).SetToCurrentTime()
	}
}

// ObserveSeries records the accumulated length of a chart series
func (m *Metrics) ObserveSeries(chart string, points int) {
	if m == nil {
		return
	}
	m.points.WithLabelValues(chart).Set(float64(points))
}

func pollOutcome(err error) string {
	var networkErr *NetworkError
	var parseErr *ParseError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &networkErr):
		return outcomeNetworkError
	case errors.As(err, &parseErr):
		return outcomeParseError
	default:
		return outcomeOtherError
	}
}

// MetricsRouter mounts /metrics and /healthz
func MetricsRouter(m *Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// ServeMetrics serves the metrics router on addr until ctx is done
func ServeMetrics(ctx context.Context, addr string, m *Metrics) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           MetricsRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		metricsLog.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsLog.Error("metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
