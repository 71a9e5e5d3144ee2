package rpitop

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config maps to the dashboard config.toml
type Config struct {
	BaseURL                 string        `toml:"BaseURL"`
	SnapshotEndpoint        string        `toml:"SnapshotEndpoint"`
	IntervalInSeconds       uint32        `toml:"IntervalInSeconds"`
	RequestTimeoutInSeconds uint32        `toml:"RequestTimeoutInSeconds"`
	HistoryWindowInDays     uint32        `toml:"HistoryWindowInDays"`
	Charts                  []ChartConfig `toml:"Charts"`
}

// DefaultConfig returns the configuration matching the rpidash endpoints
func DefaultConfig() Config {
	return Config{
		SnapshotEndpoint:        SNAPSHOT_ENDPOINT,
		IntervalInSeconds:       UPDATE_INTERVAL,
		RequestTimeoutInSeconds: REQUEST_TIMEOUT,
		HistoryWindowInDays:     HISTORY_WINDOW_DAYS,
		Charts: []ChartConfig{
			{
				Endpoint:   "/services/cpu_utilization",
				ID:         "cpu-utilization",
				ValueField: "percentage",
				Title:      "CPU utilization",
				YAxisTitle: "%",
				LineColor:  "red",
			},
			{
				Endpoint:   "/services/cpu_temperature",
				ID:         "cpu-temperature",
				ValueField: "temperature",
				Title:      "CPU temperature",
				YAxisTitle: "°C",
				LineColor:  "red",
			},
			{
				Endpoint:   "/services/memory_utilization",
				ID:         "memory-utilization",
				ValueField: "percentage",
				Title:      "Memory utilization",
				YAxisTitle: "%",
				LineColor:  "red",
			},
		},
	}
}

// LoadConfig parses a TOML file on top of the defaults. Keys missing from the
// file keep their default; a Charts list in the file replaces the default one.
func LoadConfig(filepath string) (Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	cfg := DefaultConfig()
	cfg.Charts = nil
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}
	if cfg.Charts == nil {
		cfg.Charts = DefaultConfig().Charts
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL must be set")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q needs a scheme and a host", c.BaseURL)
	}
	if c.IntervalInSeconds == 0 {
		return errors.New("interval must be positive")
	}

	seen := make(map[string]bool, len(c.Charts))
	for _, chart := range c.Charts {
		if chart.ID == "" || chart.Endpoint == "" || chart.ValueField == "" {
			return fmt.Errorf("chart %q: ID, Endpoint and ValueField are required", chart.ID)
		}
		if seen[chart.ID] {
			return fmt.Errorf("duplicate chart id %q", chart.ID)
		}
		seen[chart.ID] = true
	}

	return nil
}

// Interval returns the poll interval, falling back to the default
func (c Config) Interval() time.Duration {
	if c.IntervalInSeconds == 0 {
		return UpdateDuration()
	}
	return time.Duration(c.IntervalInSeconds) * time.Second
}

// RequestTimeout returns the HTTP timeout, falling back to the default
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutInSeconds == 0 {
		return RequestTimeout()
	}
	return time.Duration(c.RequestTimeoutInSeconds) * time.Second
}

// HistoryWindow returns the chart window, falling back to the default
func (c Config) HistoryWindow() time.Duration {
	if c.HistoryWindowInDays == 0 {
		return HistoryWindow()
	}
	return time.Duration(c.HistoryWindowInDays) * 24 * time.Hour
}
