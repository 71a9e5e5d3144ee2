package rpitop

import (
	"time"
)

const (
	// UPDATE_INTERVAL is the time between polls of every updater in seconds
	UPDATE_INTERVAL = 10

	// REQUEST_TIMEOUT is the HTTP client timeout in seconds
	REQUEST_TIMEOUT = 5

	// HISTORY_WINDOW_DAYS is how many days of history the chart view shows
	HISTORY_WINDOW_DAYS = 5

	// RECORDED_AFTER_PARAM is the query parameter carrying the series cursor
	RECORDED_AFTER_PARAM = "recorded_after"

	// SNAPSHOT_ENDPOINT serves the current MetricSnapshot
	SNAPSHOT_ENDPOINT = "/services/current_utilization"
)

// UpdateDuration returns the update interval as a time.Duration
func UpdateDuration() time.Duration {
	return time.Duration(UPDATE_INTERVAL) * time.Second
}

// RequestTimeout returns the HTTP client timeout as a time.Duration
func RequestTimeout() time.Duration {
	return time.Duration(REQUEST_TIMEOUT) * time.Second
}

// HistoryWindow returns the visible chart window as a time.Duration
func HistoryWindow() time.Duration {
	return time.Duration(HISTORY_WINDOW_DAYS) * 24 * time.Hour
}
