package rpitop

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Reading is one scalar field of a snapshot. Text is the value as the
// collaborator sent it and is what readouts display.
type Reading struct {
	Text  string
	Value float64
}

// MetricSnapshot holds the current value of every scalar metric
type MetricSnapshot struct {
	CPUPercentage     Reading
	CPUTemperature    Reading
	MemoryUsed        Reading
	MemoryPercentage  Reading
	MemoryTotal       Reading
	StorageUsed       Reading
	StoragePercentage Reading
	StorageTotal      Reading
}

// ParseSnapshot decodes a current_utilization body. Fields may be JSON
// numbers or numeric strings.
func ParseSnapshot(body []byte) (MetricSnapshot, error) {
	if !gjson.ValidBytes(body) {
		return MetricSnapshot{}, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return MetricSnapshot{}, fmt.Errorf("expected an object, got %s", root.Type)
	}

	var snapshot MetricSnapshot
	fields := []struct {
		name   string
		target *Reading
	}{
		{"cpu_percentage", &snapshot.CPUPercentage},
		{"cpu_temperature", &snapshot.CPUTemperature},
		{"memory_used", &snapshot.MemoryUsed},
		{"memory_percentage", &snapshot.MemoryPercentage},
		{"memory_total", &snapshot.MemoryTotal},
		{"storage_used", &snapshot.StorageUsed},
		{"storage_percentage", &snapshot.StoragePercentage},
		{"storage_total", &snapshot.StorageTotal},
	}
	for _, field := range fields {
		reading, err := parseReading(root.Get(field.name))
		if err != nil {
			return MetricSnapshot{}, fmt.Errorf("field %q: %w", field.name, err)
		}
		*field.target = reading
	}

	return snapshot, nil
}

func parseReading(result gjson.Result) (Reading, error) {
	switch result.Type {
	case gjson.Number:
		return Reading{Text: result.Raw, Value: result.Num}, nil
	case gjson.String:
		value, err := strconv.ParseFloat(result.Str, 64)
		if err != nil {
			return Reading{}, fmt.Errorf("not numeric: %q", result.Str)
		}
		return Reading{Text: result.Str, Value: value}, nil
	case gjson.Null:
		if !result.Exists() {
			return Reading{}, errors.New("missing")
		}
		return Reading{}, errors.New("null")
	default:
		return Reading{}, fmt.Errorf("unexpected %s", result.Type)
	}
}
