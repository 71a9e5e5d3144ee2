package rpitop

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// timestampLayouts are tried in order when parsing series dates
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SeriesPoint is one chart sample
type SeriesPoint struct {
	// Date is the timestamp text as received, used as the series cursor
	Date  string
	Time  time.Time
	Value float64
}

// Batch is a parsed series response in canonical form
type Batch struct {
	Dates  []string
	Times  []time.Time
	Values []float64
}

// Len returns the number of points in the batch
func (b Batch) Len() int {
	return len(b.Dates)
}

// Point returns the i-th point of the batch
func (b Batch) Point(i int) SeriesPoint {
	return SeriesPoint{Date: b.Dates[i], Time: b.Times[i], Value: b.Values[i]}
}

// ParseSeries decodes a series body. The collaborator answers either with
// an array of {date, <valueField>} objects or with {dates: [], values: []}.
func ParseSeries(body []byte, valueField string) (Batch, error) {
	if !gjson.ValidBytes(body) {
		return Batch{}, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(body)
	var dates, values []gjson.Result
	switch {
	case root.IsArray():
		for i, point := range root.Array() {
			if !point.IsObject() {
				return Batch{}, fmt.Errorf("point %d: expected an object, got %s", i, point.Type)
			}
			dates = append(dates, point.Get("date"))
			values = append(values, point.Get(gjson.Escape(valueField)))
		}
	case root.IsObject() && root.Get("dates").IsArray() && root.Get("values").IsArray():
		dates = root.Get("dates").Array()
		values = root.Get("values").Array()
		if len(dates) != len(values) {
			return Batch{}, fmt.Errorf("%d dates but %d values", len(dates), len(values))
		}
	default:
		return Batch{}, errors.New("neither a list of points nor a dates/values pair")
	}

	batch := Batch{
		Dates:  make([]string, 0, len(dates)),
		Times:  make([]time.Time, 0, len(dates)),
		Values: make([]float64, 0, len(values)),
	}
	for i := range dates {
		if dates[i].Type != gjson.String {
			return Batch{}, fmt.Errorf("point %d: date is not a string", i)
		}
		ts, err := parseTimestamp(dates[i].Str)
		if err != nil {
			return Batch{}, fmt.Errorf("point %d: %w", i, err)
		}
		value, err := parseValue(values[i])
		if err != nil {
			return Batch{}, fmt.Errorf("point %d: %w", i, err)
		}
		if i > 0 && ts.Before(batch.Times[i-1]) {
			return Batch{}, fmt.Errorf("point %d: %s is before %s", i, dates[i].Str, batch.Dates[i-1])
		}

		batch.Dates = append(batch.Dates, dates[i].Str)
		batch.Times = append(batch.Times, ts)
		batch.Values = append(batch.Values, value)
	}

	return batch, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

func parseValue(result gjson.Result) (float64, error) {
	switch result.Type {
	case gjson.Number:
		return result.Num, nil
	case gjson.String:
		value, err := strconv.ParseFloat(result.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", result.Str)
		}
		return value, nil
	default:
		return 0, fmt.Errorf("value is %s", result.Type)
	}
}
