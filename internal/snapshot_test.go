package rpitop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotBody = `{
	"cpu_percentage": 42,
	"cpu_temperature": 55,
	"memory_used": 512,
	"memory_percentage": 25,
	"memory_total": 2048,
	"storage_used": 10,
	"storage_percentage": 20,
	"storage_total": 50
}`

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("numbers should parse", func(t *testing.T) {
		t.Parallel()

		snapshot, err := ParseSnapshot([]byte(snapshotBody))
		require.NoError(t, err)
		assert.Equal(t, Reading{Text: "42", Value: 42}, snapshot.CPUPercentage)
		assert.Equal(t, Reading{Text: "2048", Value: 2048}, snapshot.MemoryTotal)
		assert.Equal(t, Reading{Text: "50", Value: 50}, snapshot.StorageTotal)
	})
	t.Run("numeric strings should keep their text", func(t *testing.T) {
		t.Parallel()

		body := `{
			"cpu_percentage": "42.00", "cpu_temperature": "55.20",
			"memory_used": "512.00", "memory_percentage": "25.00", "memory_total": "2048.00",
			"storage_used": "10.00", "storage_percentage": "20.00", "storage_total": "50.00"
		}`
		snapshot, err := ParseSnapshot([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, Reading{Text: "42.00", Value: 42}, snapshot.CPUPercentage)
		assert.Equal(t, Reading{Text: "55.20", Value: 55.2}, snapshot.CPUTemperature)
	})
	t.Run("missing field should error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSnapshot([]byte(`{"cpu_percentage": 42}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "cpu_temperature": missing`)
	})
	t.Run("null field should error", func(t *testing.T) {
		t.Parallel()

		body := `{"cpu_percentage": null}`
		_, err := ParseSnapshot([]byte(body))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "cpu_percentage": null`)
	})
	t.Run("non-numeric string should error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSnapshot([]byte(`{"cpu_percentage": "lots"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not numeric")
	})
	t.Run("invalid JSON should error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSnapshot([]byte(`{"cpu_percentage": `))
		assert.EqualError(t, err, "invalid JSON")
	})
	t.Run("non-object should error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSnapshot([]byte(`[1, 2]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected an object")
	})
}
