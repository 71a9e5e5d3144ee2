package rpitop

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("should print the current readings", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, SNAPSHOT_ENDPOINT, r.URL.Path)
			_, _ = w.Write([]byte(snapshotBody))
		}))
		defer server.Close()

		baseURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		var out bytes.Buffer
		err = Status(context.Background(), DefaultConfig(), baseURL, NewHTTPFetcher(time.Second), &out)
		require.NoError(t, err)

		assert.Contains(t, out.String(), "Headroom")
		assert.Contains(t, out.String(), "42%")
		assert.Contains(t, out.String(), "58%")
		assert.Contains(t, out.String(), "512 MB (25%) of 2048 MB")
		assert.Contains(t, out.String(), "10 GB (20%) of 50 GB")
	})
	t.Run("failed fetch should print nothing", func(t *testing.T) {
		t.Parallel()

		fetcher := &fetcherStub{
			FetchHandler: func(ctx context.Context, u string) ([]byte, error) {
				return nil, &NetworkError{URL: u, StatusCode: http.StatusServiceUnavailable}
			},
		}

		var out bytes.Buffer
		err := Status(context.Background(), DefaultConfig(), &url.URL{Scheme: "http", Host: "pi"}, fetcher, &out)

		var networkErr *NetworkError
		require.True(t, errors.As(err, &networkErr))
		assert.Zero(t, out.Len())
	})
}

func TestStatusTable(t *testing.T) {
	t.Parallel()

	table := StatusTable(ReadoutFrame{
		Texts: map[string]string{CPUUtilizationReadout: "7%"},
		Bars:  map[string]BarWidth{CPUUtilizationBar: 93},
	})

	assert.Contains(t, table, "Metric")
	assert.Contains(t, table, "CPU")
	assert.Contains(t, table, "7%")
	assert.Contains(t, table, "93%")
	assert.Contains(t, table, "Storage")
}
