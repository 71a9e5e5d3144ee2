package rpitop

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("2xx should return the body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"cpu_percentage": 42}`))
		}))
		defer server.Close()

		body, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `{"cpu_percentage": 42}`, string(body))
	})
	t.Run("non-2xx should return a network error with the server message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "invalid recorded_after"}`))
		}))
		defer server.Close()

		body, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), server.URL)
		assert.Nil(t, body)

		var networkErr *NetworkError
		require.True(t, errors.As(err, &networkErr))
		assert.Equal(t, http.StatusBadRequest, networkErr.StatusCode)
		assert.Equal(t, "invalid recorded_after", networkErr.Message)
		assert.Contains(t, err.Error(), "non-2xx HTTP status code: 400 Bad Request: invalid recorded_after")
	})
	t.Run("non-JSON error body should leave the message empty", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), server.URL)

		var networkErr *NetworkError
		require.True(t, errors.As(err, &networkErr))
		assert.Equal(t, http.StatusInternalServerError, networkErr.StatusCode)
		assert.Empty(t, networkErr.Message)
	})
	t.Run("connection refused should return a network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), url)

		var networkErr *NetworkError
		require.True(t, errors.As(err, &networkErr))
		assert.Zero(t, networkErr.StatusCode)
		assert.Error(t, networkErr.Err)
	})
	t.Run("cancelled context should abort the request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewHTTPFetcher(time.Second).Fetch(ctx, server.URL)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPFetcher_IsInterfaceNil(t *testing.T) {
	t.Parallel()

	var fetcher *httpFetcher
	assert.True(t, fetcher.IsInterfaceNil())

	fetcher = NewHTTPFetcher(time.Second)
	assert.False(t, fetcher.IsInterfaceNil())
}
