package rpitop

import (
	"context"
	"io"
	"net/http"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var fetchLog = logger.GetOrCreate("rpitop/fetch")

// Fetcher performs the GET requests against the collaborator
type Fetcher interface {
	// Fetch returns the body of a 2xx response. Failed requests and other
	// statuses are reported as *NetworkError.
	Fetch(ctx context.Context, url string) ([]byte, error)

	IsInterfaceNil() bool
}

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given client timeout
func NewHTTPFetcher(timeout time.Duration) *httpFetcher {
	return &httpFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues one GET and returns the response body
func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// rpidash answers failed lookups with {"error": "..."}
		message := gjson.GetBytes(body, "error").String()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode, Message: message}
	}

	fetchLog.Trace("fetched", "url", url, "bytes", len(body))

	return body, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (f *httpFetcher) IsInterfaceNil() bool {
	return f == nil
}
