package rpitop

import (
	"fmt"
	"net/http"
)

// NetworkError is returned when a request could not be made or the
// collaborator answered with a non-2xx status
type NetworkError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("%s: non-2xx HTTP status code: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
		if e.Message != "" {
			msg += ": " + e.Message
		}
		return msg
	}
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response body is not valid JSON or does not
// have the expected shape
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
