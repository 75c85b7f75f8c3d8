package youtube

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-success HTTP status from the API.
type APIError struct {
	Op         string
	StatusCode int
	// Body holds the response body, or the status line when the body was empty.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YouTube %s API error (%d): %s", e.Op, e.StatusCode, e.Body)
}

func newAPIError(op string, resp *http.Response, body string) *APIError {
	if body == "" {
		body = resp.Status
	}
	return &APIError{Op: op, StatusCode: resp.StatusCode, Body: body}
}

// StatusCode extracts the HTTP status of an APIError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
