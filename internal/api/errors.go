package api

import (
	"encoding/json"
	"fmt"
)

// NetworkError indicates the request could not complete.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError indicates the backend answered with a non-success status.
type HTTPError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
}

// MalformedResponseError indicates the response did not have the expected
// shape.
type MalformedResponseError struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
