package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Status texts for failures that never produced an upstream response.
const (
	StatusTextUnreachable     = "upstream unreachable"
	StatusTextInvalidResponse = "invalid upstream response"
)

// ErrEmptyID is returned when a single-resource call has no identifier.
var ErrEmptyID = errors.New("resource id is required")

// UpstreamError reports a failed call to the device-management API.
// StatusCode is zero when no response was received.
type UpstreamError struct {
	StatusCode int
	StatusText string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream error: %s: %v", e.StatusText, e.Err)
	}
	return "upstream error: " + e.StatusText
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// statusText extracts the reason phrase, e.g. "Not Found" from "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = "status " + strconv.Itoa(resp.StatusCode)
	}
	return text
}
