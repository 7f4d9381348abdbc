package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Error is a non-2xx API response. It carries the HTTP status and the
// server's error messages, and exposes the accessors the retry
// classifier reads (HTTPStatusCode, RetryAfter).
type Error struct {
	StatusCode int
	Messages   []string

	// retryAfter is the parsed Retry-After header, 0 when absent.
	retryAfter time.Duration
}

// errorBody matches Datadog's error envelope: {"errors": ["..."]}.
type errorBody struct {
	Errors []string `json:"errors"`
}

func newError(resp *http.Response, body []byte) *Error {
	e := &Error{StatusCode: resp.StatusCode}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		e.Messages = eb.Errors
	} else if len(body) > 0 {
		e.Messages = []string{strings.TrimSpace(string(body))}
	}

	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			e.retryAfter = time.Duration(secs) * time.Second
		}
	}

	return e
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("datadog api: %s (status %d)", strings.Join(e.Messages, "; "), e.StatusCode)
	}
	return fmt.Sprintf("datadog api: status %d", e.StatusCode)
}

// HTTPStatusCode returns the response status code.
func (e *Error) HTTPStatusCode() int { return e.StatusCode }

// RetryAfter returns the server-provided wait hint, when present.
func (e *Error) RetryAfter() (time.Duration, bool) {
	return e.retryAfter, e.retryAfter > 0
}
