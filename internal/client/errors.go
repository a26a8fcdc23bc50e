// ABOUTME: Error taxonomy for the SkillSync API client
// ABOUTME: Normalizes transport, HTTP and authorization failures into typed errors

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrAuthExpired is returned when an authenticated request came back 401/403.
// The gateway has already cleared the session by the time callers see it, so
// the only sane reaction is to send the user back to login.
var ErrAuthExpired = errors.New("session expired, please log in again")

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	msg string
	err error
}

func (e *NetworkError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *NetworkError) Unwrap() error { return e.err }

// APIError is a non-2xx response with its message already normalized from
// whatever shape the backend produced.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// IsNotFound reports whether err is a structured 404. MutationGuard treats
// deletes of already-absent resources as success based on this, never on
// message text.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// normalizeError converts a non-2xx response body into an APIError. The
// backend emits three shapes: validation errors with a fields array, plain
// {message} errors, and bare {error} strings. Anything else falls back to a
// generic HTTP status message, carrying a snippet of non-JSON bodies.
func normalizeError(status int, body []byte) *APIError {
	if json.Valid(body) {
		if fields := gjson.GetBytes(body, "fields"); fields.IsArray() {
			var parts []string
			fields.ForEach(func(_, f gjson.Result) bool {
				parts = append(parts, f.Get("field").String()+": "+f.Get("message").String())
				return true
			})
			if len(parts) > 0 {
				return &APIError{Status: status, Message: strings.Join(parts, "; ")}
			}
		}
		if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
			return &APIError{Status: status, Message: msg.String()}
		}
		if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.String() != "" {
			return &APIError{Status: status, Message: msg.String()}
		}
	}

	message := fmt.Sprintf("HTTP %d", status)
	if text := strings.TrimSpace(string(body)); text != "" && !json.Valid(body) {
		if len(text) > 200 {
			text = text[:200]
		}
		message += ": " + text
	}
	return &APIError{Status: status, Message: message}
}
