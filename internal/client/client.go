// ABOUTME: HTTP client for the SkillSync API
// ABOUTME: Attaches the bearer token, classifies responses and normalizes failures

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dykkyongdo/SkillSync-sub000/internal/session"
)

// Client is the API client for the SkillSync backend. Every outbound call
// goes through do, so no call site can forget bearer attachment or the
// 401/403 session-invalidation rule.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	session       *session.Manager
	onAuthExpired func()
}

// New creates a new API client with the given base URL and session manager.
func New(baseURL string, sess *session.Manager) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

// OnAuthExpired registers the navigation hook fired when an authenticated
// request is rejected. It fires at most once per session invalidation, even
// when several in-flight requests fail together.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// payload is a classified success response. A nil Body means the server
// answered with no content (204 or an empty body), which is a valid result,
// not an error. JSON reports whether the body was declared as JSON; callers
// of raw endpoints must handle plain text too.
type payload struct {
	Body []byte
	JSON bool
}

// decode unmarshals a JSON payload into v. No-content payloads leave v as-is.
func (p *payload) decode(v interface{}) error {
	if p.Body == nil {
		return nil
	}
	return json.Unmarshal(p.Body, v)
}

// do issues one request. Bearer authorization is attached only when the
// session currently holds a token. Failures come back as *NetworkError,
// *APIError or ErrAuthExpired; nothing else escapes.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*payload, error) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{msg: "failed to marshal request body", err: err}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &NetworkError{msg: "failed to create request", err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	token := c.session.Token()
	tokenAttached := token != ""
	if tokenAttached {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("API request", "method", method, "path", path, "authenticated", tokenAttached)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		return nil, &NetworkError{msg: "failed to read response body", err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if tokenAttached {
			// The server rejected our token; the parsed error body is
			// irrelevant. Clear the session and short-circuit the caller.
			if c.session.InvalidateOnExpiry() && c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			slog.Debug("Authenticated request rejected, session cleared", "status", resp.StatusCode, "path", path)
			return nil, ErrAuthExpired
		}
		return nil, normalizeError(resp.StatusCode, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeError(resp.StatusCode, respBody)
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return &payload{}, nil
	}

	contentType := resp.Header.Get("Content-Type")
	return &payload{
		Body: respBody,
		JSON: strings.Contains(contentType, "application/json"),
	}, nil
}

// readBody drains the response body with a sane cap.
func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &NetworkError{msg: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &NetworkError{msg: "request timed out"}
	}
	return &NetworkError{msg: "cannot connect to backend at " + c.baseURL, err: err}
}
