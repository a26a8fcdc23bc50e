// ABOUTME: Session lifecycle management for the skillsync CLI
// ABOUTME: Owns the bearer token and derived identity, handles hydration and expiry

package session

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Session is the current authentication state. The subject is derived from
// the token's claims and is empty whenever the token is absent or undecodable.
type Session struct {
	Token   string `json:"token"`
	Subject string `json:"subject,omitempty"`
}

// Manager owns the process-wide session. Readers get a copy; mutation happens
// only through Login, Logout and InvalidateOnExpiry.
type Manager struct {
	mu       sync.Mutex
	session  Session
	hydrated bool
	store    *Store
}

// NewManager creates a session manager backed by the given store.
func NewManager(store *Store) *Manager {
	return &Manager{store: store}
}

// Hydrate loads the persisted session, if any. Expiry is not validated here;
// it is enforced reactively by the gateway's 401/403 handling or proactively
// by callers that check IsExpired before rendering protected content.
func (m *Manager) Hydrate() error {
	sess, err := m.store.Load()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrated = true
	if err != nil {
		return err
	}
	m.session = sess
	if sess.Token != "" {
		slog.Debug("Session hydrated", "subject", sess.Subject)
	}
	return nil
}

// Hydrated reports whether Hydrate has completed. Callers must not treat a
// missing token as unauthenticated until this returns true.
func (m *Manager) Hydrated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hydrated
}

// Login stores the token and derives the subject identity from its claims.
// A token whose payload cannot be decoded is still accepted; the subject
// simply stays empty. Trust in the claims is delegated to the remote service,
// which verifies the signature on every protected call.
func (m *Manager) Login(token string) error {
	subject := ""
	if claims, err := decodeClaims(token); err == nil {
		subject = claims.Sub
	} else {
		slog.Debug("Token claims not decodable, subject left empty", "error", err)
	}

	sess := Session{Token: token, Subject: subject}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(sess); err != nil {
		return err
	}
	m.session = sess
	m.hydrated = true
	slog.Debug("Session established", "subject", subject)
	return nil
}

// Logout clears the session from memory and disk. Other components never
// observe a state where one is cleared and the other is not.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.store.Clear()
	m.session = Session{}
	return err
}

// InvalidateOnExpiry clears the session after the gateway saw an authorization
// failure. It reports true only for the call that actually cleared a live
// token, so the caller can fire its redirect exactly once even when several
// in-flight requests fail together.
func (m *Manager) InvalidateOnExpiry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Token == "" {
		return false
	}
	m.session = Session{}
	if err := m.store.Clear(); err != nil {
		slog.Warn("Failed to clear persisted session", "error", err)
	}
	return true
}

// Current returns a copy of the session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Token
}

// Authenticated reports whether a token is present.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// claims are the JWT payload fields the CLI reads. Only exp and sub matter;
// everything else is the server's business.
type claims struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

// IsExpired reports whether the token's exp claim is in the past. Malformed
// tokens (wrong segment count, bad base64, non-JSON payload) are treated as
// expired: fail closed.
func IsExpired(token string) bool {
	c, err := decodeClaims(token)
	if err != nil {
		return true
	}
	return c.Exp < time.Now().Unix()
}

// ExpiresAt returns the token's expiry time, or the zero time when the
// claims cannot be decoded.
func ExpiresAt(token string) time.Time {
	c, err := decodeClaims(token)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(c.Exp, 0)
}

// decodeClaims extracts the payload of a three-segment token. The signature
// is not verified locally; the server does that on every protected call.
func decodeClaims(token string) (*claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, &tokenError{"malformed token structure"}
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return nil, err
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, &tokenError{"invalid payload format"}
	}

	return &c, nil
}

// tokenError represents a token decoding error
type tokenError struct {
	msg string
}

func (e *tokenError) Error() string {
	return e.msg
}

// base64URLDecode decodes base64url encoded data (RFC 4648)
func base64URLDecode(s string) ([]byte, error) {
	// RawURLEncoding handles base64url without padding
	// Add padding if present in input (some JWTs include it)
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		// Try with standard URL encoding (with padding) as fallback
		data, err = base64.URLEncoding.DecodeString(s)
		if err != nil {
			return nil, &tokenError{"invalid payload encoding"}
		}
	}
	return data, nil
}
