// ABOUTME: Authentication endpoints for the SkillSync API client
// ABOUTME: Login, registration and demo account issuance

package client

import "context"

// AuthRequest carries login/registration credentials.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the token envelope returned by all three auth endpoints.
// The demo endpoint also returns the generated credentials.
type AuthResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	p, err := c.do(ctx, "POST", "/api/auth/login", AuthRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := p.decode(&resp); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &resp, nil
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	p, err := c.do(ctx, "POST", "/api/auth/register", AuthRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := p.decode(&resp); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &resp, nil
}

// TestAccount calls POST /api/auth/test-account, which provisions a
// throwaway demo account and returns its credentials alongside the token.
func (c *Client) TestAccount(ctx context.Context) (*AuthResponse, error) {
	p, err := c.do(ctx, "POST", "/api/auth/test-account", struct{}{})
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := p.decode(&resp); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &resp, nil
}
