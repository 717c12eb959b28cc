package api

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login exchanges form-encoded credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	if err := c.sendForm(ctx, "/auth/login", form, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var u User
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", false, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUser fetches the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/auth/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword replaces the logged-in user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	req := passwordChangeRequest{CurrentPassword: current, NewPassword: next}
	return c.sendJSON(ctx, http.MethodPut, "/auth/users/me/password", true, req, nil)
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, request{method: http.MethodGet, path: "/health"}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
