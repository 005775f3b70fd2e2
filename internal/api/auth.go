package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reftrack/refadmin/internal/session"
)

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string           `json:"token"`
	User  *session.Profile `json:"user"`
}

// LoginRequest is the credentials payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterRequest is the registration payload. ReferralID is optional and
// serialized as null when absent, matching the backend contract.
type RegisterRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	ReferralID *string `json:"referralId"`
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReferralCheck is the backend's verdict on a referral code.
type ReferralCheck struct {
	IsValid  bool   `json:"isValid"`
	UserName string `json:"userName"`
}

// CheckReferral asks the backend whether a referral code is valid and, when
// it is, who owns it.
func (c *Client) CheckReferral(ctx context.Context, code string) (*ReferralCheck, error) {
	var resp ReferralCheck
	path := "/auth/check-referral-valid?ref=" + url.QueryEscape(code)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
