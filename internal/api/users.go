package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/reftrack/refadmin/internal/session"
)

// UserInput is the payload for creating or updating a user.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]session.Profile, error) {
	var users []session.Profile
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*session.Profile, error) {
	var user session.Profile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user.
func (c *Client) CreateUser(ctx context.Context, in UserInput) (*session.Profile, error) {
	var user session.Profile
	if err := c.do(ctx, http.MethodPost, "/users", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(ctx context.Context, id int64, in UserInput) (*session.Profile, error) {
	var user session.Profile
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
