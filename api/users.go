package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-tasklist-client/account"
)

// UserByID fetches an account record.
func (c *Client) UserByID(ctx context.Context, userID string) (*account.User, error) {
	var user account.User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, c.bearer(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to an account record.
func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*account.User, error) {
	var user account.User
	if err := c.do(ctx, http.MethodPut, "/users/"+userID, c.bearer(), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
