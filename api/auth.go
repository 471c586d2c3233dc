package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-tasklist-client/account"
	"github.com/pkg/errors"
)

// ExchangeGoogleToken trades a Google identity token for backend session
// tokens. A 404 means no account is linked to this identity yet; callers
// detect it with StatusCode and run account provisioning first.
func (c *Client) ExchangeGoogleToken(ctx context.Context, googleToken string) (*account.Tokens, error) {
	body := struct {
		GoogleToken string `json:"google_token"`
	}{GoogleToken: googleToken}

	var tokens account.Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/google", "", body, &tokens); err != nil {
		return nil, errors.Wrap(err, "[Client.ExchangeGoogleToken]")
	}
	return &tokens, nil
}

// CreateUser provisions a backend account. Unauthenticated: this runs
// before any session tokens exist.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*account.User, error) {
	var user account.User
	if err := c.do(ctx, http.MethodPost, "/users/", "", req, &user); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateUser]")
	}
	return &user, nil
}

// UserByGoogleID fetches the account linked to a provider subject ID. The
// token is passed explicitly because during sign-in the freshly exchanged
// token has not been persisted yet.
func (c *Client) UserByGoogleID(ctx context.Context, googleID, accessToken string) (*account.User, error) {
	var user account.User
	if err := c.do(ctx, http.MethodGet, "/users/google-id/"+googleID, accessToken, nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Client.UserByGoogleID]")
	}
	return &user, nil
}
