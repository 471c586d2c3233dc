// Package session drives the sign-in and sign-out protocol against the
// identity provider and the backend, and answers session-status queries
// from local state only.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tasklist-client/account"
	"github.com/jrsteele09/go-tasklist-client/api"
	"github.com/jrsteele09/go-tasklist-client/credentials"
	"github.com/jrsteele09/go-tasklist-client/provider"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Placeholder password marking backend accounts as externally authenticated.
const oauthPasswordPlaceholder = "google_oauth"

// SignInResult carries the outcome of a completed sign-in.
type SignInResult struct {
	Tokens account.Tokens
	User   account.User
}

// Manager orchestrates federated sign-in, backend account linking, token
// exchange and session teardown. One Manager is constructed at process
// start and shared by reference; it holds the one-time provider
// configuration flag that used to be a module-level singleton.
type Manager struct {
	idp        provider.Provider
	api        *api.Client
	store      *credentials.Store
	cfg        provider.Config
	configured bool
}

// NewManager wires the session manager to its collaborators.
func NewManager(idp provider.Provider, apiClient *api.Client, store *credentials.Store, cfg provider.Config) (*Manager, error) {
	if idp == nil {
		return nil, errors.New("[NewManager] identity provider is required")
	}
	if apiClient == nil {
		return nil, errors.New("[NewManager] api client is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] credential store is required")
	}
	return &Manager{
		idp:   idp,
		api:   apiClient,
		store: store,
		cfg:   cfg,
	}, nil
}

// IsAuthenticated reports whether session tokens are stored locally. No
// network call: an expired or revoked token still reads as authenticated
// here and is only discovered when a subsequent API call fails.
func (m *Manager) IsAuthenticated() bool {
	return m.store.Tokens() != nil
}

// CurrentUser returns the cached profile without a network call.
func (m *Manager) CurrentUser() *account.User {
	return m.store.UserData()
}

// AccessToken returns the stored bearer token, or "" when signed out.
func (m *Manager) AccessToken() string {
	tokens := m.store.Tokens()
	if tokens == nil {
		return ""
	}
	return tokens.AccessToken
}

// SignInWithGoogle runs the full sign-in protocol: provider handshake,
// backend token exchange (provisioning an account on 404 and retrying
// once), profile fetch, then persistence. A (nil, nil) return means the
// user cancelled. When persistence fails the whole sign-in is failed: an
// account may exist server-side, but the client retains no partial session.
func (m *Manager) SignInWithGoogle(ctx context.Context) (*SignInResult, error) {
	if !m.configured {
		if err := m.idp.Configure(m.cfg); err != nil {
			return nil, errors.Wrap(err, "[Manager.SignInWithGoogle] configuring provider")
		}
		m.configured = true
	}

	if err := m.idp.CheckAvailability(ctx); err != nil {
		return nil, normalizeProviderError(err)
	}

	identity, err := m.idp.SignIn(ctx)
	if err != nil {
		if provider.StatusOf(err) == provider.StatusCancelled {
			log.Debug().Msg("sign-in cancelled by user")
			return nil, nil
		}
		return nil, normalizeProviderError(err)
	}
	if identity == nil || identity.IDToken == "" {
		return nil, MissingIdentityTokenErr
	}

	tokens, err := m.exchange(ctx, identity)
	if err != nil {
		return nil, err
	}

	user, err := m.api.UserByGoogleID(ctx, identity.Subject, tokens.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, ProfileFetchErr.Error())
	}

	if err := m.store.StoreTokens(*tokens); err != nil {
		return nil, errors.Wrap(err, "[Manager.SignInWithGoogle] persisting tokens")
	}
	if err := m.store.StoreUserData(*user); err != nil {
		return nil, errors.Wrap(err, "[Manager.SignInWithGoogle] persisting user data")
	}

	return &SignInResult{Tokens: *tokens, User: *user}, nil
}

// exchange trades the identity token for session tokens, provisioning a
// backend account and retrying once when no account is linked yet.
func (m *Manager) exchange(ctx context.Context, identity *provider.Identity) (*account.Tokens, error) {
	tokens, err := m.api.ExchangeGoogleToken(ctx, identity.IDToken)
	if err == nil {
		return tokens, nil
	}
	if api.StatusCode(err) != http.StatusNotFound {
		return nil, errors.Wrap(err, AuthExchangeErr.Error())
	}

	// No backend account linked to this identity yet.
	if _, err := m.api.CreateUser(ctx, api.CreateUserRequest{
		Username:    usernameFromEmail(identity.Email),
		Email:       identity.Email,
		Password:    oauthPasswordPlaceholder,
		PhoneNumber: "",
		FirstName:   identity.GivenName,
		LastName:    identity.FamilyName,
		GoogleID:    identity.Subject,
	}); err != nil {
		return nil, errors.Wrap(err, AccountProvisioningErr.Error())
	}

	tokens, err = m.api.ExchangeGoogleToken(ctx, identity.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, AuthExchangeErr.Error())
	}
	return tokens, nil
}

// SignOut revokes the provider session best-effort, then unconditionally
// clears local credentials. Local session termination is guaranteed;
// provider-side revocation is not.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.idp.SignOut(ctx); err != nil {
		log.Warn().Err(err).Msg("provider sign-out failed, clearing local session anyway")
	}
	m.store.RemoveTokens()
}

// normalizeProviderError maps classified provider failures to stable
// user-facing errors. The raw provider error is logged here and never
// leaks past this package.
func normalizeProviderError(err error) error {
	switch provider.StatusOf(err) {
	case provider.StatusInProgress:
		return SignInInProgressErr
	case provider.StatusUnavailable:
		return ServicesUnavailableErr
	default:
		log.Error().Err(err).Msg("provider sign-in failed")
		return SignInFailedErr
	}
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
