// Package google implements provider.Provider against Google's OIDC
// endpoints using an authorization-code + PKCE flow on a localhost
// loopback redirect.
package google

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-tasklist-client/provider"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	issuerURL = "https://accounts.google.com"
	revokeURL = "https://oauth2.googleapis.com/revoke"
)

var _ provider.Provider = (*Provider)(nil)

// Provider drives Google's interactive sign-in. One instance supports one
// sign-in at a time; a second concurrent SignIn reports StatusInProgress.
type Provider struct {
	lock       sync.Mutex
	cfg        provider.Config
	configured bool
	inFlight   bool
	lastToken  *oauth2.Token

	// openURL launches the system browser. Injectable for testing.
	openURL func(url string) error

	// issuer is Google's in production, overridable for tests against a
	// local OIDC stub.
	issuer string

	httpClient *http.Client
}

// Option modifies the Provider instance.
type Option func(*Provider)

// WithBrowserOpener sets the function used to launch the sign-in URL.
func WithBrowserOpener(open func(url string) error) Option {
	return func(p *Provider) {
		p.openURL = open
	}
}

// WithIssuer overrides the OIDC issuer (primarily for testing).
func WithIssuer(issuer string) Option {
	return func(p *Provider) {
		p.issuer = issuer
	}
}

// WithHTTPClient sets the HTTP client used for discovery, exchange and
// revocation.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// New creates an unconfigured Google provider.
func New(options ...Option) *Provider {
	p := &Provider{
		issuer:     issuerURL,
		httpClient: http.DefaultClient,
		openURL:    launchBrowser,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Configure stores the client identifiers. Safe to call repeatedly.
func (p *Provider) Configure(cfg provider.Config) error {
	if cfg.WebClientID == "" {
		return errors.New("[Provider.Configure] web client ID is required")
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	p.cfg = cfg
	p.configured = true
	return nil
}

// CheckAvailability runs OIDC discovery against the issuer. Discovery
// failure is the closest analogue to "play services unavailable" on a
// device SDK and is classified accordingly.
func (p *Provider) CheckAvailability(ctx context.Context) error {
	if _, err := p.discover(ctx); err != nil {
		return provider.NewStatusError(provider.StatusUnavailable, err)
	}
	return nil
}

// SignIn runs the interactive browser flow and returns the verified
// identity. Context cancellation while waiting for the redirect is the
// user declining, reported as StatusCancelled.
func (p *Provider) SignIn(ctx context.Context) (*provider.Identity, error) {
	p.lock.Lock()
	if !p.configured {
		p.lock.Unlock()
		return nil, errors.New("[Provider.SignIn] provider not configured")
	}
	if p.inFlight {
		p.lock.Unlock()
		return nil, provider.NewStatusError(provider.StatusInProgress, errors.New("sign-in already in progress"))
	}
	p.inFlight = true
	clientID := p.cfg.WebClientID
	p.lock.Unlock()

	defer func() {
		p.lock.Lock()
		p.inFlight = false
		p.lock.Unlock()
	}()

	oidcProvider, err := p.discover(ctx)
	if err != nil {
		return nil, provider.NewStatusError(provider.StatusUnavailable, err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "[Provider.SignIn] loopback listen")
	}
	defer listener.Close()

	oauthConfig := &oauth2.Config{
		ClientID:    clientID,
		Endpoint:    oidcProvider.Endpoint(),
		RedirectURL: fmt.Sprintf("http://%s/callback", listener.Addr().String()),
		Scopes:      []string{oidc.ScopeOpenID, "profile", "email"},
	}

	state := uuid.New().String()
	nonce := uuid.New().String()
	verifier := oauth2.GenerateVerifier()

	authURL := oauthConfig.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oidc.Nonce(nonce),
	)

	code, err := p.awaitCallback(ctx, listener, state, authURL)
	if err != nil {
		return nil, err
	}

	exchangeCtx := oidc.ClientContext(ctx, p.httpClient)
	oauth2Token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, provider.NewStatusError(provider.StatusUnknown, errors.Wrap(err, "token exchange failed"))
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, provider.NewStatusError(provider.StatusUnknown, errors.New("no ID token in response"))
	}

	// Verify the ID token signature and claims (including nonce)
	idToken, err := oidcProvider.Verifier(&oidc.Config{ClientID: clientID}).Verify(exchangeCtx, rawIDToken)
	if err != nil {
		return nil, provider.NewStatusError(provider.StatusUnknown, errors.Wrap(err, "ID token verification failed"))
	}

	var claims struct {
		Nonce      string `json:"nonce"`
		Sub        string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, provider.NewStatusError(provider.StatusUnknown, errors.Wrap(err, "extracting claims"))
	}
	if claims.Nonce != nonce {
		return nil, provider.NewStatusError(provider.StatusUnknown, errors.New("nonce mismatch"))
	}

	p.lock.Lock()
	p.lastToken = oauth2Token
	p.lock.Unlock()

	return &provider.Identity{
		IDToken:    rawIDToken,
		Subject:    claims.Sub,
		Email:      claims.Email,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}

// SignOut revokes the provider tokens from the last sign-in, if any.
func (p *Provider) SignOut(ctx context.Context) error {
	p.lock.Lock()
	token := p.lastToken
	p.lastToken = nil
	p.lock.Unlock()

	if token == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL+"?token="+token.AccessToken, nil)
	if err != nil {
		return errors.Wrap(err, "[Provider.SignOut] building revoke request")
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Provider.SignOut] revoke request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("[Provider.SignOut] revoke returned %s", resp.Status)
	}
	return nil
}

func (p *Provider) discover(ctx context.Context) (*oidc.Provider, error) {
	discoveryCtx := oidc.ClientContext(ctx, p.httpClient)
	oidcProvider, err := oidc.NewProvider(discoveryCtx, p.issuer)
	if err != nil {
		return nil, errors.Wrap(err, "OIDC discovery failed")
	}
	return oidcProvider, nil
}

// awaitCallback serves the loopback redirect endpoint until Google sends
// the user back with an authorization code, the user denies consent, or
// the context is cancelled.
func (p *Provider) awaitCallback(ctx context.Context, listener net.Listener, state, authURL string) (string, error) {
	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errParam := r.FormValue("error"); errParam != "" {
			// access_denied is the user backing out of the consent screen.
			if errParam == "access_denied" {
				fmt.Fprintln(w, "Sign-in cancelled. You can close this window.")
				results <- callbackResult{err: provider.NewStatusError(provider.StatusCancelled, errors.New(errParam))}
				return
			}
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
			results <- callbackResult{err: provider.NewStatusError(provider.StatusUnknown,
				errors.Errorf("authorization failed: %s - %s", errParam, r.FormValue("error_description")))}
			return
		}
		if r.FormValue("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			results <- callbackResult{err: provider.NewStatusError(provider.StatusUnknown, errors.New("state mismatch"))}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		results <- callbackResult{code: r.FormValue("code")}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Msg("loopback callback server")
		}
	}()
	defer server.Close()

	if err := p.openURL(authURL); err != nil {
		return "", provider.NewStatusError(provider.StatusUnavailable, errors.Wrap(err, "launching browser"))
	}

	select {
	case result := <-results:
		return result.code, result.err
	case <-ctx.Done():
		return "", provider.NewStatusError(provider.StatusCancelled, ctx.Err())
	}
}
