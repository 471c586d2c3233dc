// Package provider abstracts the federated identity provider used for
// sign-in. The session manager only ever sees this interface; provider
// SDK error codes are carried as StatusError values and never leak past
// the session layer.
package provider

import "context"

// Config carries the client identifiers injected at configure time.
type Config struct {
	WebClientID string
	IOSClientID string
}

// Identity is the result of a successful interactive sign-in: the raw
// identity token plus the profile claims the backend needs for account
// provisioning.
type Identity struct {
	IDToken    string // Raw identity token, exchanged with the backend
	Subject    string // Provider-assigned stable user identifier
	Email      string
	GivenName  string
	FamilyName string
}

// Provider is a federated sign-in provider.
type Provider interface {
	// Configure prepares the provider with client identifiers. Must be
	// idempotent; callers guard it with their own one-time flag.
	Configure(cfg Config) error

	// CheckAvailability verifies the provider's prerequisite services are
	// reachable. Failure carries StatusUnavailable.
	CheckAvailability(ctx context.Context) error

	// SignIn runs the interactive sign-in. User cancellation carries
	// StatusCancelled; a second concurrent attempt carries StatusInProgress.
	SignIn(ctx context.Context) (*Identity, error)

	// SignOut revokes the provider-side session. Best effort: callers
	// treat failure as non-fatal.
	SignOut(ctx context.Context) error
}
