package credentials

import (
	"encoding/json"

	"github.com/jrsteele09/go-tasklist-client/account"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Storage keys within the secure store.
const (
	tokenKey    = "user_token"
	userDataKey = "user_data"
)

var (
	TokenWriteErr    = errors.New("failed to store authentication tokens")
	UserDataWriteErr = errors.New("failed to store user data")
)

// Store persists session tokens and the cached user profile in a platform
// secure store. Reads follow a fail-open-to-logged-out policy: a missing or
// unparseable value reads as nil, never as an error, so corrupt state can
// only ever demote a session to "not authenticated".
type Store struct {
	secure SecureStore
}

// New creates a Store on top of the given secure key-value store.
func New(secure SecureStore) *Store {
	return &Store{secure: secure}
}

// StoreTokens persists the bearer tokens. Write failures propagate: the
// caller must not treat a sign-in as complete without durable tokens.
func (s *Store) StoreTokens(tokens account.Tokens) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return errors.Wrap(err, TokenWriteErr.Error())
	}
	if err := s.secure.Set(tokenKey, string(data)); err != nil {
		return errors.Wrap(err, TokenWriteErr.Error())
	}
	return nil
}

// Tokens returns the stored tokens, or nil when none exist or the stored
// value does not parse.
func (s *Store) Tokens() *account.Tokens {
	data, err := s.secure.Get(tokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("reading stored tokens")
		}
		return nil
	}
	var tokens account.Tokens
	if err := json.Unmarshal([]byte(data), &tokens); err != nil {
		log.Warn().Err(err).Msg("stored tokens did not parse, treating as signed out")
		return nil
	}
	return &tokens
}

// StoreUserData caches the user profile alongside the tokens. The profile
// has an independent lifecycle: it may be absent while tokens exist during
// the sign-in window.
func (s *Store) StoreUserData(user account.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, UserDataWriteErr.Error())
	}
	if err := s.secure.Set(userDataKey, string(data)); err != nil {
		return errors.Wrap(err, UserDataWriteErr.Error())
	}
	return nil
}

// UserData returns the cached profile, or nil when absent or unparseable.
func (s *Store) UserData() *account.User {
	data, err := s.secure.Get(userDataKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("reading cached user data")
		}
		return nil
	}
	var user account.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		log.Warn().Err(err).Msg("cached user data did not parse")
		return nil
	}
	return &user
}

// RemoveTokens deletes both tokens and the cached profile. Failures are
// logged and swallowed: sign-out must always appear to succeed locally so
// the UI cannot get stuck in a broken authenticated state.
func (s *Store) RemoveTokens() {
	if err := s.secure.Delete(tokenKey); err != nil {
		log.Error().Err(err).Msg("removing stored tokens")
	}
	if err := s.secure.Delete(userDataKey); err != nil {
		log.Error().Err(err).Msg("removing cached user data")
	}
}
