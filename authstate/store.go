// Package authstate exposes the session as reactive UI state: a single
// observable record plus the imperative operations presentation code
// binds to. Any UI layer can subscribe to state changes; nothing here
// assumes a particular rendering framework.
package authstate

import (
	"context"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/jrsteele09/go-tasklist-client/account"
	"github.com/jrsteele09/go-tasklist-client/session"
)

// TopicStateChanged is the event-bus topic every state transition is
// published on. Subscribers receive the new State by value.
const TopicStateChanged = "auth.state.changed"

// State is the authoritative session state record. Exactly one instance
// exists per Store; IsAuthenticated is never true while User is nil.
type State struct {
	IsLoading       bool
	IsAuthenticated bool
	User            *account.User
	Error           string // "" when no error is set
}

// Store owns the session state record and is the only writer to it. It
// does not serialize overlapping SignIn calls: both run, last write wins,
// and callers are expected to gate on IsLoading to avoid double-invocation.
type Store struct {
	lock    sync.RWMutex
	state   State
	bus     evbus.Bus
	manager *session.Manager
}

// NewStore wraps the session manager in an observable state container.
// The initial state is loading until RefreshAuthStatus settles it.
func NewStore(manager *session.Manager) *Store {
	return &Store{
		state:   State{IsLoading: true},
		bus:     evbus.New(),
		manager: manager,
	}
}

// State returns a copy of the current state record.
func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

// Subscribe registers fn for every state transition.
func (s *Store) Subscribe(fn func(State)) error {
	return s.bus.Subscribe(TopicStateChanged, fn)
}

// Unsubscribe removes a previously registered handler.
func (s *Store) Unsubscribe(fn func(State)) error {
	return s.bus.Unsubscribe(TopicStateChanged, fn)
}

// setState replaces the record atomically and notifies subscribers.
// Subscribers always observe a consistent record, never an intermediate
// one where IsAuthenticated and User disagree.
func (s *Store) setState(next State) {
	s.lock.Lock()
	s.state = next
	s.lock.Unlock()
	s.bus.Publish(TopicStateChanged, next)
}

// mutate applies fn to a copy of the current record and installs the result.
func (s *Store) mutate(fn func(State) State) {
	s.lock.Lock()
	next := fn(s.state)
	s.state = next
	s.lock.Unlock()
	s.bus.Publish(TopicStateChanged, next)
}

// RefreshAuthStatus re-runs the mount-time status check: local token
// presence, then the cached profile. Call it once on startup and again
// for pull-to-refresh-style re-validation.
func (s *Store) RefreshAuthStatus(_ context.Context) {
	s.mutate(func(prev State) State {
		prev.IsLoading = true
		prev.Error = ""
		return prev
	})

	if s.manager.IsAuthenticated() {
		s.setState(State{
			IsAuthenticated: true,
			User:            s.manager.CurrentUser(),
		})
		return
	}
	s.setState(State{})
}

// SignIn runs the interactive sign-in and settles the state atomically.
// A nil result with nil error is the user cancelling: the state returns
// to not-loading with no error set. Failures set the error field and are
// also returned so imperative callers can react directly.
func (s *Store) SignIn(ctx context.Context) (*session.SignInResult, error) {
	s.mutate(func(prev State) State {
		prev.IsLoading = true
		prev.Error = ""
		return prev
	})

	result, err := s.manager.SignInWithGoogle(ctx)
	if err != nil {
		s.setState(State{Error: err.Error()})
		return nil, err
	}
	if result == nil {
		// User cancelled or other non-error outcome.
		s.mutate(func(prev State) State {
			prev.IsLoading = false
			return prev
		})
		return nil, nil
	}

	user := result.User
	s.setState(State{
		IsAuthenticated: true,
		User:            &user,
	})
	return result, nil
}

// SignOut tears the session down. Local termination is guaranteed by the
// session manager, so the state always settles signed out.
func (s *Store) SignOut(ctx context.Context) {
	s.mutate(func(prev State) State {
		prev.IsLoading = true
		prev.Error = ""
		return prev
	})

	s.manager.SignOut(ctx)
	s.setState(State{})
}

// ClearError resets only the error field, leaving the rest of the record
// untouched.
func (s *Store) ClearError() {
	s.mutate(func(prev State) State {
		prev.Error = ""
		return prev
	})
}
