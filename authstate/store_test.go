package authstate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-tasklist-client/account"
	"github.com/jrsteele09/go-tasklist-client/api"
	"github.com/jrsteele09/go-tasklist-client/authstate"
	"github.com/jrsteele09/go-tasklist-client/credentials"
	"github.com/jrsteele09/go-tasklist-client/credentials/storefakes"
	"github.com/jrsteele09/go-tasklist-client/provider"
	"github.com/jrsteele09/go-tasklist-client/provider/providerfakes"
	"github.com/jrsteele09/go-tasklist-client/session"
	"github.com/stretchr/testify/require"
)

var testUser = account.User{UserID: "u1", Username: "a", Email: "a@b.com"}

type testFixture struct {
	idp    *providerfakes.FakeProvider
	secure *storefakes.FakeSecureStore
	creds  *credentials.Store
	store  *authstate.Store
}

// setupTestFixture wires a Store to a fake provider and a stub backend
// that always signs "a@b.com" in successfully.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/google", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(account.Tokens{AccessToken: "tok1", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /users/google-id/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(testUser)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	idp := providerfakes.NewFakeProvider()
	idp.Identity = &provider.Identity{IDToken: "abc", Subject: "g1", Email: "a@b.com"}

	secure := storefakes.NewFakeSecureStore()
	creds := credentials.New(secure)
	client := api.New(server.URL, func() string {
		if tokens := creds.Tokens(); tokens != nil {
			return tokens.AccessToken
		}
		return ""
	})

	manager, err := session.NewManager(idp, client, creds, provider.Config{WebClientID: "web-client-1"})
	require.NoError(t, err)

	return &testFixture{
		idp:    idp,
		secure: secure,
		creds:  creds,
		store:  authstate.NewStore(manager),
	}
}

func TestInitialStateIsLoading(t *testing.T) {
	f := setupTestFixture(t)

	state := f.store.State()
	require.True(t, state.IsLoading)
	require.False(t, state.IsAuthenticated)
}

func TestRefreshAuthStatusSettlesSignedOut(t *testing.T) {
	f := setupTestFixture(t)

	f.store.RefreshAuthStatus(context.Background())

	require.Equal(t, authstate.State{}, f.store.State())
}

func TestRefreshAuthStatusRestoresSession(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.creds.StoreTokens(account.Tokens{AccessToken: "tok1", TokenType: "bearer"}))
	require.NoError(t, f.creds.StoreUserData(testUser))

	f.store.RefreshAuthStatus(context.Background())

	state := f.store.State()
	require.False(t, state.IsLoading)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, &testUser, state.User)
	require.Empty(t, state.Error)
}

func TestSignInSuccess(t *testing.T) {
	f := setupTestFixture(t)

	result, err := f.store.SignIn(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	state := f.store.State()
	require.False(t, state.IsLoading)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "u1", state.User.UserID)
	require.Empty(t, state.Error)
}

func TestSignInCancelledLeavesNoError(t *testing.T) {
	f := setupTestFixture(t)
	f.idp.SignInErr = provider.NewStatusError(provider.StatusCancelled, nil)

	result, err := f.store.SignIn(context.Background())
	require.NoError(t, err)
	require.Nil(t, result)

	state := f.store.State()
	require.False(t, state.IsLoading)
	require.False(t, state.IsAuthenticated)
	require.Empty(t, state.Error)
}

func TestSignInFailureSetsErrorAndReturnsIt(t *testing.T) {
	f := setupTestFixture(t)
	f.idp.SignInErr = provider.NewStatusError(provider.StatusUnknown, nil)

	_, err := f.store.SignIn(context.Background())
	require.Error(t, err)

	state := f.store.State()
	require.False(t, state.IsLoading)
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Equal(t, err.Error(), state.Error)
}

func TestSignInPersistenceFailureSettlesSignedOut(t *testing.T) {
	f := setupTestFixture(t)
	f.secure.FailWrites = true

	_, err := f.store.SignIn(context.Background())
	require.Error(t, err)

	state := f.store.State()
	require.False(t, state.IsAuthenticated)
	require.NotEmpty(t, state.Error)
	require.Nil(t, f.creds.Tokens())
}

func TestClearErrorResetsOnlyError(t *testing.T) {
	f := setupTestFixture(t)
	f.idp.SignInErr = provider.NewStatusError(provider.StatusUnknown, nil)

	_, err := f.store.SignIn(context.Background())
	require.Error(t, err)
	require.NotEmpty(t, f.store.State().Error)

	f.store.ClearError()

	state := f.store.State()
	require.Empty(t, state.Error)
	require.False(t, state.IsAuthenticated)
	require.False(t, state.IsLoading)
}

func TestSignOutSettlesSignedOut(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.store.SignIn(context.Background())
	require.NoError(t, err)

	f.idp.SignOutErr = provider.NewStatusError(provider.StatusUnknown, nil)
	f.store.SignOut(context.Background())

	require.Equal(t, authstate.State{}, f.store.State())
	require.Nil(t, f.creds.Tokens())
}

func TestSubscribersObserveOnlyConsistentStates(t *testing.T) {
	f := setupTestFixture(t)

	var observed []authstate.State
	handler := func(state authstate.State) {
		observed = append(observed, state)
	}
	require.NoError(t, f.store.Subscribe(handler))

	f.store.RefreshAuthStatus(context.Background())
	_, err := f.store.SignIn(context.Background())
	require.NoError(t, err)
	f.store.SignOut(context.Background())

	require.NotEmpty(t, observed)
	for _, state := range observed {
		if state.IsAuthenticated {
			require.NotNil(t, state.User)
		}
	}
	// Final transition observed is the signed-out record.
	require.Equal(t, authstate.State{}, observed[len(observed)-1])

	require.NoError(t, f.store.Unsubscribe(handler))
}

func TestSignInPublishesLoadingThenSettled(t *testing.T) {
	f := setupTestFixture(t)

	var observed []authstate.State
	require.NoError(t, f.store.Subscribe(func(state authstate.State) {
		observed = append(observed, state)
	}))

	_, err := f.store.SignIn(context.Background())
	require.NoError(t, err)

	require.Len(t, observed, 2)
	require.True(t, observed[0].IsLoading)
	require.False(t, observed[1].IsLoading)
	require.True(t, observed[1].IsAuthenticated)
}
