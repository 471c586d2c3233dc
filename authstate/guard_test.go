package authstate_test

import (
	"testing"

	"github.com/jrsteele09/go-tasklist-client/authstate"
	"github.com/stretchr/testify/require"
)

func TestGuardWaitsForAuthCheckToSettle(t *testing.T) {
	guard := authstate.NewGuard()

	_, ok := guard.Redirect("home", authstate.State{IsLoading: true})
	require.False(t, ok)

	_, ok = guard.Redirect("login", authstate.State{IsLoading: true, IsAuthenticated: true, User: &testUser})
	require.False(t, ok)
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	guard := authstate.NewGuard()

	route, ok := guard.Redirect("home", authstate.State{})
	require.True(t, ok)
	require.Equal(t, authstate.LoginRoute, route)
}

func TestGuardRedirectsAuthenticatedAwayFromLogin(t *testing.T) {
	guard := authstate.NewGuard()

	route, ok := guard.Redirect("login", authstate.State{IsAuthenticated: true, User: &testUser})
	require.True(t, ok)
	require.Equal(t, authstate.HomeRoute, route)
}

func TestGuardLeavesSettledUsersAlone(t *testing.T) {
	guard := authstate.NewGuard()

	_, ok := guard.Redirect("login", authstate.State{})
	require.False(t, ok)

	_, ok = guard.Redirect("home", authstate.State{IsAuthenticated: true, User: &testUser})
	require.False(t, ok)
}

func TestGuardWithCustomRoutes(t *testing.T) {
	guard := authstate.NewGuardWithRoutes("/signin", "/dashboard")

	route, ok := guard.Redirect("/dashboard", authstate.State{})
	require.True(t, ok)
	require.Equal(t, "/signin", route)

	route, ok = guard.Redirect("/signin", authstate.State{IsAuthenticated: true, User: &testUser})
	require.True(t, ok)
	require.Equal(t, "/dashboard", route)
}
