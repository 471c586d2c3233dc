package authstate

// Default route names the guard decides between.
const (
	LoginRoute = "login"
	HomeRoute  = "home"
)

// Guard is the route-guard decision function: given where the user is and
// the current session state, it says where they should be redirected.
// It is pure; the navigation layer subscribes to the Store and applies
// whatever the guard decides.
type Guard struct {
	loginRoute string
	homeRoute  string
}

// NewGuard creates a guard with the default route names.
func NewGuard() *Guard {
	return &Guard{loginRoute: LoginRoute, homeRoute: HomeRoute}
}

// NewGuardWithRoutes creates a guard for custom route names.
func NewGuardWithRoutes(loginRoute, homeRoute string) *Guard {
	return &Guard{loginRoute: loginRoute, homeRoute: homeRoute}
}

// Redirect returns the route the user should be moved to, or ok=false when
// they can stay put. While the state is loading no decision is made: the
// auth check has to settle first.
func (g *Guard) Redirect(currentRoute string, state State) (route string, ok bool) {
	if state.IsLoading {
		return "", false
	}

	onLogin := currentRoute == g.loginRoute

	if !state.IsAuthenticated && !onLogin {
		return g.loginRoute, true
	}
	if state.IsAuthenticated && onLogin {
		return g.homeRoute, true
	}
	return "", false
}
