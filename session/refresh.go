package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt peeks at the stored access token's expiry claim without
// verifying the signature. It exists as an insertion point for a future
// token-refresh protocol; today nothing acts on it and session validity
// is still judged purely by local token presence. Returns the zero time
// when no token is stored, the token is opaque, or it carries no expiry.
func (m *Manager) TokenExpiresAt() time.Time {
	tokens := m.store.Tokens()
	if tokens == nil {
		return time.Time{}
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokens.AccessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
