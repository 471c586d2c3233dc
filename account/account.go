package account

// Tokens is the bearer credential issued by the backend's token exchange.
// The access token is opaque to this client; it is stored verbatim and
// replayed on every authenticated request.
type Tokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the backend account record. The cached copy held by the
// credential store may be stale relative to the server; nothing in this
// client refreshes it except an explicit re-fetch.
type User struct {
	UserID        string `json:"user_id,omitempty"`         // Unique identifier assigned by the backend
	Username      string `json:"username,omitempty"`        // Unique username, derived from the email local part on provisioning
	Email         string `json:"email,omitempty"`           // User's email address
	PhoneNumber   string `json:"phone_number,omitempty"`    // Optional, empty for freshly provisioned accounts
	FirstName     string `json:"first_name,omitempty"`      // First name of the user
	LastName      string `json:"last_name,omitempty"`       // Last name of the user
	CreatedAt     string `json:"created_at,omitempty"`      // When the backend account was created
	LastUpdatedAt string `json:"last_updated_at,omitempty"` // Last server-side modification
}
