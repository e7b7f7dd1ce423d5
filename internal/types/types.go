package types

import "encoding/json"

const ContextUserKey = "user"

// Profile is the normalized identity-provider payload handed to the
// authentication flow after a successful handshake.
type Profile struct {
	Subject     string
	DisplayName string
	Emails      []string
	Photos      []string

	// Raw is the unmodified userinfo document, kept on the User row.
	Raw json.RawMessage
}

// UserResponse is the client-facing shape of a user record. The password
// credential never leaves the repository layer.
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

var AllowedOrigins []string

// SetAllowedOrigins records the CORS allow-list for origin checks outside
// the CORS middleware (websocket upgrades).
func SetAllowedOrigins(origins []string) {
	AllowedOrigins = origins
}
