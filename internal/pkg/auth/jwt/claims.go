package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims carried by PawHaven session tokens.
// It combines the standard claims required for validity checks with the
// custom claims the handlers and the chat widget need to identify the
// current principal.
type Payload struct {
	// StandardClaims embeds Exp (Expiration), Iat (Issued At), and Iss
	// (Issuer), which drive token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account identifier of the token holder.
	ID string `json:"id"`

	// Username is the display name shown in the UI and in support chat.
	Username string `json:"username"`

	// IsAdmin grants access to listing management, application review, and
	// the staff side of support chat.
	IsAdmin bool `json:"is_admin"`
}
