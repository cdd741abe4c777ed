package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT together with the subject data it carries.
//
// It embeds [jwt.RegisteredClaims] for standard claim access (sub, exp, iat,
// iss) and adds the Email claim, so the same type is used both as the claims
// destination when parsing and as the result of issuing a token.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// Email is the subject's login email at issuance time.
	Email string `json:"email"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is a cached copy of the "sub" claim.
	UserID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// ExpiresIn returns the remaining validity of the token relative to now.
// A token without an expiry claim reports zero.
func (t *Token) ExpiresIn(now time.Time) time.Duration {
	if t.ExpiresAt == nil {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// Identity returns the authenticated subject encoded in the token.
func (t *Token) Identity() Identity {
	return Identity{UserID: t.UserID, Email: t.Email}
}
