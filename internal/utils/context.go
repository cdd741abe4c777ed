// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, JWT token generation and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authentication middleware stores
// the authenticated [models.Identity].
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the context.
//
// Returns ok == false if the value is missing, has an unexpected type or
// carries an empty user ID.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || identity.UserID == "" {
		return models.Identity{}, false
	}
	return identity, true
}
