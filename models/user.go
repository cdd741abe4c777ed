package models

import "time"

// User represents a registered account.
// It carries identity attributes, the credential hash and the last issued
// session token. The credential hash never leaves the server: it is excluded
// from JSON serialization.
type User struct {
	// ID is the store-generated unique identifier of the user.
	// It is a MongoDB ObjectID in hex form or a ULID for SQL backends.
	ID string `json:"id"`

	// FirstName is the given name of the user. Required, trimmed.
	FirstName string `json:"firstName"`

	// LastName is the family name of the user. Required, trimmed.
	LastName string `json:"lastName"`

	// Email is the unique login identifier. Stored trimmed and lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Token is the last session token issued to the user.
	// Informational only: verification never consults it.
	Token string `json:"token,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation of the record.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table (or document collection)
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserChanges describes a partial update of a stored [User].
// Only non-nil fields are applied; UpdatedAt is refreshed by the store on
// every successful update.
type UserChanges struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	Token        *string
}

// IsEmpty reports whether no field is set for update.
func (c UserChanges) IsEmpty() bool {
	return c.FirstName == nil &&
		c.LastName == nil &&
		c.Email == nil &&
		c.PasswordHash == nil &&
		c.Token == nil
}

// Identity is the authenticated subject resolved from a valid session token.
// It is attached to the request context by the authentication middleware.
type Identity struct {
	UserID string
	Email  string
}
