package models

// RegisterRequest is the payload of POST /register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the payload of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the payload of PUT /profile.
// Only non-nil fields are applied (partial update support).
type ProfileUpdate struct {
	// FirstName is the new given name. If nil, the field will not be updated.
	FirstName *string `json:"firstName,omitempty"`

	// LastName is the new family name. If nil, the field will not be updated.
	LastName *string `json:"lastName,omitempty"`

	// Email is the new login email. Changing it rotates the session token.
	Email *string `json:"email,omitempty"`

	// Password is the new plain-text password; it is re-hashed before storage.
	Password *string `json:"password,omitempty"`
}

// AccountResponse is the envelope returned by register, login and profile
// update endpoints.
type AccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Session is the outcome of an operation that (re)issued a session token.
// Token is nil when the operation kept the caller's current session.
type Session struct {
	User  User
	Token *Token
}
