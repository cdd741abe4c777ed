// Package crypto provides credential hashing for the account service.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plain-text passwords into storable one-way hashes and
// verifies plain-text candidates against stored hashes.
//
// Hashes are salted: hashing the same password twice yields different
// strings, and both verify successfully.
type PasswordHasher interface {
	// Hash returns the salted one-way hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password is the input that produced hash.
	// A malformed hash never panics and never verifies.
	Verify(password, hash string) bool
}
