package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a create or update would give
	// two records the same email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup or update matches no
	// record.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRegistrationInProgress is returned by an [EmailLocker] when the
	// same email is being registered concurrently.
	ErrRegistrationInProgress = errors.New("registration for this email is in progress")

	// ErrUnsupportedDSN is returned when no backend matches the DSN scheme.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are wrapped by repository
// methods when an operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or statement
	// against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrDecodingDocument is returned when a MongoDB document cannot be
	// decoded into a user record.
	ErrDecodingDocument = errors.New("failed to decode user document")
)
