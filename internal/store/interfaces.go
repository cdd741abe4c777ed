package store

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user records keyed by id, with email unique across
// all records.
//
// Implementations store emails exactly as given; callers normalise them.
type UserRepository interface {
	// Create inserts user and returns it with ID, CreatedAt and UpdatedAt
	// assigned. A taken email yields [ErrEmailAlreadyExists].
	Create(ctx context.Context, user models.User) (models.User, error)

	// FindByEmail returns the record with exactly this email or
	// [ErrNoUserWasFound].
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindByID returns the record with this id or [ErrNoUserWasFound].
	// Malformed ids are reported as not found.
	FindByID(ctx context.Context, id string) (models.User, error)

	// Update applies the non-nil fields of changes, refreshes UpdatedAt and
	// returns the record after the update.
	Update(ctx context.Context, id string, changes models.UserChanges) (models.User, error)
}

// AuditLedger records every successful registration outside the user store.
type AuditLedger interface {
	Append(ctx context.Context, user models.User) error
}

// EmailLocker serialises registrations of the same email across service
// instances. Lock returns [ErrRegistrationInProgress] when another holder
// owns the lock; the returned unlock func releases it.
type EmailLocker interface {
	Lock(ctx context.Context, email string) (unlock func(), err error)
}
