// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-service/internal/crypto"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/validators"
	"github.com/MKhiriev/go-user-service/models"
)

// accountService is the concrete implementation of AccountService.
// It owns the account lifecycle: credentials are hashed with a
// crypto.PasswordHasher, tokens are issued by a TokenService and every
// successful signup is recorded in the audit ledger.
type accountService struct {
	userRepository store.UserRepository
	ledger         store.AuditLedger
	locker         store.EmailLocker

	hasher    crypto.PasswordHasher
	tokens    TokenService
	validator validators.Validator

	logger *logger.Logger
}

// NewAccountService wires the account lifecycle to its dependencies.
// The returned service holds no mutable state and is safe for concurrent use.
func NewAccountService(
	userRepository store.UserRepository,
	ledger store.AuditLedger,
	locker store.EmailLocker,
	hasher crypto.PasswordHasher,
	tokens TokenService,
	validator validators.Validator,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		userRepository: userRepository,
		ledger:         ledger,
		locker:         locker,
		hasher:         hasher,
		tokens:         tokens,
		validator:      validator,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Names and email are trimmed, the email is lower-cased. Returns the stored
// user carrying its first session token or:
//   - ErrInvalidDataProvided if any field is blank.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - store.ErrRegistrationInProgress if the same email is being registered
//     by a concurrent request.
func (a *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req = normalizeRegisterRequest(req)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	// The lookup, hashing and insert all run under the email lock.
	unlock, err := a.locker.Lock(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("registration lock was not acquired")
		return models.User{}, err
	}
	defer unlock()

	if err = a.ensureEmailIsFree(ctx, req.Email); err != nil {
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.userRepository.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	registered, _, err := a.rotateToken(ctx, created)
	if err != nil {
		return models.User{}, err
	}

	if err = a.ledger.Append(ctx, registered); err != nil {
		log.Warn().Err(err).Str("id", registered.ID).Msg("signup was not recorded in the audit ledger")
	}

	log.Info().Str("id", registered.ID).Msg("user registered")
	return registered, nil
}

// Login authenticates an existing user and issues a new session token.
//
// Returns the session or:
//   - ErrInvalidDataProvided if email or password is blank.
//   - store.ErrNoUserWasFound if no account has this email.
//   - ErrWrongPassword if the password does not match.
func (a *accountService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	found, err := a.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, found.PasswordHash) {
		log.Warn().Str("id", found.ID).Msg("wrong password")
		return models.Session{}, ErrWrongPassword
	}

	user, token, err := a.rotateToken(ctx, found)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{User: user, Token: &token}, nil
}

func (a *accountService) GetProfile(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := a.userRepository.FindByID(ctx, identity.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", identity.UserID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-blank fields of update to the caller's
// record. Blank values are ignored. A new password is re-hashed. When the
// email changes a new token bound to it is issued and returned in the
// session; otherwise Session.Token is nil.
//
// An update without applicable fields returns the current record.
func (a *accountService) UpdateProfile(ctx context.Context, identity models.Identity, update models.ProfileUpdate) (models.Session, error) {
	log := logger.FromContext(ctx)

	changes, err := a.buildUserChanges(update)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Session{}, err
	}

	if changes.IsEmpty() {
		user, err := a.GetProfile(ctx, identity)
		return models.Session{User: user}, err
	}

	updated, err := a.userRepository.Update(ctx, identity.UserID, changes)
	if err != nil {
		log.Err(err).Str("id", identity.UserID).Msg("profile update failed")
		return models.Session{}, fmt.Errorf("profile update failed: %w", err)
	}

	if changes.Email == nil || *changes.Email == identity.Email {
		return models.Session{User: updated}, nil
	}

	user, token, err := a.rotateToken(ctx, updated)
	if err != nil {
		return models.Session{}, err
	}

	log.Info().Str("id", user.ID).Msg("email changed, session token rotated")
	return models.Session{User: user, Token: &token}, nil
}

// ensureEmailIsFree turns an existing record into ErrEmailAlreadyExists and
// tolerates only the not-found outcome of the lookup.
func (a *accountService) ensureEmailIsFree(ctx context.Context, email string) error {
	_, err := a.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return store.ErrEmailAlreadyExists
	case errors.Is(err, store.ErrNoUserWasFound):
		return nil
	default:
		logger.FromContext(ctx).Err(err).Str("email", email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}
}

// rotateToken issues a token for user and stores it on the record.
func (a *accountService) rotateToken(ctx context.Context, user models.User) (models.User, models.Token, error) {
	token, err := a.tokens.IssueToken(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", user.ID).Msg("token creation failed")
		return models.User{}, models.Token{}, err
	}

	signed := token.String()
	updated, err := a.userRepository.Update(ctx, user.ID, models.UserChanges{Token: &signed})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", user.ID).Msg("token was not saved")
		return models.User{}, models.Token{}, fmt.Errorf("token was not saved: %w", err)
	}

	return updated, token, nil
}

func (a *accountService) buildUserChanges(update models.ProfileUpdate) (models.UserChanges, error) {
	var changes models.UserChanges

	changes.FirstName = nonBlank(update.FirstName, strings.TrimSpace)
	changes.LastName = nonBlank(update.LastName, strings.TrimSpace)
	changes.Email = nonBlank(update.Email, normalizeEmail)

	if password := nonBlank(update.Password, keepAsIs); password != nil {
		hash, err := a.hasher.Hash(*password)
		if err != nil {
			return models.UserChanges{}, fmt.Errorf("password hashing failed: %w", err)
		}
		changes.PasswordHash = &hash
	}

	return changes, nil
}

// nonBlank returns a pointer to the normalised value, or nil when value is
// nil or blank.
func nonBlank(value *string, normalize func(string) string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	normalized := normalize(*value)
	return &normalized
}

func keepAsIs(s string) string { return s }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeRegisterRequest(req models.RegisterRequest) models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     normalizeEmail(req.Email),
		Password:  req.Password,
	}
}
