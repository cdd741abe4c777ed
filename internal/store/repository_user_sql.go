// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

var userColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"password_hash",
	"token",
	"created_at",
	"updated_at",
}

// sqlUserRepository is the database/sql implementation of [UserRepository]
// shared by the PostgreSQL and SQLite backends. Queries are built with
// squirrel using the placeholder format of the underlying [DB].
type sqlUserRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLUserRepository constructs a [UserRepository] over a relational DB.
// Record ids are ULIDs.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating sql user repository")
	return &sqlUserRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create inserts a new user row.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *sqlUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	id, err := utils.NewULID(now)
	if err != nil {
		return models.User{}, fmt.Errorf("error generating user id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := r.buildInsertUserQuery(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*sqlUserRepository.Create").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *sqlUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// Update applies changes with a single UPDATE and reads the row back.
// Zero affected rows means the id is unknown.
func (r *sqlUserRepository) Update(ctx context.Context, id string, changes models.UserChanges) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateUserQuery(id, changes, r.now())
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*sqlUserRepository.Update").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return r.FindByID(ctx, id)
}

func (r *sqlUserRepository) findOne(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Token,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*sqlUserRepository.findOne").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *sqlUserRepository) buildInsertUserQuery(user models.User) (string, []any, error) {
	return r.db.builder().
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(
			user.ID,
			user.FirstName,
			user.LastName,
			user.Email,
			user.PasswordHash,
			user.Token,
			user.CreatedAt,
			user.UpdatedAt,
		).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of changes plus
// updated_at. An empty change set still touches updated_at.
func (r *sqlUserRepository) buildUpdateUserQuery(id string, changes models.UserChanges, now time.Time) (string, []any, error) {
	update := r.db.builder().Update(models.User{}.TableName())

	if changes.FirstName != nil {
		update = update.Set("first_name", *changes.FirstName)
	}
	if changes.LastName != nil {
		update = update.Set("last_name", *changes.LastName)
	}
	if changes.Email != nil {
		update = update.Set("email", *changes.Email)
	}
	if changes.PasswordHash != nil {
		update = update.Set("password_hash", *changes.PasswordHash)
	}
	if changes.Token != nil {
		update = update.Set("token", *changes.Token)
	}

	return update.
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}
