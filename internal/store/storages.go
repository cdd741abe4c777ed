// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
)

// Backend identifies the user store implementation selected from the DSN.
type Backend string

const (
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Storages groups every persistence dependency of the service layer.
type Storages struct {
	UserRepository UserRepository
	AuditLedger    AuditLedger
	EmailLocker    EmailLocker

	closers []io.Closer
}

// NewStorages initialises the storage layer from cfg:
//  1. Selects the user store backend from the DSN scheme and connects to it
//     (SQL backends are migrated, MongoDB gets its unique email index).
//  2. Opens the CSV signup ledger.
//  3. Connects the redis registration lock when an address is configured.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	backend, err := DetectBackend(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	s := &Storages{
		AuditLedger: NewCSVLedger(cfg.Ledger.Path, log),
		EmailLocker: noopLocker{},
	}

	switch backend {
	case BackendMongo:
		db, err := NewConnectMongo(ctx, cfg.DB.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}
		s.closers = append(s.closers, db)
		s.UserRepository = NewMongoUserRepository(db, log)
	case BackendPostgres, BackendSQLite:
		connect := NewConnectPostgres
		if backend == BackendSQLite {
			connect = NewConnectSQLite
		}

		db, err := connect(ctx, cfg.DB.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", backend, err)
		}
		s.closers = append(s.closers, db)

		if err = db.Migrate(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		s.UserRepository = NewSQLUserRepository(db, log)
	}

	if cfg.Redis.Address != "" {
		locker, err := NewRedisLocker(ctx, cfg.Redis, log)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		s.closers = append(s.closers, locker)
		s.EmailLocker = locker
	}

	log.Info().Str("backend", string(backend)).Msg("storages created")
	return s, nil
}

// Close releases every connection opened by NewStorages.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil

	return errors.Join(errs...)
}

// DetectBackend maps a DSN to its backend:
// mongodb:// and mongodb+srv:// select MongoDB, postgres:// and
// postgresql:// select PostgreSQL, sqlite://, file: or a path ending in .db
// select SQLite.
func DetectBackend(dsn string) (Backend, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))

	switch {
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(lower, sqliteScheme), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), lower == ":memory:":
		return BackendSQLite, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}
