package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/migrations"
)

// DB is a relational connection together with the dialect specifics the
// user repository needs: goose dialect, placeholder format and the
// driver-level unique-violation check.
type DB struct {
	*sql.DB
	dialect           string
	placeholder       sq.PlaceholderFormat
	isUniqueViolation func(err error) bool
	logger            *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// builder returns a squirrel statement builder bound to the dialect's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}
