package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSQLRepo(t *testing.T, sqlite bool) (*sqlUserRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := newPostgresDB(conn, logger.Nop())
	if sqlite {
		db = newSQLiteDB(conn, logger.Nop())
	}

	repo := NewSQLUserRepository(db, logger.Nop()).(*sqlUserRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func ptr(s string) *string { return &s }

// ── Create ────────────────────────────────────────────────────────────────────

func TestSQLCreate_Success(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	user := models.User{FirstName: "A", LastName: "B", Email: "a@x.io", PasswordHash: "$2a$hash"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,first_name,last_name,email,password_hash,token,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)")).
		WithArgs(sqlmock.AnyArg(), "A", "B", "a@x.io", "$2a$hash", "", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)

	assert.Len(t, created.ID, 26)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, fixedNow, created.UpdatedAt)
	assert.Equal(t, "a@x.io", created.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCreate_UniqueViolationPostgres(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), models.User{Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLCreate_UniqueViolationSQLite(t *testing.T) {
	repo, mock := newTestSQLRepo(t, true)

	mock.ExpectExec(regexp.QuoteMeta("VALUES (?,?,?,?,?,?,?,?)")).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.Create(context.Background(), models.User{Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLCreate_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db network error"))

	_, err := repo.Create(context.Background(), models.User{Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

// ── FindByEmail / FindByID ────────────────────────────────────────────────────

func TestSQLFindByEmail_Success(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, first_name, last_name, email, password_hash, token, created_at, updated_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("a@x.io").
		WillReturnRows(userRows().AddRow("01J0000000000000000000000A", "A", "B", "a@x.io", "$2a$hash", "tok", fixedNow, fixedNow))

	user, err := repo.FindByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)

	assert.Equal(t, "01J0000000000000000000000A", user.ID)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
	assert.Equal(t, "tok", user.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLFindByEmail_NotFound(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("none@x.io").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "none@x.io")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLFindByID_SQLitePlaceholders(t *testing.T) {
	repo, mock := newTestSQLRepo(t, true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ? LIMIT 1")).
		WithArgs("id-1").
		WillReturnRows(userRows().AddRow("id-1", "A", "B", "a@x.io", "h", "", fixedNow, fixedNow))

	user, err := repo.FindByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
}

func TestSQLFindByID_ScanError(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1")) // wrong shape

	_, err := repo.FindByID(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestSQLUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET first_name = $1, token = $2, updated_at = $3 WHERE id = $4")).
		WithArgs("Z", "new-token", fixedNow, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("id-1").
		WillReturnRows(userRows().AddRow("id-1", "Z", "B", "a@x.io", "h", "new-token", fixedNow.Add(-time.Hour), fixedNow))

	user, err := repo.Update(context.Background(), "id-1", models.UserChanges{
		FirstName: ptr("Z"),
		Token:     ptr("new-token"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Z", user.FirstName)
	assert.Equal(t, "B", user.LastName)
	assert.Equal(t, fixedNow, user.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpdate_NoRowsAffected(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), "missing", models.UserChanges{LastName: ptr("Q")})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpdate_EmailTaken(t *testing.T) {
	repo, mock := newTestSQLRepo(t, false)

	mock.ExpectExec("UPDATE users SET email").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Update(context.Background(), "id-1", models.UserChanges{Email: ptr("b@x.io")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLUpdate_EmptyChangesTouchesUpdatedAt(t *testing.T) {
	repo, _ := newTestSQLRepo(t, false)

	query, args, err := repo.buildUpdateUserQuery("id-1", models.UserChanges{}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET updated_at = $1 WHERE id = $2", query)
	assert.Equal(t, []any{fixedNow, "id-1"}, args)
}

// ── unique violation detection ────────────────────────────────────────────────

func TestUniqueViolationDetection(t *testing.T) {
	assert.True(t, isPostgresUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isPostgresUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isPostgresUniqueViolation(errors.New("plain")))

	assert.True(t, isSQLiteUniqueViolation(sqlite3.Error{ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isSQLiteUniqueViolation(sqlite3.Error{ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.False(t, isSQLiteUniqueViolation(errors.New("plain")))
}
