package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestTokenService(now func() time.Time) *tokenService {
	return newTokenService(config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-user-service",
		TokenDuration: 2 * time.Hour,
	}, now, logger.Nop())
}

// ── IssueToken ───────────────────────────────────────────────────────────────

func TestTokenService_IssueToken_CarriesSubjectAndEmail(t *testing.T) {
	svc := newTestTokenService(func() time.Time { return tokenNow })

	token, err := svc.IssueToken(context.Background(), models.User{ID: "01HX", Email: "a@b.io"})

	require.NoError(t, err)
	assert.NotEmpty(t, token.String())
	assert.Equal(t, "01HX", token.UserID)
	assert.Equal(t, "a@b.io", token.Email)
	assert.Equal(t, tokenNow.Add(2*time.Hour), token.ExpiresAt.Time)
}

func TestTokenService_IssueToken_EmptyUserID_ReturnsCreationError(t *testing.T) {
	svc := newTestTokenService(func() time.Time { return tokenNow })

	_, err := svc.IssueToken(context.Background(), models.User{Email: "a@b.io"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenCreationFailed))
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestTokenService_ParseToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(func() time.Time { return tokenNow })
	issued, err := svc.IssueToken(context.Background(), models.User{ID: "01HX", Email: "a@b.io"})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(context.Background(), issued.String())

	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: "01HX", Email: "a@b.io"}, parsed.Identity())
}

func TestTokenService_ParseToken_Expired(t *testing.T) {
	current := tokenNow
	svc := newTestTokenService(func() time.Time { return current })
	issued, err := svc.IssueToken(context.Background(), models.User{ID: "01HX", Email: "a@b.io"})
	require.NoError(t, err)

	current = tokenNow.Add(2*time.Hour + time.Second)
	_, err = svc.ParseToken(context.Background(), issued.String())

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_ParseToken_Invalid(t *testing.T) {
	svc := newTestTokenService(func() time.Time { return tokenNow })
	other := newTokenService(config.App{
		TokenSignKey:  "another-key",
		TokenIssuer:   "go-user-service",
		TokenDuration: time.Hour,
	}, func() time.Time { return tokenNow }, logger.Nop())
	foreign, err := other.IssueToken(context.Background(), models.User{ID: "01HX"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "foreign signature", token: foreign.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
