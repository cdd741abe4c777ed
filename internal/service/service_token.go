package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

// tokenService issues HS256 session tokens carrying the user id (sub) and
// email, and verifies them statelessly: the token stored on the user record
// is never consulted.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the application config.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return newTokenService(cfg, time.Now, logger)
}

// NewTokenServiceWithClock is NewTokenService with an injected clock.
func NewTokenServiceWithClock(cfg config.App, now func() time.Time, logger *logger.Logger) TokenService {
	return newTokenService(cfg, now, logger)
}

func newTokenService(cfg config.App, now func() time.Time, logger *logger.Logger) *tokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           now,
		logger:        logger,
	}
}

// IssueToken signs a token for user valid from now for tokenDuration.
func (s *tokenService) IssueToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(utils.JWTParams{
		Issuer:   s.tokenIssuer,
		UserID:   user.ID,
		Email:    user.Email,
		IssuedAt: s.now(),
		Duration: s.tokenDuration,
		SignKey:  s.tokenSignKey,
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw token. Every validation failure (expired, wrong
// issuer or algorithm, bad signature, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (s *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer, s.now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
