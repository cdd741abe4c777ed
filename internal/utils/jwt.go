package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidJWTParams is returned by GenerateJWTToken when a required
// parameter is empty or zero.
var ErrInvalidJWTParams = errors.New("invalid params for generating JWT Token")

// JWTParams groups the inputs of GenerateJWTToken.
type JWTParams struct {
	// Issuer is written to the "iss" claim.
	Issuer string
	// UserID is written to the "sub" claim.
	UserID string
	// Email is written to the custom "email" claim.
	Email string
	// IssuedAt is the issuance instant; "exp" is IssuedAt + Duration.
	IssuedAt time.Time
	// Duration is the token lifetime.
	Duration time.Duration
	// SignKey is the HMAC-SHA256 secret.
	SignKey string
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - email          : the user's login email at issuance time
//   - IssuedAt  (iat): params.IssuedAt
//   - ExpiresAt (exp): params.IssuedAt plus params.Duration
//
// Returns [ErrInvalidJWTParams] if the issuer, user ID, duration or sign key
// is missing.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(utils.JWTParams{
//	    Issuer: "go-user-service", UserID: id, Email: email,
//	    IssuedAt: time.Now(), Duration: 2 * time.Hour, SignKey: secret,
//	})
func GenerateJWTToken(params JWTParams) (models.Token, error) {
	if params.Issuer == "" || params.UserID == "" || params.Duration <= 0 || params.SignKey == "" {
		return models.Token{}, ErrInvalidJWTParams
	}

	issuedAt := params.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Subject:   params.UserID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(params.Duration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Email: params.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		Email:            claims.Email,
		SignedString:     tokenString,
		UserID:           params.UserID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT string and extracts its claims.
//
// Validation includes:
//   - signing method: only HS256 is accepted
//   - signature verification using tokenSignKey
//   - issuer (iss) claim check against tokenIssuer
//   - expiration (exp) claim presence and check against now()
//   - subject (sub) claim presence
//
// A nil now falls back to time.Now.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, now func() time.Time) (models.Token, error) {
	if now == nil {
		now = time.Now
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected claims type")
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		Email:            claims.Email,
		SignedString:     tokenString,
		UserID:           claims.Subject,
	}, nil
}
