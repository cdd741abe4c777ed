package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validParams(issuedAt time.Time) JWTParams {
	return JWTParams{
		Issuer:   "test-issuer",
		UserID:   "65f1c0ffee",
		Email:    "a@x.com",
		IssuedAt: issuedAt,
		Duration: 2 * time.Hour,
		SignKey:  "secret-key",
	}
}

func TestGenerateJWTToken_Success(t *testing.T) {
	issuedAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	token, err := GenerateJWTToken(validParams(issuedAt))

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, token.String())
	require.NotNil(t, token.Token)
	assert.Equal(t, "65f1c0ffee", token.UserID)
	assert.Equal(t, "65f1c0ffee", token.Subject)
	assert.Equal(t, "a@x.com", token.Email)
	assert.Equal(t, "test-issuer", token.Issuer)
	assert.Equal(t, issuedAt.Add(2*time.Hour), token.ExpiresAt.Time.UTC())
	assert.Equal(t, 2*time.Hour, token.ExpiresIn(issuedAt))
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *JWTParams)
	}{
		{"empty issuer", func(p *JWTParams) { p.Issuer = "" }},
		{"empty user id", func(p *JWTParams) { p.UserID = "" }},
		{"zero duration", func(p *JWTParams) { p.Duration = 0 }},
		{"negative duration", func(p *JWTParams) { p.Duration = -time.Second }},
		{"empty key", func(p *JWTParams) { p.SignKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams(time.Now())
			tt.modify(&params)

			_, err := GenerateJWTToken(params)
			assert.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuedAt := time.Now()
	generated, err := GenerateJWTToken(validParams(issuedAt))
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, "secret-key", "test-issuer", nil)

	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee", parsed.UserID)
	assert.Equal(t, "a@x.com", parsed.Email)
	assert.Equal(t, generated.SignedString, parsed.SignedString)
}

func TestValidateAndParseJWTToken_ExpiresAfterDuration(t *testing.T) {
	issuedAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	generated, err := GenerateJWTToken(validParams(issuedAt))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "secret-key", "test-issuer", fixedClock(issuedAt.Add(119*time.Minute)))
	require.NoError(t, err, "token must still be valid just before expiry")

	_, err = ValidateAndParseJWTToken(generated.SignedString, "secret-key", "test-issuer", fixedClock(issuedAt.Add(2*time.Hour+time.Second)))
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	generated, err := GenerateJWTToken(validParams(time.Now()))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "wrong-key", "test-issuer", nil)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateAndParseJWTToken_Tampered(t *testing.T) {
	generated, err := GenerateJWTToken(validParams(time.Now()))
	require.NoError(t, err)

	// replace the payload with one claiming another subject
	forged, err := GenerateJWTToken(JWTParams{
		Issuer: "test-issuer", UserID: "someone-else", Email: "b@x.com",
		IssuedAt: time.Now(), Duration: time.Hour, SignKey: "attacker-key",
	})
	require.NoError(t, err)

	original := strings.Split(generated.SignedString, ".")
	forgedParts := strings.Split(forged.SignedString, ".")
	tampered := original[0] + "." + forgedParts[1] + "." + original[2]

	_, err = ValidateAndParseJWTToken(tampered, "secret-key", "test-issuer", nil)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateJWTToken(validParams(time.Now()))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "secret-key", "fake-issuer", nil)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseJWTToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		Subject:   "65f1c0ffee",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(unsigned, "secret-key", "test-issuer", nil)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "secret-key", "test-issuer", nil)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss", nil)
	assert.Error(t, err)
}
