package service

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountService orchestrates registration, login and profile management.
type AccountService interface {
	// Register creates an account and returns it with a freshly issued token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies credentials and issues a new session token.
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// GetProfile returns the record of the authenticated caller.
	GetProfile(ctx context.Context, identity models.Identity) (models.User, error)

	// UpdateProfile applies the supplied fields. The returned session carries
	// a new token only when the email changed.
	UpdateProfile(ctx context.Context, identity models.Identity, update models.ProfileUpdate) (models.Session, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	IssueToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
