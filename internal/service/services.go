package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/crypto"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/validators"
	"github.com/MKhiriev/go-user-service/models"
)

type Services struct {
	AccountService AccountService
	TokenService   TokenService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewBcryptHasher(cfg.App.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	tokenService := NewTokenService(cfg.App, logger)

	return &Services{
		AccountService: NewAccountService(
			storages.UserRepository,
			storages.AuditLedger,
			storages.EmailLocker,
			hasher,
			tokenService,
			validators.NewUserValidator(),
			logger,
		),
		TokenService:   tokenService,
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}, nil
}
