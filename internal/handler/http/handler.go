package http

import (
	"time"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/service"
)

type Handler struct {
	services *service.Services

	cookie         cookieSettings
	requestTimeout time.Duration
	metrics        *httpMetrics
	now            func() time.Time

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cookie: cookieSettings{
			duration: cfg.App.CookieDuration,
			secure:   cfg.App.CookieSecure,
		},
		requestTimeout: cfg.Server.RequestTimeout,
		metrics:        newHTTPMetrics(),
		now:            time.Now,
		logger:         logger,
	}
}
