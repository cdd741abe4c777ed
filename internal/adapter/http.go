package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/go-resty/resty/v2"
)

const sessionCookieName = "token"

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The base URL must be absolute; a missing scheme defaults to http.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	// The session is carried explicitly, so the default cookie jar is off.
	client := resty.New().
		SetCookieJar(nil).
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Health(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		return "", fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error) {
	var result models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/register")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return result, nil
}

// Login posts the credentials and keeps the token from the session cookie.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AccountResponse, error) {
	var result models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/login")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	token, ok := sessionTokenFromResponse(resp)
	if !ok {
		return models.AccountResponse{}, ErrNoSessionCookie
	}

	h.SetToken(token)
	return result, nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var user models.User

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	resp, err := req.
		SetResult(&user).
		Get("/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.AccountResponse, error) {
	var result models.AccountResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.AccountResponse{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&result).
		Put("/profile")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	if token, ok := sessionTokenFromResponse(resp); ok {
		h.logger.Debug().Msg("session token rotated by the server")
		h.SetToken(token)
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoSession
	}

	return h.client.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: sessionCookieName, Value: token}), nil
}

func sessionTokenFromResponse(resp *resty.Response) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}
