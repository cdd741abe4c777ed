package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/mock"
	"github.com/MKhiriev/go-user-service/internal/service"
	"go.uber.org/mock/gomock"
)

var handlerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type serviceMocks struct {
	accounts *mock.MockAccountService
	tokens   *mock.MockTokenService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
		cookie: cookieSettings{
			duration: 96 * time.Hour,
		},
		metrics: newHTTPMetrics(),
		now:     func() time.Time { return handlerNow },
		logger:  logger.Nop(),
	}
}

func newMockedHandler(t *testing.T) (*Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		accounts: mock.NewMockAccountService(ctrl),
		tokens:   mock.NewMockTokenService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}

	h := newTestHandler(&service.Services{
		AccountService: m.accounts,
		TokenService:   m.tokens,
		AppInfoService: m.appInfo,
	})
	return h, m
}

// serve runs a request through the full router.
func serve(h *Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
