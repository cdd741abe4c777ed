package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.home)
		r.Get("/version", h.getServerVersion)
		r.Method(http.MethodGet, "/metrics", h.metrics.handler())

		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	// routes behind the session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
