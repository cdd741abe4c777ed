package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based sessions.
//
// It reads the "token" cookie, validates it via
// [service.TokenService.ParseToken] and on success stores the resolved
// [models.Identity] in the request context before delegating to the next
// handler.
//
// Requests are rejected with 401 Unauthorized when:
//   - the cookie is absent or empty ("Access denied. No token.");
//   - the token is expired, tampered with or malformed ("Invalid or expired token.").
//
// The user record is not consulted: a token of a deleted account still
// passes the gate and the handler answers 404.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without session")
			utils.WriteText(w, msgAccessDenied, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("error occurred during parsing token")
			utils.WriteText(w, msgInvalidToken, http.StatusUnauthorized)
			return
		}

		log.Debug().
			Str("id", token.UserID).
			Dur("expires_in", token.ExpiresIn(h.now())).
			Msg("session accepted")

		ctx = utils.WithIdentity(ctx, token.Identity())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
