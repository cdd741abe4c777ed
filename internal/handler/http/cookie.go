package http

import (
	"net/http"
	"time"
)

const sessionCookieName = "token"

type cookieSettings struct {
	duration time.Duration
	secure   bool
}

// setSessionCookie writes the session token cookie. The cookie outlives the
// token by default; an expired token is rejected by the gate regardless.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  h.now().Add(h.cookie.duration),
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionTokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}

	return cookie.Value, nil
}
