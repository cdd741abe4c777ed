package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, registerErrors, err)
		return
	}

	user, err := h.services.AccountService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, registerErrors, err)
		return
	}

	utils.WriteJSON(w, models.AccountResponse{
		Success: true,
		Message: msgRegistered,
		User:    user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, loginErrors, err)
		return
	}

	session, err := h.services.AccountService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, loginErrors, err)
		return
	}

	log.Debug().Str("id", session.User.ID).Msg("user successfully logged in")

	h.setSessionCookie(w, session.Token.String())
	utils.WriteJSON(w, models.AccountResponse{
		Success: true,
		Message: msgLoggedIn,
		User:    session.User,
	}, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		utils.WriteText(w, msgAccessDenied, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AccountService.GetProfile(ctx, identity)
	if err != nil {
		h.writeError(w, r, profileErrors, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		utils.WriteText(w, msgAccessDenied, http.StatusUnauthorized)
		return
	}

	var update models.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, profileErrors, err)
		return
	}

	session, err := h.services.AccountService.UpdateProfile(ctx, identity, update)
	if err != nil {
		h.writeError(w, r, profileErrors, err)
		return
	}

	if session.Token != nil {
		h.setSessionCookie(w, session.Token.String())
	}

	utils.WriteJSON(w, models.AccountResponse{
		Success: true,
		Message: msgProfileUpdated,
		User:    session.User,
	}, http.StatusOK)
}

// writeError answers with the route's plain-text message for err. Internal
// errors are logged with their details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, route routeErrors, err error) {
	resp := route.resolve(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("unexpected error occurred")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Send()
	}

	utils.WriteText(w, resp.message, resp.status)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
