package http

import (
	"encoding/json"
	"net/http"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.Auth.Authenticate(ctx, req.UserID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.UserID).Msg("user successfully logged in")

	pair, err := h.services.Auth.IssueTokens(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

// refresh mints a fresh token pair. The refresh token travels in the
// Authorization header like any other bearer credential.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	tokenString, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.Auth.Refresh(ctx, tokenString)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

// logout acknowledges the client discarding its tokens. Tokens are stateless
// so there is nothing to revoke server-side; the short access TTL bounds the
// remaining exposure.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if caller, ok := utils.GetCallerFromContext(r.Context()); ok {
		log.Debug().Str("user_id", caller.UserID).Msg("user logged out")
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.Auth.ChangePassword(ctx, caller.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
