package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	created, err := h.services.Auth.CreateUser(ctx, req, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// unlockUser clears the lockout state so the account can log in again.
func (h *Handler) unlockUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, _ := utils.GetCallerFromContext(ctx)

	if err := h.services.Auth.Unlock(ctx, chi.URLParam(r, "userID"), caller.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
