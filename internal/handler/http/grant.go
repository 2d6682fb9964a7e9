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

func (h *Handler) getGroupMenus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	menuNos, err := h.services.Access.GrantedMenus(ctx, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if menuNos == nil {
		menuNos = []string{}
	}
	utils.WriteJSON(w, models.ReplaceGrantsRequest{MenuNos: menuNos}, http.StatusOK)
}

// replaceGroupMenus atomically swaps the whole grant set of a group.
func (h *Handler) replaceGroupMenus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var req models.ReplaceGrantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.Access.ReplaceGrants(ctx, chi.URLParam(r, "groupID"), req.MenuNos, caller.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
