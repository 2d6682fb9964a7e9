package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

// listMenus serves a filtered, paginated page of the catalog.
//
// Query parameters: name (substring match), upper_menu_no (direct children
// of the node; empty value means roots), display_only, limit, offset.
func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()

	filter := models.MenuFilter{
		NameContains: query.Get("name"),
		DisplayOnly:  query.Get("display_only") == "true",
	}
	if query.Has("upper_menu_no") {
		upper := query.Get("upper_menu_no")
		filter.UpperMenuNo = &upper
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if filter.Limit <= 0 {
		// the response must echo the limit that was actually applied
		filter.Limit = store.DefaultMenuPageSize
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		filter.Offset = offset
	}

	items, total, err := h.services.Menu.Search(ctx, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MenuListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, http.StatusOK)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	node, err := h.services.Menu.Get(ctx, chi.URLParam(r, "menuNo"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, node, http.StatusOK)
}

// visibleMenus returns the forest of the catalog that the caller's group is
// granted, closed under ancestors and ordered by menu_order.
func (h *Handler) visibleMenus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	forest, err := h.services.Access.VisibleMenus(ctx, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if forest == nil {
		forest = []*models.MenuTreeNode{}
	}
	utils.WriteJSON(w, forest, http.StatusOK)
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var node models.MenuNode
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	created, err := h.services.Menu.Create(ctx, node, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var patch models.MenuPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	updated, err := h.services.Menu.Update(ctx, chi.URLParam(r, "menuNo"), patch, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, _ := utils.GetCallerFromContext(ctx)

	if err := h.services.Menu.Delete(ctx, chi.URLParam(r, "menuNo"), caller.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) copyMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var req models.CopyMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	created, err := h.services.Menu.CopySubtree(ctx, req, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// reorderRootMenus re-assigns menu_order among the root nodes.
func (h *Handler) reorderRootMenus(w http.ResponseWriter, r *http.Request) {
	h.reorderChildren(w, r, nil)
}

// reorderMenus re-assigns menu_order among the direct children of the node
// named in the path.
func (h *Handler) reorderMenus(w http.ResponseWriter, r *http.Request) {
	parent := chi.URLParam(r, "menuNo")
	h.reorderChildren(w, r, &parent)
}

func (h *Handler) reorderChildren(w http.ResponseWriter, r *http.Request, parent *string) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, _ := utils.GetCallerFromContext(ctx)

	var req models.ReorderMenusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.Menu.Reorder(ctx, parent, req.OrderedIDs, caller.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
