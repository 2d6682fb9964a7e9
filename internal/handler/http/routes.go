package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		// bounds every store call made on behalf of the request
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/v1/health", h.health)
		r.Post("/api/v1/auth/login", h.login)
		r.Post("/api/v1/auth/refresh", h.refresh)
	})

	// routes for any authenticated caller
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/v1/auth/logout", h.logout)
		r.Post("/api/v1/auth/password", h.changePassword)

		r.Get("/api/v1/menus", h.listMenus)
		r.Get("/api/v1/menus/visible", h.visibleMenus)
		r.Get("/api/v1/menus/{menuNo}", h.getMenu)
	})

	// routes for members of the admin group
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)

		r.Post("/api/v1/menus", h.createMenu)
		r.Post("/api/v1/menus/copy", h.copyMenu)
		r.Put("/api/v1/menus/reorder", h.reorderRootMenus)
		r.Put("/api/v1/menus/{menuNo}", h.updateMenu)
		r.Delete("/api/v1/menus/{menuNo}", h.deleteMenu)
		r.Put("/api/v1/menus/{menuNo}/reorder", h.reorderMenus)

		r.Post("/api/v1/users", h.createUser)
		r.Post("/api/v1/users/{userID}/unlock", h.unlockUser)

		r.Get("/api/v1/groups/{groupID}/menus", h.getGroupMenus)
		r.Put("/api/v1/groups/{groupID}/menus", h.replaceGroupMenus)
	})

	return router
}
