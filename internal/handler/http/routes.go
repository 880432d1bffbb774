package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/accounts", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Get("/exists", h.exists)
			r.Post("/password/forgot", h.forgotPassword)
			r.Post("/password/reset", h.resetPassword)
		})

		// caller's own account
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.getMe)
			r.Patch("/me", h.updateMe)
		})

		// administration
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(requireRole(models.RoleAdmin))
			r.Get("/{id}", h.getAccount)
			r.Put("/{id}/role", h.setRole)
			r.Put("/{id}/active", h.setActive)
			r.Delete("/{id}", h.deleteAccount)
			r.Post("/{id}/restore", h.restoreAccount)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
	})

	return router
}
