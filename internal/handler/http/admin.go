package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.services.AccountService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.RoleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.SetRole(r.Context(), id, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", id).Str("role", string(req.Role)).Msg("role changed")

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ActiveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.SetActive(r.Context(), id, req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", id).Bool("active", req.Active).Msg("activity changed")

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}

// deleteAccount soft-deletes the account, recording the caller as deleter.
func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deletedBy, err := currentAccountID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.SoftDelete(r.Context(), id, deletedBy); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", id).Str("deleted_by", deletedBy).Msg("account deleted")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.services.AccountService.Restore(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", id).Msg("account restored")

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}
