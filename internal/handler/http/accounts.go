// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// currentAccountID returns the id of the authenticated caller. Routes using
// it are always mounted behind [Handler.auth].
func currentAccountID(r *http.Request) (string, error) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		return "", ErrEmptyAuthorizationHeader
	}
	return id, nil
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	id, err := currentAccountID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}

// updateMe applies a partial update to the caller's own account. Role and
// activity are not part of the accepted body.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := currentAccountID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.AccountUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("account_id", id).Bool("password_changed", update.Password != nil).Msg("account updated")

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}

// exists answers whether a live account already owns the given value:
// GET /api/accounts/exists?field=email&value=alice@example.com
func (h *Handler) exists(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	field, value := query.Get("field"), query.Get("value")
	if field == "" {
		writeError(w, r, ErrMissingQueryParam)
		return
	}

	if !models.AccountField(field).IsPublicLookupField() {
		writeError(w, r, validators.NewFieldError(validators.ErrValidation, field, "is not an available lookup field"))
		return
	}

	_, found, err := h.services.AccountService.CheckExistingField(r.Context(), models.AccountField(field), value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ExistsResponse{Field: field, Exists: found}, http.StatusOK)
}
