package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// decodeBody decodes the JSON request body into dst, wrapping failures so
// that they map to 400 Bad Request.
func decodeBody(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		if errors.Is(err, utils.ErrEmptyBody) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Create(ctx, req.Account())
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("account_id", account.ID).Msg("account registered")

	h.writeAuthResponse(w, r, account, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("account_id", account.ID).Msg("account logged in")

	h.writeAuthResponse(w, r, account, http.StatusOK)
}

// writeAuthResponse issues a verification token for account and sends it
// both in the "Authorization" header and in the body.
func (h *Handler) writeAuthResponse(w http.ResponseWriter, r *http.Request, account models.Account, status int) {
	token, err := h.services.AccountService.GenerateVerificationToken(r.Context(), account)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Token:   token.SignedString,
		Account: h.services.AccountService.Serialize(account),
	}, status)
}

// forgotPassword starts the reset flow. Unknown emails are answered exactly
// like known ones.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Email == "" {
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	err := h.services.AccountService.RequestPasswordReset(ctx, req.Email)
	if err != nil && !errors.Is(err, service.ErrAccountNotFound) {
		writeError(w, r, err)
		return
	}
	if err != nil {
		log.Debug().Msg("password reset requested for unknown email")
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.ResetPassword(ctx, req.Token, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("account_id", account.ID).Msg("password reset")

	utils.WriteJSON(w, h.services.AccountService.Serialize(account), http.StatusOK)
}
