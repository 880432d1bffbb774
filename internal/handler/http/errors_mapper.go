package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatusMap is checked in order, first match wins. A taken username is
// both a validation error and a conflict, so conflicts come first.
var errorStatusMap = []errorStatus{
	{service.ErrAlreadyTaken, http.StatusConflict},

	{validators.ErrValidation, http.StatusBadRequest},
	{validators.ErrFormat, http.StatusBadRequest},
	{validators.ErrLength, http.StatusBadRequest},
	{validators.ErrUnknownField, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{utils.ErrEmptyBody, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrMissingQueryParam, http.StatusBadRequest},
	{service.ErrResetTokenExpired, http.StatusGone},

	{service.ErrAuthentication, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},

	{ErrForbidden, http.StatusForbidden},

	{service.ErrAccountNotFound, http.StatusNotFound},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, target := range errorStatusMap {
		if errors.Is(err, target.err) {
			return target.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the mapped status and an
// [models.ErrorResponse] body. Server-side failures never leak their message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	response := models.ErrorResponse{Error: http.StatusText(status)}
	if status < http.StatusInternalServerError {
		response.Error = err.Error()
	}

	if fieldErrs := validators.AsFieldErrors(err); fieldErrs != nil {
		response.Error = "validation failed"
		response.Fields = make([]models.FieldErrorEntry, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			response.Fields = append(response.Fields, models.FieldErrorEntry{
				Field:   fe.Field,
				Kind:    fe.KindName(),
				Message: fe.Message,
			})
		}
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, response, status)
}
