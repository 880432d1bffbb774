package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-accounts/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("gone")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// APIError is a non-2xx answer of the account service.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []models.FieldErrorEntry

	kind error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (http %d)", e.kind, e.StatusCode)
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s: %s", f.Field, f.Message)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Field returns the rejection of field, if any.
func (e *APIError) Field(field string) (models.FieldErrorEntry, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return models.FieldErrorEntry{}, false
}
