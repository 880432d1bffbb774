// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"strings"
)

// Error kinds. Every [*FieldError] matches exactly one of them via [errors.Is].
var (
	// ErrValidation covers missing required fields, taken usernames or
	// emails, unknown roles and unknown lookup fields.
	ErrValidation = errors.New("validation error")

	// ErrFormat covers malformed emails and picture URLs.
	ErrFormat = errors.New("format error")

	// ErrLength covers passwords shorter than the minimum length.
	ErrLength = errors.New("length error")
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// FieldError describes why one field was rejected.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

// NewFieldError constructs a [*FieldError] of the given kind.
func NewFieldError(kind error, field, message string) *FieldError {
	return &FieldError{Kind: kind, Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return e.Kind.Error() + ": " + e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// KindName returns the short name of the error kind used in API responses:
// "validation", "format" or "length".
func (e *FieldError) KindName() string {
	switch e.Kind {
	case ErrFormat:
		return "format"
	case ErrLength:
		return "length"
	default:
		return "validation"
	}
}

// FieldErrors aggregates the rejections of several fields.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes every field error to [errors.Is] and [errors.As].
func (e FieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, fe := range e {
		errs = append(errs, fe)
	}
	return errs
}

// AsFieldErrors collects the field errors carried by err, if any.
func AsFieldErrors(err error) FieldErrors {
	var many FieldErrors
	if errors.As(err, &many) {
		return many
	}

	var one *FieldError
	if errors.As(err, &one) {
		return FieldErrors{one}
	}

	return nil
}
