// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-accounts/models"
)

// Field names accepted by [AccountValidator.Validate].
const (
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldPictureURL = "pictureUrl"
)

// structFields maps field names to the struct field names of [models.Account]
// used by partial validation.
var structFields = map[string]string{
	FieldUsername:   "Username",
	FieldEmail:      "Email",
	FieldPassword:   "Password",
	FieldRole:       "Role",
	FieldPictureURL: "PictureURL",
}

// tagKinds maps validation tags to error kinds. Unlisted tags are
// [ErrValidation].
var tagKinds = map[string]error{
	"email":       ErrFormat,
	tagPictureURL: ErrFormat,
	"min":         ErrLength,
}

// AccountValidator validates accounts and account updates with
// go-playground/validator struct tags declared on [models.Account].
type AccountValidator struct {
	validate *validator.Validate
}

// NewAccountValidator builds a validator that accepts only the given roles.
func NewAccountValidator(roles models.Roles) (*AccountValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names ("pictureUrl") instead of Go names ("PictureURL")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerAccountRules(v, roles); err != nil {
		return nil, err
	}

	return &AccountValidator{validate: v}, nil
}

// Validate checks a [models.Account] or [models.AccountUpdate]. For accounts,
// fields restricts validation to the named fields; updates are always
// checked on the fields they set. Failures are returned as [FieldErrors].
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Account:
		return v.validateAccount(ctx, value, fields...)
	case *models.Account:
		return v.validateAccount(ctx, *value, fields...)

	case models.AccountUpdate:
		return v.validateUpdate(ctx, value)
	case *models.AccountUpdate:
		return v.validateUpdate(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateAccount(ctx context.Context, account models.Account, fields ...string) error {
	if len(fields) == 0 {
		return v.translate(v.validate.StructCtx(ctx, account))
	}

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		name, ok := structFields[f]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		names = append(names, name)
	}

	return v.translate(v.validate.StructPartialCtx(ctx, account, names...))
}

// validateUpdate validates the fields an update sets by projecting them onto
// an account. An empty picture URL clears the picture and is always valid.
func (v *AccountValidator) validateUpdate(ctx context.Context, update models.AccountUpdate) error {
	var account models.Account
	fields := make([]string, 0, 5)

	if update.Username != nil {
		account.Username = *update.Username
		fields = append(fields, FieldUsername)
	}
	if update.Email != nil {
		account.Email = *update.Email
		fields = append(fields, FieldEmail)
	}
	if update.Password != nil {
		account.Password = *update.Password
		fields = append(fields, FieldPassword)
	}
	if update.PictureURL != nil && *update.PictureURL != "" {
		account.PictureURL = update.PictureURL
		fields = append(fields, FieldPictureURL)
	}
	if update.Role != nil {
		account.Role = *update.Role
		fields = append(fields, FieldRole)
		if account.Role == "" {
			return FieldErrors{NewFieldError(ErrValidation, FieldRole, "role is required")}
		}
	}

	if len(fields) == 0 {
		return nil
	}

	return v.validateAccount(ctx, account, fields...)
}

// translate converts go-playground errors into [FieldErrors].
func (v *AccountValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := make(FieldErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		kind, ok := tagKinds[fe.Tag()]
		if !ok {
			kind = ErrValidation
		}
		result = append(result, NewFieldError(kind, fe.Field(), message(fe)))
	}

	return result
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case tagPictureURL:
		return "must be an http, https or ftp URL with a top-level domain"
	case tagRole:
		return fmt.Sprintf("%q is not a known role", fe.Value())
	default:
		return fmt.Sprintf("invalid value (failed on %q)", fe.Tag())
	}
}
