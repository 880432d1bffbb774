// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the account service REST API.
//
// [AccountsClient] hides the HTTP details: it keeps the bearer token issued
// by Register or Login, attaches it to authenticated calls and turns error
// responses into [*APIError] values that match the sentinel errors of this
// package via [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for
// 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// AccountsClient is the client side of the account service API.
type AccountsClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AccountView, error)

	// Login authenticates by username or email and stores the issued token.
	Login(ctx context.Context, login, password string) (models.AccountView, error)

	Me(ctx context.Context) (models.AccountView, error)
	UpdateMe(ctx context.Context, update models.AccountUpdate) (models.AccountView, error)

	// Exists reports whether a live account owns value in field.
	Exists(ctx context.Context, field models.AccountField, value string) (bool, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (models.AccountView, error)

	// Administrative calls; the stored token must belong to an admin.
	Get(ctx context.Context, id string) (models.AccountView, error)
	SetRole(ctx context.Context, id string, role models.Role) (models.AccountView, error)
	SetActive(ctx context.Context, id string, active bool) (models.AccountView, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (models.AccountView, error)

	Version(ctx context.Context) (models.VersionResponse, error)
}
