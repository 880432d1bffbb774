// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists accounts. Every read skips soft-deleted rows
// unless stated otherwise.
type AccountRepository interface {
	// CreateAccount inserts account and returns the stored row. A live
	// account with the same username or email yields a [*DuplicateError].
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByID returns the live account with the given id.
	FindAccountByID(ctx context.Context, id string) (models.Account, error)

	// FindAccountByField returns the first live account whose field equals
	// value, or [ErrAccountNotFound].
	FindAccountByField(ctx context.Context, field models.AccountField, value string) (models.Account, error)

	// FindAccountByLogin returns the live account whose username or email
	// equals login.
	FindAccountByLogin(ctx context.Context, login string) (models.Account, error)

	// UpdateAccount applies the non-nil fields of update to the live account
	// id, bumps its version and returns the stored row.
	UpdateAccount(ctx context.Context, id string, update models.AccountUpdate, at time.Time) (models.Account, error)

	// SoftDeleteAccount marks the live account id as deleted by deletedBy.
	SoftDeleteAccount(ctx context.Context, id string, deletedBy string, at time.Time) error

	// RestoreAccount clears the soft-delete markers of the deleted account id.
	RestoreAccount(ctx context.Context, id string, at time.Time) (models.Account, error)

	// ClearExpiredResetTokens nulls reset tokens that expired before now and
	// returns the number of affected accounts.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator maps driver errors of one SQL dialect onto the storage
// error model.
type ErrorClassificator interface {
	// Classify reports whether a failed operation could succeed if retried.
	Classify(err error) ErrorClassification

	// DuplicateField returns the account field whose unique index was
	// violated by err, if any.
	DuplicateField(err error) (models.AccountField, bool)
}
