// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountService manages the account lifecycle: registration, credentials,
// verification and reset tokens, role and activity changes, soft delete.
//
// Validation failures are returned as [validators.FieldErrors]; failures
// caused by a username or email owned by another live account additionally
// match [ErrAlreadyTaken].
type AccountService interface {
	Create(ctx context.Context, account models.Account) (models.Account, error)
	Get(ctx context.Context, id string) (models.Account, error)
	Update(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error)

	ComparePassword(ctx context.Context, plaintext string, account models.Account) (bool, error)
	Authenticate(ctx context.Context, login, password string) (models.Account, error)

	GenerateVerificationToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseVerificationToken(ctx context.Context, tokenString string) (models.Token, error)

	GeneratePasswordResetToken(ctx context.Context, account *models.Account) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (models.Account, error)
	PurgeExpiredResetTokens(ctx context.Context) (int64, error)

	CheckExistingField(ctx context.Context, field models.AccountField, value string) (models.Account, bool, error)

	SetRole(ctx context.Context, id string, role models.Role) (models.Account, error)
	SetActive(ctx context.Context, id string, active bool) (models.Account, error)
	SoftDelete(ctx context.Context, id, deletedBy string) error
	Restore(ctx context.Context, id string) (models.Account, error)

	Serialize(account models.Account) models.AccountView
}

// PasswordHasher hashes and verifies passwords. Implementations salt every
// hash individually.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)

	// Compare reports whether plaintext matches hash. A mismatch is not an
	// error.
	Compare(ctx context.Context, hash, plaintext string) (bool, error)
}

// AppInfoService exposes build information of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

// idGenerator issues new account identifiers.
type idGenerator interface {
	Generate() string
}
