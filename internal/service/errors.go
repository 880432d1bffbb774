// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-accounts/internal/store"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthentication covers unknown logins, wrong passwords and inactive
	// accounts alike.
	ErrAuthentication = errors.New("invalid login or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("verification token creation failed")

	// ErrResetTokenExpired is returned when a reset token exists but its
	// expiry has passed.
	ErrResetTokenExpired = errors.New("reset token is expired")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Re-exported storage errors, so that callers of this package need not import
// the storage layer.
var (
	ErrAccountNotFound    = store.ErrAccountNotFound
	ErrAlreadyTaken       = store.ErrAlreadyExists
	ErrStorageUnavailable = store.ErrStorageUnavailable
)
