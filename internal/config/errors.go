// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// ErrConfiguration is wrapped by every configuration validation failure.
// It is fatal: the process must not start with an invalid configuration.
var ErrConfiguration = errors.New("configuration error")

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrMissingTokenSignKey indicates that no token signing key was provided.
	ErrMissingTokenSignKey = errors.New("token signing key is not configured")
	// ErrInvalidHashCost indicates a bcrypt work factor outside the allowed range.
	ErrInvalidHashCost = errors.New("invalid password hash cost")
	// ErrInvalidTokenDuration indicates a non-positive token lifetime.
	ErrInvalidTokenDuration = errors.New("invalid token duration")
	// ErrInvalidRoles indicates an empty role registry or one without "user".
	ErrInvalidRoles = errors.New("invalid role registry")
	// ErrInvalidStorageConfigs indicates missing storage settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidPort indicates a PORT value that is neither a non-negative
	// number nor a socket path.
	ErrInvalidPort = errors.New("invalid port")
)
