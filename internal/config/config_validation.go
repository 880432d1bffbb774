// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. Every returned error wraps [ErrConfiguration].
//
// Required:
//   - a token signing key;
//   - a bcrypt cost within [bcrypt.MinCost, bcrypt.MaxCost];
//   - a role registry containing the default "user" role;
//   - a database DSN.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.App.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidStorageConfigs)
	}

	return nil
}

// validate checks the token, hashing and role settings. It is also used by
// the service layer constructor so that an [App] built by hand is held to the
// same rules as one loaded by [GetStructuredConfig].
func (app App) validate() error {
	if app.TokenSignKey == "" {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingTokenSignKey)
	}

	if app.HashCost < bcrypt.MinCost || app.HashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %w: %d", ErrConfiguration, ErrInvalidHashCost, app.HashCost)
	}

	if app.TokenDuration <= 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidTokenDuration)
	}

	if len(app.Roles) == 0 || !slices.Contains(app.Roles, "user") {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrInvalidRoles)
	}

	return nil
}

// Validate reports whether the application settings are usable.
func (app App) Validate() error {
	return app.validate()
}
