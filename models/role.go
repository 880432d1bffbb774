// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// Role is an account role drawn from the configured role registry.
type Role string

const (
	// RoleUser is assigned to every new account unless another role is given.
	RoleUser Role = "user"

	// RoleAdmin may change roles, toggle activity and soft-delete accounts.
	RoleAdmin Role = "admin"
)

// DefaultRoles is the role registry used when none is configured.
var DefaultRoles = []string{string(RoleUser), string(RoleAdmin)}

// Roles is a fixed set of allowed role names.
type Roles []string

// Contains reports whether role is part of the set.
func (r Roles) Contains(role Role) bool {
	return slices.Contains(r, string(role))
}
