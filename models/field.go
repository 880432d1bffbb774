// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// AccountField names a field that can be used for duplicate lookups.
type AccountField string

const (
	FieldUsername           AccountField = "username"
	FieldEmail              AccountField = "email"
	FieldResetPasswordToken AccountField = "resetPasswordToken"
	FieldGoogleID           AccountField = "google.id"
)

// LookupFields lists every field accepted by duplicate lookups.
var LookupFields = []AccountField{FieldUsername, FieldEmail, FieldResetPasswordToken, FieldGoogleID}

// PublicLookupFields lists the fields anonymous callers may probe for
// availability. Token and linked-identity lookups stay internal.
var PublicLookupFields = []AccountField{FieldUsername, FieldEmail}

// IsLookupField reports whether f may be used for duplicate lookups.
func (f AccountField) IsLookupField() bool {
	return slices.Contains(LookupFields, f)
}

// IsPublicLookupField reports whether f may be looked up without
// authentication.
func (f AccountField) IsPublicLookupField() bool {
	return slices.Contains(PublicLookupFields, f)
}

// CaseInsensitive reports whether values of f are stored lowercased.
func (f AccountField) CaseInsensitive() bool {
	return f == FieldUsername || f == FieldEmail
}
