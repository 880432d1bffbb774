// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// VerificationClaims is the claim set of a verification token. It asserts the
// identity, email, role and activity of an account at issuance time.
type VerificationClaims struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`

	// RegisteredClaims carries sub, iss, iat and exp as defined by RFC 7519.
	jwt.RegisteredClaims
}

// Token wraps a signed verification token together with its decoded claims.
type Token struct {
	// Claims are the decoded claims of the token.
	Claims VerificationClaims `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// AccountID returns the account identifier asserted by the token.
func (t Token) AccountID() string {
	return t.Claims.ID
}
