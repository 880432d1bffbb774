// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-accounts/models"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating verification token")
	ErrEmptySubject       = errors.New("empty subject error")
	ErrSubjectMismatch    = errors.New("token subject does not match account id")
)

// GenerateVerificationToken creates a signed HMAC-SHA256 JWT for the account
// described by claims.
//
// The account claims (id, email, role, active) are taken from claims as is.
// The registered claims are overwritten:
//   - Issuer    (iss): issuer
//   - Subject   (sub): claims.ID
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus tokenDuration
//
// Returns an error if issuer, signKey or the account id are empty, or if
// tokenDuration is not positive.
//
// Example usage:
//
//	token, err := utils.GenerateVerificationToken("go-accounts", claims, time.Now(), 240*time.Hour, "secret")
func GenerateVerificationToken(issuer string, claims models.VerificationClaims, issuedAt time.Time, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" || claims.ID == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.ID,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	tokenString, err := signToken(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), []byte(signKey))
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

func signToken(token *jwt.Token, key any) (string, error) {
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}
	return tokenString, nil
}

// ValidateAndParseVerificationToken validates the given JWT string and
// extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using signKey
//   - Issuer (iss) check against tokenIssuer
//   - Expiration (exp) check
//   - Subject (sub) presence and equality with the id claim
//
// Example usage:
//
//	token, err := utils.ValidateAndParseVerificationToken(raw, "secret", "go-accounts")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseVerificationToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims models.VerificationClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}
	if claims.Subject != claims.ID {
		return models.Token{}, ErrSubjectMismatch
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
