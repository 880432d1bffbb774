// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-accounts/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "claims", ClaimsCtxKey.String())
}

func TestWithClaims(t *testing.T) {
	claims := models.VerificationClaims{ID: "0192f1c4-0000-7000-8000-000000000001", Email: "a@example.com", Role: models.RoleAdmin, Active: true}
	ctx := WithClaims(context.Background(), claims)

	got, ok := GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)

	id, ok := GetAccountIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims.ID, id)
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	_, ok := GetAccountIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetClaimsFromContext(context.Background())
	assert.False(t, ok)

	// wrong type under the key
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not claims")
	_, ok = GetAccountIDFromContext(ctx)
	assert.False(t, ok)

	// claims without an id
	ctx = WithClaims(context.Background(), models.VerificationClaims{Email: "a@example.com"})
	_, ok = GetAccountIDFromContext(ctx)
	assert.False(t, ok)
}
