// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-accounts/models"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "wrapped serialization failure", err: fmt.Errorf("tx: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "syntax error", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestPostgresErrorClassifier_DuplicateField(t *testing.T) {
	c := NewPostgresErrorClassifier()

	field, ok := c.DuplicateField(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_uidx"})
	assert.True(t, ok)
	assert.Equal(t, models.FieldEmail, field)

	_, ok = c.DuplicateField(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_pkey"})
	assert.False(t, ok)

	_, ok = c.DuplicateField(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ConstraintName: "accounts_email_uidx"})
	assert.False(t, ok)

	_, ok = c.DuplicateField(errors.New("boom"))
	assert.False(t, ok)
}

func TestSQLiteErrorClassifier_NonDriverErrors(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
	_, ok := c.DuplicateField(errors.New("UNIQUE constraint failed: accounts.username"))
	assert.False(t, ok)
}

func TestDuplicateError(t *testing.T) {
	err := fmt.Errorf("create: %w", &DuplicateError{Field: models.FieldUsername})

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.EqualError(t, err, "create: username already taken")
}
