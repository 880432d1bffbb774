// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-accounts/models"
)

// uniqueColumnFields maps the columns named by SQLite unique constraint
// messages ("UNIQUE constraint failed: accounts.username") to account fields.
var uniqueColumnFields = map[string]models.AccountField{
	"accounts.username": models.FieldUsername,
	"accounts.email":    models.FieldEmail,
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. A busy or locked database file is
// [Retryable]; everything else is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// DuplicateField implements [ErrorClassificator]. SQLite does not report the
// index name, so the field is taken from the constraint message. Partial
// indexes report their indexed column the same way as table constraints.
func (c *SQLiteErrorClassifier) DuplicateField(err error) (models.AccountField, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	for column, field := range uniqueColumnFields {
		if strings.Contains(sqliteErr.Error(), column) {
			return field, true
		}
	}

	return "", false
}
