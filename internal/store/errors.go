// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accounts/models"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when no live account matches the query.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrAlreadyExists is matched by every [*DuplicateError].
	ErrAlreadyExists = errors.New("account field already taken")

	// ErrUnsupportedField is returned when a lookup names a field that has no
	// backing column.
	ErrUnsupportedField = errors.New("unsupported lookup field")

	// ErrStorageUnavailable wraps driver errors classified as [Retryable]:
	// lost connections, deadlocks, a busy database file.
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")

	// ErrUnsupportedDSN is returned when the DSN scheme names no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// without result rows fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into an account fails.
	ErrScanningRow = errors.New("failed to scan account row")
)

// DuplicateError reports a unique index violation on Field.
type DuplicateError struct {
	Field models.AccountField
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already taken", e.Field)
}

// Unwrap makes every DuplicateError match [ErrAlreadyExists].
func (e *DuplicateError) Unwrap() error {
	return ErrAlreadyExists
}
