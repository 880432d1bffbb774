// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-accounts/models"
)

// dbTime scans timestamps from either dialect. pgx yields time.Time; SQLite
// yields time.Time for declared TIMESTAMP columns and text for expressions,
// e.g. columns of a RETURNING clause.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}

	return fmt.Errorf("unsupported timestamp type %T", value)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp format %q", s)
}

func (t dbTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// accountRow mirrors one row of the accounts table in [accountColumns] order.
type accountRow struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	ResetPasswordToken   sql.NullString
	ResetPasswordExpires dbTime
	GoogleID             sql.NullString
	GoogleSync           sql.NullBool
	GoogleAccessToken    sql.NullString
	GoogleRefreshToken   sql.NullString
	Role                 string
	Active               bool
	PictureURL           sql.NullString
	CreatedAt            dbTime
	UpdatedAt            dbTime
	DeletedAt            dbTime
	DeletedBy            sql.NullString
	Version              int
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var r accountRow
	err := row.Scan(
		&r.ID,
		&r.Username,
		&r.Email,
		&r.PasswordHash,
		&r.ResetPasswordToken,
		&r.ResetPasswordExpires,
		&r.GoogleID,
		&r.GoogleSync,
		&r.GoogleAccessToken,
		&r.GoogleRefreshToken,
		&r.Role,
		&r.Active,
		&r.PictureURL,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.DeletedAt,
		&r.DeletedBy,
		&r.Version,
	)
	if err != nil {
		return models.Account{}, err
	}

	return r.toModel(), nil
}

func (r accountRow) toModel() models.Account {
	account := models.Account{
		ID:                   r.ID,
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.PasswordHash,
		ResetPasswordToken:   stringPtr(r.ResetPasswordToken),
		ResetPasswordExpires: r.ResetPasswordExpires.ptr(),
		Role:                 models.Role(r.Role),
		Active:               r.Active,
		PictureURL:           stringPtr(r.PictureURL),
		CreatedAt:            r.CreatedAt.Time,
		UpdatedAt:            r.UpdatedAt.Time,
		DeletedAt:            r.DeletedAt.ptr(),
		DeletedBy:            stringPtr(r.DeletedBy),
		Version:              r.Version,
	}

	if r.GoogleID.Valid {
		account.Google = &models.GoogleLink{
			ID:           r.GoogleID.String,
			Sync:         r.GoogleSync.Bool,
			AccessToken:  r.GoogleAccessToken.String,
			RefreshToken: r.GoogleRefreshToken.String,
		}
	}

	return account
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
