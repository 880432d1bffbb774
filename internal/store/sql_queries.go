// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-accounts/models"
)

const accountsTable = "accounts"

// accountColumns is the column order shared by every SELECT and RETURNING
// clause; [scanAccount] scans in the same order.
var accountColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"reset_password_token",
	"reset_password_expires",
	"google_id",
	"google_sync",
	"google_access_token",
	"google_refresh_token",
	"role",
	"active",
	"picture_url",
	"created_at",
	"updated_at",
	"deleted_at",
	"deleted_by",
	"version",
}

// lookupColumns maps lookup fields to their backing columns.
var lookupColumns = map[models.AccountField]string{
	models.FieldUsername:           "username",
	models.FieldEmail:              "email",
	models.FieldResetPasswordToken: "reset_password_token",
	models.FieldGoogleID:           "google_id",
}

var notDeleted = sq.Eq{"deleted_at": nil}

func returning() string {
	return "RETURNING " + strings.Join(accountColumns, ", ")
}

func (db *DB) buildInsertAccountQuery(account models.Account) (string, []any, error) {
	var googleID, googleAccess, googleRefresh *string
	var googleSync bool
	if account.Google != nil {
		googleID = &account.Google.ID
		googleSync = account.Google.Sync
		googleAccess = nullableString(account.Google.AccessToken)
		googleRefresh = nullableString(account.Google.RefreshToken)
	}

	return db.builder().
		Insert(accountsTable).
		Columns(
			"id", "username", "email", "password_hash",
			"reset_password_token", "reset_password_expires",
			"google_id", "google_sync", "google_access_token", "google_refresh_token",
			"role", "active", "picture_url",
			"created_at", "updated_at", "version",
		).
		Values(
			account.ID, account.Username, account.Email, account.Password,
			account.ResetPasswordToken, utcPtr(account.ResetPasswordExpires),
			googleID, googleSync, googleAccess, googleRefresh,
			string(account.Role), account.Active, account.PictureURL,
			account.CreatedAt.UTC(), account.UpdatedAt.UTC(), account.Version,
		).
		Suffix(returning()).
		ToSql()
}

func (db *DB) buildSelectAccountQuery(where sq.Sqlizer) (string, []any, error) {
	return db.builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Where(notDeleted).
		OrderBy("created_at").
		Limit(1).
		ToSql()
}

func (db *DB) buildSelectAccountByFieldQuery(field models.AccountField, value string) (string, []any, error) {
	column, ok := lookupColumns[field]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	return db.buildSelectAccountQuery(sq.Eq{column: value})
}

func (db *DB) buildSelectAccountByLoginQuery(login string) (string, []any, error) {
	return db.buildSelectAccountQuery(sq.Or{
		sq.Eq{"username": login},
		sq.Eq{"email": login},
	})
}

// buildUpdateAccountQuery sets the non-nil fields of update. The version is
// bumped and updated_at refreshed on every update.
func (db *DB) buildUpdateAccountQuery(id string, update models.AccountUpdate, at time.Time) (string, []any, error) {
	set := map[string]any{
		"updated_at": at.UTC(),
		"version":    sq.Expr("version + 1"),
	}

	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password_hash"] = *update.Password
	}
	if update.PictureURL != nil {
		set["picture_url"] = nullableString(*update.PictureURL)
	}
	if update.Google != nil {
		set["google_id"] = update.Google.ID
		set["google_sync"] = update.Google.Sync
		set["google_access_token"] = nullableString(update.Google.AccessToken)
		set["google_refresh_token"] = nullableString(update.Google.RefreshToken)
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	switch {
	case update.ClearResetToken:
		set["reset_password_token"] = nil
		set["reset_password_expires"] = nil
	case update.ResetPasswordToken != nil:
		set["reset_password_token"] = *update.ResetPasswordToken
		set["reset_password_expires"] = utcPtr(update.ResetPasswordExpires)
	}

	return db.builder().
		Update(accountsTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Where(notDeleted).
		Suffix(returning()).
		ToSql()
}

func (db *DB) buildSoftDeleteAccountQuery(id, deletedBy string, at time.Time) (string, []any, error) {
	return db.builder().
		Update(accountsTable).
		Set("deleted_at", at.UTC()).
		Set("deleted_by", deletedBy).
		Set("updated_at", at.UTC()).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": id}).
		Where(notDeleted).
		ToSql()
}

func (db *DB) buildRestoreAccountQuery(id string, at time.Time) (string, []any, error) {
	return db.builder().
		Update(accountsTable).
		Set("deleted_at", nil).
		Set("deleted_by", nil).
		Set("updated_at", at.UTC()).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"deleted_at": nil}).
		Suffix(returning()).
		ToSql()
}

func (db *DB) buildClearExpiredResetTokensQuery(now time.Time) (string, []any, error) {
	return db.builder().
		Update(accountsTable).
		Set("reset_password_token", nil).
		Set("reset_password_expires", nil).
		Where(sq.NotEq{"reset_password_token": nil}).
		Where(sq.Lt{"reset_password_expires": now.UTC()}).
		ToSql()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func idEquals(id string) sq.Sqlizer {
	return sq.Eq{"id": id}
}
