// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// accountRepository is the SQL implementation of [AccountRepository] over the
// "accounts" table. Queries are built with squirrel in the placeholder format
// of the connection's dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount inserts account and returns the stored row.
//
// Error handling:
//   - unique index violation → [*DuplicateError] naming the field.
//   - busy/lost connection → [ErrStorageUnavailable].
//   - anything else → [ErrExecutingQuery].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildInsertAccountQuery(account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.mapError(err, ErrExecutingQuery)
		log.Err(err).
			Str("func", "*accountRepository.CreateAccount").
			Str("account_id", account.ID).
			Msg("error creating account")
		return models.Account{}, mapped
	}

	return created, nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, id string) (models.Account, error) {
	if !isValidID(id) {
		return models.Account{}, ErrAccountNotFound
	}

	query, args, err := r.db.buildSelectAccountQuery(idEquals(id))
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*accountRepository.FindAccountByID", query, args)
}

func (r *accountRepository) FindAccountByField(ctx context.Context, field models.AccountField, value string) (models.Account, error) {
	query, args, err := r.db.buildSelectAccountByFieldQuery(field, value)
	if err != nil {
		if errors.Is(err, ErrUnsupportedField) {
			return models.Account{}, err
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*accountRepository.FindAccountByField", query, args)
}

func (r *accountRepository) FindAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	query, args, err := r.db.buildSelectAccountByLoginQuery(login)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*accountRepository.FindAccountByLogin", query, args)
}

// UpdateAccount applies update to the live account id. A missing or deleted
// account yields [ErrAccountNotFound]; a username or email clash yields a
// [*DuplicateError].
func (r *accountRepository) UpdateAccount(ctx context.Context, id string, update models.AccountUpdate, at time.Time) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !isValidID(id) {
		return models.Account{}, ErrAccountNotFound
	}

	query, args, err := r.db.buildUpdateAccountQuery(id, update, at)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.mapError(err, ErrExecutingQuery)
		if !errors.Is(mapped, ErrAccountNotFound) {
			log.Err(err).
				Str("func", "*accountRepository.UpdateAccount").
				Str("account_id", id).
				Msg("error updating account")
		}
		return models.Account{}, mapped
	}

	return updated, nil
}

func (r *accountRepository) SoftDeleteAccount(ctx context.Context, id string, deletedBy string, at time.Time) error {
	log := logger.FromContext(ctx)

	if !isValidID(id) {
		return ErrAccountNotFound
	}

	query, args, err := r.db.buildSoftDeleteAccountQuery(id, deletedBy, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*accountRepository.SoftDeleteAccount").
			Str("account_id", id).
			Msg("error soft deleting account")
		return r.mapError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// RestoreAccount clears the soft-delete markers of id. Restoring fails with a
// [*DuplicateError] when a live account took over the username or email in
// the meantime.
func (r *accountRepository) RestoreAccount(ctx context.Context, id string, at time.Time) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !isValidID(id) {
		return models.Account{}, ErrAccountNotFound
	}

	query, args, err := r.db.buildRestoreAccountQuery(id, at)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	restored, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.mapError(err, ErrExecutingQuery)
		if !errors.Is(mapped, ErrAccountNotFound) {
			log.Err(err).
				Str("func", "*accountRepository.RestoreAccount").
				Str("account_id", id).
				Msg("error restoring account")
		}
		return models.Account{}, mapped
	}

	return restored, nil
}

func (r *accountRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildClearExpiredResetTokensQuery(now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ClearExpiredResetTokens").Msg("error clearing reset tokens")
		return 0, r.mapError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *accountRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.mapError(err, ErrScanningRow)
		if !errors.Is(mapped, ErrAccountNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error finding account")
		}
		return models.Account{}, mapped
	}

	return account, nil
}

// isValidID reports whether id can name an account. Malformed ids would make
// PostgreSQL reject the uuid cast instead of matching nothing.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// mapError translates driver errors into the storage error model. fallback
// wraps errors that match no known condition.
func (r *accountRepository) mapError(err error, fallback error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}

	if field, ok := r.db.errorClassificator.DuplicateField(err); ok {
		return &DuplicateError{Field: field}
	}

	if r.db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
