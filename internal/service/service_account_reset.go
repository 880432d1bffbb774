// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	// resetTokenBytes random bytes give a 40 character hex token.
	resetTokenBytes = 20

	// ResetTokenTTL is the validity of a password reset token.
	ResetTokenTTL = 3_600_000 * time.Millisecond
)

// GeneratePasswordResetToken sets a fresh reset token on account, valid for
// [ResetTokenTTL] from now. The account is not persisted.
func (s *accountService) GeneratePasswordResetToken(ctx context.Context, account *models.Account) error {
	if account == nil {
		return ErrInvalidDataProvided
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(s.random, raw); err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	token := hex.EncodeToString(raw)
	expires := s.now().UTC().Truncate(time.Millisecond).Add(ResetTokenTTL)

	account.ResetPasswordToken = &token
	account.ResetPasswordExpires = &expires

	return nil
}

// RequestPasswordReset issues a reset token for the live account with the
// given email, stores it and mails it to the account.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = normalizeKey(email)
	if email == "" {
		return ErrInvalidDataProvided
	}

	account, found, err := s.CheckExistingField(ctx, models.FieldEmail, email)
	if err != nil {
		return err
	}
	if !found {
		return ErrAccountNotFound
	}

	if err = s.GeneratePasswordResetToken(ctx, &account); err != nil {
		return err
	}

	update := models.AccountUpdate{
		ResetPasswordToken:   account.ResetPasswordToken,
		ResetPasswordExpires: account.ResetPasswordExpires,
	}
	updated, err := s.repository.UpdateAccount(ctx, account.ID, update, s.now())
	if err != nil {
		log.Err(err).Str("account_id", account.ID).Msg("storing reset token failed")
		return mapStoreError(err)
	}

	if err = s.mailer.SendPasswordReset(ctx, updated, *account.ResetPasswordToken, *account.ResetPasswordExpires); err != nil {
		return fmt.Errorf("reset token stored but not delivered: %w", err)
	}

	log.Info().Str("account_id", account.ID).Msg("password reset requested")
	return nil
}

// ResetPassword replaces the password of the account owning token and clears
// the token. Unknown tokens yield [ErrTokenIsExpiredOrInvalid], expired ones
// [ErrResetTokenExpired].
func (s *accountService) ResetPassword(ctx context.Context, token, newPassword string) (models.Account, error) {
	log := logger.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return models.Account{}, ErrTokenIsExpiredOrInvalid
	}

	account, found, err := s.CheckExistingField(ctx, models.FieldResetPasswordToken, token)
	if err != nil {
		return models.Account{}, err
	}
	if !found {
		return models.Account{}, ErrTokenIsExpiredOrInvalid
	}
	if !account.HasValidResetToken(s.now()) {
		return models.Account{}, ErrResetTokenExpired
	}

	if err = s.validator.Validate(ctx, models.AccountUpdate{Password: &newPassword}); err != nil {
		return models.Account{}, err
	}

	hash, err := s.hashPassword(ctx, newPassword)
	if err != nil {
		return models.Account{}, err
	}

	updated, err := s.repository.UpdateAccount(ctx, account.ID, models.AccountUpdate{
		Password:        &hash,
		ClearResetToken: true,
	}, s.now())
	if err != nil {
		log.Err(err).Str("account_id", account.ID).Msg("password reset failed")
		return models.Account{}, mapStoreError(err)
	}

	log.Info().Str("account_id", account.ID).Msg("password reset")
	return updated, nil
}

// PurgeExpiredResetTokens clears every reset token that expired before now.
func (s *accountService) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	purged, err := s.repository.ClearExpiredResetTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purging reset tokens failed: %w", err)
	}
	return purged, nil
}
