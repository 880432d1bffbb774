// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/notify"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// accountService is the concrete implementation of [AccountService].
type accountService struct {
	repository store.AccountRepository
	validator  validators.Validator
	hasher     PasswordHasher
	mailer     notify.Mailer

	ids    idGenerator
	now    func() time.Time
	random io.Reader

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAccountService wires an [AccountService]. cfg is validated first: a
// missing signing key or an out-of-range hash cost fail with
// [config.ErrConfiguration] before any token could be issued.
func NewAccountService(
	repository store.AccountRepository,
	validator validators.Validator,
	mailer notify.Mailer,
	cfg config.App,
	log *logger.Logger,
) (AccountService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hasher, err := NewBcryptHasher(cfg.HashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	return &accountService{
		repository:    repository,
		validator:     validator,
		hasher:        hasher,
		mailer:        mailer,
		ids:           utils.NewUUIDGenerator(),
		now:           time.Now,
		random:        rand.Reader,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        log,
	}, nil
}

// Create registers a new account.
//
// Username and email are trimmed and lowercased, the role defaults to
// "user" and the account starts active. After validation and the duplicate
// pre-check the password is replaced by its bcrypt hash and the account is
// persisted. A unique index violation raised by the database, e.g. when two
// registrations race, is reported exactly like a failed pre-check.
func (s *accountService) Create(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	normalizeAccount(&account)
	if account.Role == "" {
		account.Role = models.RoleUser
	}
	account.Active = true

	if err := s.validator.Validate(ctx, account); err != nil {
		return models.Account{}, err
	}

	if err := s.checkDuplicates(ctx, "", account.Username, account.Email); err != nil {
		return models.Account{}, err
	}

	hash, err := s.hashPassword(ctx, account.Password)
	if err != nil {
		return models.Account{}, err
	}

	now := s.now().UTC()
	account.ID = s.ids.Generate()
	account.Password = hash
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Version = 1
	account.ResetPasswordToken = nil
	account.ResetPasswordExpires = nil
	account.DeletedAt = nil
	account.DeletedBy = nil

	created, err := s.repository.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("username", account.Username).Msg("account creation ended with error")
		return models.Account{}, mapStoreError(err)
	}

	log.Info().Str("account_id", created.ID).Msg("account created")
	return created, nil
}

func (s *accountService) Get(ctx context.Context, id string) (models.Account, error) {
	account, err := s.repository.FindAccountByID(ctx, id)
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}
	return account, nil
}

// Update applies the username, email, password, picture and google fields of
// update. Other fields are ignored; role and activity have dedicated
// operations. The password is re-hashed only when it is part of update.
func (s *accountService) Update(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error) {
	log := logger.FromContext(ctx)

	changes := models.AccountUpdate{
		Username:   update.Username,
		Email:      update.Email,
		Password:   update.Password,
		PictureURL: update.PictureURL,
		Google:     update.Google,
	}
	normalizeUpdate(&changes)

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Account{}, err
	}

	if changes.IsEmpty() {
		return current, nil
	}

	if err = s.validator.Validate(ctx, changes); err != nil {
		return models.Account{}, err
	}

	var username, email string
	if changes.Username != nil && *changes.Username != current.Username {
		username = *changes.Username
	}
	if changes.Email != nil && *changes.Email != current.Email {
		email = *changes.Email
	}
	if err = s.checkDuplicates(ctx, current.ID, username, email); err != nil {
		return models.Account{}, err
	}

	if changes.Password != nil {
		hash, err := s.hashPassword(ctx, *changes.Password)
		if err != nil {
			return models.Account{}, err
		}
		changes.Password = &hash
	}

	updated, err := s.repository.UpdateAccount(ctx, current.ID, changes, s.now())
	if err != nil {
		log.Err(err).Str("account_id", current.ID).Msg("account update ended with error")
		return models.Account{}, mapStoreError(err)
	}

	return updated, nil
}

// ComparePassword reports whether plaintext matches the stored hash of
// account in constant time.
func (s *accountService) ComparePassword(ctx context.Context, plaintext string, account models.Account) (bool, error) {
	return s.hasher.Compare(ctx, account.Password, plaintext)
}

// Authenticate returns the live, active account whose username or email is
// login and whose password is password.
func (s *accountService) Authenticate(ctx context.Context, login, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	login = normalizeKey(login)
	if login == "" || password == "" {
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := s.repository.FindAccountByLogin(ctx, login)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrAuthentication
	}
	if err != nil {
		log.Err(err).Msg("account search by login failed")
		return models.Account{}, fmt.Errorf("account search by login failed: %w", err)
	}

	ok, err := s.ComparePassword(ctx, password, account)
	if err != nil {
		return models.Account{}, err
	}
	if !ok {
		log.Warn().Str("account_id", account.ID).Msg("wrong password")
		return models.Account{}, ErrAuthentication
	}
	if !account.Active {
		log.Warn().Str("account_id", account.ID).Msg("login attempt on inactive account")
		return models.Account{}, ErrAuthentication
	}

	return account, nil
}

// GenerateVerificationToken issues a signed token asserting the id, email,
// role and activity of account.
func (s *accountService) GenerateVerificationToken(ctx context.Context, account models.Account) (models.Token, error) {
	claims := models.VerificationClaims{
		ID:     account.ID,
		Email:  account.Email,
		Role:   account.Role,
		Active: account.Active,
	}

	token, err := utils.GenerateVerificationToken(s.tokenIssuer, claims, s.now(), s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseVerificationToken validates signature, issuer and expiry of
// tokenString. Every failure is reported as [ErrTokenIsExpiredOrInvalid].
func (s *accountService) ParseVerificationToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseVerificationToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("verification token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CheckExistingField returns the first live account whose field equals
// value. found is false when there is none. Username and email lookups are
// case-insensitive.
func (s *accountService) CheckExistingField(ctx context.Context, field models.AccountField, value string) (models.Account, bool, error) {
	if !field.IsLookupField() {
		return models.Account{}, false, validators.FieldErrors{
			validators.NewFieldError(validators.ErrValidation, string(field), fmt.Sprintf("%q is not a lookup field", field)),
		}
	}

	if field.CaseInsensitive() {
		value = normalizeKey(value)
	} else {
		value = strings.TrimSpace(value)
	}
	if value == "" {
		return models.Account{}, false, nil
	}

	account, err := s.repository.FindAccountByField(ctx, field, value)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, false, nil
	}
	if err != nil {
		return models.Account{}, false, fmt.Errorf("lookup by %s failed: %w", field, err)
	}

	return account, true, nil
}

func (s *accountService) SetRole(ctx context.Context, id string, role models.Role) (models.Account, error) {
	if err := s.validator.Validate(ctx, models.AccountUpdate{Role: &role}); err != nil {
		return models.Account{}, err
	}

	updated, err := s.repository.UpdateAccount(ctx, id, models.AccountUpdate{Role: &role}, s.now())
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("account_id", id).Str("role", string(role)).Msg("role changed")
	return updated, nil
}

func (s *accountService) SetActive(ctx context.Context, id string, active bool) (models.Account, error) {
	updated, err := s.repository.UpdateAccount(ctx, id, models.AccountUpdate{Active: &active}, s.now())
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("account_id", id).Bool("active", active).Msg("activity changed")
	return updated, nil
}

// SoftDelete hides the live account id from every read path and records
// deletedBy as the deleting account.
func (s *accountService) SoftDelete(ctx context.Context, id, deletedBy string) error {
	if err := s.repository.SoftDeleteAccount(ctx, id, deletedBy, s.now()); err != nil {
		return mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("account_id", id).Str("deleted_by", deletedBy).Msg("account deleted")
	return nil
}

// Restore brings back a soft-deleted account. It fails like [Create] does
// when a live account owns the same username or email by now.
func (s *accountService) Restore(ctx context.Context, id string) (models.Account, error) {
	restored, err := s.repository.RestoreAccount(ctx, id, s.now())
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("account_id", id).Msg("account restored")
	return restored, nil
}

// Serialize returns the external view of account.
func (s *accountService) Serialize(account models.Account) models.AccountView {
	return account.View()
}

// checkDuplicates looks up username and email among live accounts other
// than selfID. Empty values are skipped.
func (s *accountService) checkDuplicates(ctx context.Context, selfID, username, email string) error {
	var taken []models.AccountField

	for _, candidate := range []struct {
		field models.AccountField
		value string
	}{
		{models.FieldUsername, username},
		{models.FieldEmail, email},
	} {
		if candidate.value == "" {
			continue
		}

		owner, found, err := s.CheckExistingField(ctx, candidate.field, candidate.value)
		if err != nil {
			return err
		}
		if found && owner.ID != selfID {
			taken = append(taken, candidate.field)
		}
	}

	if len(taken) == 0 {
		return nil
	}
	return duplicateError(taken...)
}

func (s *accountService) hashPassword(ctx context.Context, plaintext string) (string, error) {
	hash, err := s.hasher.Hash(ctx, plaintext)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validators.FieldErrors{
			validators.NewFieldError(validators.ErrLength, validators.FieldPassword, "must be at most 72 bytes long"),
		}
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// duplicateError reports fields owned by another live account. The result
// matches both [validators.ErrValidation] and [ErrAlreadyTaken].
func duplicateError(fields ...models.AccountField) error {
	fieldErrors := make(validators.FieldErrors, 0, len(fields))
	for _, field := range fields {
		fieldErrors = append(fieldErrors,
			validators.NewFieldError(validators.ErrValidation, string(field), fmt.Sprintf("%s already taken", field)))
	}
	return fmt.Errorf("%w: %w", fieldErrors, ErrAlreadyTaken)
}

// mapStoreError converts storage errors into the errors of this package.
func mapStoreError(err error) error {
	var duplicate *store.DuplicateError
	if errors.As(err, &duplicate) {
		return duplicateError(duplicate.Field)
	}
	if errors.Is(err, store.ErrAccountNotFound) {
		return ErrAccountNotFound
	}
	return err
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAccount(account *models.Account) {
	account.Username = normalizeKey(account.Username)
	account.Email = normalizeKey(account.Email)
	if account.PictureURL != nil {
		picture := strings.TrimSpace(*account.PictureURL)
		if picture == "" {
			account.PictureURL = nil
		} else {
			account.PictureURL = &picture
		}
	}
}

func normalizeUpdate(update *models.AccountUpdate) {
	if update.Username != nil {
		username := normalizeKey(*update.Username)
		update.Username = &username
	}
	if update.Email != nil {
		email := normalizeKey(*update.Email)
		update.Email = &email
	}
	if update.PictureURL != nil {
		picture := strings.TrimSpace(*update.PictureURL)
		update.PictureURL = &picture
	}
}
