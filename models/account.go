// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Account is the persisted user entity.
//
// Password holds the plaintext only on its way into the service layer; every
// value read back from storage is a bcrypt hash. Account is never written to
// clients directly; use [Account.View] to obtain the external representation.
type Account struct {
	// ID is the system-generated identifier (UUID v7). Immutable.
	ID string `json:"-"`

	// Username is unique among live accounts and stored lowercased.
	Username string `json:"username" validate:"required"`

	// Email is unique among live accounts and stored lowercased.
	Email string `json:"email" validate:"required,email"`

	// Password is the plaintext on input and the bcrypt hash once persisted.
	Password string `json:"password" validate:"required,min=8"`

	// ResetPasswordToken is set when a password reset flow is started.
	ResetPasswordToken *string `json:"-"`

	// ResetPasswordExpires is set together with ResetPasswordToken and is
	// meaningless without it.
	ResetPasswordExpires *time.Time `json:"-"`

	// Google is the optional federated identity linkage.
	Google *GoogleLink `json:"google,omitempty"`

	// Role is always a member of the configured role set.
	Role Role `json:"role" validate:"omitempty,role"`

	// Active soft-disables the account without deleting it.
	Active bool `json:"active"`

	// PictureURL must carry an http, https or ftp protocol and a top-level
	// domain when present.
	PictureURL *string `json:"pictureUrl,omitempty" validate:"omitempty,picture_url"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// DeletedAt and DeletedBy are the soft-delete markers. Accounts with a
	// non-nil DeletedAt are excluded from every read path except restore.
	DeletedAt *time.Time `json:"-"`
	DeletedBy *string    `json:"-"`

	// Version is the internal revision marker bumped on every write.
	Version int `json:"-"`
}

// GoogleLink holds the data of a linked Google identity.
type GoogleLink struct {
	ID           string `json:"id"`
	Sync         bool   `json:"sync"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// IsDeleted reports whether the account carries a soft-delete marker.
func (a Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// HasValidResetToken reports whether a reset token is set and still valid at now.
func (a Account) HasValidResetToken(now time.Time) bool {
	return a.ResetPasswordToken != nil &&
		a.ResetPasswordExpires != nil &&
		now.Before(*a.ResetPasswordExpires)
}

// FullApp is the derived display label "<username> - <email>".
func (a Account) FullApp() string {
	return fmt.Sprintf("%s - %s", a.Username, a.Email)
}

// View returns the external-facing representation of the account.
// The password, the reset token and the internal version marker are never
// part of it.
func (a Account) View() AccountView {
	view := AccountView{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		Role:       a.Role,
		Active:     a.Active,
		PictureURL: a.PictureURL,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		FullApp:    a.FullApp(),
	}

	if a.Google != nil {
		view.Google = &GoogleLinkView{ID: a.Google.ID, Sync: a.Google.Sync}
	}

	return view
}

// AccountView is the serialized shape of an [Account] returned by the API.
type AccountView struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	Active     bool            `json:"active"`
	PictureURL *string         `json:"pictureUrl,omitempty"`
	Google     *GoogleLinkView `json:"google,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	FullApp    string          `json:"fullApp"`
}

// GoogleLinkView exposes the linked Google identity without its OAuth tokens.
type GoogleLinkView struct {
	ID   string `json:"id"`
	Sync bool   `json:"sync"`
}

// AccountUpdate describes a partial update of an account. Nil fields are left
// untouched; in particular the password is re-hashed only when Password is set.
type AccountUpdate struct {
	Username   *string     `json:"username,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Password   *string     `json:"password,omitempty"`
	PictureURL *string     `json:"pictureUrl,omitempty"`
	Google     *GoogleLink `json:"google,omitempty"`

	Role   *Role `json:"-"`
	Active *bool `json:"-"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	// ClearResetToken nulls both reset columns regardless of the two fields above.
	ClearResetToken bool `json:"-"`
}

// IsEmpty reports whether the update changes nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil &&
		u.PictureURL == nil && u.Google == nil && u.Role == nil &&
		u.Active == nil && u.ResetPasswordToken == nil &&
		u.ResetPasswordExpires == nil && !u.ClearResetToken
}
