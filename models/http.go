// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest carries credentials for authentication. Login may be either the
// username or the email of the account.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts the password reset flow for Email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RoleRequest changes the role of an account.
type RoleRequest struct {
	Role Role `json:"role"`
}

// ActiveRequest enables or disables an account.
type ActiveRequest struct {
	Active bool `json:"active"`
}

// ExistsResponse answers a duplicate-field lookup.
type ExistsResponse struct {
	Field  string `json:"field"`
	Exists bool   `json:"exists"`
}

// ErrorResponse is the JSON body of failed requests. Fields is filled for
// validation failures only.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields []FieldErrorEntry `json:"fields,omitempty"`
}

// FieldErrorEntry describes one invalid field.
type FieldErrorEntry struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// AuthResponse is returned by registration and login. The token is also sent
// in the "Authorization" response header.
type AuthResponse struct {
	Token   string      `json:"token"`
	Account AccountView `json:"account"`
}

// RegisterRequest is the body of a registration. Role and activity cannot be
// chosen by the registering client.
type RegisterRequest struct {
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	PictureURL *string     `json:"pictureUrl,omitempty"`
	Google     *GoogleLink `json:"google,omitempty"`
}

// Account converts the request into the account to be created.
func (r RegisterRequest) Account() Account {
	return Account{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		PictureURL: r.PictureURL,
		Google:     r.Google,
	}
}
