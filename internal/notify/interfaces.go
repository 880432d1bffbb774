// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers account notifications. The only notification is
// the password reset mail; it is sent over SMTP with gomail or, when no SMTP
// host is configured, replaced by a log entry.
package notify

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

// Mailer sends password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, account models.Account, token string, expires time.Time) error
}
