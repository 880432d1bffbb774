// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import "errors"

var (
	ErrNoRecipient     = errors.New("account has no email address")
	ErrSendingMail     = errors.New("error sending mail")
	ErrInvalidResetURL = errors.New("reset url must contain exactly one %s verb")
)
