// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

const resetSubject = "Reset your password"

// sender is the part of *gomail.Dialer used by [SMTPMailer].
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends reset mails through an SMTP relay.
type SMTPMailer struct {
	sender   sender
	from     string
	resetURL string

	logger *logger.Logger
}

// NewMailer returns an [SMTPMailer] when cfg.Host is set and a [LogMailer]
// otherwise.
func NewMailer(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	if strings.Count(cfg.ResetURL, "%s") != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResetURL, cfg.ResetURL)
	}

	if cfg.Host == "" {
		return NewLogMailer(log), nil
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return newSMTPMailer(dialer, cfg.From, cfg.ResetURL, log), nil
}

func newSMTPMailer(s sender, from, resetURL string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{sender: s, from: from, resetURL: resetURL, logger: log}
}

// SendPasswordReset mails the reset link for token to the account email.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, account models.Account, token string, expires time.Time) error {
	if account.Email == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	link := fmt.Sprintf(m.resetURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", account.Email, account.Username)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", resetText(account.Username, link, expires))

	if err := m.sender.DialAndSend(msg); err != nil {
		m.logger.Err(err).Str("account_id", account.ID).Msg("reset mail was not sent")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	m.logger.Info().Str("account_id", account.ID).Msg("reset mail sent")
	return nil
}

func resetText(username, link string, expires time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	b.WriteString("a password reset was requested for your account.\n")
	fmt.Fprintf(&b, "Open the link below to choose a new password:\n\n%s\n\n", link)
	fmt.Fprintf(&b, "The link expires at %s.\n", expires.UTC().Format(time.RFC1123))
	b.WriteString("If you did not request a reset, ignore this message.\n")
	return b.String()
}

// LogMailer records that a reset was requested without delivering anything.
// The token itself is never logged.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, account models.Account, _ string, expires time.Time) error {
	m.logger.Warn().
		Str("account_id", account.ID).
		Time("expires", expires).
		Msg("mail delivery is disabled, reset link was not sent")
	return nil
}
