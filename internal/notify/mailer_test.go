// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/quotedprintable"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return c.err
}

// renderBody returns the decoded text body of a single-part message.
func renderBody(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	_, body, found := strings.Cut(buf.String(), "\r\n\r\n")
	require.True(t, found)

	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(body)))
	require.NoError(t, err)
	return string(decoded)
}

func testAccount() models.Account {
	return models.Account{ID: "0192f1c4-0000-7000-8000-000000000001", Username: "alice", Email: "alice@example.com"}
}

func TestNewMailer(t *testing.T) {
	cfg := config.Mail{ResetURL: "https://example.com/reset?token=%s"}

	m, err := NewMailer(cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	cfg.Host = "smtp.example.com"
	cfg.Port = 587
	m, err = NewMailer(cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	for _, bad := range []string{"", "https://example.com/reset", "%s%s"} {
		_, err = NewMailer(config.Mail{ResetURL: bad}, logger.Nop())
		assert.ErrorIs(t, err, ErrInvalidResetURL, bad)
	}
}

func TestSMTPMailer_SendPasswordReset(t *testing.T) {
	s := &captureSender{}
	m := newSMTPMailer(s, "no-reply@example.com", "https://example.com/reset?token=%s", logger.Nop())
	expires := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

	err := m.SendPasswordReset(context.Background(), testAccount(), "abc123", expires)
	require.NoError(t, err)
	require.Len(t, s.messages, 1)

	msg := s.messages[0]
	assert.Equal(t, []string{"no-reply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{resetSubject}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("To"), 1)
	assert.Contains(t, msg.GetHeader("To")[0], "alice@example.com")

	body := renderBody(t, msg)
	assert.Contains(t, body, "https://example.com/reset?token=abc123")
	assert.Contains(t, body, "Sun, 01 Mar 2026 13:00:00 UTC")
}

func TestSMTPMailer_Errors(t *testing.T) {
	account := testAccount()

	t.Run("no recipient", func(t *testing.T) {
		s := &captureSender{}
		m := newSMTPMailer(s, "from@example.com", "%s", logger.Nop())

		err := m.SendPasswordReset(context.Background(), models.Account{}, "t", time.Now())
		assert.ErrorIs(t, err, ErrNoRecipient)
		assert.Empty(t, s.messages)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := &captureSender{}
		m := newSMTPMailer(s, "from@example.com", "%s", logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := m.SendPasswordReset(ctx, account, "t", time.Now())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, s.messages)
	})

	t.Run("relay failure", func(t *testing.T) {
		relayErr := errors.New("connection refused")
		m := newSMTPMailer(&captureSender{err: relayErr}, "from@example.com", "%s", logger.Nop())

		err := m.SendPasswordReset(context.Background(), account, "t", time.Now())
		assert.ErrorIs(t, err, ErrSendingMail)
		assert.ErrorIs(t, err, relayErr)
	})
}

func TestLogMailer_NeverLogsToken(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logger.NewLoggerWithWriter("test", &buf))

	err := m.SendPasswordReset(context.Background(), testAccount(), "super-secret-token", time.Now())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), testAccount().ID)
	assert.NotContains(t, buf.String(), "super-secret-token")
}
