// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
)

// ResetTokenPurger periodically clears password reset tokens whose expiry
// has passed, so that stale tokens do not linger in storage.
type ResetTokenPurger struct {
	accounts service.AccountService
	interval time.Duration
	logger   *logger.Logger
}

func NewResetTokenPurger(accounts service.AccountService, interval time.Duration, logger *logger.Logger) *ResetTokenPurger {
	return &ResetTokenPurger{
		accounts: accounts,
		interval: interval,
		logger:   logger,
	}
}

func (p *ResetTokenPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("reset token purger started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("reset token purger stopped")
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *ResetTokenPurger) purge(ctx context.Context) {
	purged, err := p.accounts.PurgeExpiredResetTokens(p.logger.WithContext(ctx))
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Msg("error purging expired reset tokens")
		}
		return
	}

	if purged > 0 {
		p.logger.Info().Int64("purged", purged).Msg("expired reset tokens cleared")
	}
}
