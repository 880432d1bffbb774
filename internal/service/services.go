// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/notify"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

type Services struct {
	AccountService AccountService
	AppInfoService AppInfoService
}

func NewServices(
	storages *store.Storages,
	mailer notify.Mailer,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	validator, err := validators.NewAccountValidator(models.Roles(cfg.App.Roles))
	if err != nil {
		return nil, fmt.Errorf("error creating account validator: %w", err)
	}

	accountService, err := NewAccountService(storages.AccountRepository, validator, mailer, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(buildInfo, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AccountService: accountService,
		AppInfoService: appInfoService,
	}, nil
}
