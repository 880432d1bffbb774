// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-accounts service. It aggregates all sub-configurations and is populated
// by merging values from a .env file, environment variables, command-line
// flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is not set.
type StructuredConfig struct {
	// App holds token, hashing and role registry settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network and timeout settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds SMTP settings used to deliver password reset links.
	Mail Mail `envPrefix:"MAIL_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Port is a port number or, when not numeric, a unix socket path
	// (named pipe). Used only when Server.HTTPAddress is empty.
	// Env: PORT
	Port string `env:"PORT" envDefault:"3000"`
}

// App holds application-level configuration values that control password
// hashing, verification tokens and the role registry.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify verification
	// tokens. Required.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"go-accounts"`

	// TokenDuration is the lifetime of a verification token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"240h"`

	// HashCost is the bcrypt work factor. Required.
	// Env: APP_HASH_COST
	HashCost int `env:"HASH_COST"`

	// Roles is the fixed registry of allowed roles.
	// Env: APP_ROLES (comma separated)
	Roles []string `env:"ROLES" envSeparator:"," envDefault:"user,admin"`

	// Version is the semantic version string exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION" envDefault:"dev"`

	// LogLevel narrows the global log level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: postgres:// and postgresql:// open
	// PostgreSQL through pgx, sqlite:// and file: open SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the listen address: "host:port" for TCP or
	// "unix:<path>" for a unix socket. When empty it is derived from
	// [StructuredConfig.Port] during build.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Mail holds SMTP settings. When Host is empty reset links are only logged.
type Mail struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@localhost"`

	// ResetURL is the link template of reset mails; "%s" is replaced with
	// the reset token.
	ResetURL string `env:"RESET_URL" envDefault:"http://localhost:3000/reset-password?token=%s"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PurgeInterval is how often expired reset tokens are cleared.
	// Zero disables the purge worker.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL" envDefault:"10m"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. .env file (does not override variables already set)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Validation failures wrap [ErrConfiguration] and must abort startup.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
