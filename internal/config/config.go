// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-user-service application. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session token, cookie and password hashing settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the user record store, the signup
	// ledger and the optional registration lock.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings used by the command-line client to reach a
	// running server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control session
// tokens, the session cookie and password hashing.
type App struct {
	// TokenSignKey is the secret used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a session token stays valid after issuance.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// CookieDuration is the Expires offset of the session cookie. It is
	// independent of TokenDuration.
	// Env: APP_COOKIE_DURATION
	CookieDuration time.Duration `env:"COOKIE_DURATION"`

	// CookieSecure marks the session cookie Secure.
	// Env: APP_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`
}

// Storage groups the configuration for all persistence backends.
type Storage struct {
	// DB holds the user record store connection settings.
	DB DB `envPrefix:"DB_"`

	// Ledger holds the CSV signup ledger settings.
	Ledger Ledger `envPrefix:"LEDGER_"`

	// Redis holds the optional registration lock settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the user record store. The backend is
// chosen from the DSN scheme (mongodb, postgres or sqlite).
type DB struct {
	// DSN is the connection string.
	// Env: STORAGE_DB_DATABASE_URI (MONGODB_URI is accepted as a fallback)
	DSN string `env:"DATABASE_URI"`
}

// Ledger holds the CSV signup ledger settings.
type Ledger struct {
	// Path is the CSV file appended to on every successful registration.
	// Env: STORAGE_LEDGER_PATH
	Path string `env:"PATH"`
}

// Redis holds connection settings for the registration lock.
// An empty Address disables the lock.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS (PORT is accepted as a fallback)
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds client-side transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the server (e.g. "http://localhost:3000").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SessionFile stores the session cookie between client invocations.
	// Env: ADAPTER_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
