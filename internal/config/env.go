// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Fallback variables honoured when the prefixed ones are unset.
const (
	envMongoURI = "MONGODB_URI"
	envPort     = "PORT"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// MONGODB_URI and PORT are read when STORAGE_DB_DATABASE_URI and
// SERVER_ADDRESS are not set.
func parseEnv(cfg *StructuredConfig) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = os.Getenv(envMongoURI)
	}
	if port := os.Getenv(envPort); cfg.Server.HTTPAddress == "" && port != "" {
		cfg.Server.HTTPAddress = ":" + port
	}

	return nil
}
