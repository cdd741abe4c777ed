// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: token issuer is empty", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.CookieDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: cookie duration must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("%w: password hash cost %d outside %d..%d",
			ErrInvalidAppConfigs, cfg.App.PasswordHashCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs))
	}
	if cfg.Storage.Ledger.Path == "" {
		errs = append(errs, fmt.Errorf("%w: empty ledger path", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty address", ErrInvalidServerConfigs))
	}
	if cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.HTTPAddress)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: address must be an absolute URL", ErrInvalidAdapterConfigs)
	}

	if cfg.SessionFile == "" {
		return fmt.Errorf("%w: empty session file", ErrInvalidAdapterConfigs)
	}

	return nil
}
