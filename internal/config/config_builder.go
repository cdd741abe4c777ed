package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Default values applied before any other configuration source.
const (
	DefaultTokenIssuer      = "go-user-service"
	DefaultTokenDuration    = 2 * time.Hour
	DefaultCookieDuration   = 96 * time.Hour
	DefaultPasswordHashCost = 10
	DefaultDSN              = "mongodb://127.0.0.1:27017/myappdb"
	DefaultLedgerPath       = "users.csv"
	DefaultHTTPAddress      = ":3000"
	DefaultRequestTimeout   = 15 * time.Second
	DefaultAdapterAddress   = "http://localhost:3000"
	DefaultSessionFile      = ".session"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs in order. A non-zero field of a later
// config overrides the same field of an earlier one.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			CookieDuration:   DefaultCookieDuration,
			PasswordHashCost: DefaultPasswordHashCost,
		},
		Storage: Storage{
			DB:     DB{DSN: DefaultDSN},
			Ledger: Ledger{Path: DefaultLedgerPath},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
			SessionFile:    DefaultSessionFile,
		},
	}
}
