package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration of the command-line client, assembled
// from the same sources as [StructuredConfig] minus the server flags.
type ClientConfig struct {
	// HTTPAddress is the base URL of the server.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound client requests.
	RequestTimeout time.Duration
	// SessionFile is where the session cookie is kept between runs.
	SessionFile string
}

// GetClientConfig builds and validates the client configuration from
// defaults, environment variables and the optional JSON file.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		SessionFile:    cfg.Adapter.SessionFile,
	}

	return clientCfg, clientCfg.validate()
}
