// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":1337"`
	RPCEndpoint     string        `env:"ETH_RPC_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	FeeRate         float64       `env:"SWAP_FEE_RATE" envDefault:"0.003"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"3s"`
}

// FromEnv reads a .env file from the working directory when present and then
// parses the process environment into a Config.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type feeConfig struct {
	FeeRate float64 `env:"SWAP_FEE_RATE" envDefault:"0.003"`
}

// FeeRateFromEnv reads only SWAP_FEE_RATE, for callers such as the CLI that
// have no use for the server settings.
func FeeRateFromEnv() (float64, error) {
	_ = godotenv.Load()

	var cfg feeConfig
	if err := env.Parse(&cfg); err != nil {
		return 0, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cpmm.NewEngine(cfg.FeeRate); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFeeRate, cfg.FeeRate)
	}
	return cfg.FeeRate, nil
}

// OnchainEnabled reports whether an RPC endpoint was configured for the
// on-chain estimator.
func (c *Config) OnchainEnabled() bool {
	return c.RPCEndpoint != ""
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return ErrMissingAddr
	}
	if _, err := cpmm.NewEngine(c.FeeRate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeeRate, c.FeeRate)
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}
	return nil
}
