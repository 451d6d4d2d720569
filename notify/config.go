// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls mail delivery. An empty Host selects the log mailer.
type Config struct {
	Host       string        `env:"SMTP_HOST"`
	Port       int           `env:"SMTP_PORT"          envDefault:"587"`
	Username   string        `env:"SMTP_USERNAME"`
	Password   string        `env:"SMTP_PASSWORD"`
	From       string        `env:"SMTP_FROM"          envDefault:"noreply@sgformer.local"`
	Timeout    time.Duration `env:"SMTP_TIMEOUT"       envDefault:"10s"`
	AdminEmail string        `env:"NOTIFY_ADMIN_EMAIL"`
}

// LoadConfigFromEnv reads mail settings from the environment
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse mail env: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg, nil
}

// NewMailer returns an SMTP mailer when a host is configured and a log
// mailer otherwise.
func NewMailer(cfg Config) (Mailer, error) {
	if cfg.Host == "" {
		return LogMailer{}, nil
	}
	return NewSMTPMailer(cfg)
}
