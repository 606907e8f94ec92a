// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultAdminPassword is the out-of-the-box reserved admin credential.
// It must be overridden in production.
const DefaultAdminPassword = "123456"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"IHUZA_DB_PATH" envDefault:"./data/ihuza.db"`
	ServerHost string `env:"IHUZA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"IHUZA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"IHUZA_ENV" envDefault:"development"`
	LogLevel   string `env:"IHUZA_LOG_LEVEL" envDefault:"info"`

	// Reserved admin account. Never part of the persisted accounts
	// collection; merged into authentication lookup only.
	AdminEmail    string `env:"IHUZA_ADMIN_EMAIL" envDefault:"admin@ihuza.com"`
	AdminPassword string `env:"IHUZA_ADMIN_PASSWORD" envDefault:"123456"`
	AdminName     string `env:"IHUZA_ADMIN_NAME" envDefault:"System Administrator"`

	// Inventory policy constants. These are the single definition point;
	// nothing else hardcodes the thresholds.
	LowStockThreshold int `env:"IHUZA_LOW_STOCK_THRESHOLD" envDefault:"10"` // quantity below this counts as low stock
	ActiveWindowDays  int `env:"IHUZA_ACTIVE_WINDOW_DAYS" envDefault:"30"`  // last login within this window counts as active

	DefaultTheme string `env:"IHUZA_DEFAULT_THEME" envDefault:"light"`
	DoSeed       bool   `env:"IHUZA_DO_SEED" envDefault:"true"` // Seed sample data on first start
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.LowStockThreshold <= 0 {
		return nil, fmt.Errorf("IHUZA_LOW_STOCK_THRESHOLD must be positive, got %d", cfg.LowStockThreshold)
	}
	if cfg.ActiveWindowDays <= 0 {
		return nil, fmt.Errorf("IHUZA_ACTIVE_WINDOW_DAYS must be positive, got %d", cfg.ActiveWindowDays)
	}
	if cfg.DefaultTheme != ThemeLight && cfg.DefaultTheme != ThemeDark {
		return nil, fmt.Errorf("IHUZA_DEFAULT_THEME must be %q or %q, got %q", ThemeLight, ThemeDark, cfg.DefaultTheme)
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("IHUZA_ADMIN_EMAIL and IHUZA_ADMIN_PASSWORD must not be empty")
	}

	if !cfg.IsDevelopment() && cfg.AdminPassword == DefaultAdminPassword {
		slog.Warn("IHUZA_ADMIN_PASSWORD is the default value; set a real credential in production")
	}

	return cfg, nil
}
