package config

import (
	"account_ledger/internal/domain"
	"account_ledger/pkg/clock"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the process-wide settings. It is built once at startup and
// passed down; nothing mutates it afterwards.
type Config struct {
	LogLevel       string `yaml:"log_level"`
	MetricsAddr    string `yaml:"metrics_addr"`
	TimeZone       string `yaml:"time_zone"`
	BranchCode     string `yaml:"branch_code"`
	DailyCap       int    `yaml:"daily_cap"`
	OverdraftLimit string `yaml:"overdraft_limit"`
}

func Default() *Config {
	return &Config{
		LogLevel:       "info",
		MetricsAddr:    ":9090",
		TimeZone:       "America/Sao_Paulo",
		BranchCode:     domain.DefaultBranchCode,
		DailyCap:       domain.DefaultDailyCap,
		OverdraftLimit: domain.DefaultOverdraftLimit.String(),
	}
}

// Load reads the YAML file at path over the defaults, then applies LEDGER_*
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.LogLevel = getEnv("LEDGER_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsAddr = getEnv("LEDGER_METRICS_ADDR", cfg.MetricsAddr)
	cfg.TimeZone = getEnv("LEDGER_TIME_ZONE", cfg.TimeZone)
	cfg.BranchCode = getEnv("LEDGER_BRANCH_CODE", cfg.BranchCode)
	cfg.DailyCap = getEnvInt("LEDGER_DAILY_CAP", cfg.DailyCap)
	cfg.OverdraftLimit = getEnv("LEDGER_OVERDRAFT_LIMIT", cfg.OverdraftLimit)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.DailyCap <= 0 {
		errs = append(errs, fmt.Errorf("daily_cap must be positive, got %d", c.DailyCap))
	}
	if limit, err := decimal.NewFromString(c.OverdraftLimit); err != nil {
		errs = append(errs, fmt.Errorf("overdraft_limit %q is not a decimal", c.OverdraftLimit))
	} else if limit.IsNegative() {
		errs = append(errs, fmt.Errorf("overdraft_limit must not be negative, got %s", c.OverdraftLimit))
	}
	if _, err := clock.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, err)
	}
	if c.BranchCode == "" {
		errs = append(errs, errors.New("branch_code is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	return clock.LoadLocation(c.TimeZone)
}

// Limit returns the parsed overdraft limit. Call Validate first.
func (c *Config) Limit() decimal.Decimal {
	limit, err := decimal.NewFromString(c.OverdraftLimit)
	if err != nil {
		return domain.DefaultOverdraftLimit
	}
	return limit
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
