package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "America/Sao_Paulo", cfg.TimeZone)
	assert.Equal(t, "0001", cfg.BranchCode)
	assert.Equal(t, 10, cfg.DailyCap)
	assert.True(t, cfg.Limit().Equal(decimal.NewFromInt(500)))
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ledger.yaml")

	configContent := `
log_level: debug
time_zone: "Europe/Lisbon"
branch_code: "0042"
daily_cap: 3
overdraft_limit: "250.50"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	t.Setenv("LEDGER_DAILY_CAP", "5")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0042", cfg.BranchCode)
	assert.Equal(t, 5, cfg.DailyCap)
	assert.True(t, cfg.Limit().Equal(decimal.RequireFromString("250.5")))

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("daily_cap: 0\ntime_zone: Nowhere/City\noverdraft_limit: \"-1\"\n"), 0644))

	_, err := Load(configPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily_cap")
	assert.Contains(t, err.Error(), "Nowhere/City")
	assert.Contains(t, err.Error(), "overdraft_limit")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
