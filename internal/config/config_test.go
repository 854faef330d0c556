package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
bind = "0.0.0.0"
port = 6006
rpc_timeout = "5s"
require_signatures = false
cors_origins = ["http://localhost:3000"]

[database]
backend = "memory"

[events]
driver = "none"

[logging]
level = "debug"
format = "console"

[marketplace]
treasury = "0x9999999999999999999999999999999999999999"
default_fee = "5"
max_duration = "720h"
hash = "keccak256"
legacy_sft_token = "0x4444444444444444444444444444444444444444"

[[marketplace.tokens]]
address = "0x2222222222222222222222222222222222222222"
kind = "nft"
royalty_creator = "0x3333333333333333333333333333333333333333"
royalty_percentage = "10"
royalty_treasury = "0x3333333333333333333333333333333333333333"
trusted_fee_tokens = ["0x5555555555555555555555555555555555555555"]

[[standalone.balances]]
fee_token = "0x5555555555555555555555555555555555555555"
account = "0x6666666666666666666666666666666666666666"
amount = 1000000
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentald.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, testConfig)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "0.0.0.0:6006", config.Server.Address())
	assert.Equal(t, 5*time.Second, config.Server.RPCTimeout)
	assert.False(t, config.Server.RequireSignatures)
	assert.Equal(t, []string{"http://localhost:3000"}, config.Server.CORSOrigins)
	assert.Equal(t, "memory", config.Database.Backend)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 720*time.Hour, config.Marketplace.MaxDuration)
	assert.Equal(t, "keccak256", config.Marketplace.Hash)

	require.Len(t, config.Marketplace.Tokens, 1)
	tok := config.Marketplace.Tokens[0]
	assert.Equal(t, "nft", tok.Kind)
	assert.Equal(t, "10", tok.RoyaltyPercentage)
	assert.Equal(t, []string{"0x5555555555555555555555555555555555555555"}, tok.TrustedFeeTokens)

	require.Len(t, config.Standalone.Balances, 1)
	assert.Equal(t, uint64(1000000), config.Standalone.Balances[0].Amount)
	assert.Equal(t, path, config.GetConfigPath())
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, 5005, config.Server.Port)
	assert.True(t, config.Server.RequireSignatures)
	assert.Equal(t, 5*time.Minute, config.Server.SignatureWindow)
	assert.Equal(t, 1<<16, config.Server.ReplayCacheSize)
	assert.Equal(t, "pebble", config.Database.Backend)
	assert.Equal(t, "sqlite", config.Events.Driver)
	assert.Equal(t, 90*24*time.Hour, config.Marketplace.MaxDuration)
	assert.Equal(t, "sha512half", config.Marketplace.Hash)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RENTALD_SERVER_PORT", "7007")
	t.Setenv("RENTALD_DATABASE_BACKEND", "memory")

	config, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, 7007, config.Server.Port)
	assert.Equal(t, "memory", config.Database.Backend)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		c, err := LoadDefaults()
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"negative signature window", func(c *Config) { c.Server.SignatureWindow = -time.Second }},
		{"negative replay cache", func(c *Config) { c.Server.ReplayCacheSize = -1 }},
		{"bad backend", func(c *Config) { c.Database.Backend = "nudb" }},
		{"pebble without path", func(c *Config) { c.Database.Path = "" }},
		{"bad events driver", func(c *Config) { c.Events.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Events.Driver = "postgres"; c.Events.DSN = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad treasury", func(c *Config) { c.Marketplace.Treasury = "0x12" }},
		{"bad fee", func(c *Config) { c.Marketplace.DefaultFee = "150" }},
		{"zero max duration", func(c *Config) { c.Marketplace.MaxDuration = 0 }},
		{"unknown hash", func(c *Config) { c.Marketplace.Hash = "md5" }},
		{"fee plus royalty over 100", func(c *Config) {
			c.Marketplace.Tokens = []TokenConfig{{
				Address:           "0x2222222222222222222222222222222222222222",
				Kind:              "sft",
				Fee:               "60",
				RoyaltyPercentage: "50",
			}}
		}},
		{"duplicate token", func(c *Config) {
			tc := TokenConfig{Address: "0x2222222222222222222222222222222222222222", Kind: "nft"}
			c.Marketplace.Tokens = []TokenConfig{tc, tc}
		}},
		{"unknown kind", func(c *Config) {
			c.Marketplace.Tokens = []TokenConfig{{Address: "0x2222222222222222222222222222222222222222", Kind: "erc20"}}
		}},
		{"zero sft amount", func(c *Config) {
			c.Standalone.SFTs = []SFTConfig{{Token: "0x2222222222222222222222222222222222222222", Owner: "0x1111111111111111111111111111111111111111"}}
		}},
	}

	require.NoError(t, ValidateConfig(valid()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, ValidateConfig(c))
		})
	}
}
