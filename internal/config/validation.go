package config

import (
	"fmt"
	"strings"

	"github.com/LeJamon/goRentald/internal/core/types"
	crypto "github.com/LeJamon/goRentald/internal/crypto/common"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}
	if err := validateEventsConfig(&config.Events); err != nil {
		return fmt.Errorf("events config validation failed: %w", err)
	}
	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}
	if err := validateMarketplaceConfig(&config.Marketplace); err != nil {
		return fmt.Errorf("marketplace config validation failed: %w", err)
	}
	if err := validateStandaloneConfig(&config.Standalone); err != nil {
		return fmt.Errorf("standalone config validation failed: %w", err)
	}
	return nil
}

func validateServerConfig(server *ServerConfig) error {
	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", server.Port)
	}
	if server.RPCTimeout < 0 {
		return fmt.Errorf("rpc_timeout cannot be negative")
	}
	if server.SignatureWindow < 0 {
		return fmt.Errorf("signature_window cannot be negative")
	}
	if server.ReplayCacheSize < 0 {
		return fmt.Errorf("replay_cache_size cannot be negative")
	}
	return nil
}

func validateDatabaseConfig(db *DatabaseConfig) error {
	switch strings.ToLower(db.Backend) {
	case "pebble", "leveldb":
		if db.Path == "" {
			return fmt.Errorf("path is required for backend %s", db.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported backend %q (supported: pebble, leveldb, memory)", db.Backend)
	}
	if db.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative")
	}
	if db.StateCacheEntries < 0 {
		return fmt.Errorf("state_cache_entries cannot be negative")
	}
	return nil
}

func validateEventsConfig(ev *EventsConfig) error {
	switch strings.ToLower(ev.Driver) {
	case "sqlite", "postgres":
		if ev.DSN == "" {
			return fmt.Errorf("dsn is required for driver %s", ev.Driver)
		}
	case "none", "":
	default:
		return fmt.Errorf("unsupported driver %q (supported: sqlite, postgres, none)", ev.Driver)
	}
	return nil
}

func validateLoggingConfig(l *LoggingConfig) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid format %q (supported: json, console)", l.Format)
	}
	return nil
}

func validateMarketplaceConfig(m *MarketplaceConfig) error {
	if _, err := types.ParseAccountID(m.Treasury); err != nil {
		return fmt.Errorf("treasury: %w", err)
	}
	defaultFee, err := types.ParsePercentage(m.DefaultFee)
	if err != nil {
		return fmt.Errorf("default_fee: %w", err)
	}
	if m.MaxDuration <= 0 {
		return fmt.Errorf("max_duration must be positive")
	}
	if _, err := crypto.HashByName(m.Hash); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if _, err := types.ParseAccountID(m.LegacySFTToken); err != nil {
		return fmt.Errorf("legacy_sft_token: %w", err)
	}

	seen := make(map[types.AccountID]struct{}, len(m.Tokens))
	for i := range m.Tokens {
		tc := &m.Tokens[i]
		addr, err := tc.validate(defaultFee)
		if err != nil {
			return fmt.Errorf("tokens[%d]: %w", i, err)
		}
		if _, dup := seen[addr]; dup {
			return fmt.Errorf("tokens[%d]: duplicate address %s", i, addr)
		}
		seen[addr] = struct{}{}
	}
	return nil
}

func (tc *TokenConfig) validate(defaultFee uint64) (types.AccountID, error) {
	addr, err := types.ParseAccountID(tc.Address)
	if err != nil {
		return addr, fmt.Errorf("address: %w", err)
	}
	if addr.IsZero() {
		return addr, fmt.Errorf("address is required")
	}
	if _, err := types.ParseVariant(tc.Kind); err != nil {
		return addr, fmt.Errorf("kind: %w", err)
	}

	fee := defaultFee
	if tc.Fee != "" {
		if fee, err = types.ParsePercentage(tc.Fee); err != nil {
			return addr, fmt.Errorf("fee: %w", err)
		}
	}
	var royalty uint64
	if tc.RoyaltyPercentage != "" {
		if royalty, err = types.ParsePercentage(tc.RoyaltyPercentage); err != nil {
			return addr, fmt.Errorf("royalty_percentage: %w", err)
		}
	}
	if fee+royalty > types.PercentageBase {
		return addr, fmt.Errorf("marketplace fee plus royalty exceeds 100%%")
	}
	for _, s := range []string{tc.RoyaltyCreator, tc.RoyaltyTreasury} {
		if _, err := types.ParseAccountID(s); err != nil {
			return addr, fmt.Errorf("royalty account: %w", err)
		}
	}
	for _, s := range tc.TrustedFeeTokens {
		if _, err := types.ParseAccountID(s); err != nil {
			return addr, fmt.Errorf("trusted_fee_tokens: %w", err)
		}
	}
	return addr, nil
}

func validateStandaloneConfig(s *StandaloneConfig) error {
	for i, b := range s.Balances {
		if _, err := types.ParseAccountID(b.FeeToken); err != nil {
			return fmt.Errorf("balances[%d].fee_token: %w", i, err)
		}
		if _, err := types.ParseAccountID(b.Account); err != nil {
			return fmt.Errorf("balances[%d].account: %w", i, err)
		}
	}
	for i, n := range s.NFTs {
		if _, err := types.ParseAccountID(n.Token); err != nil {
			return fmt.Errorf("nfts[%d].token: %w", i, err)
		}
		if _, err := types.ParseAccountID(n.Owner); err != nil {
			return fmt.Errorf("nfts[%d].owner: %w", i, err)
		}
	}
	for i, n := range s.SFTs {
		if _, err := types.ParseAccountID(n.Token); err != nil {
			return fmt.Errorf("sfts[%d].token: %w", i, err)
		}
		if _, err := types.ParseAccountID(n.Owner); err != nil {
			return fmt.Errorf("sfts[%d].owner: %w", i, err)
		}
		if n.Amount == 0 {
			return fmt.Errorf("sfts[%d].amount must be positive", i)
		}
	}
	return nil
}
