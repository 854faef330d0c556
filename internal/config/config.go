package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config represents the complete rentald configuration
type Config struct {
	Server      ServerConfig      `toml:"server" mapstructure:"server"`
	Database    DatabaseConfig    `toml:"database" mapstructure:"database"`
	Events      EventsConfig      `toml:"events" mapstructure:"events"`
	Logging     LoggingConfig     `toml:"logging" mapstructure:"logging"`
	Marketplace MarketplaceConfig `toml:"marketplace" mapstructure:"marketplace"`
	Standalone  StandaloneConfig  `toml:"standalone" mapstructure:"standalone"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig configures the JSON-RPC / WebSocket listener.
type ServerConfig struct {
	Bind              string        `toml:"bind" mapstructure:"bind"`
	Port              int           `toml:"port" mapstructure:"port"`
	RPCTimeout        time.Duration `toml:"rpc_timeout" mapstructure:"rpc_timeout"`
	RequireSignatures bool          `toml:"require_signatures" mapstructure:"require_signatures"`
	CORSOrigins       []string      `toml:"cors_origins" mapstructure:"cors_origins"`
	// SignatureWindow is the longest a signed request may stay valid.
	SignatureWindow time.Duration `toml:"signature_window" mapstructure:"signature_window"`
	// ReplayCacheSize bounds the number of remembered request nonces.
	ReplayCacheSize int `toml:"replay_cache_size" mapstructure:"replay_cache_size"`
}

// Address returns the host:port the server listens on.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Bind, s.Port)
}

// DatabaseConfig selects the key-value backend holding marketplace state.
type DatabaseConfig struct {
	Backend   string `toml:"backend" mapstructure:"backend"`
	Path      string `toml:"path" mapstructure:"path"`
	CacheSize int64  `toml:"cache_size" mapstructure:"cache_size"`
	// StateCacheEntries bounds the decoded-entry LRU in front of the backend.
	StateCacheEntries int `toml:"state_cache_entries" mapstructure:"state_cache_entries"`
}

// EventsConfig selects the relational audit log.
type EventsConfig struct {
	Driver string `toml:"driver" mapstructure:"driver"`
	DSN    string `toml:"dsn" mapstructure:"dsn"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
}

// MarketplaceConfig holds fee and royalty settings served to the engine.
type MarketplaceConfig struct {
	Treasury       string        `toml:"treasury" mapstructure:"treasury"`
	DefaultFee     string        `toml:"default_fee" mapstructure:"default_fee"`
	MaxDuration    time.Duration `toml:"max_duration" mapstructure:"max_duration"`
	Hash           string        `toml:"hash" mapstructure:"hash"`
	LegacySFTToken string        `toml:"legacy_sft_token" mapstructure:"legacy_sft_token"`
	Tokens         []TokenConfig `toml:"tokens" mapstructure:"tokens"`
}

// TokenConfig describes one rentable token contract.
type TokenConfig struct {
	Address           string   `toml:"address" mapstructure:"address"`
	Kind              string   `toml:"kind" mapstructure:"kind"`
	Fee               string   `toml:"fee" mapstructure:"fee"`
	RoyaltyCreator    string   `toml:"royalty_creator" mapstructure:"royalty_creator"`
	RoyaltyPercentage string   `toml:"royalty_percentage" mapstructure:"royalty_percentage"`
	RoyaltyTreasury   string   `toml:"royalty_treasury" mapstructure:"royalty_treasury"`
	TrustedFeeTokens  []string `toml:"trusted_fee_tokens" mapstructure:"trusted_fee_tokens"`
}

// StandaloneConfig seeds the in-process token ledger and registries used when
// no external chain is attached.
type StandaloneConfig struct {
	Balances []BalanceConfig `toml:"balances" mapstructure:"balances"`
	NFTs     []NFTConfig     `toml:"nfts" mapstructure:"nfts"`
	SFTs     []SFTConfig     `toml:"sfts" mapstructure:"sfts"`
}

type BalanceConfig struct {
	FeeToken string `toml:"fee_token" mapstructure:"fee_token"`
	Account  string `toml:"account" mapstructure:"account"`
	Amount   uint64 `toml:"amount" mapstructure:"amount"`
}

type NFTConfig struct {
	Token string `toml:"token" mapstructure:"token"`
	ID    uint64 `toml:"id" mapstructure:"id"`
	Owner string `toml:"owner" mapstructure:"owner"`
}

type SFTConfig struct {
	Token  string `toml:"token" mapstructure:"token"`
	ID     uint64 `toml:"id" mapstructure:"id"`
	Owner  string `toml:"owner" mapstructure:"owner"`
	Amount uint64 `toml:"amount" mapstructure:"amount"`
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return "rentald.toml"
}

// ConfigPathFromDir returns the configuration path inside a directory
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, "rentald.toml")
}

// GetConfigPath returns the path to the main configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}
