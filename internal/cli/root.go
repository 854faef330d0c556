package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	envFile    string
	debug      bool
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rentald",
	Short: "rentald - role rental marketplace daemon",
	Long: `rentald runs a marketplace where owners of NFTs and SFTs lease on-chain
roles to borrowers for a bounded time. It serves signed JSON-RPC and
WebSocket requests, keeps offer and rental state in a local key-value
store and records every marketplace event in an SQL audit log.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (default: ./rentald.toml when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with RENTALD_ overrides")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}

// initConfig loads the dotenv file so its variables take part in the
// RENTALD_ environment overrides. Variables already set win.
func initConfig() {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", envFile, err)
	}
}

// loadConfig reads --conf, falling back to rentald.toml in the working
// directory and then to built-in defaults.
func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigPath()); err == nil {
			path = config.DefaultConfigPath()
		}
	}
	if path == "" {
		return config.LoadDefaults()
	}
	return config.LoadConfig(path)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	return logging.New(level, cfg.Logging.Format)
}
