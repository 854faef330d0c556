package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LeJamon/goRentald/internal/di"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Server flags
	port     int
	bindAddr string
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the marketplace daemon",
	Long: `Start the rentald server which provides:
- HTTP JSON-RPC API endpoints
- WebSocket endpoint for method calls and the rental event stream
- Health check endpoint

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Set server as the default command
	rootCmd.RunE = runServer

	// Server-specific flags
	serverCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	serverCmd.Flags().StringVar(&bindAddr, "bind", "", "address to bind to (overrides server.bind)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if bindAddr != "" {
		cfg.Server.Bind = bindAddr
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	provider := di.NewProvider(di.New(), cfg, logger, rootCmd.Version)
	if err := provider.RegisterAll(); err != nil {
		return err
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	svc, err := provider.RPCService()
	if err != nil {
		return fmt.Errorf("assemble service: %w", err)
	}

	if !quiet {
		addr := cfg.Server.Address()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Starting rentald")
		fmt.Fprintf(out, "  - HTTP JSON-RPC: http://%s/rpc\n", addr)
		fmt.Fprintf(out, "  - WebSocket:     ws://%s/ws\n", addr)
		fmt.Fprintf(out, "  - Health Check:  http://%s/health\n", addr)
		fmt.Fprintf(out, "  - State backend: %s\n", cfg.Database.Backend)
		fmt.Fprintf(out, "  - Event log:     %s\n", cfg.Events.Driver)
	}
	logger.Info("starting rentald",
		zap.String("version", rootCmd.Version),
		zap.String("address", cfg.Server.Address()),
		zap.Bool("require_signatures", cfg.Server.RequireSignatures),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return svc.Run(ctx)
}
