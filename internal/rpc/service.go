package rpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Service is the HTTP front of the daemon: JSON-RPC on / and /rpc, the
// WebSocket stream on /ws and a liveness probe on /health.
type Service struct {
	server     *Server
	hub        *Hub
	httpServer *http.Server
	logger     *zap.Logger
}

// NewService wires the RPC server and WebSocket hub behind one router.
// The hub must be added to the engine as an event sink by the caller.
func NewService(cfg config.ServerConfig, services *Services, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	auth := NewAuthenticator(AuthConfig{
		RequireSignatures: cfg.RequireSignatures,
		SignatureWindow:   cfg.SignatureWindow,
		ReplayCacheSize:   cfg.ReplayCacheSize,
		Clock:             services.Clock,
	})
	server := NewServer(services, auth, cfg.RPCTimeout, logger)
	hub := NewHub(server, cfg.CORSOrigins, logger)

	router := mux.NewRouter()
	router.Handle("/", server).Methods(http.MethodPost)
	router.Handle("/rpc", server).Methods(http.MethodPost, http.MethodGet)
	router.Handle("/ws", hub)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	return &Service{
		server: server,
		hub:    hub,
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.Named("service"),
	}
}

// Handler returns the routed HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.httpServer.Handler
}

// Hub returns the WebSocket hub.
func (s *Service) Hub() *Hub {
	return s.hub
}

// Server returns the JSON-RPC server.
func (s *Service) Server() *Server {
	return s.server
}

// Run listens on the configured address and serves until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("address", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.hub.Close()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("stopped")
		return nil
	})

	return g.Wait()
}
