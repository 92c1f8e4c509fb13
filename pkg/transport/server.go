package transport

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halcyon-health/oura-mcp-server/pkg/observability"
)

// Server wraps an http.Server around the session handler and manages
// the full lifecycle including startup and graceful shutdown.
type Server struct {
	httpServer *http.Server
	handler    *Handler
	config     ServerConfig
	logger     *slog.Logger
}

// ServerConfig holds configuration for the transport server.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsPath     string
	MetricsHandler  http.Handler
	Logger          *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":3000",
		ReadTimeout:     30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Logger:          slog.Default(),
	}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.config.Addr = addr }
}

// WithReadTimeout sets the request read deadline. Write deadlines are
// deliberately unset: the streaming endpoint holds its response open for
// the session's lifetime.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.config.ReadTimeout = d }
}

// WithShutdownTimeout sets the graceful shutdown deadline.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.config.ShutdownTimeout = d }
}

// WithMetricsEndpoint mounts a metrics handler at the given path.
func WithMetricsEndpoint(path string, h http.Handler) ServerOption {
	return func(s *Server) {
		s.config.MetricsPath = path
		s.config.MetricsHandler = h
	}
}

// WithServerLogger sets the structured logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.config.Logger = l; s.logger = l }
}

// NewServer creates a transport server around the given session handler.
// Default middleware (recovery, request ID, logging, metrics, CORS) is
// applied automatically.
func NewServer(handler *Handler, opts ...ServerOption) *Server {
	s := &Server{
		handler: handler,
		config:  DefaultServerConfig(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	mux := handler.Routes()
	if s.config.MetricsPath != "" && s.config.MetricsHandler != nil {
		mux.Handle("GET "+s.config.MetricsPath, s.config.MetricsHandler)
	}

	chain := Chain(
		Recovery(s.logger),
		RequestID(),
		Logging(s.logger),
		CORS(),
		observability.MetricsMiddleware,
	)

	s.httpServer = &http.Server{
		Addr:        s.config.Addr,
		Handler:     chain(mux),
		ReadTimeout: s.config.ReadTimeout,
	}

	return s
}

// ListenAndServe starts the server and blocks until a shutdown signal
// (SIGINT or SIGTERM) is received. It then gracefully shuts down,
// waiting for in-flight requests to complete within the configured timeout.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.config.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	return s.shutdown()
}

// ServeOn starts the server on the given listener. Used for testing.
func (s *Server) ServeOn(ln net.Listener) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down gracefully", slog.Duration("timeout", s.config.ShutdownTimeout))

	// Open streams hold their handlers until the client disconnects;
	// close them so Shutdown can drain.
	s.handler.registry.CloseAll()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Shutdown gracefully shuts down the server with the given context,
// closing any open streams so their handlers can drain.
func (s *Server) Shutdown(ctx context.Context) error {
	s.handler.registry.CloseAll()
	return s.httpServer.Shutdown(ctx)
}
