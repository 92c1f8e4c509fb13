// Command server runs the Oura MCP server: an MCP endpoint exposing Oura
// Ring health data as tools, resources, and prompts over SSE.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (OURA_MCP_CONFIG or ./config.yaml), then environment variables.
//
//	OURA_PERSONAL_ACCESS_TOKEN - Oura API token (required)
//	PORT                       - Listen port (default: 3000)
//	OURA_MCP_LOG_LEVEL         - Log level (default: INFO)
//	OURA_MCP_DEBUG             - Debug categories (e.g. "upstream,protocol")
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halcyon-health/oura-mcp-server/pkg/config"
	"github.com/halcyon-health/oura-mcp-server/pkg/debug"
	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
	"github.com/halcyon-health/oura-mcp-server/pkg/server"
	"github.com/halcyon-health/oura-mcp-server/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init("", cfg.Log.Level, cfg.Log.JSON)
	logger := slog.Default()

	// Each streaming connection gets its own protocol server instance
	// bound to its own upstream client.
	clientOpts := ouraOptions(cfg)
	factory := func() *server.Server {
		return server.New(oura.NewClient(cfg.Oura.Token, clientOpts...))
	}

	registry := transport.NewRegistry()
	handler := transport.NewHandler(registry, factory, logger)

	opts := []transport.ServerOption{
		transport.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transport.WithReadTimeout(cfg.Server.ReadTimeout),
		transport.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transport.WithServerLogger(logger),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts, transport.WithMetricsEndpoint(cfg.Observability.Metrics.Path, promhttp.Handler()))
	}

	srv := transport.NewServer(handler, opts...)

	logger.Info("starting",
		slog.String("service", server.ServiceName),
		slog.Int("port", cfg.Server.Port),
		slog.Bool("metrics", cfg.Observability.Metrics.Enabled),
	)
	return srv.ListenAndServe()
}

func ouraOptions(cfg *config.Config) []oura.Option {
	var opts []oura.Option
	if cfg.Oura.BaseURL != "" {
		opts = append(opts, oura.WithBaseURL(cfg.Oura.BaseURL))
	}
	if cfg.Oura.Timeout > 0 {
		opts = append(opts, oura.WithTimeout(cfg.Oura.Timeout))
	}
	return opts
}
