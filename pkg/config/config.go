// Package config provides unified configuration for the Oura MCP server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the Oura MCP server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Oura          OuraConfig          `yaml:"oura"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`                         // default: 3000
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`         // default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"` // default: 30s
}

// OuraConfig holds upstream API settings.
type OuraConfig struct {
	Token     string        `yaml:"token" env:"OURA_PERSONAL_ACCESS_TOKEN"`  // required
	TokenFile string        `yaml:"token_file" env:"OURA_TOKEN_FILE"`        // _file variant for token
	BaseURL   string        `yaml:"base_url" env:"OURA_BASE_URL"`            // default: Oura API v2
	Timeout   time.Duration `yaml:"timeout" env:"OURA_TIMEOUT"`              // default: 30s
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"` // default: true
	Path    string `yaml:"path" env:"METRICS_PATH"`       // default: "/metrics"
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"OURA_MCP_LOG_LEVEL"` // trace, debug, info, warn, error; default: info
	JSON  bool   `yaml:"json" env:"OURA_MCP_LOG_JSON"`   // default: false (text handler)
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Oura: OuraConfig{
			Timeout: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
