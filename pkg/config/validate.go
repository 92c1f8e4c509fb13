package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// oura.token is required: the server is useless without upstream
	// credentials, so fail at startup rather than on the first tool call.
	if c.Oura.Token == "" {
		errs = append(errs, fmt.Errorf("oura.token is required (set OURA_PERSONAL_ACCESS_TOKEN)"))
	}

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// log.level must be a value debug.ParseLevel understands, in any case
	// (OURA_MCP_LOG_LEVEL=TRACE is the documented spelling).
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of trace, debug, info, warn, error, got %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
