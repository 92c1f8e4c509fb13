// Package server implements the per-session MCP protocol server: a closed
// dispatch over the protocol methods and the fixed tool/resource/prompt
// catalogs, backed by the Oura API client.
//
// Each streaming connection gets its own Server instance; a Server holds
// no state between calls, so concurrent calls on the same session are
// safe and independent.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
)

// ServiceName identifies this server in the MCP handshake and the health
// check payload.
const ServiceName = "oura-mcp-server"

const (
	serviceVersion  = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Upstream is the slice of the Oura client the server depends on.
// *oura.Client satisfies it; tests substitute fakes.
type Upstream interface {
	Sleep(ctx context.Context, r oura.DateRange) (*oura.SleepResponse, error)
	DailyActivity(ctx context.Context, r oura.DateRange) (*oura.ActivityResponse, error)
	DailyReadiness(ctx context.Context, r oura.DateRange) (*oura.ReadinessResponse, error)
	HeartRate(ctx context.Context, r oura.DateRange) (*oura.HeartRateResponse, error)
	Workouts(ctx context.Context, r oura.DateRange) (*oura.WorkoutResponse, error)
}

// Server dispatches protocol requests for one session.
type Server struct {
	upstream Upstream
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source. Used by tests and prompt rendering.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server bound to the given upstream client.
func New(upstream Upstream, opts ...Option) *Server {
	s := &Server{
		upstream: upstream,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// initializeResult is the handshake payload. Capability values are empty
// objects per the MCP wire format.
type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
	Prompts   struct{} `json:"prompts"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Handle processes one protocol request and returns the response to send,
// or nil for notifications, which are acknowledged by the transport but
// produce no response frame.
//
// Method dispatch is a closed switch: adding an operation means adding a
// case here, which the compiler and tests both see.
func (s *Server) Handle(ctx context.Context, req *protocol.Request) *protocol.Response {
	if req.IsNotification() {
		return nil
	}

	switch req.Method {
	case "initialize":
		return protocol.NewResponse(req.ID, initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo:      serverInfo{Name: ServiceName, Version: serviceVersion},
		})

	case "ping":
		return protocol.NewResponse(req.ID, struct{}{})

	case "tools/list":
		return protocol.NewResponse(req.ID, &mcp.ListToolsResult{Tools: toolCatalog()})

	case "tools/call":
		return s.handleToolCall(ctx, req)

	case "resources/list":
		return protocol.NewResponse(req.ID, &mcp.ListResourcesResult{Resources: resourceCatalog()})

	case "resources/read":
		return s.handleReadResource(ctx, req)

	case "prompts/list":
		return protocol.NewResponse(req.ID, &mcp.ListPromptsResult{Prompts: promptCatalog()})

	case "prompts/get":
		return s.handleGetPrompt(req)

	default:
		return &protocol.Response{
			JSONRPC: protocol.Version,
			ID:      req.ID,
			Error:   protocol.NewMethodNotFoundError(req.Method),
		}
	}
}

// errorf wraps a protocol.Error into a response for the given request.
func errorf(req *protocol.Request, perr *protocol.Error) *protocol.Response {
	return &protocol.Response{JSONRPC: protocol.Version, ID: req.ID, Error: perr}
}

// textResult wraps text content in a successful CallToolResult.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult encodes a failed invocation as a successful envelope whose
// content carries the error flag and a human-readable message. This is the
// invocation error convention: a text-only consumer still sees the failure.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %s", err.Error())}},
		IsError: true,
	}
}
