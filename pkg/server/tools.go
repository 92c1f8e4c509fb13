package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyon-health/oura-mcp-server/pkg/observability"
	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
	"github.com/halcyon-health/oura-mcp-server/pkg/reduce"
)

// callToolParams is the tools/call request payload.
type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolCall(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params callToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorf(req, protocol.NewInvalidParamsError(fmt.Sprintf("invalid tools/call params: %s", err)))
		}
	}
	if params.Name == "" {
		return errorf(req, protocol.NewInvalidParamsError("tool name is required"))
	}

	return protocol.NewResponse(req.ID, s.callTool(ctx, params.Name, params.Arguments))
}

// callTool dispatches one tool invocation. The switch is closed over the
// tool catalog: adding a tool means adding a case, checked at compile time
// against the handler it calls.
//
// Failures never escape this boundary. Unknown names, upstream errors, and
// handler panics all come back as error-flagged results on a successful
// envelope.
func (s *Server) callTool(ctx context.Context, name string, args map[string]any) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(fmt.Errorf("internal error: %v", r))
		}
		status := "ok"
		if result.IsError {
			status = "error"
		}
		observability.ToolCallsTotal.WithLabelValues(name, status).Inc()
	}()

	rng := dateRangeFromArgs(args)

	switch name {
	case ToolSleepData:
		resp, err := s.upstream.Sleep(ctx, rng)
		if err != nil {
			return errorResult(err)
		}
		return marshalResult(reduce.Sleep(resp))

	case ToolActivityData:
		resp, err := s.upstream.DailyActivity(ctx, rng)
		if err != nil {
			return errorResult(err)
		}
		return marshalResult(reduce.Activity(resp))

	case ToolReadinessData:
		resp, err := s.upstream.DailyReadiness(ctx, rng)
		if err != nil {
			return errorResult(err)
		}
		return marshalResult(reduce.Readiness(resp))

	case ToolHeartRateData:
		resp, err := s.upstream.HeartRate(ctx, rng)
		if err != nil {
			return errorResult(err)
		}
		return marshalResult(reduce.HeartRate(resp))

	case ToolWorkoutData:
		resp, err := s.upstream.Workouts(ctx, rng)
		if err != nil {
			return errorResult(err)
		}
		return marshalResult(reduce.Workouts(resp))

	default:
		return errorResult(fmt.Errorf("Unknown tool: %s", name))
	}
}

// marshalResult serializes a reduced payload as the textual content of a
// successful tool result.
func marshalResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Errorf("encoding result: %s", err))
	}
	return textResult(string(data))
}

// dateRangeFromArgs coerces the argument mapping into a DateRange. All
// fields are optional; unknown keys and non-string values are ignored.
func dateRangeFromArgs(args map[string]any) oura.DateRange {
	var rng oura.DateRange
	if v, ok := args["start_date"].(string); ok {
		rng.StartDate = v
	}
	if v, ok := args["end_date"].(string); ok {
		rng.EndDate = v
	}
	return rng
}
