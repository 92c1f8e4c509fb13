package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
	"github.com/halcyon-health/oura-mcp-server/pkg/reduce"
)

// readResourceParams is the resources/read request payload.
type readResourceParams struct {
	URI string `json:"uri"`
}

// handleReadResource resolves a catalog URI to a live value. Unlike tool
// invocation, failures here fail the envelope itself: unknown URIs and
// upstream errors surface as protocol errors, not error-flagged content.
func (s *Server) handleReadResource(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params readResourceParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorf(req, protocol.NewInvalidParamsError(fmt.Sprintf("invalid resources/read params: %s", err)))
		}
	}

	var (
		record any
		err    error
	)

	switch params.URI {
	case ResourceSleepLatest:
		// The API returns most recent first; the head of an unbounded
		// query is the latest session.
		var resp *oura.SleepResponse
		resp, err = s.upstream.Sleep(ctx, oura.DateRange{})
		if err == nil {
			if reduced := reduce.Sleep(resp); len(reduced.Data) > 0 {
				record = reduced.Data[0]
			}
		}

	case ResourceActivityToday:
		today := s.now().Format("2006-01-02")
		var resp *oura.ActivityResponse
		resp, err = s.upstream.DailyActivity(ctx, oura.DateRange{StartDate: today, EndDate: today})
		if err == nil {
			if reduced := reduce.Activity(resp); len(reduced.Data) > 0 {
				record = reduced.Data[0]
			}
		}

	default:
		return errorf(req, &protocol.Error{
			Code:    protocol.CodeResourceNotFound,
			Message: fmt.Sprintf("Unknown resource: %s", params.URI),
		})
	}

	if err != nil {
		return errorf(req, protocol.NewInternalError(fmt.Sprintf("Failed to read resource: %s", err)))
	}

	// A missing record serializes as JSON null, matching the catalog's
	// "most recent or nothing" contract.
	text, err := json.Marshal(record)
	if err != nil {
		return errorf(req, protocol.NewInternalError(fmt.Sprintf("Failed to read resource: %s", err)))
	}

	return protocol.NewResponse(req.ID, &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      params.URI,
				MIMEType: "application/json",
				Text:     string(text),
			},
		},
	})
}
