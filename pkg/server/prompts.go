package server

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyon-health/oura-mcp-server/pkg/prompts"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
)

// getPromptParams is the prompts/get request payload.
type getPromptParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

func (s *Server) handleGetPrompt(req *protocol.Request) *protocol.Response {
	var params getPromptParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorf(req, protocol.NewInvalidParamsError(fmt.Sprintf("invalid prompts/get params: %s", err)))
		}
	}

	var text string
	switch params.Name {
	case PromptAnalyzeSleepTrends:
		text = prompts.AnalyzeSleepTrends(s.now(), params.Arguments["days"])
	case PromptDailyHealthSummary:
		text = prompts.DailyHealthSummary(s.now(), params.Arguments["date"])
	default:
		return errorf(req, protocol.NewInvalidParamsError(fmt.Sprintf("Unknown prompt: %s", params.Name)))
	}

	return protocol.NewResponse(req.ID, &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	})
}
