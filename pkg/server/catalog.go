package server

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Tool, resource, and prompt names form the fixed protocol surface. The
// catalogs are built once at process start and never mutated.
const (
	ToolSleepData     = "get_sleep_data"
	ToolActivityData  = "get_activity_data"
	ToolReadinessData = "get_readiness_data"
	ToolHeartRateData = "get_heart_rate_data"
	ToolWorkoutData   = "get_workout_data"

	ResourceSleepLatest   = "oura://sleep/latest"
	ResourceActivityToday = "oura://activity/today"

	PromptAnalyzeSleepTrends = "analyze_sleep_trends"
	PromptDailyHealthSummary = "daily_health_summary"
)

// dateRangeSchema is the shared input contract for all data tools: two
// optional ISO date strings.
func dateRangeSchema(startDesc, endDesc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"start_date": map[string]any{
				"type":        "string",
				"description": startDesc,
			},
			"end_date": map[string]any{
				"type":        "string",
				"description": endDesc,
			},
		},
	}
}

func toolCatalog() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        ToolSleepData,
			Description: "Get sleep data from Oura Ring. Returns detailed sleep metrics including sleep stages, efficiency, and heart rate.",
			InputSchema: dateRangeSchema(
				"Start date in YYYY-MM-DD format (optional, defaults to last 7 days)",
				"End date in YYYY-MM-DD format (optional, defaults to today)",
			),
		},
		{
			Name:        ToolActivityData,
			Description: "Get daily activity data including steps, calories, active time, and movement metrics.",
			InputSchema: dateRangeSchema(
				"Start date in YYYY-MM-DD format (optional)",
				"End date in YYYY-MM-DD format (optional)",
			),
		},
		{
			Name:        ToolReadinessData,
			Description: "Get daily readiness scores and contributing factors (sleep, activity balance, body temperature, etc.)",
			InputSchema: dateRangeSchema(
				"Start date in YYYY-MM-DD format (optional)",
				"End date in YYYY-MM-DD format (optional)",
			),
		},
		{
			Name:        ToolHeartRateData,
			Description: "Get heart rate data throughout the day",
			InputSchema: dateRangeSchema(
				"Start date in YYYY-MM-DD format (optional)",
				"End date in YYYY-MM-DD format (optional)",
			),
		},
		{
			Name:        ToolWorkoutData,
			Description: "Get workout and exercise session data",
			InputSchema: dateRangeSchema(
				"Start date in YYYY-MM-DD format (optional)",
				"End date in YYYY-MM-DD format (optional)",
			),
		},
	}
}

func resourceCatalog() []*mcp.Resource {
	return []*mcp.Resource{
		{
			URI:         ResourceSleepLatest,
			Name:        "Latest Sleep Data",
			Description: "Most recent sleep session data",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceActivityToday,
			Name:        "Today's Activity",
			Description: "Activity data for today",
			MIMEType:    "application/json",
		},
	}
}

func promptCatalog() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        PromptAnalyzeSleepTrends,
			Description: "Analyze sleep trends and provide recommendations for improvement",
			Arguments: []*mcp.PromptArgument{
				{
					Name:        "days",
					Description: "Number of days to analyze (default: 7)",
					Required:    false,
				},
			},
		},
		{
			Name:        PromptDailyHealthSummary,
			Description: "Generate a comprehensive daily health summary from all metrics",
			Arguments: []*mcp.PromptArgument{
				{
					Name:        "date",
					Description: "Date to summarize (YYYY-MM-DD, default: today)",
					Required:    false,
				},
			},
		},
	}
}
