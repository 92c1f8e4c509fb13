// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the Oura MCP server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for wearable-API round
// trips, ranging from 10ms to 30s.
var APIBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oura_mcp_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oura_mcp_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: APIBuckets,
		},
		[]string{"path"},
	)

	// ActiveSessions tracks the number of open streaming sessions.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "oura_mcp_sessions_active",
			Help: "Active streaming sessions",
		},
	)

	// MessagesTotal counts protocol messages accepted on the message
	// endpoint, by protocol method.
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oura_mcp_messages_total",
			Help: "Protocol messages accepted",
		},
		[]string{"method"},
	)

	// ToolCallsTotal counts tool invocations by name and outcome.
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oura_mcp_tool_calls_total",
			Help: "Tool invocations",
		},
		[]string{"tool", "status"},
	)

	// UpstreamRequestsTotal counts calls to the Oura API by endpoint and
	// outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oura_mcp_upstream_requests_total",
			Help: "Oura API requests",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamLatency records Oura API round-trip latency in seconds.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oura_mcp_upstream_latency_seconds",
			Help:    "Oura API latency",
			Buckets: APIBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ActiveSessions,
		MessagesTotal,
		ToolCallsTotal,
		UpstreamRequestsTotal,
		UpstreamLatency,
	)
}
