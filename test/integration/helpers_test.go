// Package integration provides integration tests for the Oura MCP server.
//
// Tests run against the real transport stack backed by a mock Oura API,
// both started in-process using net/http/httptest.
package integration

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
	"github.com/halcyon-health/oura-mcp-server/pkg/server"
	"github.com/halcyon-health/oura-mcp-server/pkg/transport"
)

// testEnv holds the shared servers for all integration tests.
var testEnv *TestEnvironment

// TestEnvironment holds the MCP server and mock Oura backend for testing.
type TestEnvironment struct {
	MCPServer   *httptest.Server
	OuraBackend *httptest.Server
	Registry    *transport.Registry
}

// TestMain starts the mock backend and MCP server before running tests.
func TestMain(m *testing.M) {
	testEnv = setupTestEnvironment()
	code := m.Run()
	testEnv.Teardown()
	os.Exit(code)
}

// setupTestEnvironment creates a mock Oura API and an MCP server wired to it.
func setupTestEnvironment() *TestEnvironment {
	backend := startMockOura()

	registry := transport.NewRegistry()
	factory := func() *server.Server {
		return server.New(oura.NewClient("test-token", oura.WithBaseURL(backend.URL)))
	}
	handler := transport.NewHandler(registry, factory,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &TestEnvironment{
		MCPServer:   httptest.NewServer(handler.Routes()),
		OuraBackend: backend,
		Registry:    registry,
	}
}

// Teardown shuts down both servers.
func (e *TestEnvironment) Teardown() {
	e.MCPServer.Close()
	e.OuraBackend.Close()
}

// BaseURL returns the MCP server base URL.
func (e *TestEnvironment) BaseURL() string {
	return e.MCPServer.URL
}

// startMockOura serves canned Oura API v2 envelopes. Requests without the
// expected bearer token get a 401 so auth propagation is testable.
func startMockOura() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/sleep", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fmt.Fprint(w, `{"data":[
			{"day":"2026-01-10","bedtime_start":"2026-01-09T23:10:00+00:00","bedtime_end":"2026-01-10T07:05:00+00:00",
			 "total_sleep_duration":26100,"deep_sleep_duration":5400,"rem_sleep_duration":6300,
			 "light_sleep_duration":14400,"awake_time":2400,"efficiency":92,"latency":480,
			 "sleep_phase_5_min":"443322211","average_heart_rate":54.5,"lowest_heart_rate":48,
			 "average_hrv":62.0,"id":"sleep-internal-1","time_in_bed":28500}
		]}`)
	})
	mux.HandleFunc("/daily_activity", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fmt.Fprint(w, `{"data":[
			{"day":"2026-01-10","score":81,"steps":9500,"active_calories":420,"total_calories":2400,
			 "high_activity_time":600,"medium_activity_time":1800,"low_activity_time":7200,
			 "sedentary_time":28800,"resting_time":30000}
		]}`)
	})
	mux.HandleFunc("/daily_readiness", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fmt.Fprint(w, `{"data":[{"day":"2026-01-10","score":77,"temperature_deviation":-0.1,
			"temperature_trend_deviation":0.0,"contributors":{"hrv_balance":80,"previous_night":72}}]}`)
	})
	mux.HandleFunc("/heartrate", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fmt.Fprint(w, `{"data":[
			{"bpm":50,"source":"sleep","timestamp":"2026-01-10T02:00:00+00:00"},
			{"bpm":64,"source":"awake","timestamp":"2026-01-10T09:00:00+00:00"},
			{"bpm":90,"source":"workout","timestamp":"2026-01-10T18:00:00+00:00"}
		]}`)
	})
	mux.HandleFunc("/workout", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fmt.Fprint(w, `{"data":[{"day":"2026-01-09","activity":"running","calories":450.0,"distance":5200.0,
			"start_datetime":"2026-01-09T17:30:00+00:00","end_datetime":"2026-01-09T18:10:00+00:00","intensity":"hard"}]}`)
	})
	return httptest.NewServer(mux)
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

// session is an open MCP session: the SSE stream plus its message endpoint.
type session struct {
	t        *testing.T
	endpoint string
	scanner  *bufio.Scanner
	body     io.Closer
}

// openSession connects to the stream endpoint and consumes the handshake.
func openSession(t *testing.T) *session {
	t.Helper()
	resp, err := http.Get(testEnv.BaseURL() + "/sse")
	if err != nil {
		t.Fatalf("opening stream: %v", err)
	}
	s := &session{t: t, scanner: bufio.NewScanner(resp.Body), body: resp.Body}
	t.Cleanup(func() { resp.Body.Close() })

	event, data := s.nextEvent()
	if event != "endpoint" {
		t.Fatalf("handshake event = %q, want endpoint", event)
	}
	s.endpoint = data
	return s
}

// call posts one JSON-RPC request and returns the correlated response frame.
func (s *session) call(id int, method, params string) *protocol.Response {
	s.t.Helper()
	body := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"%s"`, id, method)
	if params != "" {
		body += `,"params":` + params
	}
	body += `}`

	resp, err := http.Post(testEnv.BaseURL()+s.endpoint, "application/json", strings.NewReader(body))
	if err != nil {
		s.t.Fatalf("posting %s: %v", method, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		s.t.Fatalf("%s status = %d, want 202", method, resp.StatusCode)
	}

	event, data := s.nextEvent()
	if event != "message" {
		s.t.Fatalf("event = %q, want message", event)
	}
	var frame protocol.Response
	if err := json.Unmarshal([]byte(data), &frame); err != nil {
		s.t.Fatalf("decoding frame %q: %v", data, err)
	}
	if string(frame.ID) != fmt.Sprint(id) {
		s.t.Fatalf("frame id = %s, want %d", frame.ID, id)
	}
	return &frame
}

// nextEvent reads one SSE frame from the stream.
func (s *session) nextEvent() (string, string) {
	s.t.Helper()
	var event, data string
	for s.scanner.Scan() {
		line := s.scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if event != "" || data != "" {
				return event, data
			}
		}
	}
	s.t.Fatalf("stream ended: %v", s.scanner.Err())
	return "", ""
}

// resultJSON re-marshals a response result for string inspection.
func resultJSON(t *testing.T, frame *protocol.Response) string {
	t.Helper()
	if frame.Error != nil {
		t.Fatalf("unexpected error frame: %v", frame.Error)
	}
	data, err := json.Marshal(frame.Result)
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	return string(data)
}

// getURL performs a GET and fails the test on transport errors.
func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

// readBody reads and returns the full response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}
