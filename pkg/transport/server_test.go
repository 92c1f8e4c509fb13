package transport

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/halcyon-health/oura-mcp-server/pkg/server"
)

func newLifecycleServer(t *testing.T, opts ...ServerOption) (*Server, string) {
	t.Helper()
	registry := NewRegistry()
	factory := func() *server.Server { return server.New(stubUpstream{}) }
	h := NewHandler(registry, factory, quietLogger())

	srv := NewServer(h, append([]ServerOption{
		WithAddr("127.0.0.1:0"),
		WithServerLogger(quietLogger()),
	}, opts...)...)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	return srv, "http://" + ln.Addr().String()
}

func TestServerStartsAndAcceptsRequests(t *testing.T) {
	srv, base := newLifecycleServer(t)
	defer shutdownServer(t, srv)

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["service"] != server.ServiceName {
		t.Errorf("service = %q, want %q", body["service"], server.ServiceName)
	}
}

func TestServerAppliesMiddleware(t *testing.T) {
	srv, base := newLifecycleServer(t)
	defer shutdownServer(t, srv)

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("request id middleware not applied")
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("cors middleware not applied")
	}
}

func TestServerShutdownClosesStreams(t *testing.T) {
	srv, base := newLifecycleServer(t, WithShutdownTimeout(2*time.Second))

	resp, err := http.Get(base + "/sse")
	if err != nil {
		t.Fatalf("opening stream: %v", err)
	}
	defer resp.Body.Close()

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown(contextWithTimeout(t, 3*time.Second)) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Shutdown() error: %v", err)
		}
	case <-time.After(4 * time.Second):
		t.Fatal("shutdown blocked on open stream")
	}
}

func TestServerFunctionalOptions(t *testing.T) {
	registry := NewRegistry()
	h := NewHandler(registry, func() *server.Server { return server.New(stubUpstream{}) }, quietLogger())

	srv := NewServer(h,
		WithAddr(":9999"),
		WithReadTimeout(5*time.Second),
		WithShutdownTimeout(10*time.Second),
	)

	if srv.config.Addr != ":9999" {
		t.Errorf("addr = %q, want %q", srv.config.Addr, ":9999")
	}
	if srv.config.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want %v", srv.config.ReadTimeout, 5*time.Second)
	}
	if srv.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want %v", srv.config.ShutdownTimeout, 10*time.Second)
	}
}

func shutdownServer(t *testing.T, srv *Server) {
	t.Helper()
	if err := srv.Shutdown(contextWithTimeout(t, 5*time.Second)); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}

func contextWithTimeout(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
