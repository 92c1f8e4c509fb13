// Package transport implements the split-endpoint HTTP frontend: a
// long-lived SSE connection per session for server-to-client delivery,
// and an independent message endpoint for client-to-server calls tagged
// with a session ID. The two sides are correlated through the Registry.
package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/halcyon-health/oura-mcp-server/pkg/debug"
	"github.com/halcyon-health/oura-mcp-server/pkg/observability"
	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
	"github.com/halcyon-health/oura-mcp-server/pkg/server"
)

// maxMessageBytes bounds the message endpoint request body.
const maxMessageBytes = 1 << 20 // 1 MB

// ServerFactory builds a fresh ProtocolServer for a new session. Each
// session gets its own instance carrying its own upstream client.
type ServerFactory func() *server.Server

// Handler is the HTTP frontend. It owns the session registry and mints a
// session per streaming connection.
type Handler struct {
	registry  *Registry
	newServer ServerFactory
	logger    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(registry *Registry, factory ServerFactory, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry:  registry,
		newServer: factory,
		logger:    logger,
	}
}

// Routes returns the mux with the three public endpoints.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sse", h.handleSSE)
	mux.HandleFunc("POST /message", h.handleMessage)
	mux.HandleFunc("GET /health", h.handleHealth)
	return mux
}

// handleSSE opens the streaming side of a session. It mints the session
// ID, binds a fresh ProtocolServer, registers the stream, announces the
// message endpoint to the client, and then relays response frames until
// the connection closes. The session is unregistered exactly once, the
// moment the connection ends.
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	id := generateSessionID()
	stream := newStream(id, h.newServer())

	if err := h.registry.Register(id, stream); err != nil {
		h.logger.Error("session registration failed", slog.String("session_id", id), slog.String("error", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	observability.ActiveSessions.Inc()
	defer func() {
		h.registry.Unregister(id)
		stream.Close()
		observability.ActiveSessions.Dec()
		h.logger.Info("session closed", slog.String("session_id", id))
	}()

	h.logger.Info("session opened", slog.String("session_id", id))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	rc := http.NewResponseController(w)

	// The handshake frame tells the client where to post calls for this
	// session.
	fmt.Fprintf(w, "event: endpoint\ndata: /message?sessionId=%s\n\n", id)
	if err := rc.Flush(); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stream.Done():
			return
		case resp := <-stream.Events():
			data, err := json.Marshal(resp)
			if err != nil {
				h.logger.Error("encoding response frame", slog.String("session_id", id), slog.String("error", err.Error()))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// handleMessage accepts one client-to-server call and forwards it to the
// session's stream. The response travels back over the SSE connection,
// not this one; a 202 acknowledges receipt only.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing sessionId")
		return
	}

	stream, err := h.registry.Lookup(sessionID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Session not found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to read request")
		return
	}

	req, err := protocol.DecodeRequest(body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON-RPC message")
		return
	}

	observability.MessagesTotal.WithLabelValues(req.Method).Inc()
	debug.Log("protocol", "message accepted", "session_id", sessionID, "method", req.Method)
	debug.Raw("protocol", string(body))

	// Dispatch on the stream's own context, not the request context:
	// this request completes immediately while the call runs.
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("dispatch panic", slog.String("session_id", sessionID), slog.Any("panic", rec))
			}
		}()
		stream.Dispatch(req)
	}()

	w.WriteHeader(http.StatusAccepted)
}

// handleHealth reports liveness. No auth, always 200.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": server.ServiceName,
	})
}

// writeJSONError writes the transport error shape {"error": message}.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
