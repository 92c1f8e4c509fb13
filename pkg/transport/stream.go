package transport

import (
	"context"
	"sync"
	"time"

	"github.com/halcyon-health/oura-mcp-server/pkg/protocol"
	"github.com/halcyon-health/oura-mcp-server/pkg/server"
)

// streamBufferSize bounds how many undelivered responses a session can
// queue before Deliver blocks. A well-behaved client drains its SSE
// connection continuously, so the buffer only absorbs short stalls.
const streamBufferSize = 16

// Stream is the transport handle for one session: the write side of its
// SSE connection plus the ProtocolServer bound to it for its lifetime.
type Stream struct {
	id        string
	srv       *server.Server
	createdAt time.Time

	// ctx outlives individual post-call requests; in-flight handler work
	// is tied to it and cancelled when the stream closes.
	ctx    context.Context
	cancel context.CancelFunc

	events    chan *protocol.Response
	closed    chan struct{}
	closeOnce sync.Once
}

// newStream creates a Stream bound to a fresh ProtocolServer.
func newStream(id string, srv *server.Server) *Stream {
	ctx, cancel := context.WithCancel(context.Background())
	return &Stream{
		id:        id,
		srv:       srv,
		createdAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan *protocol.Response, streamBufferSize),
		closed:    make(chan struct{}),
	}
}

// ID returns the opaque session identifier.
func (s *Stream) ID() string {
	return s.id
}

// Dispatch runs one protocol request on the session's server and queues
// the response for SSE delivery. It is called from its own goroutine per
// request, so slow upstream calls block neither the message endpoint nor
// other sessions. Results for a closed stream are silently discarded.
func (s *Stream) Dispatch(req *protocol.Request) {
	resp := s.srv.Handle(s.ctx, req)
	if resp == nil {
		// Notification: acknowledged, nothing to deliver.
		return
	}
	s.deliver(resp)
}

func (s *Stream) deliver(resp *protocol.Response) {
	select {
	case s.events <- resp:
	case <-s.closed:
	}
}

// Events exposes the delivery channel for the SSE writer.
func (s *Stream) Events() <-chan *protocol.Response {
	return s.events
}

// Done is closed when the stream has shut down.
func (s *Stream) Done() <-chan struct{} {
	return s.closed
}

// Close shuts the stream down exactly once, cancelling any in-flight
// dispatches.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.closed)
	})
}
