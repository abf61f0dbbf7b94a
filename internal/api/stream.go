package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sisexpo/pkg/logger"
	"sisexpo/pkg/models"
)

const (
	streamReconnectDelay = 5 * time.Second
	streamReadLimit      = 4096
)

// NotificationStream delivers live notification events over a WebSocket.
// Reads from a stale connection are discarded via a generation counter that
// increments on every (re)connect, the same way a reconnecting chat client
// ignores reads from its previous socket.
type NotificationStream struct {
	url       string
	transport *Transport

	mu     sync.Mutex
	conn   *websocket.Conn
	gen    int64
	closed bool

	events chan models.NotificationEvent
}

// NewNotificationStream prepares a stream against the given ws:// or wss:// URL.
func NewNotificationStream(url string, transport *Transport) *NotificationStream {
	return &NotificationStream{
		url:       url,
		transport: transport,
		events:    make(chan models.NotificationEvent, 16),
	}
}

// Events returns the channel live events are delivered on. The channel is
// closed when the stream is closed.
func (s *NotificationStream) Events() <-chan models.NotificationEvent {
	return s.events
}

// Run connects and keeps reading until ctx is cancelled or Close is called,
// reconnecting after a fixed delay on failure. It blocks; run it in a
// goroutine.
func (s *NotificationStream) Run(ctx context.Context) {
	defer close(s.events)

	for {
		if err := s.connect(ctx); err != nil {
			logger.Stream("connect failed", map[string]interface{}{"error": err.Error()})
		} else {
			s.readLoop(ctx)
		}

		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(streamReconnectDelay):
		}
	}
}

func (s *NotificationStream) connect(ctx context.Context) error {
	header := http.Header{}
	if token := s.transport.AccessToken(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return err
	}
	conn.SetReadLimit(streamReadLimit)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.gen++
	s.mu.Unlock()

	logger.Stream("connected", nil)
	return nil
}

func (s *NotificationStream) readLoop(ctx context.Context) {
	s.mu.Lock()
	conn := s.conn
	myGen := s.gen
	s.mu.Unlock()
	if conn == nil {
		return
	}

	// ReadJSON only unblocks when the socket closes, so cancellation has to
	// close it from the side.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-watchDone:
		}
	}()

	for {
		var event models.NotificationEvent
		if err := conn.ReadJSON(&event); err != nil {
			s.mu.Lock()
			stale := myGen != s.gen
			s.mu.Unlock()
			if !stale {
				logger.Stream("disconnected", map[string]interface{}{"error": err.Error()})
			}
			return
		}

		s.mu.Lock()
		stale := myGen != s.gen || s.closed
		s.mu.Unlock()
		if stale {
			return
		}
		if event.Type == "ping" {
			continue
		}

		select {
		case s.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

// Close tears the stream down. Idempotent.
func (s *NotificationStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
