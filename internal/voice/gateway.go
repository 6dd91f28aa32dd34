package voice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// control frames sent to the gateway
type controlMessage struct {
	Type string `json:"type"`
	*SessionConfig
}

// GatewayDialer opens sessions over a websocket connection to the voice platform gateway.
type GatewayDialer struct {
	URL    string
	Dialer *websocket.Dialer
	Logger *zap.Logger
}

func NewGatewayDialer(url string, logger *zap.Logger) *GatewayDialer {
	return &GatewayDialer{URL: url, Dialer: websocket.DefaultDialer, Logger: logger}
}

func (d *GatewayDialer) Open(h Handler) Session {
	return &GatewaySession{dialer: d, handler: h, done: make(chan struct{})}
}

type GatewaySession struct {
	dialer  *GatewayDialer
	handler Handler

	mu       sync.Mutex
	conn     *websocket.Conn
	stopping bool
	done     chan struct{}
}

// Start dials the gateway, sends the start frame and begins dispatching events.
func (s *GatewaySession) Start(ctx context.Context, token string, cfg *SessionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return errors.New("voice session already started")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := s.dialer.Dialer.DialContext(ctx, s.dialer.URL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("voice gateway dial failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("voice gateway dial failed: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(controlMessage{Type: "start", SessionConfig: cfg}); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send start frame: %w", err)
	}

	s.conn = conn
	go s.readLoop(conn)
	return nil
}

func (s *GatewaySession) readLoop(conn *websocket.Conn) {
	defer close(s.done)
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, net.ErrClosed) {
				s.dialer.Logger.Debug("voice gateway read ended", zap.Error(err))
			}
			return
		}
		s.handler(ev)
	}
}

// Stop asks the gateway to end the call and closes the connection. Only the first call sends the
// stop frame; later calls return nil.
func (s *GatewaySession) Stop(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	if conn == nil || s.stopping {
		s.mu.Unlock()
		return nil
	}
	s.stopping = true

	// gorilla connections allow one concurrent writer
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteJSON(controlMessage{Type: "stop"})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-ctx.Done():
	case <-time.After(writeWait):
	}
	conn.Close()
	return err
}
