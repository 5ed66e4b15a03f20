// Package ws implements the command transport over a websocket
// connection to the browser-side peer. Requests carry a correlation id
// so replies can arrive out of order.
package ws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

var _ driven.Transport = (*Transport)(nil)

// Default configuration values.
const (
	DefaultDialTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// envelope is the outbound wire format. Notifications omit the id.
type envelope struct {
	ID     string            `json:"id,omitempty"`
	Action string            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

// reply is the inbound wire format.
type reply struct {
	ID      string         `json:"id"`
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Transport exchanges command messages with one websocket peer. A
// single reader goroutine owns the connection's read side and routes
// replies to waiting callers by correlation id.
type Transport struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan reply
	err     error

	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the peer and starts the read loop.
func Dial(ctx context.Context, url string) (*Transport, error) {
	dialer := websocket.Dialer{HandshakeTimeout: DefaultDialTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	logger.Info("Connected to browser bridge at %s", url)
	return New(conn), nil
}

// New wraps an established connection and starts the read loop.
func New(conn *websocket.Conn) *Transport {
	t := &Transport{
		conn:    conn,
		pending: make(map[string]chan reply),
		closed:  make(chan struct{}),
	}
	go t.readLoop()
	return t
}

// Call sends a message and waits for the correlated reply. The context
// bounds the wait; cancellation abandons the reply without tearing the
// connection down.
func (t *Transport) Call(ctx context.Context, msg driven.Message) (*driven.Response, error) {
	id := uuid.NewString()

	ch := make(chan reply, 1)
	t.mu.Lock()
	if t.err != nil {
		err := t.err
		t.mu.Unlock()
		return nil, err
	}
	t.pending[id] = ch
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	if err := t.write(envelope{ID: id, Action: msg.Action, Params: msg.Params}); err != nil {
		return nil, err
	}

	select {
	case r := <-ch:
		return &driven.Response{Success: r.Success, Data: r.Data, Error: r.Error}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.closed:
		return nil, t.lastError()
	}
}

// Notify sends a message without waiting for a reply.
func (t *Transport) Notify(_ context.Context, msg driven.Message) error {
	return t.write(envelope{Action: msg.Action, Params: msg.Params})
}

// Close tears down the connection and fails all waiting calls.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.setError(fmt.Errorf("transport closed"))
		close(t.closed)
		err = t.conn.Close()
	})
	return err
}

func (t *Transport) write(env envelope) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(DefaultWriteTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := t.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// readLoop routes replies to their waiting callers. Replies without a
// matching waiter (late arrivals after cancellation, unsolicited peer
// events) are dropped with a debug log.
func (t *Transport) readLoop() {
	for {
		var r reply
		if err := t.conn.ReadJSON(&r); err != nil {
			t.setError(fmt.Errorf("connection lost: %w", err))
			t.closeOnce.Do(func() {
				close(t.closed)
				_ = t.conn.Close()
			})
			return
		}

		t.mu.Lock()
		ch, ok := t.pending[r.ID]
		t.mu.Unlock()
		if !ok {
			logger.Debug("Dropping reply with no waiter: id=%s", r.ID)
			continue
		}
		ch <- r
	}
}

func (t *Transport) setError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

func (t *Transport) lastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	return fmt.Errorf("transport closed")
}
