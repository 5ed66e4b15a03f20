package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// echoServer upgrades connections and answers each request through
// handle. A nil handle echoes success with the action in the data.
func echoServer(t *testing.T, handle func(*websocket.Conn, envelope) bool) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			if handle != nil && !handle(conn, env) {
				continue
			}
			if handle == nil {
				err = conn.WriteJSON(reply{
					ID:      env.ID,
					Success: true,
					Data:    map[string]any{"action": env.Action},
				})
				if err != nil {
					return
				}
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestTransport_Call(t *testing.T) {
	server := echoServer(t, nil)
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer transport.Close()

	resp, err := transport.Call(context.Background(), driven.Message{
		Action: "navigate",
		Params: map[string]string{"url": "https://example.edu"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "navigate", resp.Data["action"])
}

// Replies can arrive out of order; correlation ids route each to the
// right caller.
func TestTransport_ConcurrentCalls(t *testing.T) {
	server := echoServer(t, nil)
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer transport.Close()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		action := "action-" + strings.Repeat("x", i+1)
		go func() {
			resp, err := transport.Call(context.Background(), driven.Message{Action: action})
			if err == nil && resp.Data["action"] != action {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestTransport_PeerFailureReply(t *testing.T) {
	server := echoServer(t, func(conn *websocket.Conn, env envelope) bool {
		require.NoError(t, conn.WriteJSON(reply{ID: env.ID, Success: false, Error: "tab closed"}))
		return false
	})
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer transport.Close()

	resp, err := transport.Call(context.Background(), driven.Message{Action: "click"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "tab closed", resp.Error)
}

func TestTransport_CallContextCancelled(t *testing.T) {
	// The server never replies.
	server := echoServer(t, func(*websocket.Conn, envelope) bool { return false })
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer transport.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = transport.Call(ctx, driven.Message{Action: "slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Notifications carry no correlation id and expect no reply.
func TestTransport_Notify(t *testing.T) {
	received := make(chan envelope, 1)
	server := echoServer(t, func(_ *websocket.Conn, env envelope) bool {
		received <- env
		return false
	})
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer transport.Close()

	require.NoError(t, transport.Notify(context.Background(), driven.Message{Action: "ping"}))

	select {
	case env := <-received:
		assert.Empty(t, env.ID)
		assert.Equal(t, "ping", env.Action)
	case <-time.After(time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestTransport_CallAfterClose(t *testing.T) {
	server := echoServer(t, nil)
	defer server.Close()

	transport, err := Dial(context.Background(), wsURL(server))
	require.NoError(t, err)
	require.NoError(t, transport.Close())

	_, err = transport.Call(context.Background(), driven.Message{Action: "navigate"})
	assert.Error(t, err)
}

func TestDial_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1/bridge")
	assert.Error(t, err)
}
