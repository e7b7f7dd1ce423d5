package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/donelist-dev/donelist/internal/types"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func wsServer(t *testing.T, userID uint) *httptest.Server {
	types.SetAllowedOrigins([]string{testOrigin})

	r := testRouter(userID)
	r.GET("/ws", WebSocket)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func dialWS(t *testing.T, server *httptest.Server, origin string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {origin}})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]string {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var event map[string]string
	require.NoError(t, conn.ReadJSON(&event))

	return event
}

func clientCount(userID uint) int {
	userClientsMu.RLock()
	defer userClientsMu.RUnlock()
	return len(userClients[userID])
}

func TestWebSocketRefreshBroadcast(t *testing.T) {
	server := wsServer(t, 99)
	conn := dialWS(t, server, testOrigin)

	event := readEvent(t, conn)
	assert.Equal(t, "connected", event["type"])

	assert.Eventually(t, func() bool { return clientCount(99) == 1 },
		time.Second, 10*time.Millisecond)

	BroadcastRefresh(99)

	event = readEvent(t, conn)
	assert.Equal(t, "refresh", event["type"])
	assert.Equal(t, "Todo data updated", event["message"])
}

func TestWebSocketConcurrentBroadcasts(t *testing.T) {
	server := wsServer(t, 99)
	conn := dialWS(t, server, testOrigin)

	event := readEvent(t, conn)
	require.Equal(t, "connected", event["type"])

	require.Eventually(t, func() bool { return clientCount(99) == 1 },
		time.Second, 10*time.Millisecond)

	// Two mutating requests broadcasting at once must not trip the race
	// detector on the shared connection.
	const broadcasts = 200

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < broadcasts; j++ {
				BroadcastRefresh(99)
			}
		}()
	}

	received := 0
	for received < 2*broadcasts {
		event := readEvent(t, conn)
		require.Equal(t, "refresh", event["type"])
		received++
	}

	wg.Wait()
}

func TestWebSocketUnregisterOnClose(t *testing.T) {
	server := wsServer(t, 99)
	conn := dialWS(t, server, testOrigin)

	event := readEvent(t, conn)
	require.Equal(t, "connected", event["type"])

	require.Eventually(t, func() bool { return clientCount(99) == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return clientCount(99) == 0 },
		time.Second, 10*time.Millisecond)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	server := wsServer(t, 99)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBroadcastRefreshNoClients(t *testing.T) {
	// No registered connections; must be a no-op.
	BroadcastRefresh(12345)
}
