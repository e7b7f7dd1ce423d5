package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/donelist-dev/donelist/internal/types"
	"github.com/donelist-dev/donelist/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	userClients   = make(map[uint]map[*wsClient]bool)
	userClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// wsClient serializes writes to one connection. Broadcasts and the ping
// loop run on different goroutines; the mutex keeps gorilla's
// single-writer contract.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

func (c *wsClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// BroadcastRefresh tells every open connection of a user that its todo
// data changed and should be refetched.
func BroadcastRefresh(userID uint) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*wsClient, 0, len(clients))
	for client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	userClientsMu.RUnlock()

	for _, client := range clientsCopy {
		err := client.writeJSON(map[string]string{
			"type":    "refresh",
			"message": "Todo data updated",
		})

		if err != nil {
			Logger.Warn("failed to broadcast refresh", zap.Error(err))
			unregisterClient(userID, client)
			client.conn.Close()
		}
	}
}

// WebSocket upgrades a gated request into a per-user refresh channel.
func WebSocket(c *gin.Context) {
	user, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	userClientsMu.Lock()
	if userClients[user.ID] == nil {
		userClients[user.ID] = make(map[*wsClient]bool)
	}
	userClients[user.ID][client] = true
	userClientsMu.Unlock()

	// Closed when the read loop exits so the ping goroutine never outlives
	// the connection.
	done := make(chan struct{})

	defer func() {
		close(done)
		unregisterClient(user.ID, client)
		conn.Close()
	}()

	err = client.writeJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				Logger.Warn("websocket error", zap.Uint("user_id", user.ID), zap.Error(err))
			}
			break
		}
	}
}

func unregisterClient(userID uint, client *wsClient) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if clients, exists := userClients[userID]; exists {
		delete(clients, client)

		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
}
