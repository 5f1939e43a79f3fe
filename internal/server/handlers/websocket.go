package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"trendboard/internal/event"
)

// WebSocketClient represents a connected dashboard client receiving
// refresh events.
type WebSocketClient struct {
	conn         *websocket.Conn
	send         chan []byte
	natsConn     *nats.Conn
	subscription *nats.Subscription
	closeOnce    sync.Once
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4 * 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// DashboardWebSocketHandler streams dashboard events (post ingests, brief
// completions) to connected clients so they can refetch metrics.
func DashboardWebSocketHandler(natsConn *nats.Conn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client := &WebSocketClient{
			conn:     conn,
			send:     make(chan []byte, 64),
			natsConn: natsConn,
		}

		go client.writePump()
		go client.readPump()

		if err := client.subscribeToEvents(); err != nil {
			log.Printf("Failed to subscribe to dashboard events: %v", err)
			client.closeConnection()
			return
		}

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "welcome",
			"time": time.Now(),
		})
		client.send <- welcome

		log.Printf("New dashboard WebSocket connection from %s", r.RemoteAddr)
	}
}

// subscribeToEvents forwards every dashboard event to the client.
func (c *WebSocketClient) subscribeToEvents() error {
	sub, err := c.natsConn.Subscribe(event.SubjectWildcard, func(msg *nats.Msg) {
		select {
		case c.send <- msg.Data:
		default:
			// Slow client, drop the event. The client refetches on the
			// next one anyway.
		}
	})
	if err != nil {
		return err
	}

	c.subscription = sub
	return nil
}

// readPump drains the connection so pings and close frames are handled.
// Dashboard clients never send meaningful messages.
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps events to the WebSocket connection
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection tears down the NATS subscription and the socket.
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		if c.subscription != nil {
			if err := c.subscription.Unsubscribe(); err != nil {
				log.Printf("Failed to unsubscribe from dashboard events: %v", err)
			}
		}
		c.conn.Close()
	})
}
