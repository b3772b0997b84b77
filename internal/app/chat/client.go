/*
Package chat contains the real-time support chat subsystem: the connection
registry, the wire envelope protocol, and the hub that routes messages between
connected visitors and support staff.

This file defines the Client struct, the server side of one WebSocket
connection: the read and write pumps, the buffered outbound queue, and the
heartbeat handling.
*/
package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pawhaven/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 8192

	// sendQueueSize is the capacity of the per-connection outbound queue.
	sendQueueSize = 256
)

// Client is the handle for one open connection: the unit of addressing in the
// registry and the owner of the outbound write queue.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// send queues frames waiting to be written to the connection.
	send chan []byte

	// closed is shut exactly once when the connection is torn down; it gates
	// TrySend so no frame is ever queued to a dead connection.
	closed    chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection. The caller starts the pumps and
// registers the client with the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
		closed: make(chan struct{}),
		logger: logx.Logger().With().Str("component", "ChatClient").Logger(),
	}
}

// TrySend queues a frame for delivery without blocking. A connection that is
// closed or whose queue is full is treated as non-ready and the frame is
// dropped for it; the caller's fan-out continues regardless. Reports whether
// the frame was queued.
func (c *Client) TrySend(frame []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping frame")
		return false
	}
}

// Close marks the connection non-ready. Idempotent; the write pump drains and
// exits on its own.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// ReadPump reads frames from the connection and hands them to the hub until
// the connection drops, then deregisters the client.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.hub.HandleInbound(c, frame)
	}
}

// cleanupOnDisconnect removes the client from the registry and closes the
// underlying connection once the read pump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.hub.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// WritePump drains the send queue onto the connection and keeps the heartbeat
// going. It exits when the client is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing message")
				return
			}

		case <-c.closed:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
