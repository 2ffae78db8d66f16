package ws

import (
	"encoding/json"
	"time"

	"thegame/internal/log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 120 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// Client is one socket. Its id doubles as the player id, so a reconnect is a
// new player.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// roomID is only touched by the read goroutine.
	roomID string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws read %s: %v", c.id, err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg InMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(TypeInvalidMove, "", ErrorMessage{Message: "malformed message"})
			continue
		}
		c.hub.handle(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue never blocks; a client that stops reading loses messages.
func (c *Client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
		log.Warn("ws send buffer full, dropping message for %s", c.id)
	}
}

// reply must only be called from the read goroutine, before disconnect
// closes the send channel.
func (c *Client) reply(t, reqID string, payload any) {
	b, err := json.Marshal(OutMsg{T: t, ReqID: reqID, P: payload})
	if err != nil {
		log.Error("ws encode %s: %v", t, err)
		return
	}
	c.enqueue(b)
}
