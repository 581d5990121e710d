// internal/relay/ws.go
package relay

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"knife-arena/internal/config"
)

// WSChannel is a Channel over a gorilla websocket connection. A read pump
// decodes inbound frames, a write pump serializes outbound ones and keeps
// the connection alive with pings.
type WSChannel struct {
	conn    *websocket.Conn
	in      chan Message
	sendCh  chan Message
	closeCh chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Dial connects to the relay websocket endpoint.
func Dial(ctx context.Context, url string) (*WSChannel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", url, err)
	}
	return NewWSChannel(conn), nil
}

// NewWSChannel wraps an established connection and starts its pumps.
func NewWSChannel(conn *websocket.Conn) *WSChannel {
	c := &WSChannel{
		conn:    conn,
		in:      make(chan Message, config.RelayMailboxSize),
		sendCh:  make(chan Message, config.RelaySendQueue),
		closeCh: make(chan struct{}),
	}
	c.wg.Add(2)
	go c.readPump()
	go c.writePump()
	return c
}

// Send queues m. It never blocks the caller.
func (c *WSChannel) Send(m Message) error {
	select {
	case <-c.closeCh:
		return ErrClosed
	default:
	}
	select {
	case c.sendCh <- m:
		return nil
	case <-c.closeCh:
		return ErrClosed
	default:
		return ErrQueueFull
	}
}

func (c *WSChannel) Receive() <-chan Message {
	return c.in
}

// Close stops both pumps. Receive is closed once the read pump exits.
func (c *WSChannel) Close() error {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
	return nil
}

// Wait blocks until both pumps have exited.
func (c *WSChannel) Wait() {
	c.wg.Wait()
}

func (c *WSChannel) readPump() {
	defer c.wg.Done()
	defer close(c.in)
	defer c.Close()

	c.conn.SetReadLimit(config.RelayReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(config.RelayPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(config.RelayPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("WARNING: relay read: %v", err)
			}
			return
		}
		m, err := Decode(data)
		if err != nil {
			log.Printf("WARNING: relay dropped malformed frame: %v", err)
			continue
		}
		select {
		case c.in <- m:
		case <-c.closeCh:
			return
		}
	}
}

func (c *WSChannel) writePump() {
	defer c.wg.Done()
	defer c.conn.Close()

	ticker := time.NewTicker(config.RelayPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case m := <-c.sendCh:
			data, err := Encode(m)
			if err != nil {
				log.Printf("ERROR: relay encode %s: %v", m.Type, err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(config.RelayWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("WARNING: relay write: %v", err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(config.RelayWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.closeCh:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(config.RelayWriteWait),
			)
			return
		}
	}
}
