// Package feed receives text to display from a websocket server.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/op/go-logging"

	"github.com/fkcurrie/keyled/internal/types"
)

var log = logging.MustGetLogger("feed")

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = 54 * time.Second
	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Client represents a websocket text feed client
type Client struct {
	config    types.FeedConfig
	reconnect time.Duration
	messages  chan types.Message
}

// NewClient creates a new feed client
func NewClient(config types.FeedConfig) *Client {
	return &Client{
		config:    config,
		reconnect: time.Duration(config.ReconnectS) * time.Second,
		messages:  make(chan types.Message, 10),
	}
}

// Messages returns a channel that receives parsed messages
func (c *Client) Messages() <-chan types.Message {
	return c.messages
}

// Run connects to the feed and keeps reading until ctx is cancelled. Lost
// or refused connections are retried after the reconnect delay.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			log.Warningf("Failed to connect to feed: %v", err)
		} else {
			log.Infof("Connected to feed %s", c.config.URL)
			c.serve(ctx, conn)
			log.Infof("Disconnected from feed %s", c.config.URL)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnect):
		}
	}
}

// dial connects to the websocket server
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.config.URL, http.Header{})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w (status %d)", c.config.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", c.config.URL, err)
	}
	return conn, nil
}

// serve runs the pumps for one connection and returns when it is closed
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx, conn)

	// Closing the connection unblocks ReadMessage on cancellation
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	c.readPump(conn)
}

// readPump pumps messages from the websocket connection to the message channel
func (c *Client) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("error: %v", err)
			}
			return
		}

		msg, err := ParseMessage(data)
		if err != nil {
			log.Warningf("error parsing message: %v", err)
			continue
		}

		select {
		case c.messages <- msg:
		default:
			// Channel is full, skip this message
			log.Debugf("Dropping message %q", msg.Text)
		}
	}
}

// writePump keeps the connection alive with pings
func (c *Client) writePump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
