package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"footchat/internal/app/message"
	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/logx"
)

const (
	// writeWait bounds a single write to the WebSocket connection.
	writeWait = 10 * time.Second

	// pongWait is how long the server waits for a Pong before dropping the
	// connection.
	pongWait = 60 * time.Second

	// pingPeriod is the heartbeat interval. Must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames in bytes.
	maxMessageSize = 8192

	// sendQueueSize is the per-connection outbound buffer.
	sendQueueSize = 256

	// eventTimeout bounds the durable-store work of one event so a slow
	// database cannot stall the connection's event queue indefinitely.
	eventTimeout = 10 * time.Second
)

// MessageAppender is the slice of the message store the client needs.
// Implemented by message.Store.
type MessageAppender interface {
	Append(ctx context.Context, content string, userID, communityID int64) (*message.Message, error)
}

// Client is one live WebSocket connection. It holds no authenticated session:
// every inbound event carries its own token and is authorized from scratch,
// so expiry and bans take effect mid-connection.
type Client struct {
	// id is the connection id, the key under which the gateway tracks this
	// connection.
	id string

	gateway    *Gateway
	conn       *websocket.Conn
	authorizer *Authorizer
	messages   MessageAppender

	// send queues outbound frames for WritePump.
	send chan []byte

	// joined is the set of room ids this connection is in. Guarded by the
	// gateway's mutex, never touched directly by the pumps.
	joined map[int64]struct{}

	closeOnce sync.Once

	logger zerolog.Logger
}

// NewClient wraps an upgraded WebSocket connection.
func NewClient(gateway *Gateway, conn *websocket.Conn, authorizer *Authorizer, messages MessageAppender) *Client {
	id := uuid.NewString()

	return &Client{
		id:         id,
		gateway:    gateway,
		conn:       conn,
		authorizer: authorizer,
		messages:   messages,
		send:       make(chan []byte, sendQueueSize),
		joined:     make(map[int64]struct{}),
		logger:     logx.Logger().With().Str("connection_id", id).Logger(),
	}
}

// closeSend closes the outbound queue exactly once, which makes WritePump
// send a close frame and exit.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump reads inbound events and handles each one to completion before
// reading the next, so a connection's events are processed in arrival order.
// Other connections run their own pumps and are never blocked by this one.
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

		c.handleEvent(frame)
	}
}

// cleanupOnDisconnect tears the connection down. Unregister is idempotent,
// so a racing shutdown path is harmless.
func (c *Client) cleanupOnDisconnect() {
	c.gateway.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// handleEvent parses one inbound frame and dispatches it. Every failure is
// reported only to this connection.
func (c *Client) handleEvent(frame []byte) {
	var event Event
	if err := json.Unmarshal(frame, &event); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		c.sendError(errs.NewError(errs.ErrInvalidJSONFormat))
		return
	}

	var cmd Command
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &cmd); err != nil {
			c.logger.Warn().Err(err).Str("event", event.Name).Msg("Client sent invalid event payload")
			c.sendError(errs.NewError(errs.ErrInvalidParams))
			return
		}
	}

	if cmd.Room <= 0 {
		c.sendError(errs.NewError(errs.ErrInvalidParams))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	switch event.Name {
	case EventJoinRoom:
		c.handleJoin(ctx, cmd)

	case EventLeaveRoom:
		c.handleLeave(ctx, cmd)

	case EventSendMessage:
		c.handleSend(ctx, cmd)

	default:
		c.logger.Warn().Str("event", event.Name).Msg("Client sent unsupported event")
		c.sendError(errs.NewError(errs.ErrInvalidParams))
	}
}

// handleJoin authorizes and adds the connection to the room. The presence
// broadcast fires only on the first successful join; repeating the join is a
// no-op success. On failure the pair stays NOT_JOINED.
func (c *Client) handleJoin(ctx context.Context, cmd Command) {
	u, customErr := c.authorizer.Authorize(ctx, cmd.Token, cmd.Room)
	if customErr != nil {
		c.sendError(customErr)
		return
	}

	if !c.gateway.Join(c, cmd.Room) {
		c.logger.Debug().Int64("room_id", cmd.Room).Int64("user_id", u.ID).Msg("Repeated join, no-op.")
		return
	}

	c.logger.Info().Int64("room_id", cmd.Room).Int64("user_id", u.ID).Msg("Client joined room.")

	c.broadcast(cmd.Room, EventUserJoined, joinedPresence(u))
}

// handleLeave authorizes and removes the connection from the room. An
// authorization failure still clears the joined state: the membership or
// credential backing it is gone.
func (c *Client) handleLeave(ctx context.Context, cmd Command) {
	u, customErr := c.authorizer.Authorize(ctx, cmd.Token, cmd.Room)
	if customErr != nil {
		c.gateway.Leave(c, cmd.Room)
		c.sendError(customErr)
		return
	}

	if !c.gateway.Leave(c, cmd.Room) {
		return
	}

	c.logger.Info().Int64("room_id", cmd.Room).Int64("user_id", u.ID).Msg("Client left room.")

	c.broadcast(cmd.Room, EventUserLeft, leftPresence(u))
}

// handleSend authorizes, persists, and only after the row has committed fans
// the message out to the room. A failed persistence never produces a
// broadcast and leaves the joined state untouched.
func (c *Client) handleSend(ctx context.Context, cmd Command) {
	u, customErr := c.authorizer.Authorize(ctx, cmd.Token, cmd.Room)
	if customErr != nil {
		// Re-authorization failed: the connection no longer has a valid
		// claim on this room.
		c.gateway.Leave(c, cmd.Room)
		c.sendError(customErr)
		return
	}

	msg, err := c.messages.Append(ctx, cmd.Message, u.ID, cmd.Room)
	if err != nil {
		c.logger.Warn().Err(err).Int64("room_id", cmd.Room).Int64("user_id", u.ID).Msg("Message append failed.")
		c.sendError(errs.AsCustom(err))
		return
	}

	msg.Username = u.Username
	msg.AvatarURL = u.AvatarURL

	c.broadcast(cmd.Room, EventReceiveMessage, msg)
}

// broadcast wraps a payload in the event envelope and hands it to the gateway.
func (c *Client) broadcast(roomID int64, name string, payload any) {
	event, err := NewEvent(name, payload)
	if err != nil {
		c.logger.Error().Err(err).Str("event", name).Msg("Failed to build broadcast event.")
		return
	}

	c.gateway.Broadcast(roomID, event)
}

// sendError queues an error event for this connection only. Errors are never
// broadcast to a room.
func (c *Client) sendError(customErr *errs.CustomError) {
	event, err := NewEvent(EventError, ErrorPayload{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build error event.")
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to marshal error event.")
		return
	}

	select {
	case c.send <- payload:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping error event.")
	}
}

// WritePump drains the send queue onto the WebSocket connection and keeps the
// heartbeat alive.
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
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
