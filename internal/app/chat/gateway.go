package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"footchat/internal/pkg/logx"
)

// Gateway owns the live mapping from connections to identities and joined
// rooms, and fans events out to rooms. Exactly one Gateway instance exists
// per process; the maps are never shared outside it.
type Gateway struct {
	mu sync.RWMutex

	// connections maps connection id to client.
	connections map[string]*Client

	// rooms maps room id to the set of clients currently joined, keyed by
	// connection id.
	rooms map[int64]map[string]*Client

	logger zerolog.Logger
}

// NewGateway creates an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{
		connections: make(map[string]*Client),
		rooms:       make(map[int64]map[string]*Client),
		logger:      logx.Logger().With().Str("component", "Gateway").Logger(),
	}
}

// Register adds a newly upgraded connection.
func (g *Gateway) Register(c *Client) {
	g.mu.Lock()
	g.connections[c.id] = c
	total := len(g.connections)
	g.mu.Unlock()

	g.logger.Info().Str("connection_id", c.id).Int("total_connections", total).Msg("Connection registered.")
}

// Unregister removes a connection and every joined-room entry it holds, then
// closes its send queue. Safe to call more than once; the second call finds
// nothing to remove. No departure events are broadcast for a dropped
// transport connection.
func (g *Gateway) Unregister(c *Client) {
	g.mu.Lock()

	if _, ok := g.connections[c.id]; ok {
		delete(g.connections, c.id)

		for roomID := range c.joined {
			g.removeFromRoomLocked(c, roomID)
		}
		c.joined = make(map[int64]struct{})
	}

	total := len(g.connections)
	g.mu.Unlock()

	c.closeSend()

	g.logger.Info().Str("connection_id", c.id).Int("total_connections", total).Msg("Connection removed.")
}

// Join adds the connection to a room's fan-out set. Returns true when the
// connection was not joined before; a repeated join is a no-op success.
func (g *Gateway) Join(c *Client, roomID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := c.joined[roomID]; ok {
		return false
	}

	room, ok := g.rooms[roomID]
	if !ok {
		room = make(map[string]*Client)
		g.rooms[roomID] = room
	}

	room[c.id] = c
	c.joined[roomID] = struct{}{}

	return true
}

// Leave removes the connection from a room's fan-out set. Returns true when
// the connection was joined; leaving a room twice is a no-op.
func (g *Gateway) Leave(c *Client, roomID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := c.joined[roomID]; !ok {
		return false
	}

	delete(c.joined, roomID)
	g.removeFromRoomLocked(c, roomID)

	return true
}

// removeFromRoomLocked deletes the connection from a room set and drops the
// set when it empties. Caller holds g.mu.
func (g *Gateway) removeFromRoomLocked(c *Client, roomID int64) {
	room, ok := g.rooms[roomID]
	if !ok {
		return
	}

	delete(room, c.id)
	if len(room) == 0 {
		delete(g.rooms, roomID)
	}
}

// Broadcast delivers an event to every connection currently joined to the
// room. Callers invoke it only after any corresponding persistence has
// committed, so a delivered message always has a committed row behind it.
// A client whose send queue is full is detached rather than allowed to
// block the room.
func (g *Gateway) Broadcast(roomID int64, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		g.logger.Error().Err(err).Str("event", event.Name).Msg("Error marshaling event for broadcast.")
		return
	}

	var stale []*Client

	g.mu.RLock()
	for _, c := range g.rooms[roomID] {
		select {
		case c.send <- payload:
		default:
			g.logger.Warn().
				Str("connection_id", c.id).
				Int64("room_id", roomID).
				Msg("Client send queue full, detaching connection.")
			stale = append(stale, c)
		}
	}
	g.mu.RUnlock()

	for _, c := range stale {
		g.Unregister(c)
	}
}

// RoomSize returns how many connections are joined to a room.
func (g *Gateway) RoomSize(roomID int64) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms[roomID])
}

// ConnectionCount returns the number of live connections.
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

// Shutdown detaches every connection. Used during graceful server shutdown.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	clients := make([]*Client, 0, len(g.connections))
	for _, c := range g.connections {
		clients = append(clients, c)
	}
	g.mu.Unlock()

	for _, c := range clients {
		g.Unregister(c)
	}

	g.logger.Info().Int("connections_closed", len(clients)).Msg("Gateway shutdown complete.")
}
