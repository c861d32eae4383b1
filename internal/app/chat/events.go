/*
Package chat implements the real-time room messaging subsystem: the
connection gateway, per-connection client pumps, the membership authorizer
and room-scoped broadcast fan-out.
*/
package chat

import (
	"encoding/json"
	"fmt"

	"footchat/internal/app/user"
)

// Client-to-server event names.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
)

// Server-to-client event names.
const (
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventReceiveMessage = "receive_message"
	EventError          = "error"
)

// Event is the wire envelope in both directions.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent builds an outbound event, marshaling the payload into the envelope.
func NewEvent(name string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Name: name, Data: data}, nil
}

// Command is the payload of every client-to-server event. The token rides on
// each command because authorization is re-checked per event.
type Command struct {
	Token   string `json:"token"`
	Room    int64  `json:"room"`
	Message string `json:"message,omitempty"`
}

// PresencePayload is the data of user_joined and user_left events. These are
// informational and never persisted.
type PresencePayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ErrorPayload is the data of error events, sent only to the connection whose
// event failed.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// joinedPresence builds the user_joined payload for a user.
func joinedPresence(u *user.User) PresencePayload {
	return PresencePayload{
		UserID:   u.ID,
		Username: u.Username,
		Message:  fmt.Sprintf("%s joined the room", u.Username),
	}
}

// leftPresence builds the user_left payload for a user.
func leftPresence(u *user.User) PresencePayload {
	return PresencePayload{
		UserID:   u.ID,
		Username: u.Username,
		Message:  fmt.Sprintf("%s left the room", u.Username),
	}
}
