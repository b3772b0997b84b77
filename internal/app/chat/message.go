/*
Package chat contains the real-time support chat subsystem: the connection
registry, the wire envelope protocol, and the hub that routes messages between
connected visitors and support staff.

This file defines the envelope types exchanged over the WebSocket connection
and the identity descriptor attached to a connection after authentication.
*/
package chat

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope type discriminators.
const (
	// TypeAuth is sent by the client to associate its session identity
	// with the connection.
	TypeAuth = "auth"

	// TypeChatMessage carries a chat message in both directions. Inbound it
	// holds the raw text and an optional recipient; outbound it carries the
	// full server-stamped message under "data".
	TypeChatMessage = "chat_message"

	// TypeAuthSuccess confirms a processed auth envelope, echoing the
	// registered identity back to the sender.
	TypeAuthSuccess = "auth_success"

	// TypeSystemMessage carries freeform server text (welcome banner etc.).
	TypeSystemMessage = "system_message"

	// TypeError carries an error description for the receiving connection.
	TypeError = "error"
)

// GuestUserID and GuestUsername are the render-time defaults for a connection
// that has not sent an auth envelope (or sent one with fields omitted).
const (
	GuestUserID   = "guest"
	GuestUsername = "Guest"
)

// UserID is a user identifier on the wire. Browser clients send it as a JSON
// number or a string depending on where the value originated, so both forms
// are accepted; it is carried internally as its textual form.
type UserID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (u *UserID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*u = ""
		return nil
	}

	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*u = UserID(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*u = UserID(n.String())
	return nil
}

// MarshalJSON always emits the string form.
func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(u))
}

// Identity is the descriptor associated with a connection after an auth
// envelope has been processed. The zero value is the anonymous (guest)
// identity. Each auth envelope replaces the stored identity wholesale;
// fields omitted by the client come back empty here.
type Identity struct {
	UserID   UserID `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Sender returns the identity with guest defaults filled in for unset fields,
// as embedded in outbound chat messages.
func (id Identity) Sender() Sender {
	s := Sender{
		UserID:   id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
	}
	if s.UserID == "" {
		s.UserID = GuestUserID
	}
	if s.Username == "" {
		s.Username = GuestUsername
	}
	return s
}

// Sender describes the authoritative originator of an outbound chat message.
type Sender struct {
	UserID   UserID `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// InboundEnvelope is the tagged wire format read from clients. Payload fields
// of both recognized kinds are flattened alongside the discriminator, matching
// what the chat widget sends.
type InboundEnvelope struct {
	Type string `json:"type"`

	// auth fields
	UserID   UserID `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`

	// chat_message fields
	Message     string `json:"message,omitempty"`
	RecipientID UserID `json:"recipientId,omitempty"`
}

// Identity extracts the identity carried by an auth envelope.
func (e *InboundEnvelope) Identity() Identity {
	return Identity{
		UserID:   e.UserID,
		Username: e.Username,
		IsAdmin:  e.IsAdmin,
	}
}

// OutboundEnvelope is the tagged wire format written to clients. Data holds
// the kind-specific payload.
type OutboundEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ChatPayload is the data body of an outbound chat_message envelope.
type ChatPayload struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// SystemPayload is the data body of an outbound system_message envelope.
type SystemPayload struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ErrorPayload is the data body of an outbound error envelope.
type ErrorPayload struct {
	Message string `json:"message"`
}

func marshalEnvelope(kind string, data any) ([]byte, error) {
	return json.Marshal(OutboundEnvelope{Type: kind, Data: data})
}

// String implements fmt.Stringer for log output.
func (u UserID) String() string { return string(u) }

// Int64 reports the numeric value of the id, for ids that originated as JSON
// numbers. Returns false for non-numeric ids such as "guest".
func (u UserID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(u), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
