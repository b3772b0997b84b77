/*
Package chat contains the real-time support chat subsystem: the connection
registry, the wire envelope protocol, and the hub that routes messages between
connected visitors and support staff.

This file defines the Hub, which owns the Registry and implements the two
central behaviors of the chat feature: the connection lifecycle
(connect -> identify -> communicate -> disconnect) and the addressing rule
(explicit recipient means unicast plus sender echo, absent recipient means
inclusive broadcast).
*/
package chat

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"pawhaven/internal/pkg/logx"
)

// WelcomeText is the system banner pushed to every connection right after it
// registers.
const WelcomeText = "Welcome to PawHaven support chat! How can we help you and your pet today?"

// ErrInvalidFormat is the error text answered to a connection that sent an
// unparsable envelope.
const ErrInvalidFormat = "Invalid message format"

// Hub owns the connection registry and routes every inbound envelope.
// Handlers for the individual connections call into it from their read
// goroutines; the registry lock serializes the shared state.
type Hub struct {
	registry *Registry

	// nextID stamps outbound chat messages with a process-local,
	// monotonically increasing id.
	nextID atomic.Int64

	logger zerolog.Logger
}

// NewHub constructs a Hub with an empty registry.
func NewHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		logger:   logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Registry exposes the hub's registry for read-side inspection (connection
// counts, lookups). Mutation stays inside the hub.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Register adds a freshly-opened connection to the registry with an empty
// identity and greets it with a welcome system message. The welcome goes to
// this connection only, not to the room.
func (h *Hub) Register(c *Client) {
	h.registry.Register(c)

	h.logger.Info().
		Int("connections", h.registry.Len()).
		Msg("Connection registered")

	h.sendSystem(c, WelcomeText)
}

// Unregister removes the connection from the registry and releases its write
// queue. Other connections are not notified of the departure. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.registry.Deregister(c)
	c.Close()

	h.logger.Info().
		Int("connections", h.registry.Len()).
		Msg("Connection deregistered")
}

// Shutdown deregisters and closes every remaining connection. Called once
// during server shutdown, after the HTTP listener has stopped accepting
// upgrades.
func (h *Hub) Shutdown() {
	for _, handle := range h.registry.Handles() {
		h.Unregister(handle)
	}

	h.logger.Info().Msg("Support chat hub stopped")
}

// HandleInbound processes one raw frame from a connection. Malformed payloads
// are answered with an error envelope on the same connection, which stays
// open. Unrecognized envelope types are ignored on purpose so that newer
// clients do not break older servers.
func (h *Hub) HandleInbound(c *Client, raw []byte) {
	var env InboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Warn().Err(err).Msg("Connection sent malformed payload")
		h.sendError(c, ErrInvalidFormat)
		return
	}

	switch env.Type {
	case TypeAuth:
		h.handleAuth(c, &env)

	case TypeChatMessage:
		h.handleChat(c, &env)

	default:
		h.logger.Debug().Str("msg_type", env.Type).Msg("Ignoring unrecognized envelope type")
	}
}

// handleAuth replaces the connection's identity with the one carried by the
// envelope and confirms with an auth_success echo to the same connection.
func (h *Hub) handleAuth(c *Client, env *InboundEnvelope) {
	identity := env.Identity()
	h.registry.SetIdentity(c, identity)

	h.logger.Info().
		Str("user_id", identity.UserID.String()).
		Str("username", identity.Username).
		Bool("is_admin", identity.IsAdmin).
		Msg("Connection identified")

	frame, err := marshalEnvelope(TypeAuthSuccess, identity)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal auth_success envelope")
		return
	}
	c.TrySend(frame)
}

// handleChat implements the addressing decision. The sender identity comes
// from the registry, never from the payload: what a client asserts about
// itself in a chat_message is ignored.
func (h *Hub) handleChat(c *Client, env *InboundEnvelope) {
	identity, ok := h.registry.Identity(c)
	if !ok {
		// Connection already deregistered; drop the late frame.
		return
	}

	payload := ChatPayload{
		ID:        h.nextID.Add(1),
		Message:   env.Message,
		Sender:    identity.Sender(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	frame, err := marshalEnvelope(TypeChatMessage, payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal chat_message envelope")
		return
	}

	if env.RecipientID != "" {
		recipient := h.registry.LookupByUserID(env.RecipientID)
		if recipient == nil {
			// Recipient not connected: the message is dropped without an
			// error back to the sender.
			h.logger.Debug().
				Str("recipient_id", env.RecipientID.String()).
				Msg("Private message recipient not connected, dropping")
			return
		}

		// Unicast plus echo: the recipient gets the message and the sender
		// gets the same envelope back for its own transcript.
		recipient.TrySend(frame)
		c.TrySend(frame)
		return
	}

	// No recipient: inclusive broadcast, sender included. A connection whose
	// write queue is gone or full is skipped without aborting the fan-out.
	for _, handle := range h.registry.Handles() {
		handle.TrySend(frame)
	}
}

// sendSystem delivers a system_message envelope to one connection.
func (h *Hub) sendSystem(c *Client, text string) {
	frame, err := marshalEnvelope(TypeSystemMessage, SystemPayload{
		Message:   text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal system_message envelope")
		return
	}
	c.TrySend(frame)
}

// sendError delivers an error envelope to one connection.
func (h *Hub) sendError(c *Client, text string) {
	frame, err := marshalEnvelope(TypeError, ErrorPayload{Message: text})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal error envelope")
		return
	}
	c.TrySend(frame)
}
