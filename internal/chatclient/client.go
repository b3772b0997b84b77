/*
Package chatclient implements the consumer side of the support chat channel:
the connection state machine used by chat widgets, the local transcript, and
the degraded-mode fallback for sends attempted while the channel is down.

One Widget corresponds to one "chat widget open" session. The connection is
torn down when the widget closes; reopening the widget creates a fresh
connection. There is no automatic reconnect loop.
*/
package chatclient

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pawhaven/internal/app/chat"
	"pawhaven/internal/pkg/logx"
)

// Status is the widget's connection state, surfaced to the UI indicator.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Origin classifies a transcript entry by who it is rendered as coming from.
type Origin string

const (
	OriginUser   Origin = "user"
	OriginSystem Origin = "system"
)

// Entry is one line of the local transcript. Entries are appended in arrival
// order and never reordered or deduplicated: a message sent while connected
// appears twice, once as the optimistic local copy and once as the
// server-confirmed echo.
type Entry struct {
	Origin    Origin
	Text      string
	Timestamp string
	Sender    *chat.Sender
}

// FallbackDelay is how long a send attempted while disconnected waits before
// the widget synthesizes its local connectivity-trouble entry.
const FallbackDelay = 500 * time.Millisecond

// FallbackText is the synthesized transcript entry for a send that could not
// be transmitted.
const FallbackText = "We're having trouble connecting to support chat. Your message was not sent."

// Options configures a Widget.
type Options struct {
	// URL is the full ws:// or wss:// endpoint (fixed path on the API host).
	URL string

	// Identity is the local authenticated identity, or nil for a guest
	// session. When set, an auth envelope is sent as soon as the channel
	// opens.
	Identity *chat.Identity

	// OnStatus is invoked on every connection state change.
	OnStatus func(Status)

	// OnEntry is invoked for every transcript entry as it is appended.
	OnEntry func(Entry)

	// OnNotice is invoked with transient, non-blocking user-facing warnings
	// (send failures, server error envelopes).
	OnNotice func(string)

	// Dialer overrides the websocket dialer, mainly for tests.
	Dialer *websocket.Dialer

	// FallbackDelay overrides the default delay before the degraded-mode
	// transcript entry is synthesized.
	FallbackDelay time.Duration
}

// Widget manages one chat session: a single connection, the transcript, and
// the status indicator.
type Widget struct {
	opts Options

	mu         sync.Mutex
	status     Status
	conn       *websocket.Conn
	transcript []Entry
	waiting    bool

	// writeMu serializes frame writes; gorilla connections allow only one
	// concurrent writer.
	writeMu sync.Mutex

	readerDone chan struct{}
	logger     zerolog.Logger
}

// New constructs a Widget in the Disconnected state.
func New(opts Options) *Widget {
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.FallbackDelay <= 0 {
		opts.FallbackDelay = FallbackDelay
	}

	return &Widget{
		opts:   opts,
		status: StatusDisconnected,
		logger: logx.Logger().With().Str("component", "ChatWidget").Logger(),
	}
}

// Open dials the endpoint and starts the read loop. Called when the widget
// transitions from closed to open. If the local identity is known it is sent
// as an auth envelope immediately after the channel opens.
func (w *Widget) Open(ctx context.Context) error {
	w.setStatus(StatusConnecting)

	conn, _, err := w.opts.Dialer.DialContext(ctx, w.opts.URL, nil)
	if err != nil {
		w.setStatus(StatusDisconnected)
		return err
	}

	w.mu.Lock()
	w.conn = conn
	w.readerDone = make(chan struct{})
	w.mu.Unlock()

	if w.opts.Identity != nil {
		if err := w.writeJSON(chat.InboundEnvelope{
			Type:     chat.TypeAuth,
			UserID:   w.opts.Identity.UserID,
			Username: w.opts.Identity.Username,
			IsAdmin:  w.opts.Identity.IsAdmin,
		}); err != nil {
			w.logger.Warn().Err(err).Msg("Failed to send auth envelope")
		}
	}

	w.setStatus(StatusConnected)

	go w.readLoop(conn, w.readerDone)

	return nil
}

// Close tears the connection down. Called when the widget is closed; the next
// Open starts a fresh session (the server keeps no transcript, so only a new
// welcome message arrives).
func (w *Widget) Close() {
	w.mu.Lock()
	conn := w.conn
	w.conn = nil
	w.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	w.setStatus(StatusDisconnected)
}

// Send transmits a broadcast chat message, or falls back to the local
// degraded path when the channel is not connected.
func (w *Widget) Send(text string) {
	w.SendTo(text, "")
}

// SendTo transmits a chat message addressed to one recipient (empty id means
// broadcast). While connected the text is also appended to the transcript
// immediately, before any server echo, so the sender sees instant feedback;
// the echo later arrives as a second copy. While disconnected nothing is
// transmitted or retried: after a short delay a connectivity-trouble entry is
// synthesized and a warning notice raised.
func (w *Widget) SendTo(text string, recipientID chat.UserID) {
	w.mu.Lock()
	connected := w.status == StatusConnected && w.conn != nil
	w.mu.Unlock()

	if !connected {
		go w.fallback()
		return
	}

	w.appendEntry(Entry{Origin: OriginUser, Text: text})

	w.mu.Lock()
	w.waiting = true
	w.mu.Unlock()

	err := w.writeJSON(chat.InboundEnvelope{
		Type:        chat.TypeChatMessage,
		Message:     text,
		RecipientID: recipientID,
	})
	if err != nil {
		w.logger.Warn().Err(err).Msg("Failed to transmit chat message")
	}
}

// Status returns the current connection state.
func (w *Widget) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Waiting reports whether a sent message is still awaiting any server
// response (cleared by the next inbound chat message).
func (w *Widget) Waiting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.waiting
}

// Transcript returns a copy of the transcript in arrival order.
func (w *Widget) Transcript() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Entry, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// localUserID is the identity the transcript classifier compares senders
// against; guests compare against the guest id.
func (w *Widget) localUserID() chat.UserID {
	if w.opts.Identity != nil && w.opts.Identity.UserID != "" {
		return w.opts.Identity.UserID
	}
	return chat.GuestUserID
}

func (w *Widget) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			// Only tear down state if this loop still owns the active
			// connection. A loop outliving a Close/Open cycle must not nil
			// out the replacement connection.
			w.mu.Lock()
			stillCurrent := w.conn == conn
			if stillCurrent {
				w.conn = nil
			}
			w.mu.Unlock()

			// Channel dropped while the widget is open: degraded state until
			// the widget is closed and reopened.
			if stillCurrent {
				w.setStatus(StatusDisconnected)
			}
			return
		}

		w.handleFrame(frame)
	}
}

func (w *Widget) handleFrame(frame []byte) {
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frame, &env); err != nil {
		w.logger.Warn().Err(err).Msg("Server sent unparsable frame")
		return
	}

	switch env.Type {
	case chat.TypeChatMessage:
		var p chat.ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			w.logger.Warn().Err(err).Msg("Bad chat_message payload")
			return
		}

		origin := OriginSystem
		if p.Sender.UserID == w.localUserID() {
			origin = OriginUser
		}

		w.mu.Lock()
		w.waiting = false
		w.mu.Unlock()

		sender := p.Sender
		w.appendEntry(Entry{
			Origin:    origin,
			Text:      p.Message,
			Timestamp: p.Timestamp,
			Sender:    &sender,
		})

	case chat.TypeSystemMessage:
		var p chat.SystemPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			w.logger.Warn().Err(err).Msg("Bad system_message payload")
			return
		}
		w.appendEntry(Entry{Origin: OriginSystem, Text: p.Message, Timestamp: p.Timestamp})

	case chat.TypeError:
		var p chat.ErrorPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			w.logger.Warn().Err(err).Msg("Bad error payload")
			return
		}
		w.appendEntry(Entry{Origin: OriginSystem, Text: p.Message})
		w.notify(p.Message)

	case chat.TypeAuthSuccess:
		w.logger.Debug().Msg("Identity confirmed by server")

	default:
		// Forward compatibility: unrecognized server frames are ignored.
	}
}

// fallback is the send path while disconnected: no transmission, no retry,
// just a delayed local system entry plus a non-blocking warning.
func (w *Widget) fallback() {
	time.Sleep(w.opts.FallbackDelay)

	w.appendEntry(Entry{Origin: OriginSystem, Text: FallbackText})
	w.notify(FallbackText)
}

func (w *Widget) appendEntry(e Entry) {
	w.mu.Lock()
	w.transcript = append(w.transcript, e)
	cb := w.opts.OnEntry
	w.mu.Unlock()

	if cb != nil {
		cb(e)
	}
}

func (w *Widget) setStatus(s Status) {
	w.mu.Lock()
	changed := w.status != s
	w.status = s
	cb := w.opts.OnStatus
	w.mu.Unlock()

	if changed && cb != nil {
		cb(s)
	}
}

func (w *Widget) notify(text string) {
	if w.opts.OnNotice != nil {
		w.opts.OnNotice(text)
	}
}

func (w *Widget) writeJSON(v any) error {
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()

	if conn == nil {
		return websocket.ErrCloseSent
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	return conn.WriteJSON(v)
}
