package chat

import (
	"encoding/json"
	"testing"
	"time"
)

// testClient creates a client that is never attached to a real connection;
// frames queued by the hub are read straight off the send channel.
func testClient(h *Hub) *Client {
	return NewClient(h, nil)
}

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// takeFrame pops one queued frame. Hub handling is synchronous, so anything
// the hub produced is already in the queue.
func takeFrame(t *testing.T, c *Client) frame {
	t.Helper()

	select {
	case raw := <-c.send:
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("queued frame is not valid JSON: %v", err)
		}
		return f
	default:
		t.Fatal("expected a queued frame, send queue is empty")
		return frame{}
	}
}

func queuedFrames(c *Client) int {
	return len(c.send)
}

// drain discards everything currently queued (welcome banners, acks).
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func authAs(t *testing.T, h *Hub, c *Client, userID, username string, isAdmin bool) {
	t.Helper()

	env := map[string]any{
		"type":     TypeAuth,
		"userId":   userID,
		"username": username,
		"isAdmin":  isAdmin,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal auth envelope: %v", err)
	}
	h.HandleInbound(c, raw)
	drain(c)
}

func sendChat(t *testing.T, h *Hub, c *Client, message, recipientID string) {
	t.Helper()

	env := map[string]any{
		"type":    TypeChatMessage,
		"message": message,
	}
	if recipientID != "" {
		env["recipientId"] = recipientID
	}
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal chat envelope: %v", err)
	}
	h.HandleInbound(c, raw)
}

func chatPayload(t *testing.T, f frame) ChatPayload {
	t.Helper()

	if f.Type != TypeChatMessage {
		t.Fatalf("expected %q frame, got %q", TypeChatMessage, f.Type)
	}
	var p ChatPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		t.Fatalf("decode chat payload: %v", err)
	}
	return p
}

func TestRegisterSendsWelcomeAndEmptyIdentity(t *testing.T) {
	h := NewHub()
	c := testClient(h)

	h.Register(c)

	id, ok := h.Registry().Identity(c)
	if !ok {
		t.Fatal("connection not present in registry after Register")
	}
	if id != (Identity{}) {
		t.Errorf("expected empty identity after register, got %+v", id)
	}

	f := takeFrame(t, c)
	if f.Type != TypeSystemMessage {
		t.Fatalf("expected welcome %q, got %q", TypeSystemMessage, f.Type)
	}

	var p SystemPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		t.Fatalf("decode system payload: %v", err)
	}
	if p.Message != WelcomeText {
		t.Errorf("welcome text = %q, want %q", p.Message, WelcomeText)
	}
	if _, err := time.Parse(time.RFC3339, p.Timestamp); err != nil {
		t.Errorf("welcome timestamp %q is not RFC3339: %v", p.Timestamp, err)
	}

	if n := queuedFrames(c); n != 0 {
		t.Errorf("expected exactly one frame after register, %d more queued", n)
	}
}

func TestAuthSuccessEchoesIdentity(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	h.HandleInbound(c, []byte(`{"type":"auth","userId":7,"username":"dana","isAdmin":true}`))

	f := takeFrame(t, c)
	if f.Type != TypeAuthSuccess {
		t.Fatalf("expected %q, got %q", TypeAuthSuccess, f.Type)
	}

	var id Identity
	if err := json.Unmarshal(f.Data, &id); err != nil {
		t.Fatalf("decode auth_success data: %v", err)
	}
	if id.UserID != "7" || id.Username != "dana" || !id.IsAdmin {
		t.Errorf("auth_success echoed %+v, want userId=7 username=dana isAdmin=true", id)
	}
}

func TestIdentityReplaceNotMerge(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	h.HandleInbound(c, []byte(`{"type":"auth","userId":1,"username":"alice","isAdmin":false}`))
	drain(c)

	// Second auth omits userId; the replace must clear it.
	h.HandleInbound(c, []byte(`{"type":"auth","username":"x"}`))
	drain(c)

	id, _ := h.Registry().Identity(c)
	if id.UserID != "" {
		t.Errorf("userId = %q after partial re-auth, want empty (replace, not merge)", id.UserID)
	}
	if id.Username != "x" {
		t.Errorf("username = %q, want %q", id.Username, "x")
	}
}

func TestBroadcastIsInclusive(t *testing.T) {
	h := NewHub()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = testClient(h)
		h.Register(clients[i])
		drain(clients[i])
	}

	sendChat(t, h, clients[0], "hello everyone", "")

	for i, c := range clients {
		f := takeFrame(t, c)
		p := chatPayload(t, f)
		if p.Message != "hello everyone" {
			t.Errorf("client %d got message %q", i, p.Message)
		}
		if n := queuedFrames(c); n != 0 {
			t.Errorf("client %d received %d extra deliveries", i, n)
		}
	}
}

func TestBroadcastSkipsNonReadyConnections(t *testing.T) {
	h := NewHub()

	sender := testClient(h)
	healthy := testClient(h)
	closedOut := testClient(h)
	backedUp := testClient(h)
	for _, c := range []*Client{sender, healthy, closedOut, backedUp} {
		h.Register(c)
		drain(c)
	}

	// One connection already torn down, one with a full write queue.
	closedOut.Close()
	for i := 0; i < sendQueueSize; i++ {
		backedUp.send <- []byte(`{"type":"system_message","data":{}}`)
	}

	sendChat(t, h, sender, "adoption day saturday", "")

	// The ready connections still get their deliveries.
	for i, c := range []*Client{sender, healthy} {
		p := chatPayload(t, takeFrame(t, c))
		if p.Message != "adoption day saturday" {
			t.Errorf("ready client %d got message %q", i, p.Message)
		}
	}

	// The closed connection is skipped entirely.
	if n := queuedFrames(closedOut); n != 0 {
		t.Errorf("closed connection had %d frames queued", n)
	}
	if closedOut.TrySend([]byte("x")) {
		t.Error("TrySend reported success on a closed connection")
	}

	// The saturated queue is left as it was: the new frame is dropped, the
	// fan-out does not block or abort.
	if n := queuedFrames(backedUp); n != sendQueueSize {
		t.Errorf("saturated queue length = %d, want %d", n, sendQueueSize)
	}
}

func TestAnonymousSenderIsGuest(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	sendChat(t, h, c, "anyone there?", "")

	p := chatPayload(t, takeFrame(t, c))
	if p.Sender.UserID != GuestUserID || p.Sender.Username != GuestUsername || p.Sender.IsAdmin {
		t.Errorf("anonymous sender = %+v, want guest defaults", p.Sender)
	}
}

func TestPrivateMessageUnicastPlusEcho(t *testing.T) {
	h := NewHub()
	a := testClient(h)
	b := testClient(h)
	c := testClient(h)
	for _, cl := range []*Client{a, b, c} {
		h.Register(cl)
		drain(cl)
	}

	authAs(t, h, a, "1", "alice", false)
	authAs(t, h, b, "2", "bob", false)
	// c stays anonymous.

	sendChat(t, h, a, "hi", "2")

	got := chatPayload(t, takeFrame(t, b))
	if got.Sender.Username != "alice" {
		t.Errorf("recipient saw sender %q, want alice", got.Sender.Username)
	}
	if got.Message != "hi" {
		t.Errorf("recipient got message %q", got.Message)
	}

	echo := chatPayload(t, takeFrame(t, a))
	if echo.ID != got.ID || echo.Message != got.Message {
		t.Errorf("sender echo %+v differs from delivered message %+v", echo, got)
	}

	if n := queuedFrames(c); n != 0 {
		t.Errorf("third connection received %d deliveries from a private exchange", n)
	}
	if n := queuedFrames(a) + queuedFrames(b); n != 0 {
		t.Errorf("private send produced %d deliveries beyond recipient+echo", n+2)
	}
}

func TestPrivateMissIsSilent(t *testing.T) {
	h := NewHub()
	a := testClient(h)
	b := testClient(h)
	h.Register(a)
	h.Register(b)
	drain(a)
	drain(b)
	authAs(t, h, a, "1", "alice", false)

	sendChat(t, h, a, "hello?", "99")

	if n := queuedFrames(a); n != 0 {
		t.Errorf("sender received %d frames after a private miss, want 0 (no echo, no error)", n)
	}
	if n := queuedFrames(b); n != 0 {
		t.Errorf("bystander received %d frames after a private miss", n)
	}
}

func TestMalformedPayloadKeepsConnectionUsable(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	h.HandleInbound(c, []byte("this is not json"))

	f := takeFrame(t, c)
	if f.Type != TypeError {
		t.Fatalf("expected %q frame, got %q", TypeError, f.Type)
	}
	var p ErrorPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if p.Message != ErrInvalidFormat {
		t.Errorf("error message = %q, want %q", p.Message, ErrInvalidFormat)
	}
	if n := queuedFrames(c); n != 0 {
		t.Errorf("malformed payload produced %d extra frames", n)
	}

	// The connection must still work.
	sendChat(t, h, c, "still here", "")
	p2 := chatPayload(t, takeFrame(t, c))
	if p2.Message != "still here" {
		t.Errorf("follow-up chat delivered %q", p2.Message)
	}
}

func TestUnknownTypeIsIgnored(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	h.HandleInbound(c, []byte(`{"type":"typing_indicator","state":"on"}`))

	if n := queuedFrames(c); n != 0 {
		t.Errorf("unknown envelope type produced %d frames, want silence", n)
	}
}

func TestDisconnectCleanup(t *testing.T) {
	h := NewHub()
	a := testClient(h)
	b := testClient(h)
	h.Register(a)
	h.Register(b)
	drain(a)
	drain(b)
	authAs(t, h, a, "1", "alice", false)

	h.Unregister(a)

	if got := h.Registry().LookupByUserID("1"); got != nil {
		t.Error("deregistered connection still returned by LookupByUserID")
	}
	for _, handle := range h.Registry().Handles() {
		if handle == a {
			t.Error("deregistered connection still present in Handles snapshot")
		}
	}

	sendChat(t, h, b, "after the fact", "")
	if n := queuedFrames(a); n != 0 {
		t.Errorf("closed connection received %d broadcast frames", n)
	}
	if f := takeFrame(t, b); f.Type != TypeChatMessage {
		t.Errorf("surviving connection got %q frame, want chat_message", f.Type)
	}

	// Deregistering twice is a no-op.
	h.Unregister(a)
}

func TestMessageIDsIncrease(t *testing.T) {
	h := NewHub()
	c := testClient(h)
	h.Register(c)
	drain(c)

	sendChat(t, h, c, "one", "")
	first := chatPayload(t, takeFrame(t, c))
	sendChat(t, h, c, "two", "")
	second := chatPayload(t, takeFrame(t, c))

	if second.ID <= first.ID {
		t.Errorf("message ids not increasing: %d then %d", first.ID, second.ID)
	}
}

func TestNumericRecipientIDMatchesNumericAuth(t *testing.T) {
	h := NewHub()
	a := testClient(h)
	b := testClient(h)
	h.Register(a)
	h.Register(b)
	drain(a)
	drain(b)

	// Browser clients send ids as JSON numbers.
	h.HandleInbound(b, []byte(`{"type":"auth","userId":42,"username":"staff","isAdmin":true}`))
	drain(b)

	h.HandleInbound(a, []byte(`{"type":"chat_message","message":"help","recipientId":42}`))

	got := chatPayload(t, takeFrame(t, b))
	if got.Message != "help" {
		t.Errorf("numeric-id recipient got %q", got.Message)
	}
	echo := chatPayload(t, takeFrame(t, a))
	if echo.ID != got.ID {
		t.Errorf("sender echo id %d differs from delivered id %d", echo.ID, got.ID)
	}
}
