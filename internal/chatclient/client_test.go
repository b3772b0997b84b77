package chatclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"pawhaven/internal/app/chat"
)

// startChatServer runs a real hub behind an httptest server, mirroring the
// production websocket handler.
func startChatServer(t *testing.T) (*chat.Hub, string) {
	t.Helper()

	hub := chat.NewHub()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := chat.NewClient(hub, conn)
		go c.WritePump()
		hub.Register(c)
		c.ReadPump()
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func entriesWithText(w *Widget, text string) int {
	n := 0
	for _, e := range w.Transcript() {
		if e.Text == text {
			n++
		}
	}
	return n
}

func TestOpenTransitionsAndWelcome(t *testing.T) {
	_, url := startChatServer(t)

	var mu sync.Mutex
	var statuses []Status

	w := New(Options{
		URL: url,
		OnStatus: func(s Status) {
			mu.Lock()
			statuses = append(statuses, s)
			mu.Unlock()
		},
	})

	if w.Status() != StatusDisconnected {
		t.Fatalf("initial status = %v", w.Status())
	}

	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	if w.Status() != StatusConnected {
		t.Errorf("status after open = %v, want connected", w.Status())
	}

	mu.Lock()
	gotConnecting := len(statuses) > 0 && statuses[0] == StatusConnecting
	mu.Unlock()
	if !gotConnecting {
		t.Error("widget did not pass through the connecting state")
	}

	waitFor(t, "welcome banner", func() bool {
		return entriesWithText(w, chat.WelcomeText) == 1
	})

	entries := w.Transcript()
	if entries[0].Origin != OriginSystem {
		t.Errorf("welcome entry origin = %q, want system", entries[0].Origin)
	}
}

func TestOpenSendsAuthForKnownIdentity(t *testing.T) {
	hub, url := startChatServer(t)

	w := New(Options{
		URL:      url,
		Identity: &chat.Identity{UserID: "31", Username: "casey", IsAdmin: false},
	})
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	waitFor(t, "server-side identity registration", func() bool {
		return hub.Registry().LookupByUserID("31") != nil
	})
}

func TestSendAppendsOptimisticCopyAndServerEcho(t *testing.T) {
	_, url := startChatServer(t)

	w := New(Options{
		URL:      url,
		Identity: &chat.Identity{UserID: "8", Username: "rene"},
	})
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	w.Send("is Biscuit still available?")

	// Optimistic copy is appended synchronously.
	if n := entriesWithText(w, "is Biscuit still available?"); n != 1 {
		t.Fatalf("optimistic entries = %d, want 1", n)
	}
	if !w.Waiting() {
		t.Error("waiting indicator not set after send")
	}

	// The inclusive broadcast brings the same text back as a second,
	// server-confirmed copy; the two are not deduplicated.
	waitFor(t, "server echo", func() bool {
		return entriesWithText(w, "is Biscuit still available?") == 2
	})

	if w.Waiting() {
		t.Error("waiting indicator not cleared by inbound chat message")
	}

	var echo *Entry
	for i := range w.Transcript() {
		e := w.Transcript()[i]
		if e.Sender != nil && e.Text == "is Biscuit still available?" {
			echo = &e
		}
	}
	if echo == nil {
		t.Fatal("server echo entry carries no sender")
	}
	if echo.Origin != OriginUser {
		t.Errorf("echo origin = %q, want user (sender id matches local id)", echo.Origin)
	}
}

func TestInboundFromOthersIsSystemOrigin(t *testing.T) {
	hub, url := startChatServer(t)

	w := New(Options{URL: url, Identity: &chat.Identity{UserID: "8", Username: "rene"}})
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	waitFor(t, "registration", func() bool {
		return hub.Registry().LookupByUserID("8") != nil
	})

	other := New(Options{URL: url, Identity: &chat.Identity{UserID: "99", Username: "staff", IsAdmin: true}})
	if err := other.Open(context.Background()); err != nil {
		t.Fatalf("open second widget: %v", err)
	}
	defer other.Close()

	other.Send("Biscuit was adopted yesterday")

	waitFor(t, "staff message", func() bool {
		return entriesWithText(w, "Biscuit was adopted yesterday") == 1
	})

	for _, e := range w.Transcript() {
		if e.Text == "Biscuit was adopted yesterday" && e.Origin != OriginSystem {
			t.Errorf("foreign message origin = %q, want system", e.Origin)
		}
	}
}

func TestSendWhileDisconnectedFallsBack(t *testing.T) {
	var mu sync.Mutex
	var notices []string

	w := New(Options{
		URL:           "ws://127.0.0.1:1/ws",
		FallbackDelay: 20 * time.Millisecond,
		OnNotice: func(msg string) {
			mu.Lock()
			notices = append(notices, msg)
			mu.Unlock()
		},
	})

	w.Send("hello?")

	// Nothing immediately: the fallback entry is synthesized after the delay.
	if len(w.Transcript()) != 0 {
		t.Fatal("fallback entry appeared before the delay elapsed")
	}

	waitFor(t, "fallback transcript entry", func() bool {
		return entriesWithText(w, FallbackText) == 1
	})

	entries := w.Transcript()
	if entries[0].Origin != OriginSystem {
		t.Errorf("fallback entry origin = %q, want system", entries[0].Origin)
	}
	// The original text is not queued or retried.
	if entriesWithText(w, "hello?") != 0 {
		t.Error("unsent message text leaked into the transcript")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(notices) != 1 || notices[0] != FallbackText {
		t.Errorf("notices = %v, want one fallback warning", notices)
	}
}

func TestServerDropMovesWidgetToDisconnected(t *testing.T) {
	hub, url := startChatServer(t)

	w := New(Options{URL: url, Identity: &chat.Identity{UserID: "5", Username: "kim"}})
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	waitFor(t, "registration", func() bool {
		return hub.Registry().LookupByUserID("5") != nil
	})

	// Kill the server side of the connection.
	hub.Unregister(hub.Registry().LookupByUserID("5"))

	waitFor(t, "disconnected status", func() bool {
		return w.Status() == StatusDisconnected
	})
}

func TestStaleReadLoopDoesNotBreakReopenedSession(t *testing.T) {
	_, url := startChatServer(t)

	// Hold the first session's read loop inside the entry callback so the
	// widget can be closed and reopened while that loop is still alive.
	var gate sync.Once
	blocked := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var notices []string

	w := New(Options{
		URL:           url,
		Identity:      &chat.Identity{UserID: "12", Username: "val"},
		FallbackDelay: 20 * time.Millisecond,
		OnEntry: func(Entry) {
			gate.Do(func() {
				close(blocked)
				<-release
			})
		},
		OnNotice: func(msg string) {
			mu.Lock()
			notices = append(notices, msg)
			mu.Unlock()
		},
	})

	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}

	<-blocked

	w.Close()
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w.Close()

	// Let the stale loop observe its read error. It must not touch the
	// reopened session's connection.
	close(release)
	time.Sleep(50 * time.Millisecond)

	if w.Status() != StatusConnected {
		t.Fatalf("status after reopen = %v, want connected", w.Status())
	}

	w.Send("is anyone there?")

	// The reopened session transmits normally: optimistic copy plus server
	// echo, and no degraded-path warning.
	waitFor(t, "server echo on reopened session", func() bool {
		return entriesWithText(w, "is anyone there?") == 2
	})

	mu.Lock()
	defer mu.Unlock()
	if len(notices) != 0 {
		t.Errorf("reopened session raised fallback notices: %v", notices)
	}
}

func TestCloseThenReopenIsFreshSession(t *testing.T) {
	_, url := startChatServer(t)

	w := New(Options{URL: url})
	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}

	waitFor(t, "first welcome", func() bool {
		return entriesWithText(w, chat.WelcomeText) == 1
	})

	w.Close()
	if w.Status() != StatusDisconnected {
		t.Fatalf("status after close = %v", w.Status())
	}

	if err := w.Open(context.Background()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w.Close()

	// No history replay: the reopened session receives only a fresh welcome.
	waitFor(t, "second welcome", func() bool {
		return entriesWithText(w, chat.WelcomeText) == 2
	})
}
