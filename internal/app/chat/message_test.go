package chat

import (
	"encoding/json"
	"testing"
)

func TestUserIDAcceptsNumberAndString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want UserID
	}{
		{"number", `{"type":"auth","userId":12}`, "12"},
		{"string", `{"type":"auth","userId":"12"}`, "12"},
		{"null", `{"type":"auth","userId":null}`, ""},
		{"omitted", `{"type":"auth"}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env InboundEnvelope
			if err := json.Unmarshal([]byte(tc.in), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if env.UserID != tc.want {
				t.Errorf("userId = %q, want %q", env.UserID, tc.want)
			}
		})
	}
}

func TestSenderGuestDefaults(t *testing.T) {
	s := Identity{}.Sender()
	if s.UserID != GuestUserID || s.Username != GuestUsername || s.IsAdmin {
		t.Errorf("empty identity sender = %+v, want guest defaults", s)
	}

	s = Identity{UserID: "4", Username: "pat", IsAdmin: true}.Sender()
	if s.UserID != "4" || s.Username != "pat" || !s.IsAdmin {
		t.Errorf("identified sender = %+v, want fields carried through", s)
	}

	// Partial identity: only the missing fields fall back.
	s = Identity{UserID: "4"}.Sender()
	if s.UserID != "4" || s.Username != GuestUsername {
		t.Errorf("partial identity sender = %+v", s)
	}
}

func TestOutboundEnvelopeShape(t *testing.T) {
	raw, err := marshalEnvelope(TypeChatMessage, ChatPayload{
		ID:        3,
		Message:   "hi",
		Sender:    Sender{UserID: "guest", Username: "Guest"},
		Timestamp: "2026-01-02T15:04:05Z",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if _, ok := out["data"]; !ok {
		t.Error("outbound envelope missing data field")
	}

	var kind string
	if err := json.Unmarshal(out["type"], &kind); err != nil || kind != TypeChatMessage {
		t.Errorf("outbound type = %q (%v)", kind, err)
	}
}

func TestUserIDInt64(t *testing.T) {
	if n, ok := UserID("42").Int64(); !ok || n != 42 {
		t.Errorf("Int64(42) = %d, %v", n, ok)
	}
	if _, ok := UserID("guest").Int64(); ok {
		t.Error("Int64 accepted a non-numeric id")
	}
}
