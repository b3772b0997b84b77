package logx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnonymizeIP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"203.0.113.57:51234", "203.0.113.0"},
		{"203.0.113.57", "203.0.113.0"},
		{"[2001:db8:1234:5678:9abc:def0:1234:5678]:443", "2001:db8:1234:5678::"},
		{"127.0.0.1:8080", "127.0.0.1"},
		{"::1", "127.0.0.1"},
		{"not-an-address", "unknown_ip"},
		{"", "unknown_ip"},
	}

	for _, c := range cases {
		if got := anonymizeIP(c.in); got != c.want {
			t.Errorf("anonymizeIP(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	var sawRequest bool
	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequest = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.RemoteAddr = "203.0.113.57:51234"
	h.ServeHTTP(rec, req)

	if !sawRequest {
		t.Fatal("wrapped handler was not invoked")
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
