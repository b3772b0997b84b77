package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// solve brute-forces a counter whose hash meets the difficulty.
func solve(nonce string, difficulty int) string {
	prefix := strings.Repeat("0", difficulty)
	for i := 0; ; i++ {
		counter := strconv.Itoa(i)
		hash := sha256.Sum256([]byte(nonce + counter))
		if strings.HasPrefix(hex.EncodeToString(hash[:]), prefix) {
			return counter
		}
	}
}

func TestProofRoundTrip(t *testing.T) {
	m := NewManager(1)

	nonce := m.GenerateNonce()
	counter := solve(nonce, 1)

	token, err := m.ValidateProof(nonce, counter)
	if err != nil {
		t.Fatalf("ValidateProof: %v", err)
	}

	r := httptest.NewRequest("POST", "/api/auth/register", nil)
	r.Header.Set(TokenHeaderKey, token)
	if !m.CheckProofToken(r) {
		t.Error("freshly issued proof token rejected")
	}

	// A nonce is single-use.
	if _, err := m.ValidateProof(nonce, counter); err == nil {
		t.Error("consumed nonce validated a second time")
	}
}

func TestInvalidProofRejected(t *testing.T) {
	m := NewManager(4)

	if _, err := m.ValidateProof("never-issued", "0"); err == nil {
		t.Error("unknown nonce accepted")
	}

	nonce := m.GenerateNonce()
	if _, err := m.ValidateProof(nonce, "not-a-solution"); err == nil {
		t.Error("wrong counter accepted at difficulty 4")
	}
}

func TestMissingTokenRejected(t *testing.T) {
	m := NewManager(1)

	r := httptest.NewRequest("POST", "/api/auth/register", nil)
	if m.CheckProofToken(r) {
		t.Error("request without token passed the proof check")
	}
}
