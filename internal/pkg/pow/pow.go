/*
Package pow implements a Proof-of-Work (PoW) gate used as an anti-abuse
measure on account registration.

It manages the generation and validation of challenge nonces and the issuance
of temporary Proof Tokens upon successful validation.
*/
package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// TokenHeaderKey is the HTTP header key used by the client to send the Proof Token.
	TokenHeaderKey = "X-PoW-Token"

	// ProofTokenDuration is the validity period for the Proof Token issued after successful PoW validation.
	ProofTokenDuration = 30 * time.Second

	// NonceExpiryDuration is the validity period for the challenge Nonce.
	NonceExpiryDuration = 5 * time.Minute
)

// Manager handles the lifecycle of PoW challenges and Proof Tokens.
// It is concurrent-safe, using internal maps for active nonces and tokens.
type Manager struct {
	// difficulty is the required number of leading zeros for the challenge hash.
	difficulty int

	// nonceStore stores active nonces and their expiration times.
	nonceStore map[string]time.Time

	// tokenStore stores issued Proof Tokens and their expiration times.
	tokenStore map[string]time.Time

	// mu protects concurrent access to nonceStore and tokenStore.
	mu sync.RWMutex
}

// NewManager creates a Manager with the given challenge difficulty and starts
// a background goroutine that cleans up expired entries.
func NewManager(difficulty int) *Manager {
	mgr := &Manager{
		difficulty: difficulty,
		nonceStore: make(map[string]time.Time),
		tokenStore: make(map[string]time.Time),
	}

	go mgr.cleanupExpiredEntries()

	return mgr
}

// GenerateNonce generates a unique nonce for the PoW challenge and stores it
// for later validation.
func (m *Manager) GenerateNonce() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	nonce := uuid.New().String()
	m.nonceStore[nonce] = time.Now().Add(NonceExpiryDuration)
	return nonce
}

// ValidateProof checks that the nonce is valid and unexpired and that the
// SHA256 hash of nonce+counter carries the required number of leading zeros.
// On success the nonce is consumed and a temporary Proof Token is issued.
func (m *Manager) ValidateProof(nonce, counter string) (string, error) {
	m.mu.RLock()
	expiryTime, ok := m.nonceStore[nonce]
	m.mu.RUnlock()

	if !ok || time.Now().After(expiryTime) {
		return "", fmt.Errorf("nonce expired or invalid")
	}

	input := fmt.Sprintf("%s%s", nonce, counter)
	hash := sha256.Sum256([]byte(input))
	hashStr := hex.EncodeToString(hash[:])

	requiredPrefix := strings.Repeat("0", m.difficulty)
	if !strings.HasPrefix(hashStr, requiredPrefix) {
		return "", fmt.Errorf("proof does not meet difficulty requirement")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, stillExists := m.nonceStore[nonce]; !stillExists {
		return "", fmt.Errorf("nonce consumed by concurrent request")
	}

	delete(m.nonceStore, nonce)

	token := uuid.New().String()
	m.tokenStore[token] = time.Now().Add(ProofTokenDuration)
	return token, nil
}

// CheckProofToken reports whether the request carries a valid Proof Token,
// either in the X-PoW-Token header or the pow_token query parameter.
func (m *Manager) CheckProofToken(r *http.Request) bool {
	token := r.Header.Get(TokenHeaderKey)
	if token == "" {
		token = r.URL.Query().Get("pow_token")
	}

	if token == "" {
		return false
	}

	m.mu.RLock()
	expiryTime, ok := m.tokenStore[token]
	m.mu.RUnlock()

	if !ok || time.Now().After(expiryTime) {
		return false
	}

	return true
}

// cleanupExpiredEntries periodically removes expired nonces and tokens.
func (m *Manager) cleanupExpiredEntries() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()

		for nonce, expiry := range m.nonceStore {
			if now.After(expiry) {
				delete(m.nonceStore, nonce)
			}
		}

		for token, expiry := range m.tokenStore {
			if now.After(expiry) {
				delete(m.tokenStore, token)
			}
		}
		m.mu.Unlock()
	}
}
