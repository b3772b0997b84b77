/*
Package chat contains the real-time support chat subsystem: the connection
registry, the wire envelope protocol, and the hub that routes messages between
connected visitors and support staff.

This file defines the Registry, the single shared mutable resource of the
subsystem. It tracks every open connection and the identity attached to it.
*/
package chat

import "sync"

// Registry maps each live connection to its identity descriptor. Entries are
// created on connect with an empty (guest) identity, replaced wholesale on
// auth, and removed on disconnect. The registry is process-local state; it is
// owned by the Hub and never exposed for outside mutation.
//
// Connection goroutines run concurrently, so every operation takes the lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[*Client]Identity
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[*Client]Identity),
	}
}

// Register inserts the connection with an empty identity. Called exactly once
// per newly-opened connection, before any of its messages are processed.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[c] = Identity{}
}

// SetIdentity replaces the stored identity for the connection. The replace is
// total: fields absent from the new identity clear previously-set values.
// Unknown connections are ignored.
func (r *Registry) SetIdentity(c *Client, id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[c]; !ok {
		return
	}
	r.entries[c] = id
}

// Identity returns the identity stored for the connection. The second return
// reports whether the connection is registered.
func (r *Registry) Identity(c *Client) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.entries[c]
	return id, ok
}

// LookupByUserID scans all entries and returns one open connection whose
// identity matches the given user id. A user with several open connections
// (multiple tabs) gets exactly one of them. Returns nil when no connection
// matches or the id is empty.
func (r *Registry) LookupByUserID(userID UserID) *Client {
	if userID == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for c, id := range r.entries {
		if id.UserID == userID {
			return c
		}
	}
	return nil
}

// Deregister removes the connection. Removing an unknown connection is a
// no-op, not an error.
func (r *Registry) Deregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, c)
}

// Handles returns a snapshot of all currently-registered connections, used
// for broadcast fan-out. Connections that have gone non-ready since the
// snapshot are skipped at delivery time.
func (r *Registry) Handles() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles := make([]*Client, 0, len(r.entries))
	for c := range r.entries {
		handles = append(handles, c)
	}
	return handles
}

// Len reports the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
