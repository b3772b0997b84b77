package chat

import (
	"sync"
	"testing"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	c := &Client{send: make(chan []byte, 1), closed: make(chan struct{})}

	r.Register(c)
	if r.Len() != 1 {
		t.Fatalf("Len = %d after register, want 1", r.Len())
	}

	id, ok := r.Identity(c)
	if !ok || id != (Identity{}) {
		t.Errorf("fresh entry identity = %+v ok=%v, want empty identity", id, ok)
	}

	r.SetIdentity(c, Identity{UserID: "5", Username: "sam"})
	if got := r.LookupByUserID("5"); got != c {
		t.Error("LookupByUserID did not return the identified connection")
	}

	r.Deregister(c)
	if r.Len() != 0 {
		t.Errorf("Len = %d after deregister, want 0", r.Len())
	}
	if got := r.LookupByUserID("5"); got != nil {
		t.Error("LookupByUserID returned a deregistered connection")
	}

	// Idempotent removal and ignored identity updates on unknown handles.
	r.Deregister(c)
	r.SetIdentity(c, Identity{UserID: "5"})
	if r.Len() != 0 {
		t.Errorf("operations on an unknown handle mutated the registry, Len = %d", r.Len())
	}
}

func TestRegistryLookupEmptyIDNeverMatches(t *testing.T) {
	r := NewRegistry()
	anon := &Client{send: make(chan []byte, 1), closed: make(chan struct{})}
	r.Register(anon)

	if got := r.LookupByUserID(""); got != nil {
		t.Error("empty user id matched an anonymous connection")
	}
}

func TestRegistryLookupReturnsSingleMatch(t *testing.T) {
	r := NewRegistry()

	// Same user in two tabs: only one connection is ever targeted.
	c1 := &Client{send: make(chan []byte, 1), closed: make(chan struct{})}
	c2 := &Client{send: make(chan []byte, 1), closed: make(chan struct{})}
	r.Register(c1)
	r.Register(c2)
	r.SetIdentity(c1, Identity{UserID: "9"})
	r.SetIdentity(c2, Identity{UserID: "9"})

	got := r.LookupByUserID("9")
	if got != c1 && got != c2 {
		t.Error("LookupByUserID returned a connection outside the matching set")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &Client{send: make(chan []byte, 1), closed: make(chan struct{})}
			r.Register(c)
			r.SetIdentity(c, Identity{UserID: "77"})
			r.LookupByUserID("77")
			r.Handles()
			r.Deregister(c)
		}()
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Errorf("registry leaked %d entries after concurrent churn", r.Len())
	}
}
