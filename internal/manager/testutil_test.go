package manager

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookslib/internal/ledger/ledgertest"
	"bookslib/internal/session"
)

// fakeHandles is a switchable HandleSource.
type fakeHandles struct {
	mu sync.Mutex
	h  session.Handle
	ok bool
}

func (f *fakeHandles) Current() (session.Handle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.h, f.ok
}

func (f *fakeHandles) set(h session.Handle, ok bool) {
	f.mu.Lock()
	f.h, f.ok = h, ok
	f.mu.Unlock()
}

// newBound returns a manager bound to a fresh fake gateway.
func newBound(t *testing.T) (*Manager, *ledgertest.Gateway, *MemoryPublisher) {
	t.Helper()
	gw := ledgertest.New()
	src := &fakeHandles{h: session.Handle{Gateway: gw}, ok: true}
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{Handles: src, Events: pub})
	return m, gw, pub
}

func setField(t *testing.T, m *Manager, form FormID, name, value string) {
	t.Helper()
	if err := m.UpdateField(form, name, value); err != nil {
		t.Fatalf("UpdateField(%s, %s): %v", form, name, err)
	}
}

func drain(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}
}

// waitCalls waits until gw has recorded at least n calls.
func waitCalls(t *testing.T, gw *ledgertest.Gateway, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(gw.Calls()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d gateway calls; got %d", n, len(gw.Calls()))
		}
		time.Sleep(2 * time.Millisecond)
	}
}
