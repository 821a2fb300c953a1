package manager

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"bookslib/internal/forms"
)

type Manager struct {
	mu        sync.RWMutex
	handles   HandleSource
	registry  string
	maxCopies uint64

	addItem  *forms.Store[forms.AddItem]
	checkout *forms.Store[forms.ItemRef]
	ret      *forms.Store[forms.ItemRef]

	items    []string
	busy     map[Op]bool
	slot     *ErrorSlot
	attempts map[Op]Attempt

	events EventPublisher
	log    zerolog.Logger
	// in-flight attempts, for Drain
	wg sync.WaitGroup
}

// New constructs a Manager reading handles from src.
func New(src HandleSource) *Manager {
	return NewWithConfig(ManagerConfig{Handles: src})
}

func newManager() *Manager {
	return &Manager{
		addItem:  forms.NewAddItem(),
		checkout: forms.NewCheckout(),
		ret:      forms.NewReturn(),
		items:    []string{},
		busy:     make(map[Op]bool),
		attempts: make(map[Op]Attempt),
		events:   noopPublisher{},
		log:      zerolog.Nop(),
	}
}

// Ready reports whether a registry handle is bound, i.e. triggers are enabled.
func (m *Manager) Ready() bool {
	_, ok := m.handles.Current()
	return ok
}

// Busy reports whether op is pending.
func (m *Manager) Busy(op Op) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.busy[op]
}

// AvailableItems returns a copy of the latest fetched items.
func (m *Manager) AvailableItems() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.items...)
}

// Error returns the error slot, or nil when it is empty.
func (m *Manager) Error() *ErrorSlot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.slot == nil {
		return nil
	}
	s := *m.slot
	return &s
}

// DismissError clears the error slot.
func (m *Manager) DismissError() {
	m.mu.Lock()
	had := m.slot != nil
	m.slot = nil
	m.mu.Unlock()
	if had {
		m.events.Publish(Event{Name: EventErrorDismissed})
	}
}

// Drain waits for attempts started by Trigger to finish, or for ctx to end.
func (m *Manager) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
