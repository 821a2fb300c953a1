package identity

import "sync"

// hub holds the latest identity and fans it out to subscribers.
type hub struct {
	mu     sync.Mutex
	cur    *Identity
	nextID int
	subs   map[int]chan *Identity
}

func (h *hub) current() *Identity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cur
}

func (h *hub) subscribe() (<-chan *Identity, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]chan *Identity)
	}
	id := h.nextID
	h.nextID++
	ch := make(chan *Identity, 1)
	h.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// set stores id and notifies subscribers. Returns false when the account did not change.
func (h *hub) set(id *Identity) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if Same(h.cur, id) {
		h.cur = id
		return false
	}
	h.cur = id
	for _, ch := range h.subs {
		// latest value only: drop a stale pending value before sending
		select {
		case <-ch:
		default:
		}
		ch <- id
	}
	return true
}
