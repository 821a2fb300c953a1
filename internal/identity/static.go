package identity

// Static is a Provider whose identity is set explicitly (tests, one-shot CLI commands).
type Static struct {
	h hub
}

// NewStatic returns a provider holding id (nil for none).
func NewStatic(id *Identity) *Static {
	s := &Static{}
	s.h.cur = id
	return s
}

func (s *Static) Current() *Identity                    { return s.h.current() }
func (s *Static) Subscribe() (<-chan *Identity, func()) { return s.h.subscribe() }

// Set replaces the identity, notifying subscribers when the account changes.
func (s *Static) Set(id *Identity) { s.h.set(id) }

// Clear removes the identity.
func (s *Static) Clear() { s.h.set(nil) }
