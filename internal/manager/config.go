package manager

import (
	"github.com/rs/zerolog"

	"bookslib/internal/session"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	// defaultMaxCopies bounds the copies field to a uint32.
	defaultMaxCopies uint64 = 1<<32 - 1
)

// HandleSource supplies the current registry handle. *session.Binder implements it.
type HandleSource interface {
	Current() (session.Handle, bool)
}

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Handles HandleSource
	// Registry is the configured registry address, shown while disconnected.
	Registry  string
	MaxCopies uint64
	Events    EventPublisher
	Logger    *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := newManager()
	m.handles = cfg.Handles
	if m.handles == nil {
		m.handles = noHandles{}
	}
	m.registry = cfg.Registry
	if cfg.MaxCopies == 0 {
		m.maxCopies = defaultMaxCopies
	} else {
		m.maxCopies = cfg.MaxCopies
	}
	if cfg.Events != nil {
		m.events = cfg.Events
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	return m
}

// noHandles is the source used when none is configured: always disconnected.
type noHandles struct{}

func (noHandles) Current() (session.Handle, bool) { return session.Handle{}, false }
