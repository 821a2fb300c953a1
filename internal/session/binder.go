// Package session binds the current signing identity to the registry.
//
// The binding is a tagged state: either no identity, or a Handle built for the
// current identity. It is recomputed from scratch on every identity change and
// never patched, so a handle cannot outlive the identity it was built for.
package session

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"bookslib/internal/identity"
	"bookslib/internal/ledger"
)

var sessionBound = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "bookslib",
	Subsystem: "session",
	Name:      "bound",
	Help:      "1 when a registry handle is bound to an identity",
})

func init() {
	prometheus.MustRegister(sessionBound)
}

// Handle is a registry reference bound to one identity. It is never mutated.
type Handle struct {
	Address  common.Address
	ABI      abi.ABI
	Identity *identity.Identity
	Gateway  ledger.Gateway
}

// Connector builds the gateway for an identity.
type Connector func(id *identity.Identity) (ledger.Gateway, error)

// Config fixes the registry every handle is bound to.
type Config struct {
	Address common.Address
	ABI     abi.ABI
	Connect Connector
	Logger  zerolog.Logger
}

// Status is a read-only view of the binding.
type Status struct {
	Bound   bool
	Account string
	Err     string
}

// Binder holds the current binding.
type Binder struct {
	cfg Config

	mu     sync.RWMutex
	handle *Handle
	err    string
	subs   []func(Handle, bool)
}

// New returns a binder with no identity.
func New(cfg Config) *Binder {
	sessionBound.Set(0)
	return &Binder{cfg: cfg}
}

// Bind recomputes the binding for id. A nil id, or a failure to construct the
// gateway, leaves the binder without a handle.
func (b *Binder) Bind(id *identity.Identity) error {
	var (
		next *Handle
		err  error
	)
	if id != nil {
		var gw ledger.Gateway
		gw, err = b.cfg.Connect(id)
		if err == nil {
			next = &Handle{Address: b.cfg.Address, ABI: b.cfg.ABI, Identity: id, Gateway: gw}
		}
	}

	b.mu.Lock()
	b.handle = next
	b.err = ""
	if err != nil {
		b.err = err.Error()
	}
	subs := append([]func(Handle, bool){}, b.subs...)
	b.mu.Unlock()

	switch {
	case next != nil:
		sessionBound.Set(1)
		b.cfg.Logger.Info().Str("account", id.Address.Hex()).Str("registry", b.cfg.Address.Hex()).Msg("registry handle bound")
	case err != nil:
		sessionBound.Set(0)
		b.cfg.Logger.Error().Err(err).Str("account", id.Address.Hex()).Msg("registry handle construction failed")
	default:
		sessionBound.Set(0)
		b.cfg.Logger.Info().Msg("no identity; registry handle retracted")
	}

	h, ok := Handle{}, next != nil
	if ok {
		h = *next
	}
	for _, fn := range subs {
		fn(h, ok)
	}
	return err
}

// Run binds the provider's current identity and follows its changes until ctx ends.
func (b *Binder) Run(ctx context.Context, p identity.Provider) {
	ch, cancel := p.Subscribe()
	defer cancel()
	_ = b.Bind(p.Current())
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-ch:
			if !ok {
				return
			}
			_ = b.Bind(id)
		}
	}
}

// Current returns the bound handle, if any.
func (b *Binder) Current() (Handle, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.handle == nil {
		return Handle{}, false
	}
	return *b.handle, true
}

// OnChange registers fn to be called after every rebinding.
func (b *Binder) OnChange(fn func(h Handle, bound bool)) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Status reports the binding for status endpoints.
func (b *Binder) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	st := Status{Err: b.err}
	if b.handle != nil {
		st.Bound = true
		st.Account = b.handle.Identity.Address.Hex()
	}
	return st
}
