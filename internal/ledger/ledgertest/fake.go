// Package ledgertest provides an in-memory ledger.Gateway for tests.
package ledgertest

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"bookslib/internal/ledger"
)

// Call records one gateway invocation.
type Call struct {
	Method string
	Args   []string
}

// Gateway is a scriptable ledger.Gateway. Failures and holds are keyed by
// contract method name (ledger.MethodAddBook, ...).
type Gateway struct {
	mu        sync.Mutex
	calls     []Call
	submitErr map[string]error
	settleErr map[string]error
	holds     map[string]chan struct{}
	items     []string
	seq       int
}

// New returns a gateway where every call succeeds and the item list is empty.
func New() *Gateway {
	return &Gateway{
		submitErr: make(map[string]error),
		settleErr: make(map[string]error),
		holds:     make(map[string]chan struct{}),
	}
}

// FailSubmit makes the next calls of method fail before a submission exists.
func (g *Gateway) FailSubmit(method string, err error) {
	g.mu.Lock()
	g.submitErr[method] = err
	g.mu.Unlock()
}

// FailSettle makes submissions of method fail while settling.
func (g *Gateway) FailSettle(method string, err error) {
	g.mu.Lock()
	g.settleErr[method] = err
	g.mu.Unlock()
}

// SetItems sets the list returned by ListAvailable.
func (g *Gateway) SetItems(items ...string) {
	g.mu.Lock()
	g.items = append([]string{}, items...)
	g.mu.Unlock()
}

// Hold blocks settlement of method (or the list call itself) until release is called.
func (g *Gateway) Hold(method string) (release func()) {
	ch := make(chan struct{})
	g.mu.Lock()
	g.holds[method] = ch
	g.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			if g.holds[method] == ch {
				delete(g.holds, method)
			}
			g.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns the recorded calls in order.
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

func (g *Gateway) AddItem(ctx context.Context, author, title string, copies *big.Int) (ledger.Submission, error) {
	return g.submit(ledger.MethodAddBook, author, title, copies.String())
}

func (g *Gateway) CheckOut(ctx context.Context, itemID *big.Int) (ledger.Submission, error) {
	return g.submit(ledger.MethodBorrowBook, itemID.String())
}

func (g *Gateway) ReturnItem(ctx context.Context, itemID *big.Int) (ledger.Submission, error) {
	return g.submit(ledger.MethodReturnBook, itemID.String())
}

func (g *Gateway) ListAvailable(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, Call{Method: ledger.MethodAvailableList})
	hold := g.holds[ledger.MethodAvailableList]
	err := g.submitErr[ledger.MethodAvailableList]
	g.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string{}, g.items...), nil
}

func (g *Gateway) submit(method string, args ...string) (ledger.Submission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Call{Method: method, Args: args})
	if err := g.submitErr[method]; err != nil {
		return nil, err
	}
	g.seq++
	return &submission{g: g, method: method, id: fmt.Sprintf("0x%064x", g.seq)}, nil
}

type submission struct {
	g      *Gateway
	method string
	id     string
}

func (s *submission) ID() string { return s.id }

func (s *submission) Wait(ctx context.Context) error {
	s.g.mu.Lock()
	hold := s.g.holds[s.method]
	s.g.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	return s.g.settleErr[s.method]
}
