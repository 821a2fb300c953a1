package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookslib/internal/forms"
	"bookslib/internal/ledger"
	"bookslib/internal/session"
)

// attempt is the in-flight record of one operation run.
type attempt struct {
	id      string
	op      Op
	handle  session.Handle
	started time.Time
	// form input as it was at Pending entry
	add    forms.AddItem
	itemID string
}

// Run triggers op and returns once the attempt has settled. The attempt is not
// cancelled when ctx ends; only ctx values are carried over.
func (m *Manager) Run(ctx context.Context, op Op) (Outcome, error) {
	a, err := m.begin(op)
	if err != nil {
		return Outcome{}, err
	}
	return m.execute(context.WithoutCancel(ctx), a), nil
}

// Trigger starts op in the background and returns its attempt id.
func (m *Manager) Trigger(op Op) (string, error) {
	a, err := m.begin(op)
	if err != nil {
		return "", err
	}
	go m.execute(context.Background(), a)
	return a.id, nil
}

// begin checks the preconditions and moves op to Pending: the error slot is
// cleared, the busy flag set and the form input captured in one critical section.
func (m *Manager) begin(op Op) (*attempt, error) {
	if _, err := ParseOp(string(op)); err != nil {
		return nil, err
	}
	h, ok := m.handles.Current()
	if !ok {
		rejectedTriggers.WithLabelValues("not_connected").Inc()
		m.log.Debug().Str("op", string(op)).Msg("trigger rejected: not connected")
		return nil, ErrNotConnected
	}

	m.mu.Lock()
	if m.busy[op] {
		m.mu.Unlock()
		rejectedTriggers.WithLabelValues("busy").Inc()
		return nil, ErrBusy(op)
	}
	a := &attempt{id: uuid.NewString(), op: op, handle: h, started: time.Now()}
	switch op {
	case OpAddItem:
		a.add = m.addItem.Get()
	case OpCheckOut:
		a.itemID = m.checkout.Get().ItemID
	case OpReturn:
		a.itemID = m.ret.Get().ItemID
	}
	m.slot = nil
	m.busy[op] = true
	m.attempts[op] = Attempt{ID: a.id, Op: op, State: AttemptPending, Started: a.started}
	m.wg.Add(1)
	m.mu.Unlock()

	opsInflight.WithLabelValues(string(op)).Inc()
	m.events.Publish(Event{Name: EventAttemptPending, Op: op, AttemptID: a.id})
	m.log.Info().Str("op", string(op)).Str("attempt_id", a.id).Str("account", accountOf(h)).Msg("attempt started")
	return a, nil
}

// execute performs the call and always finishes the attempt, even on panic.
func (m *Manager) execute(ctx context.Context, a *attempt) (out Outcome) {
	out = Outcome{AttemptID: a.id, Op: a.op}
	var res result
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Str("op", string(a.op)).Str("attempt_id", a.id).Interface("panic", r).Msg("attempt panicked")
			out.Succeeded = false
			out.Err = &ledger.CallError{Kind: ledger.KindUnknown, Reason: ledger.GenericReason, Err: fmt.Errorf("panic: %v", r)}
		}
		m.finish(a, res, &out)
	}()

	var err error
	res, err = m.perform(ctx, a)
	out.TxID = res.txID
	if err != nil {
		out.Err = ledger.Classify(err)
		return out
	}
	out.Succeeded = true
	out.Items = res.items
	return out
}

// finish applies the outcome: success effect or error slot write, then busy
// cleared. A failure overwrites whatever the slot holds.
func (m *Manager) finish(a *attempt, res result, out *Outcome) {
	now := time.Now()
	out.Duration = now.Sub(a.started)
	rec := Attempt{ID: a.id, Op: a.op, TxID: out.TxID, Started: a.started, Finished: now}

	m.mu.Lock()
	if out.Succeeded {
		rec.State = AttemptSucceeded
		if res.effect != nil {
			res.effect()
		}
	} else {
		rec.State = AttemptFailed
		rec.Err = out.Err
		m.slot = &ErrorSlot{Op: a.op, Kind: out.Err.Kind, Message: out.Err.Reason, At: now}
	}
	delete(m.busy, a.op)
	m.attempts[a.op] = rec
	m.mu.Unlock()
	m.wg.Done()

	outcome := "succeeded"
	if !out.Succeeded {
		outcome = "failed"
	}
	opsInflight.WithLabelValues(string(a.op)).Dec()
	opsTotal.WithLabelValues(string(a.op), outcome).Inc()
	opDuration.WithLabelValues(string(a.op)).Observe(out.Duration.Seconds())

	if out.Succeeded {
		m.events.Publish(Event{Name: EventAttemptSucceeded, Op: a.op, AttemptID: a.id, Fields: map[string]any{"tx": out.TxID}})
		m.log.Info().Str("op", string(a.op)).Str("attempt_id", a.id).Str("tx", out.TxID).Dur("dur", out.Duration).Msg("attempt succeeded")
		return
	}
	m.events.Publish(Event{Name: EventAttemptFailed, Op: a.op, AttemptID: a.id, Fields: map[string]any{"kind": string(out.Err.Kind), "reason": out.Err.Reason}})
	m.log.Warn().Err(out.Err.Err).Str("op", string(a.op)).Str("attempt_id", a.id).Str("kind", string(out.Err.Kind)).Str("reason", out.Err.Reason).Dur("dur", out.Duration).Msg("attempt failed")
}

func accountOf(h session.Handle) string {
	if h.Identity == nil {
		return ""
	}
	return h.Identity.Address.Hex()
}
