package manager

import (
	"context"
	"fmt"

	"bookslib/internal/ledger"
)

// result carries what a successful call changes; effect runs under m.mu.
type result struct {
	txID   string
	items  []string
	effect func()
}

// perform parses the input captured by begin, calls the registry and awaits settlement.
func (m *Manager) perform(ctx context.Context, a *attempt) (result, error) {
	gw := a.handle.Gateway
	switch a.op {
	case OpAddItem:
		in := a.add
		copies, err := parseCopies(in.Copies, m.maxCopies)
		if err != nil {
			return result{}, err
		}
		sub, err := gw.AddItem(ctx, in.Author, in.Title, copies)
		return m.settle(ctx, a, sub, err, m.addItem.Reset)
	case OpCheckOut:
		id, err := parseItemID(a.itemID)
		if err != nil {
			return result{}, err
		}
		sub, err := gw.CheckOut(ctx, id)
		return m.settle(ctx, a, sub, err, m.checkout.Reset)
	case OpReturn:
		id, err := parseItemID(a.itemID)
		if err != nil {
			return result{}, err
		}
		sub, err := gw.ReturnItem(ctx, id)
		return m.settle(ctx, a, sub, err, m.ret.Reset)
	case OpListAvailable:
		items, err := gw.ListAvailable(ctx)
		if err != nil {
			return result{}, err
		}
		if items == nil {
			items = []string{}
		}
		return result{items: items, effect: func() { m.items = items }}, nil
	}
	return result{}, fmt.Errorf("no call bound to operation %q", a.op)
}

// settle awaits a submission. The form is reset only after settlement succeeds.
func (m *Manager) settle(ctx context.Context, a *attempt, sub ledger.Submission, submitErr error, reset func()) (result, error) {
	if submitErr != nil {
		return result{}, submitErr
	}
	res := result{txID: sub.ID()}
	m.log.Debug().Str("op", string(a.op)).Str("attempt_id", a.id).Str("tx", res.txID).Msg("submitted; awaiting settlement")
	if err := sub.Wait(ctx); err != nil {
		return res, err
	}
	res.effect = reset
	return res, nil
}
