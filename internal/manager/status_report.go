package manager

import (
	"bookslib/internal/session"
	"bookslib/pkg/types"
)

// sessionStatuser is implemented by sources that can explain a missing handle.
type sessionStatuser interface {
	Status() session.Status
}

// Snapshot returns a read-only view of the controller state.
func (m *Manager) Snapshot() Snapshot {
	h, connected := m.handles.Current()
	snap := Snapshot{
		Connected: connected,
		Busy:      make(map[Op]bool, len(Ops)),
		Attempts:  make(map[Op]Attempt, len(Ops)),
	}
	if connected {
		snap.Account = accountOf(h)
	}
	// forms are reset under m.mu, so read them there to stay consistent with busy
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap.AddItem = m.addItem.Get()
	snap.Checkout = m.checkout.Get()
	snap.Return = m.ret.Get()
	for _, op := range Ops {
		snap.Busy[op] = m.busy[op]
		if a, ok := m.attempts[op]; ok {
			snap.Attempts[op] = a
		}
	}
	if m.slot != nil {
		s := *m.slot
		snap.Error = &s
	}
	snap.Items = append([]string{}, m.items...)
	return snap
}

// Status builds the presentation payload for GET /state.
func (m *Manager) Status() types.StateResponse {
	snap := m.Snapshot()
	resp := types.StateResponse{
		Connected: snap.Connected,
		Account:   snap.Account,
		Registry:  m.registry,
		Forms: types.FormsState{
			AddItem:  types.AddItemForm{Author: snap.AddItem.Author, Title: snap.AddItem.Title, Copies: snap.AddItem.Copies},
			Checkout: types.ItemRefForm{ItemID: snap.Checkout.ItemID},
			Return:   types.ItemRefForm{ItemID: snap.Return.ItemID},
		},
		Busy:           make(map[string]bool, len(snap.Busy)),
		AvailableItems: snap.Items,
		ShowResults:    len(snap.Items) > 0,
	}
	if ss, ok := m.handles.(sessionStatuser); ok {
		resp.SessionError = ss.Status().Err
	}
	for op, busy := range snap.Busy {
		resp.Busy[string(op)] = busy
	}
	if e := snap.Error; e != nil {
		resp.Error = &types.ErrorBanner{Message: e.Message, Kind: string(e.Kind), Op: string(e.Op), AtUnix: e.At.Unix()}
	}
	if len(snap.Attempts) > 0 {
		resp.Attempts = make(map[string]types.AttemptStatus, len(snap.Attempts))
		for op, a := range snap.Attempts {
			resp.Attempts[string(op)] = AttemptStatus(a)
		}
	}
	return resp
}

// AttemptStatus converts an attempt record to its wire form.
func AttemptStatus(a Attempt) types.AttemptStatus {
	st := types.AttemptStatus{ID: a.ID, Op: string(a.Op), State: string(a.State), TxID: a.TxID, StartedUnix: a.Started.Unix()}
	if !a.Finished.IsZero() {
		st.DurationMS = a.Finished.Sub(a.Started).Milliseconds()
	}
	if a.Err != nil {
		st.Reason = a.Err.Reason
		st.Kind = string(a.Err.Kind)
	}
	return st
}

// OutcomeResponse converts a settled outcome to the POST /ops payload.
func OutcomeResponse(o Outcome) types.OpResponse {
	resp := types.OpResponse{AttemptID: o.AttemptID, Op: string(o.Op), TxID: o.TxID, Items: o.Items}
	if o.Succeeded {
		resp.State = string(AttemptSucceeded)
		return resp
	}
	resp.State = string(AttemptFailed)
	if o.Err != nil {
		resp.Reason = o.Err.Reason
		resp.Kind = string(o.Err.Kind)
	}
	return resp
}
