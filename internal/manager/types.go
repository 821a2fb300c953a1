package manager

import (
	"time"

	"bookslib/internal/forms"
	"bookslib/internal/ledger"
)

// Op names one of the four operations.
type Op string

const (
	OpAddItem       Op = "add"
	OpCheckOut      Op = "checkout"
	OpReturn        Op = "return"
	OpListAvailable Op = "list"
)

// Ops lists every operation in presentation order.
var Ops = []Op{OpAddItem, OpCheckOut, OpReturn, OpListAvailable}

// ParseOp resolves an operation name.
func ParseOp(s string) (Op, error) {
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", unknownOperationError{name: s}
}

// FormID names one of the three forms.
type FormID string

const (
	FormAddItem  FormID = "add"
	FormCheckout FormID = "checkout"
	FormReturn   FormID = "return"
)

// ParseForm resolves a form name.
func ParseForm(s string) (FormID, error) {
	switch f := FormID(s); f {
	case FormAddItem, FormCheckout, FormReturn:
		return f, nil
	}
	return "", unknownFormError{name: s}
}

// AttemptState is the lifecycle state of one attempt.
type AttemptState string

const (
	AttemptPending   AttemptState = "pending"
	AttemptSucceeded AttemptState = "succeeded"
	AttemptFailed    AttemptState = "failed"
)

// Attempt records one run of an operation.
type Attempt struct {
	ID       string
	Op       Op
	State    AttemptState
	TxID     string
	Err      *ledger.CallError
	Started  time.Time
	Finished time.Time
}

// Outcome is what Run returns once an attempt has left Pending.
type Outcome struct {
	AttemptID string
	Op        Op
	Succeeded bool
	TxID      string
	// Err is set when the attempt failed; its Reason is what the error slot shows.
	Err      *ledger.CallError
	Items    []string
	Duration time.Duration
}

// ErrorSlot is the single, last-write-wins failure channel.
type ErrorSlot struct {
	Op      Op
	Kind    ledger.Kind
	Message string
	At      time.Time
}

// Snapshot is a read-only projection of the controller state.
type Snapshot struct {
	Connected bool
	Account   string
	AddItem   forms.AddItem
	Checkout  forms.ItemRef
	Return    forms.ItemRef
	Busy      map[Op]bool
	Error     *ErrorSlot
	Items     []string
	Attempts  map[Op]Attempt
}
