package ledger

import (
	"context"
	"math/big"
)

// Submission is an accepted state-changing call awaiting settlement.
type Submission interface {
	// ID identifies the submitted transaction (a hash for on-chain submissions).
	ID() string
	// Wait blocks until the call is settled or ctx ends.
	Wait(ctx context.Context) error
}

// Gateway is the remote registry bound to one identity.
type Gateway interface {
	AddItem(ctx context.Context, author, title string, copies *big.Int) (Submission, error)
	CheckOut(ctx context.Context, itemID *big.Int) (Submission, error)
	ReturnItem(ctx context.Context, itemID *big.Int) (Submission, error)
	ListAvailable(ctx context.Context) ([]string, error)
}
