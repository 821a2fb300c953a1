package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend is what Contract needs from a node connection (an *ethclient.Client).
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Contract is a Gateway over a deployed registry contract, signing with one key.
type Contract struct {
	address common.Address
	abi     abi.ABI
	backend Backend
	bound   *bind.BoundContract
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
}

// NewContract binds the registry at address for the given signing key.
func NewContract(backend Backend, address common.Address, parsed abi.ABI, key *ecdsa.PrivateKey, chainID *big.Int) (*Contract, error) {
	if backend == nil {
		return nil, errors.New("nil backend")
	}
	if key == nil {
		return nil, errors.New("nil signing key")
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain id %v", chainID)
	}
	return &Contract{
		address: address,
		abi:     parsed,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: new(big.Int).Set(chainID),
	}, nil
}

func (c *Contract) AddItem(ctx context.Context, author, title string, copies *big.Int) (Submission, error) {
	return c.transact(ctx, MethodAddBook, author, title, copies)
}

func (c *Contract) CheckOut(ctx context.Context, itemID *big.Int) (Submission, error) {
	return c.transact(ctx, MethodBorrowBook, itemID)
}

func (c *Contract) ReturnItem(ctx context.Context, itemID *big.Int) (Submission, error) {
	return c.transact(ctx, MethodReturnBook, itemID)
}

func (c *Contract) ListAvailable(ctx context.Context) ([]string, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx, From: c.from}, &out, MethodAvailableList); err != nil {
		return nil, Classify(err)
	}
	items, err := decodeItems(out)
	if err != nil {
		return nil, &CallError{Kind: KindUnknown, Reason: GenericReason, Err: err}
	}
	return items, nil
}

// transact dry-runs the call first: gas estimation inside the bound contract
// flattens node errors to text, while eth_call keeps the revert data.
func (c *Contract) transact(ctx context.Context, method string, args ...interface{}) (Submission, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, Malformed("cannot encode %s arguments: %v", method, err)
	}
	to := c.address
	if _, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: c.from, To: &to, Data: input}, nil); err != nil {
		return nil, Classify(err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, Classify(err)
	}
	opts.Context = ctx
	tx, err := c.bound.RawTransact(opts, input)
	if err != nil {
		return nil, Classify(err)
	}
	return &txSubmission{c: c, tx: tx}, nil
}

// txSubmission settles when the transaction is mined with a successful receipt.
type txSubmission struct {
	c  *Contract
	tx *types.Transaction
}

func (s *txSubmission) ID() string { return s.tx.Hash().Hex() }

func (s *txSubmission) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, s.c.backend, s.tx)
	if err != nil {
		return Classify(err)
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		return nil
	}
	return s.replayFailure(ctx, receipt.BlockNumber)
}

// replayFailure re-executes a reverted transaction at its block to recover the reason.
func (s *txSubmission) replayFailure(ctx context.Context, block *big.Int) error {
	msg := ethereum.CallMsg{
		From:  s.c.from,
		To:    s.tx.To(),
		Gas:   s.tx.Gas(),
		Value: s.tx.Value(),
		Data:  s.tx.Data(),
	}
	_, err := s.c.backend.CallContract(ctx, msg, block)
	if err != nil {
		if reason, ok := revertReason(err); ok {
			return Rejected(reason, err)
		}
	}
	return Rejected("transaction reverted", err)
}
