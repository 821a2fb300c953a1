package manager

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"bookslib/internal/ledger"
)

// parseCopies validates the raw copies text as an integer in [0, max].
func parseCopies(raw string, max uint64) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ledger.Malformed("number of copies is required")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, ledger.Malformed("number of copies must be at most %d", max)
		}
		return nil, ledger.Malformed("number of copies must be a non-negative whole number, got %q", raw)
	}
	if n > max {
		return nil, ledger.Malformed("number of copies must be at most %d", max)
	}
	return new(big.Int).SetUint64(n), nil
}

// parseItemID validates the raw id text as a uint256.
func parseItemID(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ledger.Malformed("item id is required")
	}
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 || id.BitLen() > 256 {
		return nil, ledger.Malformed("item id must be a non-negative whole number, got %q", raw)
	}
	return id, nil
}
