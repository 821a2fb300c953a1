package ledger

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract method names.
const (
	MethodAddBook       = "addBook"
	MethodBorrowBook    = "borrowBook"
	MethodReturnBook    = "returnBook"
	MethodAvailableList = "getAllAvailableBooks"
)

// RegistryABI is the interface descriptor of the books library contract.
const RegistryABI = `[
  {"type":"function","name":"addBook","stateMutability":"nonpayable",
   "inputs":[{"name":"_author","type":"string"},{"name":"_title","type":"string"},{"name":"_copies","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"borrowBook","stateMutability":"nonpayable",
   "inputs":[{"name":"_bookId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"returnBook","stateMutability":"nonpayable",
   "inputs":[{"name":"_bookId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getAllAvailableBooks","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"string[]"}]}
]`

// ParseABI parses RegistryABI.
func ParseABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(RegistryABI))
}

// decodeItems turns the raw list result into display strings, preserving order.
// Registries that return numeric ids instead of strings are also accepted.
func decodeItems(out []interface{}) ([]string, error) {
	if len(out) != 1 {
		return nil, fmt.Errorf("expected 1 return value, got %d", len(out))
	}
	switch v := out[0].(type) {
	case []string:
		return append([]string{}, v...), nil
	case []*big.Int:
		items := make([]string, len(v))
		for i, n := range v {
			items[i] = n.String()
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected item list type %T", out[0])
	}
}
