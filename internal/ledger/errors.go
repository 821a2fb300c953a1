package ledger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Kind classifies a failed call.
type Kind string

const (
	KindRejected       Kind = "rejected"
	KindNetwork        Kind = "network"
	KindMalformedInput Kind = "malformed_input"
	KindUnknown        Kind = "unknown"
)

// GenericReason is shown when nothing trustworthy can be said about a failure.
const GenericReason = "the registry call failed"

const (
	revertPrefix  = "execution reverted"
	noCodeMessage = "no contract code at given address"
)

// CallError is a classified call or settlement failure.
type CallError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *CallError) Unwrap() error { return e.Err }

// Rejected reports a call the registry or node refused.
func Rejected(reason string, err error) *CallError {
	return &CallError{Kind: KindRejected, Reason: reason, Err: err}
}

// Malformed reports input that cannot be encoded for the registry.
func Malformed(format string, args ...any) *CallError {
	return &CallError{Kind: KindMalformedInput, Reason: fmt.Sprintf(format, args...)}
}

// Classify reduces err to a CallError. It returns nil for a nil error.
func Classify(err error) *CallError {
	if err == nil {
		return nil
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return ce
	}
	if reason, ok := revertReason(err); ok {
		return Rejected(reason, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &CallError{Kind: KindNetwork, Reason: "request to the ledger node did not complete", Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return &CallError{Kind: KindNetwork, Reason: "ledger node unreachable", Err: err}
	}
	if strings.Contains(err.Error(), noCodeMessage) {
		return Rejected("no registry deployed at the configured address", err)
	}
	var re rpc.Error
	if errors.As(err, &re) && strings.TrimSpace(re.Error()) != "" {
		return Rejected(re.Error(), err)
	}
	return &CallError{Kind: KindUnknown, Reason: GenericReason, Err: err}
}

// revertReason extracts a revert reason from a node error, either from the
// structured revert data or from the "execution reverted: <reason>" message.
func revertReason(err error) (string, bool) {
	var de rpc.DataError
	if errors.As(err, &de) {
		if data := revertData(de.ErrorData()); len(data) > 0 {
			if reason, uerr := abi.UnpackRevert(data); uerr == nil && reason != "" {
				return reason, true
			}
		}
	}
	msg := err.Error()
	idx := strings.Index(msg, revertPrefix)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(msg[idx+len(revertPrefix):])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if rest == "" {
		return "transaction reverted", true
	}
	return rest, true
}

func revertData(v interface{}) []byte {
	switch d := v.(type) {
	case string:
		b, err := hexutil.Decode(d)
		if err != nil {
			return nil
		}
		return b
	case []byte:
		return d
	default:
		return nil
	}
}
