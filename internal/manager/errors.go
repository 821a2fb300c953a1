package manager

import "fmt"

// notConnectedError signals that no registry handle is bound (503 mapping).
type notConnectedError struct{}

func (notConnectedError) Error() string { return "no identity connected: registry handle unavailable" }

// ErrNotConnected is returned when an operation is triggered without a bound handle.
var ErrNotConnected error = notConnectedError{}

// IsNotConnected reports whether err is the disconnected precondition failure.
func IsNotConnected(err error) bool {
	_, ok := err.(notConnectedError)
	return ok
}

// busyError signals a second trigger of an operation that is still pending (409 mapping).
type busyError struct{ op Op }

func (e busyError) Error() string { return fmt.Sprintf("operation %s already in progress", e.op) }

// ErrBusy constructs the error returned for a second trigger of op.
func ErrBusy(op Op) error { return busyError{op: op} }

// IsBusy reports whether err indicates the operation is already pending.
func IsBusy(err error) bool {
	_, ok := err.(busyError)
	return ok
}

type unknownOperationError struct{ name string }

func (e unknownOperationError) Error() string { return "unknown operation: " + e.name }

// IsUnknownOperation reports whether err names an operation that does not exist.
func IsUnknownOperation(err error) bool {
	_, ok := err.(unknownOperationError)
	return ok
}

type unknownFormError struct{ name string }

func (e unknownFormError) Error() string { return "unknown form: " + e.name }

// IsUnknownForm reports whether err names a form that does not exist.
func IsUnknownForm(err error) bool {
	_, ok := err.(unknownFormError)
	return ok
}
