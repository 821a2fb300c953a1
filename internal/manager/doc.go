// Package manager is the operation controller for the books registry. It
// owns the three forms, one busy flag per operation, the list of available
// items and the single error slot, and drives every operation through the
// same lifecycle:
//
//	clear error -> busy -> call -> await settlement -> reset form or record error -> not busy
//
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: Op, FormID, Outcome, ErrorSlot, Attempt, Snapshot.
//   - errors.go: precondition errors and helpers (IsNotConnected, IsBusy, ...).
//   - ops.go: Run/Trigger entry points and the shared attempt template.
//   - calls.go: the four registry calls and their success effects.
//   - input.go: local validation of copies and item ids.
//   - forms.go: form field updates.
//   - status_report.go: Snapshot/Status reporting helpers.
//   - events.go, eventpub_memory.go: lifecycle events.
//   - metrics.go: Prometheus instrumentation of attempts.
//
// Operations are rejected with a precondition error while no registry handle
// is bound. Once started, an attempt always runs to completion; there is no
// cancellation and no timeout. Concurrent failures of different operations
// race for the error slot and the later completion wins.
package manager
