package types

// FieldUpdateRequest is the body of PUT /forms/{form}/fields/{field}.
type FieldUpdateRequest struct {
	// New raw value for the field.
	// example: 42
	Value string `json:"value" example:"42"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ErrorBanner is the single dismissible error slot.
type ErrorBanner struct {
	// Human readable failure reason.
	// example: Book not available
	Message string `json:"message" example:"Book not available"`
	// Failure class: rejected, network, malformed_input or unknown.
	// example: rejected
	Kind string `json:"kind" example:"rejected"`
	// Operation whose failure is shown.
	// example: checkout
	Op string `json:"op" example:"checkout"`
	// When the failure was recorded (unix seconds).
	// example: 1700000000
	AtUnix int64 `json:"at_unix" example:"1700000000"`
}

// AttemptStatus describes the latest attempt of one operation.
type AttemptStatus struct {
	// Attempt identifier.
	// example: 6f1c2f8e-7d8a-4c3e-9f55-0a3b1f0d2c11
	ID string `json:"id" example:"6f1c2f8e-7d8a-4c3e-9f55-0a3b1f0d2c11"`
	// Operation name: add, checkout, return or list.
	// example: add
	Op string `json:"op" example:"add"`
	// pending, succeeded or failed.
	// example: succeeded
	State string `json:"state" example:"succeeded"`
	// Transaction id of the submission, when one was accepted.
	TxID string `json:"tx_id,omitempty"`
	// Failure reason, when failed.
	Reason string `json:"reason,omitempty"`
	// Failure kind, when failed.
	Kind string `json:"kind,omitempty"`
	// Start time (unix seconds).
	StartedUnix int64 `json:"started_unix"`
	// Duration in milliseconds; zero while pending.
	DurationMS int64 `json:"duration_ms"`
}

// StateResponse is returned by GET /state.
type StateResponse struct {
	// True when a registry handle is bound to an identity.
	// example: true
	Connected bool `json:"connected" example:"true"`
	// Signing account of the bound handle.
	// example: 0x970E8128AB834E8EAC17Ab8E3812F010678CF791
	Account string `json:"account,omitempty" example:"0x970E8128AB834E8EAC17Ab8E3812F010678CF791"`
	// Registry contract address.
	// example: 0x29c7DA5e258E1bAc4E203a9f1127D7f279591F05
	Registry string `json:"registry" example:"0x29c7DA5e258E1bAc4E203a9f1127D7f279591F05"`
	// Why the handle could not be bound, if it could not.
	SessionError string `json:"session_error,omitempty"`
	// Current form values.
	Forms FormsState `json:"forms"`
	// Busy flag per operation.
	Busy map[string]bool `json:"busy"`
	// The error slot; absent when empty.
	Error *ErrorBanner `json:"error,omitempty"`
	// Items from the latest successful list, in fetched order.
	AvailableItems []string `json:"available_items"`
	// False when there are no items to show.
	ShowResults bool `json:"show_results"`
	// Latest attempt per operation.
	Attempts map[string]AttemptStatus `json:"attempts,omitempty"`
}

// OpResponse is returned by POST /ops/{op}.
type OpResponse struct {
	// Attempt identifier; poll GET /state for its outcome.
	AttemptID string `json:"attempt_id"`
	// Operation name.
	// example: list
	Op string `json:"op" example:"list"`
	// pending when triggered asynchronously, otherwise succeeded or failed.
	// example: pending
	State string `json:"state" example:"pending"`
	// Failure reason.
	Reason string `json:"reason,omitempty"`
	// Failure kind.
	Kind string `json:"kind,omitempty"`
	// Transaction id of the submission.
	TxID string `json:"tx_id,omitempty"`
	// Items fetched by a synchronous list.
	Items []string `json:"items,omitempty"`
}

// ItemsResponse is returned by GET /items.
type ItemsResponse struct {
	// Items from the latest successful list.
	Items []string `json:"items"`
}
