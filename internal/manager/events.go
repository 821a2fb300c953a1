package manager

// Event names.
const (
	EventAttemptPending   = "attempt.pending"
	EventAttemptSucceeded = "attempt.succeeded"
	EventAttemptFailed    = "attempt.failed"
	EventErrorDismissed   = "error.dismissed"
)

// Event represents a controller lifecycle event.
// Minimal and stable: name + operation + attempt and optional fields via key/values.
type Event struct {
	Name      string
	Op        Op
	AttemptID string
	Fields    map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
