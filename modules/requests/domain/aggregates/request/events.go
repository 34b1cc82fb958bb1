package request

import "github.com/google/uuid"

// StatusChangedEvent is published once per accepted synchronization, after
// the new status has been durably recorded. It is transient: delivery to
// live viewers is best-effort and never retried.
type StatusChangedEvent struct {
	RequestID uuid.UUID
	NewStatus Status
}

// CreatedEvent is published after a request has been persisted.
type CreatedEvent struct {
	Result Request
}
