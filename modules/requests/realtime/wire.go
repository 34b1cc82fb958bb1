package realtime

// Wire contract for the live status feed. All status updates share one fixed
// channel and one event name; payloads are minimal because viewers already
// hold the full records from their initial fetch.
const (
	Channel             = "requests"
	EventRequestUpdated = "request-updated"
)

type Envelope struct {
	Event   string                `json:"event"`
	Payload RequestUpdatedPayload `json:"payload"`
}

type RequestUpdatedPayload struct {
	RequestID string `json:"requestId"`
	NewStatus string `json:"newStatus"`
}
