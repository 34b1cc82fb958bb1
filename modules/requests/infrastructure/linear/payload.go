package linear

import "strings"

const (
	// SignatureHeader carries the shared-secret credential on inbound
	// webhook deliveries.
	SignatureHeader = "X-Linear-Signature"

	TypeIssue    = "Issue"
	ActionCreate = "create"
	ActionUpdate = "update"
)

// Notification is the subset of the tracker's webhook payload the
// synchronization pipeline consumes.
type Notification struct {
	Type   string           `json:"type"`
	Action string           `json:"action"`
	Data   NotificationData `json:"data"`
}

type NotificationData struct {
	ID      string      `json:"id"`
	StateID string      `json:"stateId"`
	State   *IssueState `json:"state"`
}

type IssueState struct {
	Name string `json:"name"`
}

// IssueID returns the external issue id the notification refers to.
func (n Notification) IssueID() string {
	return strings.TrimSpace(n.Data.ID)
}

// StateLabel returns the workflow-state label, preferring the human-readable
// state name and falling back to the raw state id.
func (n Notification) StateLabel() string {
	if n.Data.State != nil && n.Data.State.Name != "" {
		return n.Data.State.Name
	}
	return n.Data.StateID
}

// IsRelevant reports whether the notification describes an issue lifecycle
// change the synchronization pipeline cares about. Everything else is
// ignored as benign traffic.
func (n Notification) IsRelevant() bool {
	if n.Type != TypeIssue {
		return false
	}
	return n.Action == ActionCreate || n.Action == ActionUpdate
}
