package request

import "strings"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// MapExternalState maps a free-form tracker workflow-state label to an
// internal status. Rules are ordered and first-match-wins; matching is
// case-insensitive substring. ok is false when the label carries no status
// information, in which case the request keeps its current status rather
// than regressing.
func MapExternalState(label string) (status Status, ok bool) {
	normalized := strings.ToLower(label)
	switch {
	case strings.Contains(normalized, "done"), strings.Contains(normalized, "completed"):
		return StatusCompleted, true
	case strings.Contains(normalized, "progress"), strings.Contains(normalized, "started"):
		return StatusInProgress, true
	case strings.Contains(normalized, "cancel"):
		return StatusCancelled, true
	}
	return "", false
}
