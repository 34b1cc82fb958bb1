package realtime

import (
	"sync"
	"time"
)

// RequestView is the viewer-side projection of a request, as returned by the
// initial list fetch.
type RequestView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	ExternalIssueURL string    `json:"externalIssueUrl,omitempty"`
	OrganizationName string    `json:"organizationName,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Reconciler merges live status-change events into a locally cached request
// list. The list keeps its fetch order; events only ever replace the status
// field of the matching entry. Applying the same event twice yields the same
// state as applying it once, and events for unknown ids are ignored
// silently (the cache may be scoped to a different organization filter).
type Reconciler struct {
	mu       sync.RWMutex
	requests []RequestView
}

func NewReconciler(initial []RequestView) *Reconciler {
	requests := make([]RequestView, len(initial))
	copy(requests, initial)
	return &Reconciler{requests: requests}
}

func (r *Reconciler) Apply(p RequestUpdatedPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == p.RequestID {
			r.requests[i].Status = p.NewStatus
			return
		}
	}
}

// Requests returns a snapshot of the cached list.
func (r *Reconciler) Requests() []RequestView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RequestView, len(r.requests))
	copy(out, r.requests)
	return out
}
