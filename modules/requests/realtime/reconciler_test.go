package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/realtime"
)

func initialViews() []realtime.RequestView {
	return []realtime.RequestView{
		{ID: "a", Title: "Fix login", Status: "PENDING"},
		{ID: "b", Title: "Add export", Status: "IN_PROGRESS"},
	}
}

func TestReconciler_AppliesStatusOnly(t *testing.T) {
	r := realtime.NewReconciler(initialViews())

	r.Apply(realtime.RequestUpdatedPayload{RequestID: "a", NewStatus: "COMPLETED"})

	got := r.Requests()
	require.Len(t, got, 2)
	assert.Equal(t, "COMPLETED", got[0].Status)
	assert.Equal(t, "Fix login", got[0].Title)
	assert.Equal(t, "IN_PROGRESS", got[1].Status)
}

func TestReconciler_ApplyIsIdempotent(t *testing.T) {
	r := realtime.NewReconciler(initialViews())

	event := realtime.RequestUpdatedPayload{RequestID: "b", NewStatus: "COMPLETED"}
	r.Apply(event)
	afterFirst := r.Requests()
	r.Apply(event)
	afterSecond := r.Requests()

	assert.Equal(t, afterFirst, afterSecond)
}

func TestReconciler_UnknownIDIsSilentNoOp(t *testing.T) {
	r := realtime.NewReconciler(initialViews())

	r.Apply(realtime.RequestUpdatedPayload{RequestID: "missing", NewStatus: "COMPLETED"})

	assert.Equal(t, initialViews(), r.Requests())
}

func TestReconciler_SnapshotIsDetached(t *testing.T) {
	r := realtime.NewReconciler(initialViews())

	snapshot := r.Requests()
	snapshot[0].Status = "CANCELLED"

	assert.Equal(t, "PENDING", r.Requests()[0].Status)
}

func TestReconciler_PreservesFetchOrder(t *testing.T) {
	r := realtime.NewReconciler(initialViews())

	r.Apply(realtime.RequestUpdatedPayload{RequestID: "b", NewStatus: "COMPLETED"})

	got := r.Requests()
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}
