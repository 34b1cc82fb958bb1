package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
)

func TestMapExternalState(t *testing.T) {
	cases := []struct {
		label  string
		want   request.Status
		mapped bool
	}{
		{"Done", request.StatusCompleted, true},
		{"done", request.StatusCompleted, true},
		{"COMPLETED", request.StatusCompleted, true},
		{"Completed", request.StatusCompleted, true},
		{"In Progress", request.StatusInProgress, true},
		{"Started", request.StatusInProgress, true},
		{"progress", request.StatusInProgress, true},
		{"Cancelled", request.StatusCancelled, true},
		{"Canceled", request.StatusCancelled, true},
		{"cancel", request.StatusCancelled, true},
		{"Triage", "", false},
		{"Backlog", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			got, ok := request.MapExternalState(tc.label)
			assert.Equal(t, tc.mapped, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapExternalState_EveryMappedValueIsValid(t *testing.T) {
	for _, label := range []string{"Done", "In Progress", "Cancelled"} {
		status, ok := request.MapExternalState(label)
		require.True(t, ok)
		assert.True(t, status.IsValid())
	}
}
