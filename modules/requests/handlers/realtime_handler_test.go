package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/realtime"
	"github.com/requesthub/requesthub/pkg/ws"
)

type recordingHub struct {
	broadcasts map[string][][]byte
}

func newRecordingHub() *recordingHub {
	return &recordingHub{broadcasts: make(map[string][][]byte)}
}

func (h *recordingHub) ServeHTTP(http.ResponseWriter, *http.Request) {}
func (h *recordingHub) JoinChannel(string, *ws.Connection)           {}
func (h *recordingHub) LeaveChannel(string, *ws.Connection)          {}
func (h *recordingHub) ConnectionsInChannel(string) []*ws.Connection { return nil }
func (h *recordingHub) ConnectionsAll() []*ws.Connection             { return nil }
func (h *recordingHub) Close() error                                 { return nil }

func (h *recordingHub) BroadcastToChannel(channel string, message []byte) {
	h.broadcasts[channel] = append(h.broadcasts[channel], message)
}

func TestRealtimeHandler_BroadcastsStatusChanges(t *testing.T) {
	hub := newRecordingHub()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := &RealtimeHandler{hub: hub, logger: logger}

	id := uuid.New()
	handler.onStatusChanged(&request.StatusChangedEvent{
		RequestID: id,
		NewStatus: request.StatusCompleted,
	})

	messages := hub.broadcasts[realtime.Channel]
	require.Len(t, messages, 1)

	var envelope realtime.Envelope
	require.NoError(t, json.Unmarshal(messages[0], &envelope))
	assert.Equal(t, realtime.EventRequestUpdated, envelope.Event)
	assert.Equal(t, id.String(), envelope.Payload.RequestID)
	assert.Equal(t, "COMPLETED", envelope.Payload.NewStatus)
}

func TestRealtimeHandler_EachChangeIsOneMessage(t *testing.T) {
	hub := newRecordingHub()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := &RealtimeHandler{hub: hub, logger: logger}
	for i := 0; i < 3; i++ {
		handler.onStatusChanged(&request.StatusChangedEvent{
			RequestID: uuid.New(),
			NewStatus: request.StatusInProgress,
		})
	}

	assert.Len(t, hub.broadcasts[realtime.Channel], 3)
}
