package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/realtime"
	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/ws"
)

// RealtimeHandler fans request status changes out to live viewers. Delivery
// is fire-and-forget; viewers that connect later get the current state from
// their initial list fetch instead.
type RealtimeHandler struct {
	hub    ws.Huber
	logger *logrus.Logger
}

func RegisterRealtimeHandler(app application.Application) *RealtimeHandler {
	h := &RealtimeHandler{
		hub:    app.Websocket(),
		logger: app.Logger(),
	}
	app.EventPublisher().Subscribe(h.onStatusChanged)
	return h
}

func (h *RealtimeHandler) onStatusChanged(event *request.StatusChangedEvent) {
	message, err := json.Marshal(realtime.Envelope{
		Event: realtime.EventRequestUpdated,
		Payload: realtime.RequestUpdatedPayload{
			RequestID: event.RequestID.String(),
			NewStatus: string(event.NewStatus),
		},
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to encode status change event")
		return
	}
	h.hub.BroadcastToChannel(realtime.Channel, message)
}
