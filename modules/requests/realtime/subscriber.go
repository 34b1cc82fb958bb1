package realtime

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Subscriber maintains a websocket subscription to the live status feed and
// merges incoming events into a Reconciler. Missed events are not recovered;
// a reconnecting viewer refreshes its list instead.
type Subscriber struct {
	url        string
	reconciler *Reconciler
	logger     *logrus.Logger

	// OnApplied, when set, is invoked after each merged event.
	OnApplied func(RequestUpdatedPayload)
}

func NewSubscriber(url string, reconciler *Reconciler, logger *logrus.Logger) *Subscriber {
	return &Subscriber{
		url:        url,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Run blocks reading events until the context is cancelled or the
// connection fails.
func (s *Subscriber) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var envelope Envelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			s.logger.WithError(err).Warn("skipping malformed live event")
			continue
		}
		if envelope.Event != EventRequestUpdated {
			continue
		}

		s.reconciler.Apply(envelope.Payload)
		if s.OnApplied != nil {
			s.OnApplied(envelope.Payload)
		}
	}
}
