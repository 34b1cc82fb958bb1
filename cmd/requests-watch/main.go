package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/modules/requests/realtime"
)

// requests-watch tails the live request feed: it fetches the current list
// over the HTTP API, then keeps it reconciled from the websocket stream and
// prints each applied change.
func main() {
	baseURL := flag.String("url", "http://localhost:3200", "portal base url")
	wsURL := flag.String("ws", "", "websocket url (defaults to <url>/ws with ws scheme)")
	orgID := flag.String("org", "", "organization external id sent as X-Organization-ID")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	socket := *wsURL
	if socket == "" {
		socket = toWebsocketURL(*baseURL) + "/ws"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initial, err := fetchRequests(ctx, *baseURL, *orgID)
	if err != nil {
		log.Fatalf("failed to fetch initial request list: %v", err)
	}

	reconciler := realtime.NewReconciler(initial)
	for _, view := range initial {
		fmt.Printf("%s  %-12s  %s\n", view.ID, view.Status, view.Title)
	}

	subscriber := realtime.NewSubscriber(socket, reconciler, logger)
	subscriber.OnApplied = func(p realtime.RequestUpdatedPayload) {
		fmt.Printf("%s  -> %s\n", p.RequestID, p.NewStatus)
	}

	for {
		err := subscriber.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		logger.WithError(err).Warn("live feed disconnected, retrying")
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func toWebsocketURL(base string) string {
	switch {
	case len(base) > 8 && base[:8] == "https://":
		return "wss://" + base[8:]
	case len(base) > 7 && base[:7] == "http://":
		return "ws://" + base[7:]
	default:
		return base
	}
}

func fetchRequests(ctx context.Context, baseURL, orgID string) ([]realtime.RequestView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/requests", nil)
	if err != nil {
		return nil, err
	}
	if orgID != "" {
		req.Header.Set("X-Organization-ID", orgID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL)
	}

	var payload struct {
		Requests []realtime.RequestView `json:"requests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Requests, nil
}
