package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
	"github.com/requesthub/requesthub/modules/requests/services"
	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/composables"
	"github.com/requesthub/requesthub/pkg/configuration"
	"github.com/requesthub/requesthub/pkg/httpapi"
	"github.com/requesthub/requesthub/pkg/webhooks"
)

const syncTimeout = 15 * time.Second

// LinearWebhookController receives issue notifications from the external
// tracker. Signature verification runs in middleware before the handler;
// redeliveries reach the handler and resolve as no-ops there.
type LinearWebhookController struct {
	app      application.Application
	sync     *services.SyncService
	verifier *linear.WebhookVerifier
}

func NewLinearWebhookController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &LinearWebhookController{
		app:      app,
		sync:     app.Service(services.SyncService{}).(*services.SyncService),
		verifier: linear.NewWebhookVerifier(conf.Linear.WebhookSecret),
	}
}

func (c *LinearWebhookController) Key() string {
	return "/webhooks/linear"
}

func (c *LinearWebhookController) Register(r *mux.Router) {
	sub := webhooks.Bind(r, "/webhooks", c.verifier, nil)
	sub.HandleFunc("/linear", c.Handle).Methods(http.MethodPost)
}

func (c *LinearWebhookController) Handle(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	var notification linear.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		logger.WithError(err).Error("failed to decode tracker notification")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "WEBHOOK_SYNC_FAILED", "webhook processing failed", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	outcome, err := c.sync.ProcessNotification(ctx, notification)
	if err != nil {
		logger.WithError(err).WithField("issueId", notification.IssueID()).
			Error("failed to synchronize request status")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "WEBHOOK_SYNC_FAILED", "webhook processing failed", nil)
		return
	}

	message := "Webhook processed"
	if outcome == services.SyncCompleted {
		message = "Request updated"
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
	})
}
