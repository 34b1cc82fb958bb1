package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/httpapi"
)

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	db := "ok"
	if err := c.app.DB().Ping(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		db = "unavailable"
	}
	_ = httpapi.WriteJSON(w, status, map[string]any{
		"status":    http.StatusText(status),
		"database":  db,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
