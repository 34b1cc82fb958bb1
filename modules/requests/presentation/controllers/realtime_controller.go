package controllers

import (
	"github.com/gorilla/mux"

	"github.com/requesthub/requesthub/pkg/application"
)

// RealtimeController exposes the websocket endpoint clients subscribe to for
// live status updates.
type RealtimeController struct {
	app application.Application
}

func NewRealtimeController(app application.Application) application.Controller {
	return &RealtimeController{app: app}
}

func (c *RealtimeController) Key() string {
	return "/ws"
}

func (c *RealtimeController) Register(r *mux.Router) {
	r.Handle("/ws", c.app.Websocket())
}
