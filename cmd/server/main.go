package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/requesthub/requesthub/internal/server"
	"github.com/requesthub/requesthub/modules"
	"github.com/requesthub/requesthub/modules/requests/realtime"
	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/configuration"
	"github.com/requesthub/requesthub/pkg/eventbus"
	"github.com/requesthub/requesthub/pkg/metrics"
	"github.com/requesthub/requesthub/pkg/ws"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	hub := ws.NewHub(&ws.HubOptions{
		Logger: logger,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		OnConnect: func(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
			// Every viewer receives every status update; per-organization
			// filtering happens client side after the initial list fetch.
			hub.JoinChannel(realtime.Channel, conn)
			return nil
		},
	})

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Huber:    hub,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if err := app.Migrations().Apply(ctx); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
