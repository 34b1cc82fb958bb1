package application

import (
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/pkg/eventbus"
	"github.com/requesthub/requesthub/pkg/ws"
)

// Application is the process-wide registry modules register themselves into.
type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Websocket() ws.Huber
	Migrations() MigrationManager
	Middleware() []mux.MiddlewareFunc
	Controllers() []Controller
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

type Module interface {
	Name() string
	Register(app Application) error
}

// Controller registers a set of routes. Key must be unique per controller;
// registering the same key twice replaces the earlier controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}
