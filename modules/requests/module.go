package requests

import (
	"embed"

	"github.com/requesthub/requesthub/modules/requests/handlers"
	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
	"github.com/requesthub/requesthub/modules/requests/infrastructure/persistence"
	"github.com/requesthub/requesthub/modules/requests/presentation/controllers"
	"github.com/requesthub/requesthub/modules/requests/services"
	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/requests-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	requestRepo := persistence.NewRequestRepository()
	orgRepo := persistence.NewOrganizationRepository()
	issueClient := linear.NewClient(linear.ClientOptions{
		APIKey:  conf.Linear.APIKey,
		TeamID:  conf.Linear.TeamID,
		BaseURL: conf.Linear.BaseURL,
	})

	app.Migrations().RegisterSchema(&migrationFiles)
	app.RegisterServices(
		services.NewOrgService(orgRepo),
		services.NewRequestService(requestRepo, issueClient, app.EventPublisher(), app.Logger()),
		services.NewSyncService(requestRepo, app.EventPublisher(), app.Logger()),
	)
	app.RegisterControllers(
		controllers.NewRequestAPIController(app),
		controllers.NewLinearWebhookController(app),
		controllers.NewRealtimeController(app),
		controllers.NewHealthController(app),
	)
	handlers.RegisterRealtimeHandler(app)
	return nil
}

func (m *Module) Name() string {
	return "requests"
}
