package modules

import (
	"github.com/requesthub/requesthub/modules/requests"
	"github.com/requesthub/requesthub/pkg/application"
)

var BuiltInModules = []application.Module{
	requests.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
