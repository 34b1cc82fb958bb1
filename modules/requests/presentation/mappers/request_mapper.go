package mappers

import (
	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/presentation/viewmodels"
)

func RequestToViewModel(entity request.Request) viewmodels.Request {
	return viewmodels.Request{
		ID:               entity.ID().String(),
		Title:            entity.Title(),
		Category:         entity.Category(),
		Description:      entity.Description(),
		Status:           string(entity.Status()),
		ExternalIssueURL: entity.ExternalIssueURL(),
		OrganizationID:   entity.OrganizationID().String(),
		CreatedAt:        entity.CreatedAt(),
	}
}

func RequestsToViewModels(entities []request.Request) []viewmodels.Request {
	out := make([]viewmodels.Request, 0, len(entities))
	for _, entity := range entities {
		out = append(out, RequestToViewModel(entity))
	}
	return out
}
