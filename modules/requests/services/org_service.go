package services

import (
	"context"
	"errors"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
)

type OrgService struct {
	repo organization.Repository
}

func NewOrgService(repo organization.Repository) *OrgService {
	return &OrgService{repo: repo}
}

func (s *OrgService) Get(ctx context.Context, externalID string) (organization.Organization, error) {
	return s.repo.GetByExternalID(ctx, externalID)
}

// GetOrCreate resolves the organization for an external auth id,
// bootstrapping it on first contact.
func (s *OrgService) GetOrCreate(ctx context.Context, externalID, name string) (organization.Organization, error) {
	org, err := s.repo.GetByExternalID(ctx, externalID)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, organization.ErrNotFound) {
		return organization.Organization{}, err
	}
	return s.repo.Create(ctx, organization.New(externalID, name))
}
