package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/modules/requests/services"
)

type fakeOrgRepo struct {
	mu         sync.Mutex
	byExternal map[string]organization.Organization
	creates    int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{byExternal: make(map[string]organization.Organization)}
}

func (f *fakeOrgRepo) GetByExternalID(_ context.Context, externalID string) (organization.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.byExternal[externalID]
	if !ok {
		return organization.Organization{}, organization.ErrNotFound
	}
	return org, nil
}

func (f *fakeOrgRepo) Create(_ context.Context, org organization.Organization) (organization.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := organization.Hydrate(uuid.New(), org.ExternalID(), org.Name(), time.Now())
	f.byExternal[created.ExternalID()] = created
	f.creates++
	return created, nil
}

func TestOrgService_GetOrCreateBootstraps(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := services.NewOrgService(repo)

	org, err := svc.GetOrCreate(context.Background(), "org_1", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "org_1", org.ExternalID())
	assert.Equal(t, "Acme", org.Name())
	assert.False(t, org.IsZero())
}

func TestOrgService_GetOrCreateIsStable(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := services.NewOrgService(repo)

	first, err := svc.GetOrCreate(context.Background(), "org_1", "Acme")
	require.NoError(t, err)
	second, err := svc.GetOrCreate(context.Background(), "org_1", "Renamed")
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, "Acme", second.Name())
	assert.Equal(t, 1, repo.creates)
}

func TestOrgService_GetUnknown(t *testing.T) {
	svc := services.NewOrgService(newFakeOrgRepo())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, organization.ErrNotFound)
}
