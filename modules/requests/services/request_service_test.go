package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
	"github.com/requesthub/requesthub/modules/requests/services"
	"github.com/requesthub/requesthub/pkg/eventbus"
)

type stubIssueCreator struct {
	configured bool
	issue      linear.CreatedIssue
	err        error
	calls      int
}

func (s *stubIssueCreator) Configured() bool { return s.configured }

func (s *stubIssueCreator) CreateIssue(context.Context, linear.CreateIssueParams) (linear.CreatedIssue, error) {
	s.calls++
	return s.issue, s.err
}

func testOrganization() organization.Organization {
	return organization.Hydrate(uuid.New(), "test_org_demo", "Demo Organization", time.Now())
}

func TestRequestService_CreateMirrorsIssue(t *testing.T) {
	repo := newFakeRequestRepo()
	issues := &stubIssueCreator{
		configured: true,
		issue:      linear.CreatedIssue{ID: "iss-1", URL: "https://linear.app/issue/iss-1"},
	}
	bus := eventbus.NewEventPublisher(testLogger())
	svc := services.NewRequestService(repo, issues, bus, testLogger())

	var created []request.CreatedEvent
	bus.Subscribe(func(event *request.CreatedEvent) {
		created = append(created, *event)
	})

	entity, err := svc.Create(context.Background(), testOrganization(), &request.CreateDTO{
		Title:       "  Fix login  ",
		Category:    "bug",
		Description: "Cannot log in",
	})
	require.NoError(t, err)

	assert.Equal(t, "Fix login", entity.Title())
	assert.Equal(t, request.StatusPending, entity.Status())
	assert.Equal(t, "iss-1", entity.ExternalIssueID())
	assert.Equal(t, 1, issues.calls)
	require.Len(t, created, 1)
	assert.Equal(t, entity.ID(), created[0].Result.ID())
}

func TestRequestService_CreateSurvivesTrackerOutage(t *testing.T) {
	repo := newFakeRequestRepo()
	issues := &stubIssueCreator{configured: true, err: errors.New("tracker unreachable")}
	svc := services.NewRequestService(repo, issues, eventbus.NewEventPublisher(testLogger()), testLogger())

	entity, err := svc.Create(context.Background(), testOrganization(), &request.CreateDTO{
		Title:       "Fix login",
		Category:    "bug",
		Description: "Cannot log in",
	})
	require.NoError(t, err)

	assert.False(t, entity.HasExternalIssue())
	assert.Equal(t, request.StatusPending, entity.Status())
}

func TestRequestService_CreateSkipsUnconfiguredTracker(t *testing.T) {
	repo := newFakeRequestRepo()
	issues := &stubIssueCreator{configured: false}
	svc := services.NewRequestService(repo, issues, eventbus.NewEventPublisher(testLogger()), testLogger())

	entity, err := svc.Create(context.Background(), testOrganization(), &request.CreateDTO{
		Title:       "Fix login",
		Category:    "bug",
		Description: "Cannot log in",
	})
	require.NoError(t, err)

	assert.Zero(t, issues.calls)
	assert.False(t, entity.HasExternalIssue())
}

func TestRequestService_CreateValidatesInput(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := services.NewRequestService(repo, &stubIssueCreator{}, eventbus.NewEventPublisher(testLogger()), testLogger())

	cases := []request.CreateDTO{
		{Title: "", Category: "bug", Description: "d"},
		{Title: "t", Category: "", Description: "d"},
		{Title: "t", Category: "bug", Description: ""},
	}
	for _, dto := range cases {
		_, err := svc.Create(context.Background(), testOrganization(), &dto)
		assert.Error(t, err)
	}
}
