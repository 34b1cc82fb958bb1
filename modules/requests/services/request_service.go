package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
	"github.com/requesthub/requesthub/pkg/eventbus"
)

// IssueCreator mirrors newly created requests into the external tracker.
type IssueCreator interface {
	Configured() bool
	CreateIssue(ctx context.Context, params linear.CreateIssueParams) (linear.CreatedIssue, error)
}

type RequestService struct {
	repo      request.Repository
	issues    IssueCreator
	publisher eventbus.EventBus
	logger    *logrus.Logger
}

func NewRequestService(
	repo request.Repository,
	issues IssueCreator,
	publisher eventbus.EventBus,
	logger *logrus.Logger,
) *RequestService {
	return &RequestService{
		repo:      repo,
		issues:    issues,
		publisher: publisher,
		logger:    logger,
	}
}

// Create persists a new request with status PENDING. The external tracker
// issue is created best-effort first: when the tracker is unreachable or not
// configured, the request still persists with empty external fields and can
// simply never receive synchronization updates.
func (s *RequestService) Create(ctx context.Context, org organization.Organization, dto *request.CreateDTO) (request.Request, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return request.Request{}, err
	}

	entity := request.New(org.ID(), dto.Title, dto.Category, dto.Description)

	if s.issues != nil && s.issues.Configured() {
		issue, err := s.issues.CreateIssue(ctx, linear.CreateIssueParams{
			Title:            dto.Title,
			Description:      dto.Description,
			OrganizationName: org.Name(),
		})
		if err != nil {
			s.logger.WithError(err).Warn("tracker issue creation failed; request proceeds without external counterpart")
		} else {
			entity = entity.WithExternalIssue(issue.ID, issue.URL)
		}
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return request.Request{}, err
	}

	s.publisher.Publish(&request.CreatedEvent{Result: created})
	return created, nil
}

func (s *RequestService) GetForOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]request.Request, error) {
	return s.repo.GetForOrganization(ctx, &request.FindParams{
		OrganizationID: organizationID,
		Limit:          limit,
		Offset:         offset,
	})
}

func (s *RequestService) GetAll(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]request.Request, error) {
	return s.repo.GetAll(ctx, &request.FindParams{
		OrganizationID: organizationID,
		Limit:          limit,
		Offset:         offset,
	})
}

func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	return s.repo.GetByID(ctx, id)
}
