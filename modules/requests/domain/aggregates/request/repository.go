package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("request not found")

type FindParams struct {
	OrganizationID uuid.UUID
	Limit          int
	Offset         int
}

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (Request, error)
	GetByExternalIssueID(ctx context.Context, externalIssueID string) (Request, error)
	// GetForOrganization returns the organization's requests ordered by
	// creation time descending.
	GetForOrganization(ctx context.Context, params *FindParams) ([]Request, error)
	// GetAll returns requests across organizations; a nil organization id
	// in params means no filter.
	GetAll(ctx context.Context, params *FindParams) ([]Request, error)
	// UpdateStatus persists a single status transition keyed by request id.
	// Re-applying the current status is a no-op write.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
