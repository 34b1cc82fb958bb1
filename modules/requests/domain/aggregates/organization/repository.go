package organization

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("organization not found")

type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (Organization, error)
	Create(ctx context.Context, o Organization) (Organization, error)
}
