package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/pkg/composables"
)

const (
	insertOrganizationQuery = `
		INSERT INTO organizations (external_id, name)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO UPDATE SET name = organizations.name
		RETURNING id, external_id, name, created_at`

	selectOrganizationByExternalIDQuery = `
		SELECT id, external_id, name, created_at FROM organizations WHERE external_id = $1`
)

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) GetByExternalID(ctx context.Context, externalID string) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	entity, err := scanOrganization(tx.QueryRow(ctx, selectOrganizationByExternalIDQuery, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrNotFound
		}
		return organization.Organization{}, gerrors.Wrap(err, "failed to get organization")
	}
	return entity, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	entity, err := scanOrganization(tx.QueryRow(ctx, insertOrganizationQuery, o.ExternalID(), o.Name()))
	if err != nil {
		return organization.Organization{}, gerrors.Wrap(err, "failed to create organization")
	}
	return entity, nil
}

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var (
		id         uuid.UUID
		externalID string
		name       string
		createdAt  time.Time
	)
	if err := row.Scan(&id, &externalID, &name, &createdAt); err != nil {
		return organization.Organization{}, err
	}
	return organization.Hydrate(id, externalID, name, createdAt), nil
}
