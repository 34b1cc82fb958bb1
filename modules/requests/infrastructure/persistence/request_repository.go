package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/pkg/composables"
)

const (
	requestColumns = `id, organization_id, title, category, description, status, external_issue_id, external_issue_url, created_at`

	insertRequestQuery = `
		INSERT INTO requests (organization_id, title, category, description, status, external_issue_id, external_issue_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + requestColumns

	selectRequestByIDQuery = `
		SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	selectRequestByExternalIssueQuery = `
		SELECT ` + requestColumns + ` FROM requests WHERE external_issue_id = $1`

	selectRequestsForOrgQuery = `
		SELECT ` + requestColumns + ` FROM requests
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	selectAllRequestsQuery = `
		SELECT ` + requestColumns + ` FROM requests
		WHERE ($1::uuid IS NULL OR organization_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	updateRequestStatusQuery = `
		UPDATE requests SET status = $2 WHERE id = $1`
)

type RequestRepository struct{}

func NewRequestRepository() request.Repository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, entity request.Request) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	row := tx.QueryRow(ctx, insertRequestQuery,
		entity.OrganizationID(),
		entity.Title(),
		entity.Category(),
		entity.Description(),
		string(entity.Status()),
		nullable(entity.ExternalIssueID()),
		nullable(entity.ExternalIssueURL()),
	)
	created, err := scanRequest(row)
	if err != nil {
		return request.Request{}, gerrors.Wrap(err, "failed to create request")
	}
	return created, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	entity, err := scanRequest(tx.QueryRow(ctx, selectRequestByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, gerrors.Wrap(err, "failed to get request by id")
	}
	return entity, nil
}

func (r *RequestRepository) GetByExternalIssueID(ctx context.Context, externalIssueID string) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	entity, err := scanRequest(tx.QueryRow(ctx, selectRequestByExternalIssueQuery, externalIssueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, gerrors.Wrap(err, "failed to get request by external issue id")
	}
	return entity, nil
}

func (r *RequestRepository) GetForOrganization(ctx context.Context, params *request.FindParams) ([]request.Request, error) {
	if params == nil {
		params = &request.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(params)
	rows, err := tx.Query(ctx, selectRequestsForOrgQuery, params.OrganizationID, limit, offset)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list organization requests")
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *RequestRepository) GetAll(ctx context.Context, params *request.FindParams) ([]request.Request, error) {
	if params == nil {
		params = &request.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var orgFilter *uuid.UUID
	if params.OrganizationID != uuid.Nil {
		id := params.OrganizationID
		orgFilter = &id
	}

	limit, offset := normalizePaging(params)
	rows, err := tx.Query(ctx, selectAllRequestsQuery, orgFilter, limit, offset)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list requests")
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, updateRequestStatusQuery, id, string(status))
	if err != nil {
		return gerrors.Wrap(err, "failed to update request status")
	}
	if tag.RowsAffected() == 0 {
		return request.ErrNotFound
	}
	return nil
}

func normalizePaging(params *request.FindParams) (limit, offset int) {
	limit = params.Limit
	if limit <= 0 {
		limit = 100
	}
	offset = params.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanRequest(row pgx.Row) (request.Request, error) {
	var (
		id               uuid.UUID
		organizationID   uuid.UUID
		title            string
		category         string
		description      string
		status           string
		externalIssueID  *string
		externalIssueURL *string
		createdAt        time.Time
	)
	if err := row.Scan(
		&id,
		&organizationID,
		&title,
		&category,
		&description,
		&status,
		&externalIssueID,
		&externalIssueURL,
		&createdAt,
	); err != nil {
		return request.Request{}, err
	}
	return request.Hydrate(
		id,
		organizationID,
		title,
		category,
		description,
		request.Status(status),
		deref(externalIssueID),
		deref(externalIssueURL),
		createdAt,
	), nil
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	out := make([]request.Request, 0)
	for rows.Next() {
		entity, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
