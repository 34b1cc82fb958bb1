package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request is a member-submitted work request, optionally mirrored into the
// external issue tracker. Title, category and description are immutable
// after creation; only status changes over the record's lifetime, and only
// through tracker synchronization.
type Request struct {
	id               uuid.UUID
	title            string
	category         string
	description      string
	status           Status
	externalIssueID  string
	externalIssueURL string
	organizationID   uuid.UUID
	createdAt        time.Time
}

func New(organizationID uuid.UUID, title, category, description string) Request {
	return Request{
		title:          strings.TrimSpace(title),
		category:       strings.TrimSpace(category),
		description:    strings.TrimSpace(description),
		status:         StatusPending,
		organizationID: organizationID,
	}
}

func Hydrate(
	id uuid.UUID,
	organizationID uuid.UUID,
	title string,
	category string,
	description string,
	status Status,
	externalIssueID string,
	externalIssueURL string,
	createdAt time.Time,
) Request {
	return Request{
		id:               id,
		title:            title,
		category:         category,
		description:      description,
		status:           status,
		externalIssueID:  externalIssueID,
		externalIssueURL: externalIssueURL,
		organizationID:   organizationID,
		createdAt:        createdAt,
	}
}

func (r Request) ID() uuid.UUID             { return r.id }
func (r Request) Title() string             { return r.title }
func (r Request) Category() string          { return r.category }
func (r Request) Description() string       { return r.description }
func (r Request) Status() Status            { return r.status }
func (r Request) ExternalIssueID() string   { return r.externalIssueID }
func (r Request) ExternalIssueURL() string  { return r.externalIssueURL }
func (r Request) OrganizationID() uuid.UUID { return r.organizationID }
func (r Request) CreatedAt() time.Time      { return r.createdAt }
func (r Request) IsZero() bool              { return r.id == uuid.Nil }

// HasExternalIssue reports whether the request is correlated to a tracker
// issue. Requests without a counterpart can never receive synchronization
// updates.
func (r Request) HasExternalIssue() bool { return r.externalIssueID != "" }

// WithExternalIssue returns a copy correlated to the given tracker issue.
// The join key is set at most once, at creation time.
func (r Request) WithExternalIssue(issueID, issueURL string) Request {
	if r.externalIssueID != "" {
		return r
	}
	r.externalIssueID = issueID
	r.externalIssueURL = issueURL
	return r
}

func (r Request) WithStatus(status Status) Request {
	r.status = status
	return r
}
