package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization is the owning tenant of a set of requests. The requests core
// only carries the back-reference; membership and role checks live outside
// this module.
type Organization struct {
	id         uuid.UUID
	externalID string
	name       string
	createdAt  time.Time
}

func New(externalID, name string) Organization {
	return Organization{
		externalID: strings.TrimSpace(externalID),
		name:       strings.TrimSpace(name),
	}
}

func Hydrate(id uuid.UUID, externalID, name string, createdAt time.Time) Organization {
	return Organization{
		id:         id,
		externalID: externalID,
		name:       name,
		createdAt:  createdAt,
	}
}

func (o Organization) ID() uuid.UUID        { return o.id }
func (o Organization) ExternalID() string   { return o.externalID }
func (o Organization) Name() string         { return o.name }
func (o Organization) CreatedAt() time.Time { return o.createdAt }
func (o Organization) IsZero() bool         { return o.id == uuid.Nil }
