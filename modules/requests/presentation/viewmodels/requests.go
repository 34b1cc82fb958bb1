package viewmodels

import "time"

type Request struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	ExternalIssueURL string    `json:"externalIssueUrl,omitempty"`
	OrganizationID   string    `json:"organizationId"`
	CreatedAt        time.Time `json:"createdAt"`
}

type RequestList struct {
	Requests []Request `json:"requests"`
}
