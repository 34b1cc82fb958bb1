package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("linear integration not configured")

const issueCreateMutation = `mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue {
      id
      url
    }
  }
}`

type ClientOptions struct {
	APIKey  string
	TeamID  string
	BaseURL string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the tracker's GraphQL API. Only issue creation is needed:
// status flows exclusively tracker -> portal, never back.
type Client struct {
	apiKey     string
	teamID     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.linear.app/graphql"
	}
	return &Client{
		apiKey:     opts.APIKey,
		teamID:     opts.TeamID,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != "" && c.teamID != ""
}

type CreateIssueParams struct {
	Title            string
	Description      string
	OrganizationName string
}

type CreatedIssue struct {
	ID  string
	URL string
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type issueCreateResponse struct {
	Data struct {
		IssueCreate struct {
			Success bool `json:"success"`
			Issue   struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"issue"`
		} `json:"issueCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) CreateIssue(ctx context.Context, params CreateIssueParams) (CreatedIssue, error) {
	if !c.Configured() {
		return CreatedIssue{}, ErrNotConfigured
	}

	title := params.Title
	if params.OrganizationName != "" {
		title = fmt.Sprintf("[%s] %s", params.OrganizationName, params.Title)
	}

	payload, err := json.Marshal(graphqlRequest{
		Query: issueCreateMutation,
		Variables: map[string]interface{}{
			"input": map[string]interface{}{
				"title":       title,
				"description": params.Description,
				"teamId":      c.teamID,
			},
		},
	})
	if err != nil {
		return CreatedIssue{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return CreatedIssue{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CreatedIssue{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return CreatedIssue{}, fmt.Errorf("linear: unexpected status %d", resp.StatusCode)
	}

	var decoded issueCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return CreatedIssue{}, err
	}
	if len(decoded.Errors) > 0 {
		return CreatedIssue{}, fmt.Errorf("linear: %s", decoded.Errors[0].Message)
	}
	if !decoded.Data.IssueCreate.Success {
		return CreatedIssue{}, errors.New("linear: issue creation was not successful")
	}

	return CreatedIssue{
		ID:  decoded.Data.IssueCreate.Issue.ID,
		URL: decoded.Data.IssueCreate.Issue.URL,
	}, nil
}
