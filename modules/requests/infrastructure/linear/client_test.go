package linear_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/infrastructure/linear"
)

func TestClient_CreateIssue(t *testing.T) {
	var captured struct {
		authorization string
		body          map[string]any
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		_, _ = w.Write([]byte(`{"data":{"issueCreate":{"success":true,"issue":{"id":"iss-1","url":"https://linear.app/issue/iss-1"}}}}`))
	}))
	defer srv.Close()

	client := linear.NewClient(linear.ClientOptions{
		APIKey:  "lin_api_key",
		TeamID:  "team-1",
		BaseURL: srv.URL,
	})

	issue, err := client.CreateIssue(context.Background(), linear.CreateIssueParams{
		Title:            "Fix login",
		Description:      "Cannot log in",
		OrganizationName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "iss-1", issue.ID)
	assert.Equal(t, "https://linear.app/issue/iss-1", issue.URL)

	assert.Equal(t, "lin_api_key", captured.authorization)
	variables := captured.body["variables"].(map[string]any)
	input := variables["input"].(map[string]any)
	assert.Equal(t, "[Acme] Fix login", input["title"])
	assert.Equal(t, "team-1", input["teamId"])
}

func TestClient_CreateIssueNotConfigured(t *testing.T) {
	client := linear.NewClient(linear.ClientOptions{})

	_, err := client.CreateIssue(context.Background(), linear.CreateIssueParams{Title: "Fix login"})
	assert.ErrorIs(t, err, linear.ErrNotConfigured)
}

func TestClient_CreateIssueGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"team not found"}]}`))
	}))
	defer srv.Close()

	client := linear.NewClient(linear.ClientOptions{APIKey: "k", TeamID: "t", BaseURL: srv.URL})

	_, err := client.CreateIssue(context.Background(), linear.CreateIssueParams{Title: "Fix login"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team not found")
}

func TestClient_CreateIssueHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := linear.NewClient(linear.ClientOptions{APIKey: "k", TeamID: "t", BaseURL: srv.URL})

	_, err := client.CreateIssue(context.Background(), linear.CreateIssueParams{Title: "Fix login"})
	require.Error(t, err)
}
