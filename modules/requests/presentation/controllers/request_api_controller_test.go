package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/presentation/viewmodels"
	"github.com/requesthub/requesthub/modules/requests/services"
	"github.com/requesthub/requesthub/pkg/eventbus"
)

type memoryRequestRepo struct {
	request.Repository

	mu       sync.Mutex
	requests []request.Request
}

func (m *memoryRequestRepo) Create(_ context.Context, r request.Request) (request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := request.Hydrate(
		uuid.New(), r.OrganizationID(), r.Title(), r.Category(), r.Description(),
		r.Status(), r.ExternalIssueID(), r.ExternalIssueURL(), time.Now(),
	)
	m.requests = append(m.requests, created)
	return created, nil
}

func (m *memoryRequestRepo) GetForOrganization(_ context.Context, params *request.FindParams) ([]request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]request.Request, 0)
	for _, r := range m.requests {
		if r.OrganizationID() == params.OrganizationID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (m *memoryRequestRepo) GetAll(_ context.Context, params *request.FindParams) ([]request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]request.Request, 0)
	for _, r := range m.requests {
		if params.OrganizationID == uuid.Nil || r.OrganizationID() == params.OrganizationID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memoryOrgRepo struct {
	mu         sync.Mutex
	byExternal map[string]organization.Organization
}

func newMemoryOrgRepo() *memoryOrgRepo {
	return &memoryOrgRepo{byExternal: make(map[string]organization.Organization)}
}

func (m *memoryOrgRepo) GetByExternalID(_ context.Context, externalID string) (organization.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.byExternal[externalID]
	if !ok {
		return organization.Organization{}, organization.ErrNotFound
	}
	return org, nil
}

func (m *memoryOrgRepo) Create(_ context.Context, org organization.Organization) (organization.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := organization.Hydrate(uuid.New(), org.ExternalID(), org.Name(), time.Now())
	m.byExternal[created.ExternalID()] = created
	return created, nil
}

func testNullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newAPIRouter(t *testing.T) (*mux.Router, *memoryRequestRepo, *memoryOrgRepo) {
	t.Helper()

	logger := testNullLogger()
	repo := &memoryRequestRepo{}
	orgs := newMemoryOrgRepo()
	bus := eventbus.NewEventPublisher(logger)

	controller := &RequestAPIController{
		requests: services.NewRequestService(repo, nil, bus, logger),
		orgs:     services.NewOrgService(orgs),
	}
	router := mux.NewRouter()
	controller.Register(router)
	return router, repo, orgs
}

func createRequest(t *testing.T, router *mux.Router, org, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if org != "" {
		r.Header.Set(OrganizationHeader, org)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestRequestAPI_CreateAndList(t *testing.T) {
	router, _, _ := newAPIRouter(t)

	w := createRequest(t, router, "org_1", `{"title":"Fix login","category":"bug","description":"Cannot log in"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created viewmodels.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Fix login", created.Title)
	assert.Equal(t, "PENDING", created.Status)
	assert.NotEmpty(t, created.ID)

	r := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	r.Header.Set(OrganizationHeader, "org_1")
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, r)

	require.Equal(t, http.StatusOK, lw.Code)
	var list viewmodels.RequestList
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &list))
	require.Len(t, list.Requests, 1)
	assert.Equal(t, created.ID, list.Requests[0].ID)
}

func TestRequestAPI_ListIsOrganizationScoped(t *testing.T) {
	router, _, _ := newAPIRouter(t)

	require.Equal(t, http.StatusCreated,
		createRequest(t, router, "org_1", `{"title":"A","category":"bug","description":"d"}`).Code)
	require.Equal(t, http.StatusCreated,
		createRequest(t, router, "org_2", `{"title":"B","category":"bug","description":"d"}`).Code)

	r := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	r.Header.Set(OrganizationHeader, "org_2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var list viewmodels.RequestList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Requests, 1)
	assert.Equal(t, "B", list.Requests[0].Title)
}

func TestRequestAPI_ListUnknownOrganizationIsEmpty(t *testing.T) {
	router, _, _ := newAPIRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	r.Header.Set(OrganizationHeader, "org_never_seen")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"requests":[]}`, w.Body.String())
}

func TestRequestAPI_AdminListSpansOrganizations(t *testing.T) {
	router, _, _ := newAPIRouter(t)

	createRequest(t, router, "org_1", `{"title":"A","category":"bug","description":"d"}`)
	createRequest(t, router, "org_2", `{"title":"B","category":"bug","description":"d"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil))

	var list viewmodels.RequestList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Requests, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/requests?orgId=org_1", nil))

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Requests, 1)
	assert.Equal(t, "A", list.Requests[0].Title)
}

func TestRequestAPI_CreateRejectsInvalidBody(t *testing.T) {
	router, _, _ := newAPIRouter(t)

	assert.Equal(t, http.StatusBadRequest,
		createRequest(t, router, "org_1", `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest,
		createRequest(t, router, "org_1", `{"title":"","category":"bug","description":"d"}`).Code)
}
