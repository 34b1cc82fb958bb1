package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/organization"
	"github.com/requesthub/requesthub/modules/requests/domain/aggregates/request"
	"github.com/requesthub/requesthub/modules/requests/presentation/mappers"
	"github.com/requesthub/requesthub/modules/requests/presentation/viewmodels"
	"github.com/requesthub/requesthub/modules/requests/services"
	"github.com/requesthub/requesthub/pkg/application"
	"github.com/requesthub/requesthub/pkg/composables"
	"github.com/requesthub/requesthub/pkg/httpapi"
)

const (
	// OrganizationHeader identifies the caller's organization. Role and
	// membership resolution live outside this module; absent a header the
	// demo organization is used, matching the reference deployment.
	OrganizationHeader = "X-Organization-ID"

	demoOrganizationExternalID = "test_org_demo"
	demoOrganizationName       = "Demo Organization"
)

type RequestAPIController struct {
	app      application.Application
	requests *services.RequestService
	orgs     *services.OrgService
}

func NewRequestAPIController(app application.Application) application.Controller {
	return &RequestAPIController{
		app:      app,
		requests: app.Service(services.RequestService{}).(*services.RequestService),
		orgs:     app.Service(services.OrgService{}).(*services.OrgService),
	}
}

func (c *RequestAPIController) Key() string {
	return "/api/requests"
}

func (c *RequestAPIController) Register(r *mux.Router) {
	sub := r.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/requests", c.Create).Methods(http.MethodPost)
	sub.HandleFunc("/requests", c.List).Methods(http.MethodGet)
	sub.HandleFunc("/admin/requests", c.AdminList).Methods(http.MethodGet)
}

func (c *RequestAPIController) organizationExternalID(r *http.Request) string {
	if id := r.Header.Get(OrganizationHeader); id != "" {
		return id
	}
	return demoOrganizationExternalID
}

func (c *RequestAPIController) Create(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	var dto request.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "REQUEST_BAD_JSON", "invalid request body", nil)
		return
	}

	org, err := c.orgs.GetOrCreate(r.Context(), c.organizationExternalID(r), demoOrganizationName)
	if err != nil {
		logger.WithError(err).Error("failed to resolve organization")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_CREATE_FAILED", "failed to create request", nil)
		return
	}

	created, err := c.requests.Create(r.Context(), org, &dto)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "REQUEST_VALIDATION", "validation error", map[string]string{
				"error": validationErrs.Error(),
			})
			return
		}
		logger.WithError(err).Error("failed to create request")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_CREATE_FAILED", "failed to create request", nil)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.RequestToViewModel(created))
}

func (c *RequestAPIController) List(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	org, err := c.orgs.Get(r.Context(), c.organizationExternalID(r))
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.RequestList{Requests: []viewmodels.Request{}})
			return
		}
		logger.WithError(err).Error("failed to resolve organization")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_LIST_FAILED", "failed to fetch requests", nil)
		return
	}

	limit, offset := paging(r)
	entities, err := c.requests.GetForOrganization(r.Context(), org.ID(), limit, offset)
	if err != nil {
		logger.WithError(err).Error("failed to list requests")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_LIST_FAILED", "failed to fetch requests", nil)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.RequestList{Requests: mappers.RequestsToViewModels(entities)})
}

func (c *RequestAPIController) AdminList(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	orgID := uuid.Nil
	if externalID := r.URL.Query().Get("orgId"); externalID != "" {
		org, err := c.orgs.Get(r.Context(), externalID)
		if err != nil {
			if errors.Is(err, organization.ErrNotFound) {
				_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.RequestList{Requests: []viewmodels.Request{}})
				return
			}
			logger.WithError(err).Error("failed to resolve organization filter")
			_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_LIST_FAILED", "failed to fetch requests", nil)
			return
		}
		orgID = org.ID()
	}

	limit, offset := paging(r)
	entities, err := c.requests.GetAll(r.Context(), orgID, limit, offset)
	if err != nil {
		logger.WithError(err).Error("failed to list requests")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "REQUEST_LIST_FAILED", "failed to fetch requests", nil)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.RequestList{Requests: mappers.RequestsToViewModels(entities)})
}

func paging(r *http.Request) (limit, offset int) {
	limit = 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
