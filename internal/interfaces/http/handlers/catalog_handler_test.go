package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
)

type catalogServiceStub struct {
	projects []*entities.Project
	agents   []*entities.Agent
	project  *entities.Project
	agent    *entities.Agent
	err      error

	lastIncludeInactive bool
}

func (s *catalogServiceStub) ListProjects(ctx context.Context, includeInactive bool) ([]*entities.Project, error) {
	s.lastIncludeInactive = includeInactive
	return s.projects, s.err
}

func (s *catalogServiceStub) GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	return s.project, s.err
}

func (s *catalogServiceStub) CreateProject(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error) {
	return s.project, s.err
}

func (s *catalogServiceStub) UpdateProject(ctx context.Context, id uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	return s.project, s.err
}

func (s *catalogServiceStub) DeleteProject(ctx context.Context, id uuid.UUID) error { return s.err }

func (s *catalogServiceStub) ListAgents(ctx context.Context, includeInactive bool) ([]*entities.Agent, error) {
	s.lastIncludeInactive = includeInactive
	return s.agents, s.err
}

func (s *catalogServiceStub) CreateAgent(ctx context.Context, input *entities.CreateAgentInput) (*entities.Agent, error) {
	return s.agent, s.err
}

func (s *catalogServiceStub) UpdateAgent(ctx context.Context, id uuid.UUID, input *entities.CreateAgentInput) (*entities.Agent, error) {
	return s.agent, s.err
}

func (s *catalogServiceStub) DeleteAgent(ctx context.Context, id uuid.UUID) error { return s.err }

func newCatalogRouter(stub *catalogServiceStub) *gin.Engine {
	h := NewCatalogHandler(stub)
	r := gin.New()
	r.GET("/api/projects", h.ListProjects)
	r.GET("/api/projects/:id", h.GetProject)
	r.GET("/api/agents", h.ListAgents)

	admin := r.Group("/api/admin", func(c *gin.Context) { c.Set("role", "admin") })
	admin.GET("/projects", h.ListProjects)
	admin.POST("/projects", h.CreateProject)
	admin.PUT("/projects/:id", h.UpdateProject)
	admin.DELETE("/projects/:id", h.DeleteProject)
	admin.POST("/agents", h.CreateAgent)
	admin.PUT("/agents/:id", h.UpdateAgent)
	admin.DELETE("/agents/:id", h.DeleteAgent)
	return r
}

func TestListProjectsPublic(t *testing.T) {
	stub := &catalogServiceStub{projects: []*entities.Project{
		{ID: uuid.New(), Title: "ORACLE", IsActive: true},
	}}
	r := newCatalogRouter(stub)

	w := getPath(r, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, stub.lastIncludeInactive, "public listing must hide inactive entries")
	require.Contains(t, w.Body.String(), "ORACLE")
}

func TestListProjectsAdminSeesInactive(t *testing.T) {
	stub := &catalogServiceStub{}
	r := newCatalogRouter(stub)

	w := getPath(r, "/api/admin/projects?all=true")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, stub.lastIncludeInactive)
}

func TestGetProjectBadID(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{})

	w := getPath(r, "/api/projects/not-a-uuid")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProjectNotFound(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{err: domainerrors.NotFound("Project not found")})

	w := getPath(r, "/api/projects/"+uuid.NewString())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProject(t *testing.T) {
	stub := &catalogServiceStub{project: &entities.Project{ID: uuid.New(), Title: "ORACLE"}}
	r := newCatalogRouter(stub)

	w := postJSON(t, r, "/api/admin/projects", gin.H{
		"title":       "ORACLE",
		"description": "Payment verification backend",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
}

func TestCreateProjectMissingTitle(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{})

	w := postJSON(t, r, "/api/admin/projects", gin.H{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProject(t *testing.T) {
	stub := &catalogServiceStub{project: &entities.Project{ID: uuid.New(), Title: "ORACLE v2"}}
	r := newCatalogRouter(stub)

	body, _ := json.Marshal(gin.H{"title": "ORACLE v2", "description": "updated"})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/projects/"+uuid.NewString(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ORACLE v2")
}

func TestDeleteProject(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/projects/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListAgents(t *testing.T) {
	stub := &catalogServiceStub{agents: []*entities.Agent{
		{ID: uuid.New(), Name: "Alpha", DisplayOrder: 1},
	}}
	r := newCatalogRouter(stub)

	w := getPath(r, "/api/agents")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Alpha")
}

func TestCreateAgentMissingName(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{})

	w := postJSON(t, r, "/api/admin/agents", gin.H{"description": "no name"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAgentNotFound(t *testing.T) {
	r := newCatalogRouter(&catalogServiceStub{err: domainerrors.NotFound("Agent not found")})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/agents/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
