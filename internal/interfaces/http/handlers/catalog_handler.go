package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/interfaces/http/response"
)

type CatalogService interface {
	ListProjects(ctx context.Context, includeInactive bool) ([]*entities.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	CreateProject(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListAgents(ctx context.Context, includeInactive bool) ([]*entities.Agent, error)
	CreateAgent(ctx context.Context, input *entities.CreateAgentInput) (*entities.Agent, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, input *entities.CreateAgentInput) (*entities.Agent, error)
	DeleteAgent(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler serves the public catalog and the admin CRUD
type CatalogHandler struct {
	catalogUsecase CatalogService
}

func NewCatalogHandler(catalogUsecase CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// ListProjects lists active projects
// GET /api/projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	includeInactive := c.GetString("role") == "admin" && c.Query("all") == "true"
	projects, err := h.catalogUsecase.ListProjects(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "projects": projects})
}

// GetProject returns one project by ID
// GET /api/projects/:id
func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid project ID"))
		return
	}

	project, err := h.catalogUsecase.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "project": project})
}

// CreateProject creates a project
// POST /api/admin/projects
func (h *CatalogHandler) CreateProject(c *gin.Context) {
	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.catalogUsecase.CreateProject(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"success": true, "project": project})
}

// UpdateProject updates a project
// PUT /api/admin/projects/:id
func (h *CatalogHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid project ID"))
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.catalogUsecase.UpdateProject(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "project": project})
}

// DeleteProject deletes a project
// DELETE /api/admin/projects/:id
func (h *CatalogHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid project ID"))
		return
	}

	if err := h.catalogUsecase.DeleteProject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// ListAgents lists active agents in display order
// GET /api/agents
func (h *CatalogHandler) ListAgents(c *gin.Context) {
	includeInactive := c.GetString("role") == "admin" && c.Query("all") == "true"
	agents, err := h.catalogUsecase.ListAgents(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "agents": agents})
}

// CreateAgent creates an agent profile
// POST /api/admin/agents
func (h *CatalogHandler) CreateAgent(c *gin.Context) {
	var input entities.CreateAgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	agent, err := h.catalogUsecase.CreateAgent(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"success": true, "agent": agent})
}

// UpdateAgent updates an agent profile
// PUT /api/admin/agents/:id
func (h *CatalogHandler) UpdateAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid agent ID"))
		return
	}

	var input entities.CreateAgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	agent, err := h.catalogUsecase.UpdateAgent(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "agent": agent})
}

// DeleteAgent deletes an agent profile
// DELETE /api/admin/agents/:id
func (h *CatalogHandler) DeleteAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid agent ID"))
		return
	}

	if err := h.catalogUsecase.DeleteAgent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}
