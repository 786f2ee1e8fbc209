package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/domain/repositories"
	"github.com/lawithanx/jcorp/pkg/logger"
)

// CatalogUsecase serves the public project and agent listings and the
// admin CRUD behind them.
type CatalogUsecase struct {
	projectRepo repositories.ProjectRepository
	agentRepo   repositories.AgentRepository
}

func NewCatalogUsecase(projectRepo repositories.ProjectRepository, agentRepo repositories.AgentRepository) *CatalogUsecase {
	return &CatalogUsecase{projectRepo: projectRepo, agentRepo: agentRepo}
}

// ListProjects returns active projects for the public site, or every
// project when includeInactive is set (admin view).
func (u *CatalogUsecase) ListProjects(ctx context.Context, includeInactive bool) ([]*entities.Project, error) {
	projects, err := u.projectRepo.List(ctx, !includeInactive)
	if err != nil {
		logger.Error(ctx, "failed to list projects", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return projects, nil
}

func (u *CatalogUsecase) GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Project not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return project, nil
}

func (u *CatalogUsecase) CreateProject(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error) {
	project := &entities.Project{
		ID:             uuid.New(),
		Title:          input.Title,
		Classification: input.Classification,
		Description:    input.Description,
		ProjectType:    input.ProjectType,
		Technologies:   input.Technologies,
		GithubURL:      input.GithubURL,
		LiveURL:        input.LiveURL,
		IsActive:       true,
	}
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}
	if err := u.projectRepo.Create(ctx, project); err != nil {
		logger.Error(ctx, "failed to create project", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	logger.Info(ctx, "project created", zap.String("project_id", project.ID.String()), zap.String("title", project.Title))
	return project, nil
}

func (u *CatalogUsecase) UpdateProject(ctx context.Context, id uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	project, err := u.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Title = input.Title
	project.Classification = input.Classification
	project.Description = input.Description
	project.ProjectType = input.ProjectType
	project.Technologies = input.Technologies
	project.GithubURL = input.GithubURL
	project.LiveURL = input.LiveURL
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return project, nil
}

func (u *CatalogUsecase) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := u.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Project not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// ListAgents returns active agents in display order.
func (u *CatalogUsecase) ListAgents(ctx context.Context, includeInactive bool) ([]*entities.Agent, error) {
	agents, err := u.agentRepo.List(ctx, !includeInactive)
	if err != nil {
		logger.Error(ctx, "failed to list agents", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return agents, nil
}

func (u *CatalogUsecase) CreateAgent(ctx context.Context, input *entities.CreateAgentInput) (*entities.Agent, error) {
	agent := &entities.Agent{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	if err := u.agentRepo.Create(ctx, agent); err != nil {
		logger.Error(ctx, "failed to create agent", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return agent, nil
}

func (u *CatalogUsecase) UpdateAgent(ctx context.Context, id uuid.UUID, input *entities.CreateAgentInput) (*entities.Agent, error) {
	agent, err := u.agentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Agent not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	agent.Name = input.Name
	agent.Description = input.Description
	agent.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	if err := u.agentRepo.Update(ctx, agent); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return agent, nil
}

func (u *CatalogUsecase) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	if err := u.agentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Agent not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}
