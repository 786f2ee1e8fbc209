package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/infrastructure/models"
)

// ProjectRepository implements project catalog persistence on GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List lists projects, newest first
func (r *ProjectRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Project, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var ms []models.Project
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	projects := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		projects = append(projects, projectToEntity(&ms[i]))
	}
	return projects, nil
}

// GetByID gets a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return projectToEntity(&m), nil
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	return r.db.WithContext(ctx).Create(projectToModel(project)).Error
}

// Update replaces a project's mutable fields
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"title":          project.Title,
			"classification": project.Classification,
			"description":    project.Description,
			"project_type":   project.ProjectType,
			"technologies":   project.Technologies,
			"github_url":     project.GithubURL,
			"live_url":       project.LiveURL,
			"is_active":      project.IsActive,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func projectToModel(p *entities.Project) *models.Project {
	return &models.Project{
		ID:             p.ID,
		Title:          p.Title,
		Classification: p.Classification,
		Description:    p.Description,
		ProjectType:    p.ProjectType,
		Technologies:   p.Technologies,
		GithubURL:      p.GithubURL,
		LiveURL:        p.LiveURL,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func projectToEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:             m.ID,
		Title:          m.Title,
		Classification: m.Classification,
		Description:    m.Description,
		ProjectType:    m.ProjectType,
		Technologies:   m.Technologies,
		GithubURL:      m.GithubURL,
		LiveURL:        m.LiveURL,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AgentRepository implements agent profile persistence on GORM
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// List lists agents by display order, then name
func (r *AgentRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Agent, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC, name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var ms []models.Agent
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	agents := make([]*entities.Agent, 0, len(ms))
	for i := range ms {
		agents = append(agents, agentToEntity(&ms[i]))
	}
	return agents, nil
}

// GetByID gets an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	var m models.Agent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return agentToEntity(&m), nil
}

// Create inserts a new agent
func (r *AgentRepository) Create(ctx context.Context, agent *entities.Agent) error {
	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}
	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	m := &models.Agent{
		ID:           agent.ID,
		Name:         agent.Name,
		Description:  agent.Description,
		DisplayOrder: agent.DisplayOrder,
		IsActive:     agent.IsActive,
		CreatedAt:    agent.CreatedAt,
		UpdatedAt:    agent.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// Update replaces an agent's mutable fields
func (r *AgentRepository) Update(ctx context.Context, agent *entities.Agent) error {
	result := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{
			"name":          agent.Name,
			"description":   agent.Description,
			"display_order": agent.DisplayOrder,
			"is_active":     agent.IsActive,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an agent
func (r *AgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Agent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func agentToEntity(m *models.Agent) *entities.Agent {
	return &entities.Agent{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
