package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/lawithanx/jcorp/internal/domain/entities"
)

// ProjectRepository defines project catalog persistence
type ProjectRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entities.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Create(ctx context.Context, project *entities.Project) error
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AgentRepository defines agent profile persistence
type AgentRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entities.Agent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error)
	Create(ctx context.Context, agent *entities.Agent) error
	Update(ctx context.Context, agent *entities.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
}
