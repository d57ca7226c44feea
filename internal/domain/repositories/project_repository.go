package repositories

import (
	"context"

	"gisteam.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ProjectRepository defines project data operations.
// List returns active projects only; ListAll includes deactivated ones.
// Both are ordered newest first.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context) ([]*entities.Project, error)
	ListAll(ctx context.Context) ([]*entities.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.ProjectPatch) (*entities.Project, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Purge(ctx context.Context, id uuid.UUID) (bool, error)
}
