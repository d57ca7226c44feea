package repositories

import (
	"context"

	"gisteam.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// TeamMemberRepository defines team member operations. There is no logical
// delete for team members: Purge removes the record.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error)
	List(ctx context.Context) ([]*entities.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.TeamMemberPatch) (*entities.TeamMember, error)
	Purge(ctx context.Context, id uuid.UUID) (bool, error)
}
