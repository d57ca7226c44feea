package repositories

import (
	"context"

	"gisteam.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// AccountRepository defines account data operations.
// Lookups by username or email are full scans of the collection.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
	List(ctx context.Context) ([]*entities.Account, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.AccountPatch) (*entities.Account, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	Purge(ctx context.Context, id uuid.UUID) (bool, error)
}
