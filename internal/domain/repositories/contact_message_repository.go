package repositories

import (
	"context"

	"gisteam.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ContactMessageRepository is append-only.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entities.ContactMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ContactMessage, error)
	List(ctx context.Context) ([]*entities.ContactMessage, error)
}
