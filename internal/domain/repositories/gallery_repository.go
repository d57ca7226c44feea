package repositories

import (
	"context"

	"gisteam.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *entities.GalleryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.GalleryItem, error)
	List(ctx context.Context) ([]*entities.GalleryItem, error)
	ListAll(ctx context.Context) ([]*entities.GalleryItem, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.GalleryItemPatch) (*entities.GalleryItem, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*entities.GalleryItem, error)
	Purge(ctx context.Context, id uuid.UUID) (bool, error)
}
