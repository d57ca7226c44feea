package repositories

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gisteam.backend/internal/domain/entities"
	domainrepos "gisteam.backend/internal/domain/repositories"
	"gisteam.backend/internal/infrastructure/models"
	"gisteam.backend/internal/infrastructure/objectstore"
)

type GalleryRepository struct {
	records *RecordStore[models.GalleryItemDocument, *models.GalleryItemDocument]
}

func NewGalleryRepository(store objectstore.Store, opts Options) *GalleryRepository {
	return &GalleryRepository{
		records: NewRecordStore[models.GalleryItemDocument](store, models.CollectionGallery, opts),
	}
}

func (r *GalleryRepository) Create(ctx context.Context, item *entities.GalleryItem) error {
	id, err := r.records.NewID(ctx)
	if err != nil {
		return err
	}
	now := r.records.Now()
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	item.IsActive = true

	return r.records.Put(ctx, r.toModel(item))
}

func (r *GalleryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.GalleryItem, error) {
	m, err := r.records.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *GalleryRepository) List(ctx context.Context) ([]*entities.GalleryItem, error) {
	return r.list(ctx, false)
}

func (r *GalleryRepository) ListAll(ctx context.Context) ([]*entities.GalleryItem, error) {
	return r.list(ctx, true)
}

func (r *GalleryRepository) list(ctx context.Context, includeInactive bool) ([]*entities.GalleryItem, error) {
	ms, err := r.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.GalleryItem, 0, len(ms))
	for _, m := range ms {
		g := r.toEntity(m)
		if !includeInactive && !g.IsActive {
			continue
		}
		items = append(items, g)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id uuid.UUID, patch entities.GalleryItemPatch) (*entities.GalleryItem, error) {
	m, err := r.records.Modify(ctx, id, func(m *models.GalleryItemDocument) {
		g := r.toEntity(m)
		patch.Apply(g)
		*m = *r.toModel(g)
	})
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *GalleryRepository) Deactivate(ctx context.Context, id uuid.UUID) (*entities.GalleryItem, error) {
	return r.Update(ctx, id, entities.GalleryItemPatch{IsActive: entities.Some(false)})
}

func (r *GalleryRepository) Purge(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.records.Remove(ctx, id)
}

func (r *GalleryRepository) AwaitListed(ctx context.Context, id uuid.UUID) error {
	return r.records.AwaitListed(ctx, id)
}

func (r *GalleryRepository) Audit(ctx context.Context) (*domainrepos.ScanStats, error) {
	return r.records.Stats(ctx)
}

func (r *GalleryRepository) toEntity(m *models.GalleryItemDocument) *entities.GalleryItem {
	return &entities.GalleryItem{
		ID:          uuid.MustParse(m.ID),
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Time,
		UpdatedAt:   m.UpdatedAt.Value(),
		IsActive:    m.IsActive == nil || *m.IsActive,
	}
}

func (r *GalleryRepository) toModel(g *entities.GalleryItem) *models.GalleryItemDocument {
	active := g.IsActive
	return &models.GalleryItemDocument{
		ID:          g.ID.String(),
		Title:       g.Title,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   models.NewTimestamp(g.CreatedAt),
		UpdatedAt:   models.NewTimestampPtr(g.UpdatedAt),
		IsActive:    &active,
	}
}
