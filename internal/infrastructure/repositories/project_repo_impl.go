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

type ProjectRepository struct {
	records *RecordStore[models.ProjectDocument, *models.ProjectDocument]
}

func NewProjectRepository(store objectstore.Store, opts Options) *ProjectRepository {
	return &ProjectRepository{
		records: NewRecordStore[models.ProjectDocument](store, models.CollectionProjects, opts),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	id, err := r.records.NewID(ctx)
	if err != nil {
		return err
	}
	now := r.records.Now()
	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	project.IsActive = true

	return r.records.Put(ctx, r.toModel(project))
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	m, err := r.records.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

// List returns active projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	return r.list(ctx, false)
}

// ListAll includes deactivated projects.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]*entities.Project, error) {
	return r.list(ctx, true)
}

func (r *ProjectRepository) list(ctx context.Context, includeInactive bool) ([]*entities.Project, error) {
	ms, err := r.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Project, 0, len(ms))
	for _, m := range ms {
		p := r.toEntity(m)
		if !includeInactive && !p.IsActive {
			continue
		}
		items = append(items, p)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, patch entities.ProjectPatch) (*entities.Project, error) {
	m, err := r.records.Modify(ctx, id, func(m *models.ProjectDocument) {
		p := r.toEntity(m)
		patch.Apply(p)
		*m = *r.toModel(p)
	})
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *ProjectRepository) Deactivate(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	return r.Update(ctx, id, entities.ProjectPatch{IsActive: entities.Some(false)})
}

func (r *ProjectRepository) Purge(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.records.Remove(ctx, id)
}

func (r *ProjectRepository) AwaitListed(ctx context.Context, id uuid.UUID) error {
	return r.records.AwaitListed(ctx, id)
}

func (r *ProjectRepository) Audit(ctx context.Context) (*domainrepos.ScanStats, error) {
	return r.records.Stats(ctx)
}

func (r *ProjectRepository) toEntity(m *models.ProjectDocument) *entities.Project {
	return &entities.Project{
		ID:          uuid.MustParse(m.ID),
		Title:       m.Title,
		CreatorName: m.CreatorName,
		Description: m.Description,
		ProjectLink: m.ProjectLink,
		ProjectType: m.ProjectType,
		Tags:        m.Tags,
		ImageURL:    m.ImageURL,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Time,
		UpdatedAt:   m.UpdatedAt.Value(),
		IsActive:    m.IsActive == nil || *m.IsActive,
	}
}

func (r *ProjectRepository) toModel(p *entities.Project) *models.ProjectDocument {
	active := p.IsActive
	return &models.ProjectDocument{
		ID:          p.ID.String(),
		Title:       p.Title,
		CreatorName: p.CreatorName,
		Description: p.Description,
		ProjectLink: p.ProjectLink,
		ProjectType: p.ProjectType,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   models.NewTimestamp(p.CreatedAt),
		UpdatedAt:   models.NewTimestampPtr(p.UpdatedAt),
		IsActive:    &active,
	}
}
