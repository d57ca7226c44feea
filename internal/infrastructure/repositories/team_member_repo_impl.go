package repositories

import (
	"context"

	"github.com/google/uuid"

	"gisteam.backend/internal/domain/entities"
	domainrepos "gisteam.backend/internal/domain/repositories"
	"gisteam.backend/internal/infrastructure/models"
	"gisteam.backend/internal/infrastructure/objectstore"
)

type TeamMemberRepository struct {
	records *RecordStore[models.TeamMemberDocument, *models.TeamMemberDocument]
}

func NewTeamMemberRepository(store objectstore.Store, opts Options) *TeamMemberRepository {
	return &TeamMemberRepository{
		records: NewRecordStore[models.TeamMemberDocument](store, models.CollectionTeamMembers, opts),
	}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	id, err := r.records.NewID(ctx)
	if err != nil {
		return err
	}
	now := r.records.Now()
	member.ID = id
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.MemberType == "" {
		member.MemberType = entities.MemberTypeBoard
	}

	return r.records.Put(ctx, r.toModel(member))
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	m, err := r.records.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

// List returns board members before alumni, each group by name.
func (r *TeamMemberRepository) List(ctx context.Context) ([]*entities.TeamMember, error) {
	ms, err := r.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.TeamMember, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toEntity(m))
	}
	entities.SortTeamMembers(items)
	return items, nil
}

func (r *TeamMemberRepository) Update(ctx context.Context, id uuid.UUID, patch entities.TeamMemberPatch) (*entities.TeamMember, error) {
	m, err := r.records.Modify(ctx, id, func(m *models.TeamMemberDocument) {
		tm := r.toEntity(m)
		patch.Apply(tm)
		*m = *r.toModel(tm)
	})
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *TeamMemberRepository) Purge(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.records.Remove(ctx, id)
}

func (r *TeamMemberRepository) AwaitListed(ctx context.Context, id uuid.UUID) error {
	return r.records.AwaitListed(ctx, id)
}

func (r *TeamMemberRepository) Audit(ctx context.Context) (*domainrepos.ScanStats, error) {
	return r.records.Stats(ctx)
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMemberDocument) *entities.TeamMember {
	return &entities.TeamMember{
		ID:          uuid.MustParse(m.ID),
		Name:        m.Name,
		Title:       m.Title,
		Description: m.Description,
		LinkedInURL: m.LinkedInURL,
		MemberType:  entities.MemberType(m.MemberType),
		Year:        m.Year,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Time,
		UpdatedAt:   m.UpdatedAt.Value(),
	}
}

func (r *TeamMemberRepository) toModel(tm *entities.TeamMember) *models.TeamMemberDocument {
	return &models.TeamMemberDocument{
		ID:          tm.ID.String(),
		Name:        tm.Name,
		Title:       tm.Title,
		Description: tm.Description,
		LinkedInURL: tm.LinkedInURL,
		MemberType:  string(tm.MemberType),
		Year:        tm.Year,
		CreatedBy:   tm.CreatedBy,
		CreatedAt:   models.NewTimestamp(tm.CreatedAt),
		UpdatedAt:   models.NewTimestampPtr(tm.UpdatedAt),
	}
}
