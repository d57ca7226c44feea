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

// ContactMessageRepository has no update or delete: messages are kept as
// submitted.
type ContactMessageRepository struct {
	records *RecordStore[models.ContactMessageDocument, *models.ContactMessageDocument]
}

func NewContactMessageRepository(store objectstore.Store, opts Options) *ContactMessageRepository {
	return &ContactMessageRepository{
		records: NewRecordStore[models.ContactMessageDocument](store, models.CollectionContactMessages, opts),
	}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	id, err := r.records.NewID(ctx)
	if err != nil {
		return err
	}
	msg.ID = id
	msg.SubmittedAt = r.records.Now()

	return r.records.Put(ctx, r.toModel(msg))
}

func (r *ContactMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ContactMessage, error) {
	m, err := r.records.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

// List returns messages newest first.
func (r *ContactMessageRepository) List(ctx context.Context) ([]*entities.ContactMessage, error) {
	ms, err := r.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.ContactMessage, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toEntity(m))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
	return items, nil
}

func (r *ContactMessageRepository) Audit(ctx context.Context) (*domainrepos.ScanStats, error) {
	return r.records.Stats(ctx)
}

func (r *ContactMessageRepository) toEntity(m *models.ContactMessageDocument) *entities.ContactMessage {
	return &entities.ContactMessage{
		ID:          uuid.MustParse(m.ID),
		Name:        m.Name,
		Email:       m.Email,
		Subject:     m.Subject,
		Message:     m.Message,
		SubmittedAt: m.Timestamp.Time,
		UserID:      m.UserID,
	}
}

func (r *ContactMessageRepository) toModel(msg *entities.ContactMessage) *models.ContactMessageDocument {
	return &models.ContactMessageDocument{
		ID:        msg.ID.String(),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Timestamp: models.NewTimestamp(msg.SubmittedAt),
		UserID:    msg.UserID,
	}
}
