package repositories

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	domainrepos "gisteam.backend/internal/domain/repositories"
	"gisteam.backend/internal/infrastructure/models"
	"gisteam.backend/internal/infrastructure/objectstore"
)

type AccountRepository struct {
	records *RecordStore[models.AccountDocument, *models.AccountDocument]
}

func NewAccountRepository(store objectstore.Store, opts Options) *AccountRepository {
	return &AccountRepository{
		records: NewRecordStore[models.AccountDocument](store, models.CollectionAccounts, opts),
	}
}

// Create assigns the id and timestamps and writes the account. It does not
// check username or email; registration does that before calling Create.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	id, err := r.records.NewID(ctx)
	if err != nil {
		return err
	}
	now := r.records.Now()
	account.ID = id
	account.CreatedAt = now
	account.UpdatedAt = now
	account.IsActive = true

	return r.records.Put(ctx, r.toModel(account))
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	m, err := r.records.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return r.findFirst(ctx, func(a *entities.Account) bool { return a.Username == username })
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.findFirst(ctx, func(a *entities.Account) bool { return a.Email == email })
}

// findFirst returns the oldest matching account so lookups stay stable while
// duplicates await reconciliation.
func (r *AccountRepository) findFirst(ctx context.Context, match func(*entities.Account) bool) (*entities.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var found *entities.Account
	for _, a := range accounts {
		if !match(a) {
			continue
		}
		if found == nil || a.CreatedAt.Before(found.CreatedAt) {
			found = a
		}
	}
	if found == nil {
		return nil, domainerrors.ErrNotFound
	}
	return found, nil
}

// List returns every account, active or not, ordered by username.
func (r *AccountRepository) List(ctx context.Context) ([]*entities.Account, error) {
	ms, err := r.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Account, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toEntity(m))
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Username != items[j].Username {
			return items[i].Username < items[j].Username
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *AccountRepository) Update(ctx context.Context, id uuid.UUID, patch entities.AccountPatch) (*entities.Account, error) {
	m, err := r.records.Modify(ctx, id, func(m *models.AccountDocument) {
		a := r.toEntity(m)
		patch.Apply(a)
		*m = *r.toModel(a)
	})
	if err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *AccountRepository) Deactivate(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return r.Update(ctx, id, entities.AccountPatch{IsActive: entities.Some(false)})
}

func (r *AccountRepository) Purge(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.records.Remove(ctx, id)
}

func (r *AccountRepository) AwaitListed(ctx context.Context, id uuid.UUID) error {
	return r.records.AwaitListed(ctx, id)
}

func (r *AccountRepository) Audit(ctx context.Context) (*domainrepos.ScanStats, error) {
	return r.records.Stats(ctx)
}

func (r *AccountRepository) toEntity(m *models.AccountDocument) *entities.Account {
	a := &entities.Account{
		ID:           uuid.MustParse(m.ID),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		CreatedAt:    m.CreatedAt.Time,
		UpdatedAt:    m.UpdatedAt.Value(),
		IsActive:     m.IsActive == nil || *m.IsActive,
	}
	if m.LastLogin != nil && !m.LastLogin.IsZero() {
		a.LastLogin.SetValid(m.LastLogin.Time)
	}
	return a
}

func (r *AccountRepository) toModel(a *entities.Account) *models.AccountDocument {
	active := a.IsActive
	m := &models.AccountDocument{
		ID:           a.ID.String(),
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		CreatedAt:    models.NewTimestamp(a.CreatedAt),
		UpdatedAt:    models.NewTimestampPtr(a.UpdatedAt),
		IsActive:     &active,
	}
	if a.LastLogin.Valid {
		m.LastLogin = models.NewTimestampPtr(a.LastLogin.Time)
	}
	return m
}
