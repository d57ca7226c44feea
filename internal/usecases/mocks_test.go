package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gisteam.backend/internal/domain/entities"
	"gisteam.backend/internal/infrastructure/objectstore"
	"gisteam.backend/internal/infrastructure/repositories"
)

// MockTeamMemberRepository
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) List(ctx context.Context) ([]*entities.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Update(ctx context.Context, id uuid.UUID, patch entities.TeamMemberPatch) (*entities.TeamMember, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Purge(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// stepClock advances a fixed amount on every reading.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type testRepos struct {
	store    *objectstore.MemoryStore
	accounts *repositories.AccountRepository
	projects *repositories.ProjectRepository
	gallery  *repositories.GalleryRepository
	members  *repositories.TeamMemberRepository
	messages *repositories.ContactMessageRepository
}

func newTestRepos(listLag int) *testRepos {
	store := objectstore.NewMemoryStore(listLag)
	clock := &stepClock{now: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
	opts := repositories.Options{
		ListConcurrency: 4,
		ListAttempts:    10,
		ListInterval:    time.Millisecond,
		Now:             clock.Now,
	}
	return &testRepos{
		store:    store,
		accounts: repositories.NewAccountRepository(store, opts),
		projects: repositories.NewProjectRepository(store, opts),
		gallery:  repositories.NewGalleryRepository(store, opts),
		members:  repositories.NewTeamMemberRepository(store, opts),
		messages: repositories.NewContactMessageRepository(store, opts),
	}
}
