package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"gisteam.backend/internal/config"
	"gisteam.backend/internal/infrastructure/datasources"
	"gisteam.backend/internal/infrastructure/objectstore"
	"gisteam.backend/internal/infrastructure/repositories"
	"gisteam.backend/internal/usecases"
	"gisteam.backend/pkg/crypto"
	"gisteam.backend/pkg/redis"
)

var openDatasources = datasources.Open

// Container holds the wired repositories and usecases shared by the server
// and the command line tools.
type Container struct {
	Config      *config.Config
	Datasources *datasources.Datasources

	Accounts    *repositories.AccountRepository
	Projects    *repositories.ProjectRepository
	Gallery     *repositories.GalleryRepository
	TeamMembers *repositories.TeamMemberRepository
	Messages    *repositories.ContactMessageRepository

	AccountUsecase   *usecases.AccountUsecase
	ReconcileUsecase *usecases.ReconcileUsecase
	AuditUsecase     *usecases.AuditUsecase
	SeedUsecase      *usecases.SeedUsecase
}

// New opens the configured store and wires everything on top of it.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Container, error) {
	ds, err := openDatasources(ctx, cfg, reg)
	if err != nil {
		return nil, err
	}
	c, err := Wire(cfg, ds)
	if err != nil {
		_ = ds.Close()
		return nil, err
	}
	return c, nil
}

// Wire builds repositories and usecases over already opened datasources.
func Wire(cfg *config.Config, ds *datasources.Datasources) (*Container, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	opts := RepositoryOptions(cfg)
	c := &Container{
		Config:      cfg,
		Datasources: ds,
		Accounts:    repositories.NewAccountRepository(ds.Store, opts),
		Projects:    repositories.NewProjectRepository(ds.Store, opts),
		Gallery:     repositories.NewGalleryRepository(ds.Store, opts),
		TeamMembers: repositories.NewTeamMemberRepository(ds.Store, opts),
		Messages:    repositories.NewContactMessageRepository(ds.Store, opts),
	}

	var locker usecases.KeyLocker
	if cfg.Redis.LockEnabled && ds.Redis != nil {
		locker = redis.NewKeyLocker(ds.Redis, "gisteam:lock:", cfg.Redis.LockTTL)
	}
	guard := usecases.NewUniquenessGuard(c.Accounts, locker)

	c.AccountUsecase = usecases.NewAccountUsecase(c.Accounts, guard, hasher)
	c.ReconcileUsecase = usecases.NewDefaultReconcileUsecase(c.TeamMembers, c.Accounts)
	c.AuditUsecase = usecases.NewAuditUsecase(c.Accounts, c.Projects, c.Gallery, c.TeamMembers, c.Messages)
	c.SeedUsecase = usecases.NewSeedUsecase(c.TeamMembers, c.Projects, c.Gallery)
	return c, nil
}

// RepositoryOptions maps configuration onto repository tuning.
func RepositoryOptions(cfg *config.Config) repositories.Options {
	return repositories.Options{
		ListConcurrency: cfg.Store.ListConcurrency,
		ListAttempts:    cfg.Consistency.ListAttempts,
		ListInterval:    cfg.Consistency.ListInterval,
	}
}

// Store returns the decorated object store.
func (c *Container) Store() objectstore.Store {
	return c.Datasources.Store
}

// Close releases the datasources.
func (c *Container) Close() error {
	return c.Datasources.Close()
}
