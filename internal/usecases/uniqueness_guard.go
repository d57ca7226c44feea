package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/pkg/logger"
	"gisteam.backend/pkg/redis"
)

// KeyLocker serializes work on a natural key across processes.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// UniquenessGuard rejects account registrations whose username or email is
// already stored. The check is a full scan followed by a separate write, so
// without a locker two concurrent registrations can both pass; the account
// reconciler removes such duplicates afterwards.
type UniquenessGuard struct {
	accounts repositories.AccountRepository
	locker   KeyLocker
}

// NewUniquenessGuard creates a guard. locker may be nil.
func NewUniquenessGuard(accounts repositories.AccountRepository, locker KeyLocker) *UniquenessGuard {
	return &UniquenessGuard{accounts: accounts, locker: locker}
}

// Check scans every stored account, active or not, for an exact match on
// username and then on email.
func (g *UniquenessGuard) Check(ctx context.Context, username, email string) error {
	accounts, err := g.accounts.List(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Username == username {
			return &domainerrors.ConflictError{Field: "username", Value: username}
		}
	}
	for _, a := range accounts {
		if a.Email == email {
			return &domainerrors.ConflictError{Field: "email", Value: email}
		}
	}
	return nil
}

// Reserve locks both natural keys when a locker is configured and then
// runs Check. The returned release must be called once the account has been
// written (or the write abandoned).
func (g *UniquenessGuard) Reserve(ctx context.Context, username, email string) (func(), error) {
	release := func() {}
	if g.locker != nil {
		var err error
		release, err = g.lockKeys(ctx, username, email)
		if err != nil {
			return nil, err
		}
	}
	if err := g.Check(ctx, username, email); err != nil {
		release()
		return nil, err
	}
	return release, nil
}

func (g *UniquenessGuard) lockKeys(ctx context.Context, username, email string) (func(), error) {
	keys := []struct{ field, value string }{
		{"username", username},
		{"email", email},
	}
	var releases []func()
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, k := range keys {
		rel, err := g.locker.Lock(ctx, "account:"+k.field+":"+k.value)
		if err != nil {
			releaseAll()
			if errors.Is(err, redis.ErrLockHeld) {
				logger.Info(ctx, "Registration already in progress", zap.String("field", k.field))
				return nil, &domainerrors.ConflictError{Field: k.field, Value: k.value}
			}
			return nil, domainerrors.Transient("lock "+k.field, err)
		}
		releases = append(releases, rel)
	}
	return releaseAll, nil
}
