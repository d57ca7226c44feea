package usecases

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/pkg/crypto"
	"gisteam.backend/pkg/logger"
)

// AccountUsecase handles registration and authentication
type AccountUsecase struct {
	accounts repositories.AccountRepository
	guard    *UniquenessGuard
	hasher   *crypto.PasswordHasher
	now      func() time.Time
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(accounts repositories.AccountRepository, guard *UniquenessGuard, hasher *crypto.PasswordHasher) *AccountUsecase {
	return &AccountUsecase{
		accounts: accounts,
		guard:    guard,
		hasher:   hasher,
		now:      time.Now,
	}
}

// Register creates an active account after the uniqueness check. Only the
// password hash is stored. It returns once the account is listable, so a
// registration that follows it under the same lock sees it.
func (u *AccountUsecase) Register(ctx context.Context, input *entities.CreateAccountInput) (*entities.Account, error) {
	if input == nil || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	release, err := u.guard.Reserve(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	hash, err := u.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    optionalString(input.FirstName),
		LastName:     optionalString(input.LastName),
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	// The keys stay reserved until the next registrant's scan can see this
	// account.
	awaitListed(ctx, u.accounts, account.ID)

	logger.Info(ctx, "Account registered", zap.String("account_id", account.ID.String()))
	return account, nil
}

// Authenticate resolves identifier as a username, then as an email, and
// verifies the password. Unknown identifiers, wrong passwords and inactive
// accounts are indistinguishable to the caller. On success last_login is
// recorded.
func (u *AccountUsecase) Authenticate(ctx context.Context, identifier, password string) (*entities.Account, error) {
	account, err := u.accounts.GetByUsername(ctx, identifier)
	if errors.Is(err, domainerrors.ErrNotFound) {
		account, err = u.accounts.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.hasher.CheckPassword(password, account.PasswordHash) || !account.IsActive {
		return nil, domainerrors.ErrInvalidCredentials
	}

	patch := entities.AccountPatch{LastLogin: entities.Some(null.TimeFrom(u.now().UTC()))}
	if u.hasher.NeedsRehash(account.PasswordHash) {
		if hash, err := u.hasher.HashPassword(password); err == nil {
			patch.PasswordHash = entities.Some(hash)
		}
	}

	updated, err := u.accounts.Update(ctx, account.ID, patch)
	if err != nil {
		// The password was right; a missed last_login write does not undo that.
		logger.Warn(ctx, "Failed to record last login", zap.String("account_id", account.ID.String()), zap.Error(err))
		return account, nil
	}
	return updated, nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}
