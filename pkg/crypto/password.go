package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost; verification takes tens of milliseconds.
	DefaultCost = 12
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompare              = bcrypt.CompareHashAndPassword
)

// ErrInvalidCost is returned for costs outside bcrypt's accepted range.
var ErrInvalidCost = errors.New("invalid bcrypt cost")

// PasswordHasher derives and verifies salted one-way hashes. One hasher is
// built at startup so the cost is fixed for the whole process.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Cost returns the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// HashPassword hashes a password using bcrypt. The salt is embedded in the result.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash in constant time.
func (h *PasswordHasher) CheckPassword(password, hash string) bool {
	return bcryptCompare([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether hash was produced with a different cost
// than the process-wide one, or is not a bcrypt hash at all.
func (h *PasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost != h.cost
}
