package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Account represents a registered site account.
// Username and Email are natural keys; uniqueness is enforced best-effort at creation.
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    null.String `json:"first_name"`
	LastName     null.String `json:"last_name"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	LastLogin    null.Time   `json:"last_login"`
	IsActive     bool        `json:"is_active"`
}

// AccountPatch lists the updatable account fields. Username and email are
// natural keys and cannot be changed through a patch.
type AccountPatch struct {
	PasswordHash Optional[string]
	FirstName    Optional[null.String]
	LastName     Optional[null.String]
	LastLogin    Optional[null.Time]
	IsActive     Optional[bool]
}

// Apply merges the supplied fields into a and reports whether anything changed.
func (p AccountPatch) Apply(a *Account) bool {
	changed := p.PasswordHash.Apply(&a.PasswordHash)
	changed = p.FirstName.Apply(&a.FirstName) || changed
	changed = p.LastName.Apply(&a.LastName) || changed
	changed = p.LastLogin.Apply(&a.LastLogin) || changed
	changed = p.IsActive.Apply(&a.IsActive) || changed
	return changed
}

// CreateAccountInput represents input for registering an account
type CreateAccountInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
