package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContactMessage is append-only: it is never updated or deleted.
type ContactMessage struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Subject     string      `json:"subject"`
	Message     string      `json:"message"`
	SubmittedAt time.Time   `json:"timestamp"`
	UserID      null.String `json:"user_id"`
}
