package repositories

import (
	"context"

	"github.com/google/uuid"
)

// ScanStats summarizes one full pass over a collection.
type ScanStats struct {
	Collection string   `json:"collection"`
	Listed     int      `json:"listed"`
	Decoded    int      `json:"decoded"`
	Malformed  []string `json:"malformed"`
	Vanished   int      `json:"vanished"`
}

// Auditable repositories can report how their last full scan went.
type Auditable interface {
	Audit(ctx context.Context) (*ScanStats, error)
}

// ListAwaiter repositories can wait until a freshly written record shows up
// in listings.
type ListAwaiter interface {
	AwaitListed(ctx context.Context, id uuid.UUID) error
}
