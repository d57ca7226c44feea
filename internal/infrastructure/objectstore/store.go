// Package objectstore adapts key-addressed blob stores to a minimal
// put/get/list/delete contract.
//
// List is eventually consistent on every backend we target: an object
// written just before a List may be missing from the result and an object
// deleted just before may still be present. Get and Delete act on the
// object itself. Any error returned by a Store other than a definitive
// absence is a *errors.TransientError and may be retried.
package objectstore

import (
	"context"
	"strings"
)

// Store is the only I/O boundary of the repository layer.
type Store interface {
	// Put writes data at path, replacing any existing object wholesale.
	Put(ctx context.Context, path string, data []byte) error
	// Get returns the object at path. found is false when it does not exist.
	Get(ctx context.Context, path string) (data []byte, found bool, err error)
	// List returns the paths under prefix in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes the object at path and reports whether it existed.
	Delete(ctx context.Context, path string) (existed bool, err error)
}

// Join builds a slash separated object path.
func Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}
