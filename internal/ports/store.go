package ports

import (
	"context"

	"github.com/bft-labs/bookshelf/internal/domain"
)

// Store persists the catalog's records between runs.
// Implementations read and write the whole collection in one call.
type Store interface {
	// Load retrieves every stored record in stored order.
	// Returns nil documents and nil error if the store does not exist yet.
	// Returns an error matching domain.ErrCorruptStore if the contents cannot
	// be parsed as a list of records.
	Load(ctx context.Context) ([]domain.Document, error)

	// Save replaces the stored records with docs.
	// The implementation should write atomically (e.g., temp file, then rename)
	// so a failed save leaves the previous contents in place.
	// Returns an error matching domain.ErrPersistence on failure.
	Save(ctx context.Context, docs []domain.Document) error
}

// Quarantiner is implemented by stores that can move unreadable contents
// aside instead of letting the next Save overwrite them.
type Quarantiner interface {
	// Quarantine renames the current store contents and returns the new location.
	Quarantine(ctx context.Context) (string, error)
}
