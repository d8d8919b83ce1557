// Package bookshelf keeps a small library catalog in a JSON file.
//
// Example usage:
//
//	lib, err := bookshelf.Open(ctx, "library.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	book, err := lib.AddBook(ctx, "Dune", "Frank Herbert", "1965")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	lib.UpdateStatus(ctx, book.ID, bookshelf.StatusCheckedOut.String())
package bookshelf

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/bookshelf/internal/adapters/fs"
	logAdapter "github.com/bft-labs/bookshelf/internal/adapters/log"
	"github.com/bft-labs/bookshelf/internal/catalog"
	"github.com/bft-labs/bookshelf/internal/domain"
	"github.com/bft-labs/bookshelf/internal/ports"
)

// Catalog is an open library. It is not safe for concurrent use.
type Catalog = catalog.Catalog

// Book is one catalog record.
type Book = domain.Book

// Status is the availability of a book.
type Status = domain.Status

// Criteria selects books in Catalog.Search.
type Criteria = catalog.Criteria

// Option configures Open.
type Option = catalog.Option

// Logger receives catalog log events.
type Logger = ports.Logger

// Book statuses.
const (
	StatusAvailable  = domain.StatusAvailable
	StatusCheckedOut = domain.StatusCheckedOut
)

// Errors returned by Catalog methods. Check them with errors.Is.
var (
	ErrInvalidYear     = domain.ErrInvalidYear
	ErrInvalidStatus   = domain.ErrInvalidStatus
	ErrMalformedRecord = domain.ErrMalformedRecord
	ErrCorruptStore    = domain.ErrCorruptStore
	ErrPersistence     = domain.ErrPersistence
	ErrInvalidInput    = domain.ErrInvalidInput
)

// DefaultStorePath is used by Open when path is empty.
const DefaultStorePath = fs.DefaultStoreFile

// Open loads the catalog stored at path. A missing file gives an empty catalog.
// An unreadable file also gives an empty catalog; see Catalog.LoadError.
func Open(ctx context.Context, path string, opts ...Option) (*Catalog, error) {
	return catalog.Open(ctx, fs.NewStoreFile(path), opts...)
}

// WithLogger sets a custom logger.
func WithLogger(logger Logger) Option {
	return catalog.WithLogger(logger)
}

// WithZerolog logs through an existing zerolog logger.
func WithZerolog(logger zerolog.Logger) Option {
	return catalog.WithLogger(logAdapter.NewZerologAdapter(logger))
}

// WithQuarantine renames an unreadable store file aside on Open instead of
// leaving it to be overwritten by the next save.
func WithQuarantine(enabled bool) Option {
	return catalog.WithQuarantine(enabled)
}

// ParseStatus converts "available" or "checked_out" to a Status.
func ParseStatus(s string) (Status, error) {
	return domain.ParseStatus(s)
}
