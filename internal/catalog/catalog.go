package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/bft-labs/bookshelf/internal/domain"
	"github.com/bft-labs/bookshelf/internal/ports"
)

// Catalog owns the books of one library and keeps its store in sync.
type Catalog struct {
	store      ports.Store
	logger     ports.Logger
	now        func() time.Time
	quarantine bool

	books   []domain.Book
	nextID  int
	loadErr error
}

// Open creates a Catalog and loads it from store.
//
// A missing store yields an empty catalog. An unreadable store (corrupt file
// or malformed record) also yields an empty catalog: the problem is logged and
// kept in LoadError, and the next save overwrites the store. Other read
// failures are returned.
func Open(ctx context.Context, store ports.Store, opts ...Option) (*Catalog, error) {
	if store == nil {
		return nil, errors.New("catalog: nil store")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Catalog{
		store:      store,
		logger:     o.logger,
		now:        o.now,
		quarantine: o.quarantine,
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	c.nextID = c.NextAvailableID()
	return c, nil
}

func (c *Catalog) load(ctx context.Context) error {
	docs, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			c.discard(ctx, err)
			return nil
		}
		return fmt.Errorf("load catalog: %w", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for i, doc := range docs {
		b, err := domain.BookFromDocument(doc)
		if err != nil {
			var me *domain.MalformedRecordError
			if errors.As(err, &me) {
				me.Index = i
			}
			c.discard(ctx, err)
			return nil
		}
		books = append(books, b)
	}

	c.books = books
	c.logger.Info("catalog loaded", ports.Int("books", len(books)))
	return nil
}

// discard resets the catalog after an unreadable store.
func (c *Catalog) discard(ctx context.Context, cause error) {
	c.books = nil
	c.loadErr = cause
	c.logger.Warn("store unreadable, starting with an empty catalog", ports.Err(cause))

	if !c.quarantine {
		return
	}
	q, ok := c.store.(ports.Quarantiner)
	if !ok {
		c.logger.Warn("store does not support quarantine; it will be overwritten on next save")
		return
	}
	dst, err := q.Quarantine(ctx)
	if err != nil {
		c.logger.Error("quarantine store", ports.Err(err))
		return
	}
	c.logger.Warn("unreadable store moved aside", ports.String("path", dst))
}

// LoadError returns why the store was discarded on open, or nil.
func (c *Catalog) LoadError() error {
	return c.loadErr
}

// Save writes every book to the store, replacing its previous contents.
// A failed save leaves the in-memory catalog as it was and is not retried.
func (c *Catalog) Save(ctx context.Context) error {
	docs := make([]domain.Document, len(c.books))
	for i, b := range c.books {
		docs[i] = b.Document()
	}

	if err := c.store.Save(ctx, docs); err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = domain.NewPersistenceError("", err)
		}
		c.logger.Error("save catalog", ports.Int("books", len(docs)), ports.Err(err))
		return err
	}
	c.logger.Debug("catalog saved", ports.Int("books", len(docs)))
	return nil
}

// NextAvailableID returns 1 for an empty catalog, else one more than the highest id.
func (c *Catalog) NextAvailableID() int {
	highest := 0
	for _, b := range c.books {
		if b.ID > highest {
			highest = b.ID
		}
	}
	return highest + 1
}

// ValidateYear checks that text is a positive whole number no later than the
// current year. It has no side effects.
func (c *Catalog) ValidateYear(text string) error {
	_, err := c.parseYear(text)
	return err
}

func (c *Catalog) parseYear(text string) (int, error) {
	current := c.now().Year()
	if !isDigits(text) {
		return 0, domain.NewInvalidYearError(text, current)
	}
	year, err := strconv.Atoi(text)
	if err != nil || year <= 0 || year > current {
		return 0, domain.NewInvalidYearError(text, current)
	}
	return year, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AddBook validates the input, appends a new available book and saves.
// On validation failure nothing changes. If only the save fails, the book is
// kept in memory and returned together with the save error.
func (c *Catalog) AddBook(ctx context.Context, title, author, yearText string) (domain.Book, error) {
	year, err := c.parseYear(yearText)
	if err != nil {
		return domain.Book{}, err
	}
	b, err := domain.NewBook(c.nextID, title, author, year)
	if err != nil {
		return domain.Book{}, err
	}

	c.books = append(c.books, b)
	c.nextID++
	c.logger.Info("book added", ports.Int("id", b.ID), ports.String("title", b.Title))

	return b, c.Save(ctx)
}

// RemoveBook deletes the book with id and saves.
// An unknown id is not an error: it returns false and changes nothing.
func (c *Catalog) RemoveBook(ctx context.Context, id int) (bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		c.logger.Debug("remove: book not found", ports.Int("id", id))
		return false, nil
	}

	c.books = slices.Delete(c.books, i, i+1)
	c.logger.Info("book removed", ports.Int("id", id))
	return true, c.Save(ctx)
}

// UpdateStatus sets the status of the book with id and saves.
// An invalid status fails with *domain.InvalidStatusError before anything is
// looked up. An unknown id returns false and changes nothing.
func (c *Catalog) UpdateStatus(ctx context.Context, id int, status string) (domain.Book, bool, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Book{}, false, err
	}

	i := c.indexOf(id)
	if i < 0 {
		c.logger.Debug("update status: book not found", ports.Int("id", id))
		return domain.Book{}, false, nil
	}

	c.books[i].Status = st
	c.logger.Info("status updated", ports.Int("id", id), ports.String("status", st.String()))
	return c.books[i], true, c.Save(ctx)
}

// Get returns the book with id.
func (c *Catalog) Get(id int) (domain.Book, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return domain.Book{}, false
	}
	return c.books[i], true
}

// List returns every book in insertion order.
// The returned slice is a copy; changing it does not affect the catalog.
func (c *Catalog) List() []domain.Book {
	return slices.Clone(c.books)
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

func (c *Catalog) indexOf(id int) int {
	return slices.IndexFunc(c.books, func(b domain.Book) bool { return b.ID == id })
}
