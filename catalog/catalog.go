// Package catalog stores the books that keywords are attached to.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/storage"
)

// ErrStoreRequired is returned when no storage backend is provided.
var ErrStoreRequired = errors.New("storage required")

// Catalog creates, reads, updates and deletes books.
type Catalog struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCatalog creates a catalog over store.
func NewCatalog(store storage.Store, opts ...Option) (*Catalog, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	c := &Catalog{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "catalog")
	return c, nil
}

// Detail is a book together with its keyword records.
type Detail struct {
	Book     *core.Book            `json:"book"`
	Keywords []*core.KeywordRecord `json:"keywords"`
}

// Add validates and stores a new book. When book.ID is empty the ISBN is
// used as the id, or a generated one if there is no ISBN.
func (c *Catalog) Add(ctx context.Context, book *core.Book) (*core.Book, error) {
	if err := core.ValidateBook(book); err != nil {
		return nil, err
	}

	stored := *book
	stored.ID = strings.TrimSpace(stored.ID)
	stored.ISBN = strings.TrimSpace(stored.ISBN)
	if stored.ID == "" {
		stored.ID = stored.ISBN
	}
	if stored.ID == "" {
		id, err := core.NewBookID()
		if err != nil {
			return nil, err
		}
		stored.ID = id
	}
	if err := core.ValidateIdentifier("book id", stored.ID); err != nil {
		return nil, err
	}
	now := c.timestamp()
	stored.Views = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now

	err := c.store.Update(ctx, func(tx storage.Tx) error {
		exists, err := storage.BookExists(tx, stored.ID)
		if err != nil {
			return err
		}
		if exists {
			return core.InvalidInput("book %q already exists", stored.ID)
		}
		return storage.WriteBook(tx, &stored)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("book added", "book", stored.ID)
	return &stored, nil
}

// Get returns a book with its keywords and counts the view.
func (c *Catalog) Get(ctx context.Context, bookID string) (*Detail, error) {
	var detail *Detail
	err := c.store.Update(ctx, func(tx storage.Tx) error {
		book, err := readBook(tx, bookID)
		if err != nil {
			return err
		}
		book.Views++
		if err := storage.WriteBook(tx, book); err != nil {
			return err
		}
		keywords, err := storage.ListKeywords(tx, bookID)
		if err != nil {
			return err
		}
		detail = &Detail{Book: book, Keywords: keywords}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Peek returns a book without counting a view.
func (c *Catalog) Peek(ctx context.Context, bookID string) (*core.Book, error) {
	var book *core.Book
	err := c.store.View(ctx, func(tx storage.Tx) error {
		var err error
		book, err = readBook(tx, bookID)
		return err
	})
	return book, err
}

// IncrementView counts one view of a book and returns the new total.
func (c *Catalog) IncrementView(ctx context.Context, bookID string) (int, error) {
	views := 0
	err := c.store.Update(ctx, func(tx storage.Tx) error {
		book, err := readBook(tx, bookID)
		if err != nil {
			return err
		}
		book.Views++
		views = book.Views
		return storage.WriteBook(tx, book)
	})
	return views, err
}

// Update replaces the editable fields of a stored book. The id, view count
// and creation time are kept.
func (c *Catalog) Update(ctx context.Context, book *core.Book) (*core.Book, error) {
	if err := core.ValidateBook(book); err != nil {
		return nil, err
	}

	var updated *core.Book
	err := c.store.Update(ctx, func(tx storage.Tx) error {
		current, err := readBook(tx, book.ID)
		if err != nil {
			return err
		}
		next := *book
		next.ID = current.ID
		next.Views = current.Views
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = c.timestamp()
		if err := storage.WriteBook(tx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book with all of its keywords and votes.
func (c *Catalog) Delete(ctx context.Context, bookID string) error {
	err := c.store.Update(ctx, func(tx storage.Tx) error {
		if _, err := readBook(tx, bookID); err != nil {
			return err
		}
		return storage.DeleteBook(tx, bookID)
	})
	if err != nil {
		return err
	}
	c.logger.Info("book deleted", "book", bookID)
	return nil
}

// List returns every book in id order.
func (c *Catalog) List(ctx context.Context) ([]*core.Book, error) {
	var books []*core.Book
	err := c.store.View(ctx, func(tx storage.Tx) error {
		var err error
		books, err = storage.ListBooks(tx)
		return err
	})
	return books, err
}

// timestamp returns the current time at the precision records are stored with.
func (c *Catalog) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

func readBook(tx storage.Tx, bookID string) (*core.Book, error) {
	book, err := storage.ReadBook(tx, bookID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, core.NotFound("book %q not found", bookID)
	}
	return book, err
}
