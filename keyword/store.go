// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package keyword manages user-contributed keywords attached to books.
package keyword

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/poiesic/moodshelf/storage"
)

// ErrStoreRequired is returned when no storage backend is provided.
var ErrStoreRequired = errors.New("storage required")

// Store adds, lists and deletes keyword records.
type Store struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics reports keyword submissions to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) error {
		s.metrics = m
		return nil
	}
}

// NewStore creates a keyword store over store.
func NewStore(store storage.Store, opts ...Option) (*Store, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Store{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "keyword-store")
	return s, nil
}

// AddResult reports what a keyword submission did.
type AddResult struct {
	Outcome core.Outcome        `json:"outcome"`
	Record  *core.KeywordRecord `json:"keyword"`
}

// Existed reports whether the keyword was already attached to the book.
func (r *AddResult) Existed() bool {
	return r.Outcome == core.OutcomeEndorsed
}

// Add attaches a keyword to a book, or upvotes it if the book already has it.
// An empty creatorID is recorded as core.AnonymousUser.
func (s *Store) Add(ctx context.Context, bookID, raw, creatorID string) (*AddResult, error) {
	keyword := core.NormalizeKeyword(raw)
	if keyword == "" {
		return nil, core.InvalidInput("keyword must not be empty")
	}
	bookID, err := core.NormalizeBookID(bookID)
	if err != nil {
		return nil, err
	}
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		creatorID = core.AnonymousUser
	}
	if err := core.ValidateIdentifier("user id", creatorID); err != nil {
		return nil, err
	}

	var result *AddResult
	err = s.store.Update(ctx, func(tx storage.Tx) error {
		ok, err := storage.BookExists(tx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return core.NotFound("book %q not found", bookID)
		}

		rec, err := storage.ReadKeyword(tx, bookID, keyword)
		switch {
		case err == nil:
			rec.Upvotes++
			result = &AddResult{Outcome: core.OutcomeEndorsed, Record: rec}
		case errors.Is(err, storage.ErrNotFound):
			rec = &core.KeywordRecord{
				BookID:    bookID,
				Keyword:   keyword,
				CreatorID: creatorID,
				Upvotes:   1,
				CreatedAt: s.now().UTC(),
			}
			result = &AddResult{Outcome: core.OutcomeCreated, Record: rec}
		default:
			return err
		}
		return storage.WriteKeyword(tx, rec)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.KeywordAdded(result.Outcome)
	s.logger.Debug("keyword added", "book", bookID, "keyword", keyword, "outcome", result.Outcome.String())
	return result, nil
}

// ListByBook returns all keyword records of a book.
func (s *Store) ListByBook(ctx context.Context, bookID string) ([]*core.KeywordRecord, error) {
	bookID, err := core.NormalizeBookID(bookID)
	if err != nil {
		return nil, err
	}
	var records []*core.KeywordRecord
	err = s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		records, err = storage.ListKeywords(tx, bookID)
		return err
	})
	return records, err
}

// Delete removes a keyword from a book together with all votes on it.
// Returns core.ErrNotFound if the book has no such keyword.
func (s *Store) Delete(ctx context.Context, bookID, raw string) error {
	bookID, err := core.NormalizeBookID(bookID)
	if err != nil {
		return err
	}
	keyword := core.NormalizeKeyword(raw)
	return s.store.Update(ctx, func(tx storage.Tx) error {
		if _, err := storage.ReadKeyword(tx, bookID, keyword); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return core.NotFound("keyword %q not found on book %q", keyword, bookID)
			}
			return err
		}
		return storage.DeleteKeyword(tx, bookID, keyword)
	})
}

// Keywords returns every distinct keyword identifier in the catalog,
// in identifier order.
func (s *Store) Keywords(ctx context.Context) ([]string, error) {
	var out []string
	err := s.store.View(ctx, func(tx storage.Tx) error {
		records, err := storage.ListAllKeywords(tx)
		if err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(records))
		for _, r := range records {
			if _, ok := seen[r.Keyword]; ok {
				continue
			}
			seen[r.Keyword] = struct{}{}
			out = append(out, r.Keyword)
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

// Stats aggregates every keyword across the catalog, highest total score
// first. Ties are ordered by keyword.
func (s *Store) Stats(ctx context.Context) ([]*core.KeywordStats, error) {
	var records []*core.KeywordRecord
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		records, err = storage.ListAllKeywords(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	byKeyword := make(map[string]*core.KeywordStats)
	for _, r := range records {
		st, ok := byKeyword[r.Keyword]
		if !ok {
			st = &core.KeywordStats{Keyword: r.Keyword, Books: []string{}}
			byKeyword[r.Keyword] = st
		}
		st.TotalUpvotes += r.Upvotes
		st.TotalDownvotes += r.Downvotes
		st.TotalScore += r.Score
		st.BookCount++
		st.Books = append(st.Books, r.BookID)
	}

	stats := make([]*core.KeywordStats, 0, len(byKeyword))
	for _, st := range byKeyword {
		stats = append(stats, st)
	}
	slices.SortFunc(stats, func(a, b *core.KeywordStats) int {
		if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
			return c
		}
		return cmp.Compare(a.Keyword, b.Keyword)
	})
	return stats, nil
}
