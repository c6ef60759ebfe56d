package search

import (
	"context"
	"slices"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/storage"
)

// List returns every book with its keyword tallies, ordered by sortBy.
// An empty sortBy orders by popularity.
func (s *Searcher) List(ctx context.Context, sortBy core.SortOrder) ([]*core.BookStats, error) {
	if sortBy == "" {
		sortBy = core.SortByPopularity
	}
	var key func(*core.BookStats) int
	switch sortBy {
	case core.SortByViews:
		key = func(b *core.BookStats) int { return b.Book.Views }
	case core.SortByUpvotes:
		key = func(b *core.BookStats) int { return b.TotalUpvotes }
	case core.SortByDownvotes:
		key = func(b *core.BookStats) int { return b.TotalDownvotes }
	case core.SortByPopularity:
		key = (*core.BookStats).Popularity
	default:
		return nil, core.InvalidInput("unknown sort order %q", sortBy)
	}

	var stats []*core.BookStats
	err := s.store.View(ctx, func(tx storage.Tx) error {
		books, err := storage.ListBooks(tx)
		if err != nil {
			return err
		}
		records, err := storage.ListAllKeywords(tx)
		if err != nil {
			return err
		}
		byBook := make(map[string]*core.BookStats, len(books))
		stats = make([]*core.BookStats, 0, len(books))
		for _, b := range books {
			st := &core.BookStats{Book: b}
			byBook[b.ID] = st
			stats = append(stats, st)
		}
		for _, r := range records {
			st, ok := byBook[r.BookID]
			if !ok {
				continue
			}
			st.TotalUpvotes += r.Upvotes
			st.TotalDownvotes += r.Downvotes
			st.KeywordCount++
		}
		for _, st := range stats {
			st.TotalScore = st.TotalUpvotes - st.TotalDownvotes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(stats, func(a, b *core.BookStats) int {
		return key(b) - key(a)
	})
	return stats, nil
}
