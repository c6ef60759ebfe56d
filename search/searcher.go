package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/poiesic/moodshelf/storage"
)

// Query describes a book search.
type Query struct {
	BookName string          `json:"bookName"`
	Keywords []string        `json:"keywords"`
	Mode     core.SearchMode `json:"mode"`
}

// Searcher answers keyword and book-name queries over the catalog.
type Searcher struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics counts searches by mode.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Searcher) error {
		s.metrics = m
		return nil
	}
}

// NewSearcher creates a searcher that reads books, keywords and cluster
// groups from store.
func NewSearcher(store storage.Store, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Searcher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")
	return s, nil
}

// Search runs q and returns matching books ranked by keyword score.
func (s *Searcher) Search(ctx context.Context, q Query) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, q, nil)
}

// snapshot is the catalog state a single search runs against.
type snapshot struct {
	books    []*core.Book
	keywords map[string][]*core.KeywordRecord
	groups   []*core.ClusterGroup
}

// SearchWithMonitor runs q, reporting each stage to monitor.
// A nil monitor is allowed.
func (s *Searcher) SearchWithMonitor(ctx context.Context, q Query, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	mode := q.Mode
	if mode == "" {
		mode = core.SearchFuzzy
	}
	if mode != core.SearchExact && mode != core.SearchFuzzy {
		return nil, core.InvalidInput("unknown search mode %q", q.Mode)
	}
	q.Mode = mode
	monitor.Start(q)

	name := core.NormalizeTitle(q.BookName)
	required, optional := parseTerms(q.Keywords)
	monitor.AfterParse(required, optional)

	results := []*core.SearchResult{}
	if name == "" && len(required) == 0 && len(optional) == 0 {
		monitor.Finish(results)
		return results, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.Search(mode)

	expand := func(terms []string) [][]string {
		out := make([][]string, len(terms))
		for i, term := range terms {
			out[i] = expandTerm(snap.groups, term)
			monitor.AfterExpansion(term, out[i])
		}
		return out
	}
	requiredSets := expand(required)
	optionalSets := expand(optional)
	hasTerms := len(requiredSets) > 0 || len(optionalSets) > 0

	for _, book := range snap.books {
		nameHit := name != "" && nameMatches(mode, name, book)
		if nameHit {
			monitor.NameHit(book)
		}

		score := 0
		var matched []string
		if hasTerms {
			score, matched = scoreBook(mode, snap.keywords[book.ID], requiredSets, optionalSets)
			if score > 0 {
				monitor.KeywordHit(book, score, matched)
			}
		}

		switch {
		case score > 0:
			results = append(results, &core.SearchResult{Book: book, Score: score, MatchedKeywords: matched})
		case nameHit:
			results = append(results, &core.SearchResult{Book: book, MatchedKeywords: []string{}})
		}
	}

	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return b.Score - a.Score
	})

	s.logger.Debug("search complete",
		"mode", string(mode),
		"name", name,
		"required", len(required),
		"optional", len(optional),
		"results", len(results))
	monitor.Finish(results)
	return results, nil
}

func (s *Searcher) load(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{keywords: make(map[string][]*core.KeywordRecord)}
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		if snap.books, err = storage.ListBooks(tx); err != nil {
			return err
		}
		records, err := storage.ListAllKeywords(tx)
		if err != nil {
			return err
		}
		for _, r := range records {
			snap.keywords[r.BookID] = append(snap.keywords[r.BookID], r)
		}
		snap.groups, err = storage.ListClusterGroups(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// expandTerm returns the members of the first group containing term, or
// term alone.
func expandTerm(groups []*core.ClusterGroup, term string) []string {
	for _, g := range groups {
		members := make([]string, 0, len(g.Members))
		found := false
		for _, m := range g.Members {
			m = core.NormalizeKeyword(m)
			if m == "" {
				continue
			}
			if m == term {
				found = true
			}
			members = append(members, m)
		}
		if found {
			return members
		}
	}
	return []string{term}
}

func anyMatch(mode core.SearchMode, bookKw string, terms []string) bool {
	for _, t := range terms {
		if keywordMatches(mode, bookKw, t) {
			return true
		}
	}
	return false
}

// scoreBook applies the required and optional clauses to a book's
// keywords. It returns 0 when either clause fails.
func scoreBook(mode core.SearchMode, records []*core.KeywordRecord, required, optional [][]string) (int, []string) {
	for _, set := range required {
		ok := false
		for _, r := range records {
			if anyMatch(mode, r.Keyword, set) {
				ok = true
				break
			}
		}
		if !ok {
			return 0, nil
		}
	}

	if len(optional) > 0 {
		ok := false
		for _, set := range optional {
			for _, r := range records {
				if anyMatch(mode, r.Keyword, set) {
					ok = true
					break
				}
			}
			if ok {
				break
			}
		}
		if !ok {
			return 0, nil
		}
	}

	all := slices.Concat(slices.Concat(required...), slices.Concat(optional...))
	score := 0
	matched := []string{}
	for _, r := range records {
		if r.Score <= 0 || !anyMatch(mode, r.Keyword, all) {
			continue
		}
		score += r.Score
		matched = append(matched, r.Keyword)
	}
	return score, matched
}
