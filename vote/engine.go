// Package vote records up/down votes on book keywords.
//
// A user votes at most once per keyword and never on a keyword they
// created. Each vote recomputes the keyword's score; a keyword whose score
// reaches core.AutoDeleteThreshold is removed together with its votes.
package vote

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/poiesic/moodshelf/storage"
)

// DeletedMessage is reported when a vote removed its keyword.
const DeletedMessage = "키워드가 부정적인 평가로 인해 삭제되었습니다"

// ErrStoreRequired is returned when no storage backend is provided.
var ErrStoreRequired = errors.New("storage required")

// Engine casts votes and lists a user's voting state.
type Engine struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMetrics reports votes to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) error {
		e.metrics = m
		return nil
	}
}

// NewEngine creates a vote engine over store.
func NewEngine(store storage.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	e := &Engine{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "vote-engine")
	return e, nil
}

// Result is the outcome of a successful vote.
type Result struct {
	Outcome core.Outcome `json:"outcome"`
	// Keyword is the updated record; nil when the keyword was deleted.
	Keyword *core.KeywordRecord `json:"keyword,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Deleted reports whether the vote removed the keyword.
func (r *Result) Deleted() bool {
	return r.Outcome == core.OutcomeDeleted
}

// Cast records userID's vote on a keyword of a book.
//
// Rejections, checked in this order, are coded errors: missing identity
// (core.ErrUnauthenticated), unknown vote type (core.ErrInvalidInput),
// unknown keyword (core.ErrNotFound), own keyword
// (core.ErrSelfVoteForbidden) and repeat vote (core.ErrAlreadyVoted).
func (e *Engine) Cast(ctx context.Context, bookID, keyword, userID string, voteType core.VoteType) (*Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || userID == core.AnonymousUser {
		return nil, core.Unauthenticated("authentication required")
	}
	if err := core.ValidateIdentifier("user id", userID); err != nil {
		return nil, err
	}
	if !voteType.Valid() {
		return nil, core.InvalidInput("invalid vote type %q", voteType)
	}
	bookID, err := core.NormalizeBookID(bookID)
	if err != nil {
		return nil, err
	}
	keyword = core.NormalizeKeyword(keyword)

	var result *Result
	err = e.store.Update(ctx, func(tx storage.Tx) error {
		rec, err := storage.ReadKeyword(tx, bookID, keyword)
		if errors.Is(err, storage.ErrNotFound) {
			return core.NotFound("keyword %q not found", keyword)
		}
		if err != nil {
			return err
		}

		if rec.CreatorID == userID {
			return core.SelfVoteForbidden(keyword)
		}

		_, err = storage.ReadVote(tx, bookID, keyword, userID)
		if err == nil {
			return core.AlreadyVoted(keyword)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		rec.Apply(voteType)

		if rec.Doomed() {
			result = &Result{Outcome: core.OutcomeDeleted, Message: DeletedMessage}
			return storage.DeleteKeyword(tx, bookID, keyword)
		}

		if err := storage.WriteKeyword(tx, rec); err != nil {
			return err
		}
		result = &Result{Outcome: core.OutcomeRecorded, Keyword: rec}
		return storage.WriteVote(tx, &core.VoteRecord{
			BookID:    bookID,
			Keyword:   keyword,
			UserID:    userID,
			Type:      voteType,
			CreatedAt: e.now().UTC(),
		})
	})
	if err != nil {
		if code := core.CodeOf(err); code != "" {
			e.metrics.VoteCast(voteType, strings.ToLower(string(code)))
		}
		return nil, err
	}

	e.metrics.VoteCast(voteType, result.Outcome.String())
	if result.Deleted() {
		e.logger.Info("keyword auto-deleted", "book", bookID, "keyword", keyword)
	}
	return result, nil
}

// MyVotes is a user's voting state on one book.
type MyVotes struct {
	Votes       []*core.VoteRecord `json:"votes"`
	OwnKeywords []string           `json:"ownKeywords"`
}

// Mine returns userID's votes on bookID and the keywords they created there.
// An empty or anonymous identity yields an empty result.
func (e *Engine) Mine(ctx context.Context, bookID, userID string) (*MyVotes, error) {
	bookID, err := core.NormalizeBookID(bookID)
	if err != nil {
		return nil, err
	}
	out := &MyVotes{Votes: []*core.VoteRecord{}, OwnKeywords: []string{}}
	userID = strings.TrimSpace(userID)
	if userID == "" || userID == core.AnonymousUser {
		return out, nil
	}

	err = e.store.View(ctx, func(tx storage.Tx) error {
		votes, err := storage.ListVotes(tx, bookID)
		if err != nil {
			return err
		}
		for _, v := range votes {
			if v.UserID == userID {
				out.Votes = append(out.Votes, v)
			}
		}

		records, err := storage.ListKeywords(tx, bookID)
		if err != nil {
			return err
		}
		for _, r := range records {
			if r.CreatorID == userID {
				out.OwnKeywords = append(out.OwnKeywords, r.Keyword)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
