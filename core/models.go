package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// AnonymousUser is the creator id recorded when a caller has no identity.
const AnonymousUser = "anonymous"

// AutoDeleteThreshold is the score at or below which a keyword is purged.
const AutoDeleteThreshold = -5

// ID is a content-derived identifier for cached artifacts.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewBookID generates an id for a book ingested without an ISBN.
// Format: book-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT")
func NewBookID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return "book-" + id, nil
}

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether v is a known vote direction.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// SearchMode selects how keyword and title terms are compared.
type SearchMode string

const (
	SearchExact SearchMode = "exact"
	SearchFuzzy SearchMode = "fuzzy"
)

// SortOrder selects the ordering of the default book listing.
type SortOrder string

const (
	SortByViews      SortOrder = "views"
	SortByUpvotes    SortOrder = "upvotes"
	SortByDownvotes  SortOrder = "downvotes"
	SortByPopularity SortOrder = "popularity"
)

// Outcome tags the successful result of a keyword submission or a vote.
type Outcome int

const (
	// OutcomeCreated means a new keyword record was written.
	OutcomeCreated Outcome = iota + 1
	// OutcomeEndorsed means an existing keyword was re-submitted and upvoted.
	OutcomeEndorsed
	// OutcomeRecorded means a vote was counted and its vote record written.
	OutcomeRecorded
	// OutcomeDeleted means the vote pushed the keyword to the auto-delete threshold.
	OutcomeDeleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeEndorsed:
		return "endorsed"
	case OutcomeRecorded:
		return "recorded"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Book is a catalog entry that keywords are attached to.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Author      string    `json:"author" validate:"required"`
	Description string    `json:"description"`
	CoverImage  string    `json:"coverImage"`
	ISBN        string    `json:"isbn"`
	Publisher   string    `json:"publisher"`
	PubDate     string    `json:"pubdate"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// KeywordRecord is a user-contributed keyword on a book with its vote tally.
type KeywordRecord struct {
	BookID    string    `json:"bookId"`
	Keyword   string    `json:"keyword"` // normalized identifier
	CreatorID string    `json:"creatorId"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recompute derives Score from the vote counters.
func (k *KeywordRecord) Recompute() {
	k.Score = k.Upvotes - k.Downvotes
}

// Apply counts a vote of the given type and recomputes the score.
func (k *KeywordRecord) Apply(voteType VoteType) {
	if voteType == VoteUp {
		k.Upvotes++
	} else {
		k.Downvotes++
	}
	k.Recompute()
}

// Doomed reports whether the record has reached the auto-delete threshold.
func (k *KeywordRecord) Doomed() bool {
	return k.Score <= AutoDeleteThreshold
}

// VoteRecord is a single user's vote on a keyword of a book.
type VoteRecord struct {
	BookID    string    `json:"bookId"`
	Keyword   string    `json:"keyword"`
	UserID    string    `json:"userId"`
	Type      VoteType  `json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClusterGroup is a set of keywords treated as synonyms during search.
type ClusterGroup struct {
	Representative string    `json:"representative"`
	Members        []string  `json:"group"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Contains reports whether the normalized keyword is a member of the group.
func (g *ClusterGroup) Contains(keyword string) bool {
	for _, m := range g.Members {
		if m == keyword {
			return true
		}
	}
	return false
}

// SearchResult is a ranked book returned by a search.
type SearchResult struct {
	Book            *Book    `json:"book"`
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// BookStats is a book annotated with its aggregate keyword tallies.
type BookStats struct {
	Book           *Book `json:"book"`
	TotalUpvotes   int   `json:"totalUpvotes"`
	TotalDownvotes int   `json:"totalDownvotes"`
	TotalScore     int   `json:"totalScore"`
	KeywordCount   int   `json:"keywordCount"`
}

// Popularity is the composite ranking used by the default listing.
func (s *BookStats) Popularity() int {
	return s.Book.Views + 2*(s.TotalUpvotes-s.TotalDownvotes) + s.KeywordCount
}

// KeywordStats aggregates one keyword identifier across the whole catalog.
type KeywordStats struct {
	Keyword        string   `json:"keyword"`
	TotalUpvotes   int      `json:"totalUpvotes"`
	TotalDownvotes int      `json:"totalDownvotes"`
	TotalScore     int      `json:"totalScore"`
	BookCount      int      `json:"bookCount"`
	Books          []string `json:"books"`
}
