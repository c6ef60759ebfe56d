package storage

import (
	"bytes"
	"fmt"

	"github.com/poiesic/moodshelf/core"
)

const sep = "\x00"

// Key prefixes for different record types
const (
	bookPrefix     = "book" + sep
	keywordPrefix  = "keyword" + sep
	votePrefix     = "vote" + sep
	groupPrefix    = "kwgroup" + sep
	embCachePrefix = "embcache" + sep
)

func join(parts ...string) []byte {
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p)
	}
	return b.Bytes()
}

// BookKey returns the key of a book record.
func BookKey(bookID string) []byte {
	return []byte(bookPrefix + bookID)
}

// KeywordKey returns the key of a keyword record.
func KeywordKey(bookID, keyword string) []byte {
	return join("keyword", bookID, keyword)
}

// BookKeywordsPrefix returns the prefix shared by all keywords of a book.
func BookKeywordsPrefix(bookID string) []byte {
	return join("keyword", bookID, "")
}

// VoteKey returns the key of a vote record.
func VoteKey(bookID, keyword, userID string) []byte {
	return join("vote", bookID, keyword, userID)
}

// KeywordVotesPrefix returns the prefix shared by all votes on a keyword.
func KeywordVotesPrefix(bookID, keyword string) []byte {
	return join("vote", bookID, keyword, "")
}

// BookVotesPrefix returns the prefix shared by all votes on a book.
func BookVotesPrefix(bookID string) []byte {
	return join("vote", bookID, "")
}

// groupKey generates a key for a cluster group by position.
// Zero-padded so lexicographic order matches insertion order.
func groupKey(index int) []byte {
	return []byte(fmt.Sprintf("%s%06d", groupPrefix, index))
}

// EmbeddingKey returns the key of a cached embedding.
func EmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%016x", embCachePrefix, uint64(id)))
}
