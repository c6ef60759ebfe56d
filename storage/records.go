package storage

import (
	"errors"

	"github.com/poiesic/moodshelf/core"
)

// ReadBook loads a book by id.
// Returns ErrNotFound if the book doesn't exist.
func ReadBook(tx Tx, bookID string) (*core.Book, error) {
	data, err := tx.Get(BookKey(bookID))
	if err != nil {
		return nil, err
	}
	return UnmarshalBook(data)
}

// WriteBook stores a book under its id.
func WriteBook(tx Tx, book *core.Book) error {
	return tx.Set(BookKey(book.ID), MarshalBook(book))
}

// BookExists reports whether a book with the id is stored.
func BookExists(tx Tx, bookID string) (bool, error) {
	_, err := tx.Get(BookKey(bookID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ListBooks returns every book in key order.
func ListBooks(tx Tx) ([]*core.Book, error) {
	kvs, err := tx.ListByPrefix([]byte(bookPrefix))
	if err != nil {
		return nil, err
	}
	books := make([]*core.Book, 0, len(kvs))
	for _, kv := range kvs {
		book, err := UnmarshalBook(kv.Value)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// DeleteBook removes a book with all of its keywords and votes. The book
// record goes first; keywords and votes are purged after it.
func DeleteBook(tx Tx, bookID string) error {
	if err := tx.Delete(BookKey(bookID)); err != nil {
		return err
	}
	var keys [][]byte
	for _, prefix := range [][]byte{BookKeywordsPrefix(bookID), BookVotesPrefix(bookID)} {
		kvs, err := tx.ListByPrefix(prefix)
		if err != nil {
			return err
		}
		for _, kv := range kvs {
			keys = append(keys, kv.Key)
		}
	}
	return tx.Purge(keys...)
}

// ReadKeyword loads the keyword record of a book.
// Returns ErrNotFound if the keyword is not attached to the book.
func ReadKeyword(tx Tx, bookID, keyword string) (*core.KeywordRecord, error) {
	data, err := tx.Get(KeywordKey(bookID, keyword))
	if err != nil {
		return nil, err
	}
	return UnmarshalKeyword(data)
}

// WriteKeyword stores a keyword record, recomputing its score first.
func WriteKeyword(tx Tx, record *core.KeywordRecord) error {
	record.Recompute()
	return tx.Set(KeywordKey(record.BookID, record.Keyword), MarshalKeyword(record))
}

// ListKeywords returns the keyword records of one book in keyword order.
func ListKeywords(tx Tx, bookID string) ([]*core.KeywordRecord, error) {
	return listKeywords(tx, BookKeywordsPrefix(bookID))
}

// ListAllKeywords returns every keyword record in the store.
func ListAllKeywords(tx Tx) ([]*core.KeywordRecord, error) {
	return listKeywords(tx, []byte(keywordPrefix))
}

func listKeywords(tx Tx, prefix []byte) ([]*core.KeywordRecord, error) {
	kvs, err := tx.ListByPrefix(prefix)
	if err != nil {
		return nil, err
	}
	records := make([]*core.KeywordRecord, 0, len(kvs))
	for _, kv := range kvs {
		rec, err := UnmarshalKeyword(kv.Value)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteKeyword removes a keyword record and purges every vote cast on it.
func DeleteKeyword(tx Tx, bookID, keyword string) error {
	kvs, err := tx.ListByPrefix(KeywordVotesPrefix(bookID, keyword))
	if err != nil {
		return err
	}
	if err := tx.Delete(KeywordKey(bookID, keyword)); err != nil {
		return err
	}
	keys := make([][]byte, 0, len(kvs))
	for _, kv := range kvs {
		keys = append(keys, kv.Key)
	}
	return tx.Purge(keys...)
}

// ReadVote loads a user's vote on a keyword.
// Returns ErrNotFound if the user has not voted on it.
func ReadVote(tx Tx, bookID, keyword, userID string) (*core.VoteRecord, error) {
	data, err := tx.Get(VoteKey(bookID, keyword, userID))
	if err != nil {
		return nil, err
	}
	return UnmarshalVote(data)
}

// WriteVote stores a vote record.
func WriteVote(tx Tx, vote *core.VoteRecord) error {
	return tx.Set(VoteKey(vote.BookID, vote.Keyword, vote.UserID), MarshalVote(vote))
}

// ListVotes returns all votes cast on keywords of a book.
func ListVotes(tx Tx, bookID string) ([]*core.VoteRecord, error) {
	kvs, err := tx.ListByPrefix(BookVotesPrefix(bookID))
	if err != nil {
		return nil, err
	}
	votes := make([]*core.VoteRecord, 0, len(kvs))
	for _, kv := range kvs {
		v, err := UnmarshalVote(kv.Value)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, nil
}

// ListClusterGroups returns the stored cluster groups in saved order.
func ListClusterGroups(tx Tx) ([]*core.ClusterGroup, error) {
	kvs, err := tx.ListByPrefix([]byte(groupPrefix))
	if err != nil {
		return nil, err
	}
	groups := make([]*core.ClusterGroup, 0, len(kvs))
	for _, kv := range kvs {
		g, err := UnmarshalClusterGroup(kv.Value)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ReplaceClusterGroups deletes all stored groups and writes groups in order.
func ReplaceClusterGroups(tx Tx, groups []*core.ClusterGroup) error {
	kvs, err := tx.ListByPrefix([]byte(groupPrefix))
	if err != nil {
		return err
	}
	stale := make([][]byte, 0, len(kvs))
	for _, kv := range kvs {
		stale = append(stale, kv.Key)
	}
	if err := tx.DeleteMany(stale...); err != nil {
		return err
	}
	for i, g := range groups {
		if err := tx.Set(groupKey(i), MarshalClusterGroup(g)); err != nil {
			return err
		}
	}
	return nil
}

// ReadEmbedding loads a cached embedding.
// Returns ErrNotFound on a cache miss.
func ReadEmbedding(tx Tx, id core.ID) ([]float32, error) {
	data, err := tx.Get(EmbeddingKey(id))
	if err != nil {
		return nil, err
	}
	return UnmarshalVector(data)
}

// WriteEmbedding caches an embedding under a content id.
func WriteEmbedding(tx Tx, id core.ID, vector []float32) error {
	return tx.Set(EmbeddingKey(id), MarshalVector(vector))
}
