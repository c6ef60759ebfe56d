package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/storage"
	"github.com/poiesic/moodshelf/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*Catalog, storage.Store) {
	t.Helper()
	backend, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	c, err := NewCatalog(backend)
	require.NoError(t, err)
	return c, backend
}

func TestNewCatalog(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewCatalog(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		backend, err := badger.NewMemoryStore()
		require.NoError(t, err)
		defer backend.Close()

		c, err := NewCatalog(backend, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestAdd(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	t.Run("uses isbn as id", func(t *testing.T) {
		book, err := c.Add(ctx, &core.Book{Title: " 어린 왕자 ", Author: "생텍쥐페리", ISBN: "9788932917245", Views: 99})
		require.NoError(t, err)
		assert.Equal(t, "9788932917245", book.ID)
		assert.Equal(t, "어린 왕자", book.Title)
		assert.Equal(t, 0, book.Views)
		assert.False(t, book.CreatedAt.IsZero())
		assert.Equal(t, book.CreatedAt, book.UpdatedAt)
	})

	t.Run("generates id without isbn", func(t *testing.T) {
		book, err := c.Add(ctx, &core.Book{Title: "데미안", Author: "헤르만 헤세"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(book.ID, "book-"))
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := c.Add(ctx, &core.Book{Title: "어린 왕자", Author: "생텍쥐페리", ISBN: "9788932917245"})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := c.Add(ctx, &core.Book{Title: "  "})
		require.ErrorIs(t, err, core.ErrInvalidInput)

		var coded *core.Error
		require.ErrorAs(t, err, &coded)
		assert.Contains(t, coded.Details, "title")
		assert.Contains(t, coded.Details, "author")
	})
}

func TestGet_CountsViews(t *testing.T) {
	c, backend := newCatalog(t)
	ctx := context.Background()

	book, err := c.Add(ctx, &core.Book{ID: "b1", Title: "책", Author: "저자"})
	require.NoError(t, err)
	err = backend.Update(ctx, func(tx storage.Tx) error {
		return storage.WriteKeyword(tx, &core.KeywordRecord{BookID: book.ID, Keyword: "따뜻한", Upvotes: 1})
	})
	require.NoError(t, err)

	detail, err := c.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Book.Views)
	require.Len(t, detail.Keywords, 1)
	assert.Equal(t, "따뜻한", detail.Keywords[0].Keyword)

	views, err := c.IncrementView(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, views)

	peeked, err := c.Peek(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, peeked.Views)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	added, err := c.Add(ctx, &core.Book{ID: "b1", Title: "책", Author: "저자"})
	require.NoError(t, err)
	_, err = c.IncrementView(ctx, "b1")
	require.NoError(t, err)

	updated, err := c.Update(ctx, &core.Book{ID: "b1", Title: "새 제목", Author: "저자", Views: 500, Publisher: "민음사"})
	require.NoError(t, err)
	assert.Equal(t, "새 제목", updated.Title)
	assert.Equal(t, "민음사", updated.Publisher)
	assert.Equal(t, 1, updated.Views)
	assert.True(t, added.CreatedAt.Equal(updated.CreatedAt))

	_, err = c.Update(ctx, &core.Book{ID: "missing", Title: "t", Author: "a"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDelete_Cascades(t *testing.T) {
	c, backend := newCatalog(t)
	ctx := context.Background()

	_, err := c.Add(ctx, &core.Book{ID: "b1", Title: "책", Author: "저자"})
	require.NoError(t, err)
	err = backend.Update(ctx, func(tx storage.Tx) error {
		if err := storage.WriteKeyword(tx, &core.KeywordRecord{BookID: "b1", Keyword: "슬픈", Upvotes: 1}); err != nil {
			return err
		}
		return storage.WriteVote(tx, &core.VoteRecord{BookID: "b1", Keyword: "슬픈", UserID: "u1", Type: core.VoteUp})
	})
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "b1"))

	err = backend.View(ctx, func(tx storage.Tx) error {
		keywords, err := storage.ListKeywords(tx, "b1")
		require.NoError(t, err)
		assert.Empty(t, keywords)
		votes, err := storage.ListVotes(tx, "b1")
		require.NoError(t, err)
		assert.Empty(t, votes)
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Delete(ctx, "b1"), core.ErrNotFound)

	books, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}
