package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/moodshelf"
	"github.com/poiesic/moodshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Samples(t *testing.T) {
	db, err := moodshelf.NewDatabase("", moodshelf.WithInMemory())
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, seed(ctx, db, booksFromSlice(samples), 0))

	books, err := db.Catalog().List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, len(samples))

	stats, err := db.KeywordStats(ctx)
	require.NoError(t, err)
	var warm *core.KeywordStats
	for _, s := range stats {
		if s.Keyword == "따뜻한" {
			warm = s
		}
	}
	require.NotNil(t, warm)
	assert.Equal(t, 2, warm.BookCount)
	assert.Equal(t, 2, warm.TotalScore)
}

func TestSeed_ExtraEndorsements(t *testing.T) {
	db, err := moodshelf.NewDatabase("", moodshelf.WithInMemory())
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, seed(ctx, db, booksFromSlice(samples[:1]), 3))

	stats, err := db.KeywordStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 5)
	for _, s := range stats {
		assert.GreaterOrEqual(t, s.TotalUpvotes, 1)
		assert.LessOrEqual(t, s.TotalUpvotes, 4)
		assert.Equal(t, 0, s.TotalDownvotes)
	}
}

func TestBooksFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	content := `[{"title":"데미안","author":"헤르만 헤세","isbn":"9788937460449","keywords":["성장","자아"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	source, err := booksFromFile(path)
	require.NoError(t, err)

	var got []sampleBook
	for b := range source {
		got = append(got, b)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "데미안", got[0].Title)
	assert.Equal(t, "9788937460449", got[0].ISBN)
	assert.Equal(t, []string{"성장", "자아"}, got[0].Keywords)

	_, err = booksFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
