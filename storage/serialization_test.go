package storage

import (
	"testing"
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalBook(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 123456000, time.UTC)
	book := &core.Book{
		ID:          "9788932917245",
		Title:       "어린 왕자",
		Author:      "생텍쥐페리",
		Description: "사막에 불시착한 조종사가 어린 왕자를 만나 겪는 이야기.",
		ISBN:        "9788932917245",
		Views:       42,
		CreatedAt:   now,
		UpdatedAt:   now.Add(time.Hour),
	}

	decoded, err := UnmarshalBook(MarshalBook(book))
	require.NoError(t, err)
	assert.Equal(t, book, decoded)
}

func TestUnmarshalKeyword_RecomputesScore(t *testing.T) {
	record := &core.KeywordRecord{
		BookID:    "b1",
		Keyword:   "따뜻한",
		CreatorID: "alice",
		Upvotes:   3,
		Downvotes: 5,
		Score:     99,
	}

	decoded, err := UnmarshalKeyword(MarshalKeyword(record))
	require.NoError(t, err)
	assert.Equal(t, -2, decoded.Score)
	assert.True(t, decoded.CreatedAt.IsZero())
}

func TestUnmarshal_Truncated(t *testing.T) {
	book := MarshalBook(&core.Book{ID: "b1", Title: "책", Author: "저자", CreatedAt: time.Now()})
	_, err := UnmarshalBook(book[:len(book)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	group := MarshalClusterGroup(&core.ClusterGroup{Representative: "따뜻한", Members: []string{"따뜻한", "포근한"}})
	_, err = UnmarshalClusterGroup(group[:len(group)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalVote(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalVector(t *testing.T) {
	vec := []float32{0, 1.5, -0.25, 3.4028235e38}

	decoded, err := UnmarshalVector(MarshalVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, decoded)

	_, err = UnmarshalVector([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
