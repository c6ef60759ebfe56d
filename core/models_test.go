package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "ascii content", content: "test content"},
		{name: "empty string", content: ""},
		{name: "hangul content", content: "BM-K/KoSimCSE-roberta-multitask\x00따뜻한"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("content1") == IDFromContent("content2") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewBookID(t *testing.T) {
	a, err := NewBookID()
	require.NoError(t, err)
	b, err := NewBookID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "book-"))
	assert.NotEqual(t, a, b)
}

func TestKeywordRecord_Apply(t *testing.T) {
	rec := KeywordRecord{Upvotes: 1}
	rec.Recompute()
	assert.Equal(t, 1, rec.Score)

	rec.Apply(VoteDown)
	rec.Apply(VoteDown)
	assert.Equal(t, 1, rec.Upvotes)
	assert.Equal(t, 2, rec.Downvotes)
	assert.Equal(t, -1, rec.Score)
	assert.False(t, rec.Doomed())

	for range 4 {
		rec.Apply(VoteDown)
	}
	assert.Equal(t, -5, rec.Score)
	assert.True(t, rec.Doomed())
}

func TestVoteType_Valid(t *testing.T) {
	assert.True(t, VoteUp.Valid())
	assert.True(t, VoteDown.Valid())
	assert.False(t, VoteType("sideways").Valid())
	assert.False(t, VoteType("").Valid())
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeCreated, "created"},
		{OutcomeEndorsed, "endorsed"},
		{OutcomeRecorded, "recorded"},
		{OutcomeDeleted, "deleted"},
		{Outcome(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestClusterGroup_Contains(t *testing.T) {
	g := ClusterGroup{Representative: "따뜻한", Members: []string{"따뜻한", "훈훈한"}}
	assert.True(t, g.Contains("훈훈한"))
	assert.False(t, g.Contains("차가운"))
}

func TestBookStats_Popularity(t *testing.T) {
	s := BookStats{
		Book:           &Book{Views: 10},
		TotalUpvotes:   5,
		TotalDownvotes: 2,
		KeywordCount:   3,
	}
	assert.Equal(t, 10+2*3+3, s.Popularity())
}

func TestRecordCodecs(t *testing.T) {
	now := time.UnixMicro(time.Now().UnixMicro()).UTC()

	t.Run("book", func(t *testing.T) {
		in := Book{
			ID: "9788983920775", Title: "해리 포터와 마법사의 돌", Author: "J.K. 롤링",
			Description: "마법 학교", Views: 42, CreatedAt: now, UpdatedAt: now,
		}
		bs := make([]byte, BookMUS.Size(in))
		BookMUS.Marshal(in, bs)
		out, n, err := BookMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, len(bs), n)
		assert.Equal(t, in, out)
	})

	t.Run("keyword", func(t *testing.T) {
		in := KeywordRecord{BookID: "b", Keyword: "따뜻한", CreatorID: "u1", Upvotes: 3, Downvotes: 5, Score: -2, CreatedAt: now}
		bs := make([]byte, KeywordRecordMUS.Size(in))
		KeywordRecordMUS.Marshal(in, bs)
		out, n, err := KeywordRecordMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, len(bs), n)
		assert.Equal(t, in, out)

		skipped, err := KeywordRecordMUS.Skip(bs)
		require.NoError(t, err)
		assert.Equal(t, len(bs), skipped)
	})

	t.Run("cluster group with zero time", func(t *testing.T) {
		in := ClusterGroup{Representative: "a", Members: []string{"a", "b", "c"}}
		bs := make([]byte, ClusterGroupMUS.Size(in))
		ClusterGroupMUS.Marshal(in, bs)
		out, _, err := ClusterGroupMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		assert.True(t, out.CreatedAt.IsZero())
	})

	t.Run("truncated input", func(t *testing.T) {
		in := VoteRecord{BookID: "b", Keyword: "k", UserID: "u", Type: VoteUp, CreatedAt: now}
		bs := make([]byte, VoteRecordMUS.Size(in))
		VoteRecordMUS.Marshal(in, bs)
		_, _, err := VoteRecordMUS.Unmarshal(bs[:len(bs)/2])
		assert.Error(t, err)
	})
}
