package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	a, err := m.EmbedText(ctx, "따뜻한")
	require.NoError(t, err)
	b, err := m.EmbedText(ctx, "따뜻한")
	require.NoError(t, err)
	c, err := m.EmbedText(ctx, "차가운")
	require.NoError(t, err)

	assert.Len(t, a, 384)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, 2, m.CallsFor("따뜻한"))
}

func TestMockEmbedder_Injection(t *testing.T) {
	m := NewMockEmbedder().WithVectors(map[string][]float32{"a": {1, 0}})
	ctx := context.Background()

	vec, err := m.EmbedText(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)

	boom := errors.New("boom")
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}
	_, err = m.EmbedText(ctx, "a")
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	vec, err = m.EmbedText(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, vec, 384)
}
