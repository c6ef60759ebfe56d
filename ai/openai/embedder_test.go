package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/moodshelf/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25]}],"model":"bge-m3","usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer srv.Close()

	cfg := ai.NewConfig(ai.WithProvider(ai.ProviderOpenAI), ai.WithHost(srv.URL), ai.WithModel("bge-m3"))
	emb, err := NewEmbedder(cfg)
	require.NoError(t, err)

	vec, err := emb.EmbedText(context.Background(), "따뜻한")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}

func TestNewEmbedder_InvalidConfig(t *testing.T) {
	_, err := NewEmbedder(&ai.Config{Provider: ai.ProviderOpenAI})
	assert.Error(t, err)
}
