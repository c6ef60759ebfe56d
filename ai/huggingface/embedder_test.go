package huggingface

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/moodshelf/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *Embedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ai.NewConfig(ai.WithHost(srv.URL), ai.WithToken("hf_test"))
	e, err := newEmbedder(cfg, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return e
}

func TestEmbedText_Request(t *testing.T) {
	var got request
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/"+ai.DefaultHuggingFaceModel, r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`[[0.1, 0.2, 0.3]]`))
	})

	vec, err := e.EmbedText(context.Background(), "따뜻한")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "따뜻한", got.Inputs)
	assert.True(t, got.Options.WaitForModel)
}

func TestEmbedText_FlatVector(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1, 0, -1]`))
	})

	vec, err := e.EmbedText(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, -1}, vec)
}

func TestEmbedText_ModelLoading(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	})

	_, err := e.EmbedText(context.Background(), "x")
	assert.ErrorIs(t, err, ai.ErrModelLoading)
}

func TestEmbedText_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"Invalid credentials"}`, wantMsg: "status 401"},
		{name: "empty batch", status: http.StatusOK, body: `[]`, wantErr: ai.ErrEmptyEmbedding},
		{name: "empty vector", status: http.StatusOK, body: `[[]]`, wantErr: ai.ErrEmptyEmbedding},
		{name: "object body", status: http.StatusOK, body: `{"foo":1}`, wantMsg: "unexpected response shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := e.EmbedText(context.Background(), "x")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.NotErrorIs(t, err, ai.ErrModelLoading)
		})
	}
}

func TestNewEmbedder_RequiresToken(t *testing.T) {
	_, err := NewEmbedder(ai.DefaultConfig())
	assert.ErrorIs(t, err, ai.ErrProviderNotConfigured)
}
