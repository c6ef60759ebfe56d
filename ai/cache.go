package ai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// CachedEmbedder caches embeddings in the key-value store.
// Entries are keyed by a content id over the model name and text, so a
// model change never serves stale vectors.
type CachedEmbedder struct {
	inner      Embedder
	store      storage.Store
	model      string
	cacheTotal *prometheus.CounterVec
	logger     *slog.Logger
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss") and may be nil.
func NewCachedEmbedder(inner Embedder, store storage.Store, model string, cacheTotal *prometheus.CounterVec, logger *slog.Logger) *CachedEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedEmbedder{
		inner:      inner,
		store:      store,
		model:      model,
		cacheTotal: cacheTotal,
		logger:     logger.With("component", "embedding-cache"),
	}
}

// EmbedText returns a cached embedding or calls the inner embedder.
// Cache failures are logged and never fail the call.
func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	id := core.IDFromContent(c.model + "\x00" + text)

	if vec, ok := c.get(ctx, id); ok {
		c.inc("hit")
		return vec, nil
	}
	c.inc("miss")

	vec, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	err = c.store.Update(ctx, func(tx storage.Tx) error {
		return storage.WriteEmbedding(tx, id, vec)
	})
	if err != nil {
		c.logger.Warn("failed to cache embedding", "text", text, "err", err)
	}
	return vec, nil
}

func (c *CachedEmbedder) get(ctx context.Context, id core.ID) ([]float32, bool) {
	var vec []float32
	err := c.store.View(ctx, func(tx storage.Tx) error {
		var err error
		vec, err = storage.ReadEmbedding(tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("failed to read cached embedding", "id", uint64(id), "err", err)
		}
		return nil, false
	}
	if len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func (c *CachedEmbedder) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
