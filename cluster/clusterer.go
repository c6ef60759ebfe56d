package cluster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/moodshelf/ai"
	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/poiesic/moodshelf/storage"
)

const (
	// DefaultThreshold is the cosine similarity a keyword must exceed to
	// join a group.
	DefaultThreshold = 0.8

	// DefaultRetryDelay is how long to wait before retrying a keyword
	// whose model was still loading.
	DefaultRetryDelay = 10 * time.Second

	// maxErrorDetails caps how many keyword errors a provider failure reports.
	maxErrorDetails = 3
)

// Status tags a successful clustering result.
type Status string

const (
	StatusOK Status = "ok"
	// StatusDegraded means fewer than two keywords could be embedded.
	StatusDegraded Status = "degraded"
)

// ErrStoreRequired is returned when no storage backend is provided.
var ErrStoreRequired = errors.New("storage required")

// KeywordError records why one keyword could not be embedded.
type KeywordError struct {
	Keyword string `json:"keyword"`
	Err     error  `json:"-"`
}

func (e KeywordError) Error() string {
	return fmt.Sprintf("%s: %v", e.Keyword, e.Err)
}

func (e KeywordError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a clustering pass.
type Result struct {
	Groups    []*core.ClusterGroup `json:"groups"`
	Status    Status               `json:"status"`
	Message   string               `json:"message,omitempty"`
	Processed int                  `json:"processedCount"`
	Total     int                  `json:"totalCount"`
	Errors    []KeywordError       `json:"-"`
}

// Degraded reports whether too few keywords were embedded to compare.
func (r *Result) Degraded() bool {
	return r.Status == StatusDegraded
}

// Clusterer embeds keywords and manages the stored cluster groups.
type Clusterer struct {
	store      storage.Store
	embedder   ai.Embedder
	pool       *ants.Pool
	threshold  float64
	retryDelay time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Clusterer.
type Option func(*Clusterer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithPoolSize sets how many keywords are embedded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *Clusterer) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if c.pool != nil {
			c.pool.Release()
		}
		c.pool = pool
		return nil
	}
}

// WithThreshold sets the similarity a keyword must exceed to join a group.
func WithThreshold(threshold float64) Option {
	return func(c *Clusterer) error {
		if threshold < -1 || threshold > 1 {
			return fmt.Errorf("cluster: threshold %v out of range [-1, 1]", threshold)
		}
		c.threshold = threshold
		return nil
	}
}

// WithRetryDelay sets the wait before retrying a loading model.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Clusterer) error {
		if d < 0 {
			d = 0
		}
		c.retryDelay = d
		return nil
	}
}

// WithMetrics reports embedding requests and runs to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Clusterer) error {
		c.metrics = m
		return nil
	}
}

// NewClusterer creates a clusterer. embedder may be nil, in which case
// Cluster fails with core.ErrProviderUnavailable while stored groups can
// still be read and saved.
func NewClusterer(store storage.Store, embedder ai.Embedder, opts ...Option) (*Clusterer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Clusterer{
		store:      store,
		embedder:   embedder,
		pool:       pool,
		threshold:  DefaultThreshold,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			c.Release()
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "clusterer")
	return c, nil
}

// Release stops the worker pool.
func (c *Clusterer) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// Cluster embeds keywords and groups the similar ones. It does not touch
// the stored groups.
func (c *Clusterer) Cluster(ctx context.Context, keywords []string) (*Result, error) {
	unique := dedupe(keywords)
	if len(unique) == 0 {
		return nil, core.InvalidInput("keywords are required")
	}
	if c.embedder == nil {
		return nil, core.ProviderUnavailable("keyword clustering is not available", ai.ErrProviderNotConfigured)
	}

	vectors, failures := c.embedAll(ctx, unique)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Groups: []*core.ClusterGroup{},
		Status: StatusOK,
		Total:  len(unique),
		Errors: failures,
	}

	kws := make([]string, 0, len(unique))
	vecs := make([][]float32, 0, len(unique))
	for i, v := range vectors {
		if v != nil {
			kws = append(kws, unique[i])
			vecs = append(vecs, v)
		}
	}
	result.Processed = len(kws)

	switch {
	case result.Processed == 0:
		c.metrics.ClusterRun("failed")
		details := make([]string, 0, maxErrorDetails)
		for _, f := range failures[:min(len(failures), maxErrorDetails)] {
			details = append(details, f.Error())
		}
		var cause error
		if len(failures) > 0 {
			cause = failures[0]
		}
		return nil, core.ProviderUnavailable("failed to generate embeddings for any keyword", cause).WithDetails(details)
	case result.Processed < 2:
		c.metrics.ClusterRun(string(StatusDegraded))
		result.Status = StatusDegraded
		result.Message = fmt.Sprintf("Only %d keyword(s) could be processed. Need at least 2 for comparison.", result.Processed)
		return result, nil
	}

	result.Groups = group(kws, vecs, c.threshold)
	c.metrics.ClusterRun(string(StatusOK))
	c.logger.Info("clustered keywords",
		"total", result.Total, "processed", result.Processed, "groups", len(result.Groups))
	return result, nil
}

// group performs the greedy representative-anchored pass.
func group(keywords []string, vectors [][]float32, threshold float64) []*core.ClusterGroup {
	used := make([]bool, len(keywords))
	groups := []*core.ClusterGroup{}
	for i := range keywords {
		if used[i] {
			continue
		}
		used[i] = true
		members := []string{keywords[i]}
		for j := i + 1; j < len(keywords); j++ {
			if used[j] {
				continue
			}
			if similar(vectors[i], vectors[j], threshold) {
				used[j] = true
				members = append(members, keywords[j])
			}
		}
		if len(members) > 1 {
			groups = append(groups, &core.ClusterGroup{Representative: members[0], Members: members})
		}
	}
	return groups
}

// embedAll embeds every keyword on the pool. vectors[i] is nil when
// keyword i failed; failures are reported in input order.
func (c *Clusterer) embedAll(ctx context.Context, keywords []string) ([][]float32, []KeywordError) {
	vectors := make([][]float32, len(keywords))
	errs := make([]error, len(keywords))

	var wg sync.WaitGroup
	for i, kw := range keywords {
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = c.embedWithRetry(ctx, kw)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	var failures []KeywordError
	for i, err := range errs {
		if err != nil {
			vectors[i] = nil
			failures = append(failures, KeywordError{Keyword: keywords[i], Err: err})
			c.logger.Warn("failed to embed keyword", "keyword", keywords[i], "err", err)
		}
	}
	return vectors, failures
}

// embedWithRetry embeds keyword, retrying once after the retry delay if
// the model was still loading.
func (c *Clusterer) embedWithRetry(ctx context.Context, keyword string) ([]float32, error) {
	vec, err := c.embed(ctx, keyword)
	if !errors.Is(err, ai.ErrModelLoading) {
		return vec, err
	}

	c.logger.Info("model is loading, retrying", "keyword", keyword, "delay", c.retryDelay)
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return c.embed(ctx, keyword)
}

func (c *Clusterer) embed(ctx context.Context, keyword string) ([]float32, error) {
	start := time.Now()
	vec, err := c.embedder.EmbedText(ctx, keyword)
	if err == nil && len(vec) == 0 {
		err = ai.ErrEmptyEmbedding
	}

	status := "ok"
	switch {
	case errors.Is(err, ai.ErrModelLoading):
		status = "loading"
	case err != nil:
		status = "error"
	}
	c.metrics.EmbeddingRequest(status, time.Since(start))

	if err != nil {
		return nil, err
	}
	return vec, nil
}

// Save replaces all stored groups with groups. Members are normalized and
// deduplicated; a representative that is not a member is replaced by the
// first member. Returns the groups as stored.
func (c *Clusterer) Save(ctx context.Context, groups []*core.ClusterGroup) ([]*core.ClusterGroup, error) {
	now := c.now().UTC()
	clean := make([]*core.ClusterGroup, 0, len(groups))
	for i, g := range groups {
		if g == nil {
			return nil, core.InvalidInput("group %d is empty", i)
		}
		members := dedupe(g.Members)
		if len(members) == 0 {
			return nil, core.InvalidInput("group %d has no members", i)
		}
		out := &core.ClusterGroup{
			Representative: core.NormalizeKeyword(g.Representative),
			Members:        members,
			CreatedAt:      now,
		}
		if !out.Contains(out.Representative) {
			out.Representative = members[0]
		}
		clean = append(clean, out)
	}

	err := c.store.Update(ctx, func(tx storage.Tx) error {
		return storage.ReplaceClusterGroups(tx, clean)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("saved cluster groups", "count", len(clean))
	return clean, nil
}

// Groups returns the stored groups in saved order.
func (c *Clusterer) Groups(ctx context.Context) ([]*core.ClusterGroup, error) {
	var groups []*core.ClusterGroup
	err := c.store.View(ctx, func(tx storage.Tx) error {
		var err error
		groups, err = storage.ListClusterGroups(tx)
		return err
	})
	return groups, err
}

// Run clusters keywords and saves the groups unless the result is
// degraded. With no keywords, every distinct keyword in the catalog is
// clustered.
func (c *Clusterer) Run(ctx context.Context, keywords []string) (*Result, error) {
	if len(keywords) == 0 {
		var err error
		keywords, err = c.catalogKeywords(ctx)
		if err != nil {
			return nil, err
		}
	}

	result, err := c.Cluster(ctx, keywords)
	if err != nil {
		return nil, err
	}
	if result.Degraded() {
		c.logger.Warn("not saving degraded clustering result", "message", result.Message)
		return result, nil
	}

	saved, err := c.Save(ctx, result.Groups)
	if err != nil {
		return nil, err
	}
	result.Groups = saved
	return result, nil
}

func (c *Clusterer) catalogKeywords(ctx context.Context) ([]string, error) {
	var out []string
	err := c.store.View(ctx, func(tx storage.Tx) error {
		records, err := storage.ListAllKeywords(tx)
		if err != nil {
			return err
		}
		for _, r := range records {
			out = append(out, r.Keyword)
		}
		return nil
	})
	return out, err
}

// dedupe normalizes keywords and drops empties and repeats, keeping the
// first occurrence.
func dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, raw := range keywords {
		kw := core.NormalizeKeyword(raw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
