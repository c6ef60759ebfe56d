// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package moodshelf wires the keyword recommender into a single handle:
// a badger store, the embedding provider and the catalog, keyword, vote,
// cluster and search services built on them.
package moodshelf

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/moodshelf/ai"
	"github.com/poiesic/moodshelf/ai/huggingface"
	"github.com/poiesic/moodshelf/ai/openai"
	"github.com/poiesic/moodshelf/catalog"
	"github.com/poiesic/moodshelf/cluster"
	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/keyword"
	"github.com/poiesic/moodshelf/metrics"
	"github.com/poiesic/moodshelf/search"
	"github.com/poiesic/moodshelf/storage/badger"
	"github.com/poiesic/moodshelf/vote"
)

type Database struct {
	backend   *badger.Backend
	metrics   *metrics.Metrics
	embedder  ai.Embedder
	catalog   *catalog.Catalog
	keywords  *keyword.Store
	votes     *vote.Engine
	clusterer *cluster.Clusterer
	searcher  *search.Searcher
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	embedder    ai.Embedder
	logger      *slog.Logger
	inMemory    bool
	metrics     *metrics.Metrics
	clusterOpts []cluster.Option
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder uses embedder instead of building one from the AI config.
// Results are still cached in the store.
func WithEmbedder(embedder ai.Embedder) DatabaseOption {
	return func(o *databaseOptions) {
		o.embedder = embedder
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// WithInMemory keeps all data in memory. The file path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithMetrics reports to m instead of a private, unregistered set.
func WithMetrics(m *metrics.Metrics) DatabaseOption {
	return func(o *databaseOptions) {
		o.metrics = m
	}
}

// WithClusterOptions passes extra options to the clusterer.
func WithClusterOptions(opts ...cluster.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.clusterOpts = append(o.clusterOpts, opts...)
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.metrics == nil {
		options.metrics = metrics.New()
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	db := &Database{
		backend: backend,
		metrics: options.metrics,
		logger:  options.logger,
	}
	if err := db.init(options); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (db *Database) init(options *databaseOptions) error {
	inner := options.embedder
	if inner == nil {
		var err error
		if inner, err = newEmbedder(options.aiConfig, options.logger); err != nil {
			return err
		}
	}
	if inner != nil {
		db.embedder = ai.NewCachedEmbedder(inner, db.backend, options.aiConfig.Model,
			db.metrics.CacheCounter(), options.logger)
	} else {
		options.logger.Warn("no embedding token configured, keyword clustering is disabled",
			"provider", options.aiConfig.Provider)
	}

	var err error
	if db.catalog, err = catalog.NewCatalog(db.backend, catalog.WithLogger(options.logger)); err != nil {
		return err
	}
	if db.keywords, err = keyword.NewStore(db.backend,
		keyword.WithLogger(options.logger), keyword.WithMetrics(db.metrics)); err != nil {
		return err
	}
	if db.votes, err = vote.NewEngine(db.backend,
		vote.WithLogger(options.logger), vote.WithMetrics(db.metrics)); err != nil {
		return err
	}
	clusterOpts := append([]cluster.Option{
		cluster.WithLogger(options.logger),
		cluster.WithMetrics(db.metrics),
	}, options.clusterOpts...)
	if db.clusterer, err = cluster.NewClusterer(db.backend, db.embedder, clusterOpts...); err != nil {
		return err
	}
	if db.searcher, err = search.NewSearcher(db.backend,
		search.WithLogger(options.logger), search.WithMetrics(db.metrics)); err != nil {
		return err
	}
	return nil
}

// newEmbedder builds the configured provider. It returns a nil embedder
// when Hugging Face is selected without a token.
func newEmbedder(config *ai.Config, logger *slog.Logger) (ai.Embedder, error) {
	switch config.Provider {
	case ai.ProviderHuggingFace:
		e, err := huggingface.NewEmbedder(config, huggingface.WithLogger(logger))
		if errors.Is(err, ai.ErrProviderNotConfigured) {
			return nil, nil
		}
		return e, err
	default:
		return openai.NewEmbedder(config)
	}
}

func (db *Database) Close() error {
	if db.clusterer != nil {
		db.clusterer.Release()
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) Catalog() *catalog.Catalog {
	return db.catalog
}

func (db *Database) Keywords() *keyword.Store {
	return db.keywords
}

func (db *Database) Votes() *vote.Engine {
	return db.votes
}

func (db *Database) Clusterer() *cluster.Clusterer {
	return db.clusterer
}

func (db *Database) Searcher() *search.Searcher {
	return db.searcher
}

func (db *Database) Metrics() *metrics.Metrics {
	return db.metrics
}

// ClusteringEnabled reports whether an embedding provider is configured.
func (db *Database) ClusteringEnabled() bool {
	return db.embedder != nil
}

// AddKeyword attaches a keyword to a book or upvotes the existing one.
func (db *Database) AddKeyword(ctx context.Context, bookID, kw, userID string) (*keyword.AddResult, error) {
	return db.keywords.Add(ctx, bookID, kw, userID)
}

// CastVote records a user's vote on a book keyword.
func (db *Database) CastVote(ctx context.Context, bookID, kw, userID string, voteType core.VoteType) (*vote.Result, error) {
	return db.votes.Cast(ctx, bookID, kw, userID, voteType)
}

// MyVotes lists a user's votes and own keywords on a book.
func (db *Database) MyVotes(ctx context.Context, bookID, userID string) (*vote.MyVotes, error) {
	return db.votes.Mine(ctx, bookID, userID)
}

// RunClustering groups keywords and stores the groups. An empty list
// clusters every keyword in the catalog.
func (db *Database) RunClustering(ctx context.Context, keywords []string) (*cluster.Result, error) {
	return db.clusterer.Run(ctx, keywords)
}

// SaveClusters replaces the stored cluster groups.
func (db *Database) SaveClusters(ctx context.Context, groups []*core.ClusterGroup) ([]*core.ClusterGroup, error) {
	return db.clusterer.Save(ctx, groups)
}

// Clusters returns the stored cluster groups.
func (db *Database) Clusters(ctx context.Context) ([]*core.ClusterGroup, error) {
	return db.clusterer.Groups(ctx)
}

// Search runs a book search.
func (db *Database) Search(ctx context.Context, q search.Query) ([]*core.SearchResult, error) {
	return db.searcher.Search(ctx, q)
}

// KeywordStats aggregates every keyword across the catalog.
func (db *Database) KeywordStats(ctx context.Context) ([]*core.KeywordStats, error) {
	return db.keywords.Stats(ctx)
}

// ListBooks returns the default book listing.
func (db *Database) ListBooks(ctx context.Context, sortBy core.SortOrder) ([]*core.BookStats, error) {
	return db.searcher.List(ctx, sortBy)
}
