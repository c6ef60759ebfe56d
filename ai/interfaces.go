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

package ai

import (
	"context"
	"errors"
)

// Embedder generates vector embeddings from text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns ErrModelLoading while the remote model is warming up, a
	// condition callers may retry after a delay.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

var (
	// ErrModelLoading indicates the provider is still loading the model.
	ErrModelLoading = errors.New("embedding model is loading")

	// ErrProviderNotConfigured indicates no embedding provider was set up.
	ErrProviderNotConfigured = errors.New("embedding provider not configured")

	// ErrEmptyEmbedding indicates the provider answered without a vector.
	ErrEmptyEmbedding = errors.New("provider returned an empty embedding")
)
