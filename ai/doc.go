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

// Package ai provides abstractions for the embedding services used to
// group similar keywords.
//
// The clusterer depends only on the Embedder interface defined here.
// Concrete implementations live in sub-packages:
//
//   - ai/huggingface: Hugging Face inference router (the default provider)
//   - ai/openai: OpenAI-compatible APIs through langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// CachedEmbedder decorates any Embedder with a persistent cache in the
// key-value store, so re-clustering an unchanged vocabulary costs no
// provider calls.
//
// # Constructor Return Type Pattern
//
// Public provider constructors (huggingface.NewEmbedder, openai.NewEmbedder)
// return the ai.Embedder INTERFACE. Test utility constructors
// (mock.NewMockEmbedder) return CONCRETE types so tests can inject
// behavior and inspect call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithToken(os.Getenv("HF_TOKEN")))
//	embedder, err := huggingface.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vec, err := embedder.EmbedText(ctx, "따뜻한")
//	if errors.Is(err, ai.ErrModelLoading) {
//	    // wait and retry
//	}
package ai
