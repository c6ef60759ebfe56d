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

// Package huggingface provides an ai.Embedder backed by the Hugging Face
// inference router's feature-extraction endpoint.
//
// The default model, BM-K/KoSimCSE-roberta-multitask, produces sentence
// embeddings for Korean text. A 503 answer means the model is still being
// loaded on the provider side and is reported as ai.ErrModelLoading.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithToken(os.Getenv("HF_TOKEN")))
//	embedder, err := huggingface.NewEmbedder(cfg)
package huggingface
