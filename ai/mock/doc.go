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

// Package mock provides test double implementations of AI service interfaces.
//
// MockEmbedder implements ai.Embedder without any external service and
// returns deterministic vectors derived from the text. Tests inject
// failures or fixed vectors through EmbedTextFunc.
//
// # Usage in Tests
//
//	emb := mock.NewMockEmbedder()
//	emb.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    if text == "차가운" {
//	        return nil, ai.ErrModelLoading
//	    }
//	    return []float32{1, 0}, nil
//	}
//
//	count := emb.CallCount()
//
// Vectors can also be fixed per text with WithVectors.
package mock
