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

// Package cluster groups semantically similar keywords.
//
// The Clusterer embeds each keyword through an ai.Embedder and groups
// them greedily: keywords are visited in input order, each unassigned
// keyword opens a group as its representative, and every later
// unassigned keyword whose cosine similarity to that representative
// exceeds the threshold joins it. Similarity is only ever measured
// against the representative, so groups are not transitive closures.
// Groups with a single member are dropped.
//
// Saved groups replace the previous set wholesale. Search expands query
// terms through them.
//
// # Provider Failures
//
// Keywords are embedded independently. A keyword whose provider reports
// ai.ErrModelLoading is retried once after a fixed delay; any other
// failure skips that keyword only. If no keyword could be embedded,
// Cluster fails with core.ErrProviderUnavailable. With exactly one
// embedding it succeeds with StatusDegraded and no groups.
package cluster
