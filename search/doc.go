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

// Package search finds books by title, author and community keywords.
//
// A query carries an optional book name and a list of keyword terms.
// Terms starting with "#" are required: every one of them must match
// some keyword of a book. The other terms are optional: when present, at
// least one must match. Each term is expanded to all members of its
// stored cluster group before matching, so a search for one keyword also
// finds books tagged with its synonyms.
//
// Matching is exact (identifier equality) or fuzzy (equality, substring
// either way, or token containment either way). A book's score is the sum
// of the positive scores of its matching keywords, each keyword counted
// once. Books found only by name score 0. Results are ordered by score,
// highest first, and otherwise keep catalog order.
//
// Searcher.List implements the listing shown when there is no query.
package search
