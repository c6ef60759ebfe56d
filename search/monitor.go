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

package search

import (
	"github.com/poiesic/moodshelf/core"
)

// SearchMonitor receives callbacks at each stage of a search.
// Implementations must not modify the values they are handed.
type SearchMonitor interface {
	Start(query Query)
	AfterParse(required, optional []string)
	AfterExpansion(term string, expanded []string)
	NameHit(book *core.Book)
	KeywordHit(book *core.Book, score int, matched []string)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query) {}
func (n *noopMonitor) AfterParse(_, _ []string) {}
func (n *noopMonitor) AfterExpansion(_ string, _ []string) {}
func (n *noopMonitor) NameHit(_ *core.Book) {}
func (n *noopMonitor) KeywordHit(_ *core.Book, _ int, _ []string) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult) {}
