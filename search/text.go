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
	"strings"

	"github.com/poiesic/moodshelf/core"
)

// requiredMarker prefixes a query term that every result must match.
const requiredMarker = "#"

// parseTerms splits raw query terms into required and optional keyword
// identifiers. Terms that normalize to nothing are dropped.
func parseTerms(terms []string) (required, optional []string) {
	for _, raw := range terms {
		term := strings.TrimSpace(raw)
		isRequired := strings.HasPrefix(term, requiredMarker)
		if isRequired {
			term = strings.TrimPrefix(term, requiredMarker)
		}
		term = core.NormalizeKeyword(term)
		if term == "" {
			continue
		}
		if isRequired {
			required = append(required, term)
		} else {
			optional = append(optional, term)
		}
	}
	return required, optional
}

// keywordMatches compares a book keyword with a query keyword.
func keywordMatches(mode core.SearchMode, bookKw, term string) bool {
	if bookKw == term {
		return true
	}
	if mode == core.SearchExact {
		return false
	}
	if strings.Contains(bookKw, term) || strings.Contains(term, bookKw) {
		return true
	}
	// Token containment either way
	for _, bw := range strings.Fields(bookKw) {
		for _, tw := range strings.Fields(term) {
			if strings.Contains(bw, tw) || strings.Contains(tw, bw) {
				return true
			}
		}
	}
	return false
}

// nameMatches compares a lowercased book-name query with a book's title
// and author. Empty fields never match.
func nameMatches(mode core.SearchMode, query string, book *core.Book) bool {
	for _, field := range []string{book.Title, book.Author} {
		field = core.NormalizeTitle(field)
		if field == "" {
			continue
		}
		if mode == core.SearchExact {
			if field == query {
				return true
			}
			continue
		}
		if containsEither(field, query) {
			return true
		}
		if f, q := core.StripSpaces(field), core.StripSpaces(query); f != "" && q != "" && containsEither(f, q) {
			return true
		}
	}
	return false
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
