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

// Package storage provides the storage abstraction layer for moodshelf.
//
// All state (books, keyword records, vote records, cluster groups and
// cached embeddings) lives in a single transactional key-value Store.
// Services never talk to a backend directly; they run callbacks inside
// Store.View or Store.Update and use the typed helpers in this package
// (ReadBook, WriteKeyword, ListVotes, ...) to read and write records.
//
// # Key Layout
//
// Keys are NUL-separated so prefix scans never cross record boundaries:
//
//	book\x00<bookID>
//	keyword\x00<bookID>\x00<keyword>
//	vote\x00<bookID>\x00<keyword>\x00<userID>
//	kwgroup\x00<index>
//	embcache\x00<contentID>
//
// Book ids and user ids are checked for NUL characters before they reach
// this package, and normalized keywords never contain control characters.
//
// # Usage
//
// Open a badger-backed store:
//
//	store, err := badger.NewStore("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Read-modify-write a keyword record atomically:
//
//	err = store.Update(ctx, func(tx storage.Tx) error {
//	    rec, err := storage.ReadKeyword(tx, bookID, "따뜻한")
//	    if err != nil {
//	        return err
//	    }
//	    rec.Apply(core.VoteUp)
//	    return storage.WriteKeyword(tx, rec)
//	})
//
// # Thread Safety
//
// Store implementations must be safe for concurrent use. Read-write
// transactions are serializable: two concurrent Update callbacks that
// touch the same key cannot both commit against the same snapshot.
package storage
