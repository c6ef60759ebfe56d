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

package storage

import "context"

// KV is a key/value pair returned by prefix scans.
type KV struct {
	Key   []byte
	Value []byte
}

// Tx is a single storage transaction.
//
// Implementations are not safe for concurrent use; a Tx must only be used
// by the goroutine running the callback it was handed to.
type Tx interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(key []byte) ([]byte, error)

	// Set writes value under key. Fails in read-only transactions.
	Set(key, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key []byte) error

	// DeleteMany removes each of the keys.
	DeleteMany(keys ...[]byte) error

	// Purge removes dependent keys that may outnumber what a single
	// transaction can hold. Keys that fit are deleted in the transaction;
	// the remainder are deleted right after it commits, so a crash in
	// between can leave some of them behind. Nothing may be written after
	// a Purge in the same transaction.
	Purge(keys ...[]byte) error

	// ListByPrefix returns all pairs whose key starts with prefix,
	// in ascending key order. Returned slices are owned by the caller.
	ListByPrefix(prefix []byte) ([]KV, error)
}

// Store is the transactional key-value store all state lives in.
type Store interface {
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Update runs fn in a read-write transaction and commits it if fn
	// returns nil. If the commit conflicts with a concurrent transaction,
	// fn is run again against fresh state, so fn must not have side
	// effects outside tx.
	// Conflicts are retried with backoff until ctx ends; the error then
	// wraps both ErrTransactionFailed and the context error.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Close closes the store and releases resources.
	Close() error
}
