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

package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/moodshelf/storage"
)

// Backend wraps a BadgerDB instance and implements storage.Store.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.Store = (*Backend)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// NewStore opens a badger-backed store at path.
// Creates the directory if it doesn't exist.
func NewStore(path string, logger *slog.Logger) (storage.Store, error) {
	return OpenBackend(path, false, logger)
}

// OpenBackend opens a BadgerDB database at the specified path.
// A nil logger uses slog.Default().
func OpenBackend(filePath string, inMemory bool, logger *slog.Logger) (*Backend, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(filePath); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(filePath)
	}

	return openWithOptions(opts, logger)
}

func openWithOptions(opts badger.Options, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger.With("component", "badger")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

func ensureDir(filePath string) error {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filePath, 0755); err != nil {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filePath)
	}
	return nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// View runs fn in a read-only transaction.
func (b *Backend) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := b.check(ctx); err != nil {
		return err
	}
	return b.db.View(func(txn *badger.Txn) error {
		return fn(&tx{txn: txn})
	})
}

// Update runs fn in a read-write transaction. A commit that loses an
// optimistic concurrency race is rerun with backoff until it succeeds or
// ctx ends, so fn must be safe to call more than once.
func (b *Backend) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	var committed *tx
	err := retryOnConflict(ctx, b.logger, func() error {
		if err := b.check(ctx); err != nil {
			return err
		}
		t := &tx{}
		err := b.db.Update(func(txn *badger.Txn) error {
			t.txn = txn
			return fn(t)
		})
		if err == nil {
			committed = t
		}
		return err
	}, conflictBaseDelay, conflictMaxDelay)
	if err != nil {
		return err
	}
	if len(committed.overflow) > 0 {
		return b.deleteBatch(committed.overflow)
	}
	return nil
}

// deleteBatch removes keys that did not fit in a committed transaction.
// WriteBatch splits them into as many commits as the size limits need.
func (b *Backend) deleteBatch(keys [][]byte) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	b.logger.Debug("purged keys after commit", "count", len(keys))
	return nil
}

func (b *Backend) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// tx adapts a badger transaction to storage.Tx.
type tx struct {
	txn *badger.Txn
	// overflow holds purged keys past the transaction size limit.
	overflow [][]byte
}

func (t *tx) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *tx) Set(key, value []byte) error {
	return t.txn.Set(key, value)
}

func (t *tx) Delete(key []byte) error {
	return t.txn.Delete(key)
}

func (t *tx) DeleteMany(keys ...[]byte) error {
	for _, k := range keys {
		if err := t.txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// Purge deletes keys inside the transaction until badger reports
// ErrTxnTooBig; the rest are deleted by Update after the commit.
func (t *tx) Purge(keys ...[]byte) error {
	for i, k := range keys {
		err := t.txn.Delete(k)
		if errors.Is(err, badger.ErrTxnTooBig) {
			t.overflow = append(t.overflow, keys[i:]...)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListByPrefix scans and closes its iterator before returning. Read-write
// badger transactions allow only one open iterator at a time.
func (t *tx) ListByPrefix(prefix []byte) ([]storage.KV, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := t.txn.NewIterator(opts)
	defer iter.Close()

	var out []storage.KV
	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, storage.KV{Key: item.KeyCopy(nil), Value: val})
	}
	return out, nil
}
