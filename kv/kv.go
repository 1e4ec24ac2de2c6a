// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kv names the external ordered key-value store contract the
// rest of this module is built against (§6): get/set/clear a single
// key, scan a half-open byte range, and run a closure inside a
// retrying ACID transaction. kv.Store is intentionally small enough
// that any embedded ordered store in the retrieval pack (badger,
// bbolt, pebble) could satisfy it; kv/badger.go is the one concrete
// driver this module ships.
package kv

import "context"

// StreamingMode hints how aggressively a range scan should prefetch,
// mirroring the source's foundationdb::options::StreamingMode. Serial
// prefetches in large batches for a scan that's likely to be fully
// consumed; Iterator prefetches in small batches for a scan that may
// stop early (a paginated query.Cursor read).
type StreamingMode int

const (
	StreamingSerial StreamingMode = iota
	StreamingIterator
)

// KeyValue is one row read back from a range scan.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// Tx is a single ACID transaction against the store. Every method
// must be called from the goroutine that owns the Tx; Store.Run
// retries the entire closure on a retryable conflict, so a closure
// must not have side effects outside of Tx that aren't safe to repeat.
type Tx interface {
	// Get returns (nil, false, nil) if key is absent.
	Get(ctx context.Context, key []byte) (value []byte, ok bool, err error)
	Set(ctx context.Context, key, value []byte) error
	Clear(ctx context.Context, key []byte) error
	// GetRange scans the half-open range [from, to), stopping after
	// limit entries (0 means unlimited). In key order when reverse is
	// false; in descending key order, starting just below to, when
	// reverse is true — the source's opt.reverse passed into
	// get_range (§4.5's query_index(query, reverse)).
	GetRange(ctx context.Context, from, to []byte, limit int, mode StreamingMode, reverse bool) ([]KeyValue, error)
}

// Store opens transactions against the backing KVS.
type Store interface {
	// Run executes fn inside a transaction, retrying automatically
	// while dberr.IsRetryable(err) holds for the error fn returns —
	// the source's Database.transact/fdb.run combinator (§5).
	Run(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}
