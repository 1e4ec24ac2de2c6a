// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kv

import (
	"bytes"
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/solidcoredata/exotherm/dberr"
)

// BadgerStore is the concrete Store backed by an embedded badger
// database: badger's optimistic Txn (Get/Set/Delete), its prefix
// iterator, and ErrConflict retry are the closest real embedded
// analogue in the retrieval pack to the KVS contract of §6 (four
// independent example repos in the pack drive badger this same way).
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if necessary) a badger database rooted
// at dir. A dir of "" opens an in-memory database, useful for tests
// and the demo binary's --data flag default.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, &dberr.KvsError{Err: err}
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Run executes fn inside a badger transaction, retrying the whole
// closure whenever it fails with badger.ErrConflict — badger's
// optimistic-concurrency analogue of the source's
// FdbError::is_retryable — and surfacing any other error immediately.
// An error fn itself returns is surfaced unchanged; a failure of
// badger's own commit is wrapped in a dberr.KvsError.
func (s *BadgerStore) Run(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fnFailed := false
		txErr := s.db.Update(func(btx *badger.Txn) error {
			err := fn(ctx, &badgerTx{btx: btx})
			fnFailed = err != nil
			return err
		})
		if txErr == nil {
			return nil
		}
		if errors.Is(txErr, badger.ErrConflict) {
			continue
		}
		var kerr *dberr.KvsError
		if fnFailed || errors.As(txErr, &kerr) {
			return txErr
		}
		return &dberr.KvsError{Err: txErr, Retryable: errors.Is(txErr, badger.ErrConflict)}
	}
}

type badgerTx struct {
	btx *badger.Txn
}

func (t *badgerTx) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	item, err := t.btx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &dberr.KvsError{Err: err, Retryable: errors.Is(err, badger.ErrConflict)}
	}
	var value []byte
	err = item.Value(func(v []byte) error {
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, false, &dberr.KvsError{Err: err}
	}
	return value, true, nil
}

func (t *badgerTx) Set(ctx context.Context, key, value []byte) error {
	if err := t.btx.Set(key, value); err != nil {
		return &dberr.KvsError{Err: err, Retryable: errors.Is(err, badger.ErrConflict)}
	}
	return nil
}

func (t *badgerTx) Clear(ctx context.Context, key []byte) error {
	if err := t.btx.Delete(key); err != nil {
		return &dberr.KvsError{Err: err, Retryable: errors.Is(err, badger.ErrConflict)}
	}
	return nil
}

func (t *badgerTx) GetRange(ctx context.Context, from, to []byte, limit int, mode StreamingMode, reverse bool) ([]KeyValue, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Reverse = reverse
	switch mode {
	case StreamingIterator:
		opts.PrefetchSize = 16
	default:
		opts.PrefetchSize = 256
	}
	it := t.btx.NewIterator(opts)
	defer it.Close()

	var out []KeyValue
	if reverse {
		// [from, to) scanned high-to-low: badger's reverse Seek lands
		// on the largest key <= the seek point, so seeking at to and
		// skipping an exact match turns the inclusive seek into the
		// exclusive upper bound GetRange promises.
		for it.Seek(to); it.Valid(); it.Next() {
			k := it.Item().KeyCopy(nil)
			if bytes.Equal(k, to) {
				continue
			}
			if from != nil && bytes.Compare(k, from) < 0 {
				break
			}
			v, err := copyValue(it)
			if err != nil {
				return nil, err
			}
			out = append(out, KeyValue{Key: k, Value: v})
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return out, nil
	}
	for it.Seek(from); it.Valid(); it.Next() {
		k := it.Item().KeyCopy(nil)
		if to != nil && bytes.Compare(k, to) >= 0 {
			break
		}
		v, err := copyValue(it)
		if err != nil {
			return nil, err
		}
		out = append(out, KeyValue{Key: k, Value: v})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func copyValue(it *badger.Iterator) ([]byte, error) {
	var v []byte
	err := it.Item().Value(func(b []byte) error {
		v = append([]byte(nil), b...)
		return nil
	})
	if err != nil {
		return nil, &dberr.KvsError{Err: err}
	}
	return v, nil
}
