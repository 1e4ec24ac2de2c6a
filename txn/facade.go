// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package txn implements the transaction facade every caller actually
// talks to: open a Handle against a kv.Store, then Transact a closure
// that Gets/Puts/Clears typed rows and runs QueryIndex scans, all
// scoped to one tenant and automatically retried on a transient KVS
// conflict. It is the Go counterpart of the source's STransaction
// (database/transaction.rs) plus Database.transact (database/database.rs).
package txn

import (
	"context"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dberr"
	"github.com/solidcoredata/exotherm/dbvalue"
	"github.com/solidcoredata/exotherm/index"
	"github.com/solidcoredata/exotherm/key"
	"github.com/solidcoredata/exotherm/kv"
	"github.com/solidcoredata/exotherm/query"
	"github.com/solidcoredata/exotherm/record"
)

// pageLimit caps how many index entries a single QueryIndex call
// reads before returning a continuation Cursor, matching the
// source's query_index limit of 5000.
const pageLimit = 5000

// Handle owns the underlying KVS connection. Constructing one
// acquires the store; Close releases it, mirroring §5's "facade
// construction acquires [the store], facade drop releases it."
type Handle struct {
	store kv.Store
}

// Open wraps an already-opened kv.Store in a Handle.
func Open(store kv.Store) *Handle {
	return &Handle{store: store}
}

func (h *Handle) Close() error {
	return h.store.Close()
}

// Facade is the per-transaction, tenant-scoped view every Get/Put/
// Clear/QueryIndex call operates through.
type Facade struct {
	tx     kv.Tx
	tenant key.Tenant
}

// Transact runs fn inside a transaction stamped with tenant, retrying
// automatically on a retryable KVS conflict (§5's concurrency model).
func (h *Handle) Transact(ctx context.Context, tenant key.Tenant, fn func(ctx context.Context, f *Facade) error) error {
	return h.store.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		return fn(ctx, &Facade{tx: tx, tenant: tenant})
	})
}

// Get reads and decodes the row identified by id, or (zero, false,
// nil) if it doesn't exist.
func Get[T any](ctx context.Context, f *Facade, schema *record.Schema[T], id uuid.UUID) (T, bool, error) {
	var zero T
	k := schema.CorpusKey(f.tenant, id)
	kb, err := k.Generate()
	if err != nil {
		return zero, false, err
	}
	raw, ok, err := f.tx.Get(ctx, kb)
	if err != nil || !ok {
		return zero, ok, err
	}
	vals, err := record.DecodeCorpus(raw, schema.Width())
	if err != nil {
		return zero, false, &dberr.SerializationError{Err: err}
	}
	row, err := schema.FromCorpus(vals)
	if err != nil {
		return zero, false, &dberr.SerializationError{Err: err}
	}
	return row, true, nil
}

// Put writes row's corpus and brings every secondary index in sync
// with it: the old corpus row (if any) is read first and diffed
// against the new one with index.Compute, so Put never leaves a stale
// index entry behind (the §9-resolved fix to the source's blind-write
// bug).
func Put[T any](ctx context.Context, f *Facade, schema *record.Schema[T], row T) error {
	id := schema.RowID(row)

	var oldMap map[uint16]dbvalue.Value
	oldRow, hadOld, err := Get(ctx, f, schema, id)
	if err != nil {
		return err
	}
	if hadOld {
		oldMap = schema.IndexValues(oldRow)
	}
	newMap := schema.IndexValues(row)

	for _, d := range index.Compute(oldMap, newMap) {
		if d.Clear {
			ik, err := query.IndexKey(f.tenant, schema.Table, d.FieldNumber, d.OldValue, id)
			if err != nil {
				return err
			}
			if err := f.tx.Clear(ctx, ik); err != nil {
				return err
			}
		}
		if d.Set {
			ik, err := query.IndexKey(f.tenant, schema.Table, d.FieldNumber, d.NewValue, id)
			if err != nil {
				return err
			}
			if err := f.tx.Set(ctx, ik, id[:]); err != nil {
				return err
			}
		}
	}

	vals := schema.ToCorpus(row)
	enc, err := record.EncodeCorpus(vals)
	if err != nil {
		return &dberr.SerializationError{Err: err}
	}
	k := schema.CorpusKey(f.tenant, id)
	kb, err := k.Generate()
	if err != nil {
		return err
	}
	return f.tx.Set(ctx, kb, enc)
}

// Clear removes row id's corpus entry and every secondary index entry
// it held, returning whether a row was actually present.
func Clear[T any](ctx context.Context, f *Facade, schema *record.Schema[T], id uuid.UUID) (bool, error) {
	row, ok, err := Get(ctx, f, schema, id)
	if err != nil || !ok {
		return false, err
	}
	for field, v := range schema.IndexValues(row) {
		ik, err := query.IndexKey(f.tenant, schema.Table, field, v, id)
		if err != nil {
			return false, err
		}
		if err := f.tx.Clear(ctx, ik); err != nil {
			return false, err
		}
	}
	k := schema.CorpusKey(f.tenant, id)
	kb, err := k.Generate()
	if err != nil {
		return false, err
	}
	if err := f.tx.Clear(ctx, kb); err != nil {
		return false, err
	}
	return true, nil
}

// PageResult is one page of a QueryIndex scan: the matching row ids,
// how many bytes the scan read off the wire, and a Cursor to resume
// from if the page hit pageLimit (the source's PageResult.next).
type PageResult struct {
	IDs           []uuid.UUID
	UsedBandwidth int
	Next          query.Cursor
}

// QueryIndex runs q against schema's table and returns up to
// pageLimit matching row ids plus a continuation cursor. q.Column is
// resolved against schema to the stable field number §4.1 embeds in
// the index key before the range is compiled; an unknown or
// non-indexed column name fails with dberr.ErrIndexKeyError. reverse
// mirrors §4.5's query_index(query, reverse): false returns ids in
// ascending row-id order, true descending.
func QueryIndex[T any](ctx context.Context, f *Facade, schema *record.Schema[T], q query.Query, reverse bool) (PageResult, error) {
	field, ok := schema.FieldNumber(q.Column)
	if !ok {
		return PageResult{}, dberr.ErrIndexKeyError
	}
	r, err := query.Compile(f.tenant, schema.Table, field, q)
	if err != nil {
		return PageResult{}, err
	}
	return QueryIndexPage(ctx, f, query.NewCursor(r, reverse))
}

// QueryIndexPage resumes a scan from a previously-returned Cursor,
// preserving the direction (Cursor.Reverse) the original QueryIndex
// call started with.
func QueryIndexPage(ctx context.Context, f *Facade, c query.Cursor) (PageResult, error) {
	if c.Done() {
		return PageResult{Next: query.Exhausted()}, nil
	}
	rows, err := f.tx.GetRange(ctx, c.From, c.To, pageLimit, kv.StreamingIterator, c.Reverse)
	if err != nil {
		return PageResult{}, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	used := 0
	var lastKey []byte
	for _, row := range rows {
		used += len(row.Key) + len(row.Value)
		id, err := uuid.FromBytes(row.Value)
		if err != nil {
			return PageResult{}, &dberr.UuidParseError{Err: err}
		}
		ids = append(ids, id)
		lastKey = row.Key
	}
	next := query.Exhausted()
	if len(rows) == pageLimit {
		next = c.Advance(lastKey)
	}
	return PageResult{IDs: ids, UsedBandwidth: used, Next: next}, nil
}
