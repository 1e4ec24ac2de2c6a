// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blob shards a large byte payload into fixed 50 KiB pieces
// and stores each under its own key, since a single KVS value has a
// practical size ceiling most ordered stores enforce. It's the Go
// counterpart of the source's ShardedBlob (database/blobstore.rs).
//
// Per the base spec's §4.6 "protocol compatibility" note, a blob's
// shard keys are deliberately NOT run through the key package's
// tenant/table/purpose grammar: they're the raw 16-byte row uuid
// followed by an 8-byte big-endian shard index, exactly the shape the
// source's ShardedBlob::store/load produce and consume, so a store
// written by one is loadable by the other.
package blob

import (
	"context"
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/kv"
)

// ShardSize is the fixed chunk size every blob is split into before
// storage, matching the source's chunk_size.
const ShardSize = 50 * 1024

// loadLimit caps how many shard keys Load will scan in one range
// read, matching §4.6's "limit 1000 keys" for load.
const loadLimit = 1000

// shardKey renders the key a blob's shardIndex-th chunk is stored
// under: the row id followed by a big-endian uint64 shard index.
func shardKey(id uuid.UUID, shardIndex uint64) []byte {
	key := make([]byte, 0, 16+8)
	key = append(key, id[:]...)
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], shardIndex)
	return append(key, idx[:]...)
}

// shardRangeBounds returns the [from, to) range spanning every shard
// key for id, regardless of how many shards it has.
func shardRangeBounds(id uuid.UUID) (from, to []byte) {
	from = shardKey(id, 0)
	to = append(append([]byte(nil), id[:]...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
	return from, to
}

// Shard splits data into ShardSize-sized chunks. An empty payload
// still yields exactly one (empty) shard, so Store/Load round-trip a
// zero-length blob without a special case.
func Shard(data []byte) [][]byte {
	if len(data) == 0 {
		return [][]byte{{}}
	}
	var shards [][]byte
	for len(data) > 0 {
		n := ShardSize
		if n > len(data) {
			n = len(data)
		}
		shards = append(shards, data[:n])
		data = data[n:]
	}
	return shards
}

// Store writes data under id, one key per ShardSize chunk, clearing
// any shard keys id previously held beyond the new shard count.
func Store(ctx context.Context, tx kv.Tx, id uuid.UUID, data []byte) error {
	shards := Shard(data)
	for i, shard := range shards {
		if err := tx.Set(ctx, shardKey(id, uint64(i)), shard); err != nil {
			return err
		}
	}
	// A shorter re-store must clear the shards a longer previous
	// version left behind.
	from, to := shardRangeBounds(id)
	rows, err := tx.GetRange(ctx, from, to, 0, kv.StreamingSerial, false)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row.Key) < 24 {
			continue
		}
		idx := binary.BigEndian.Uint64(row.Key[16:24])
		if idx >= uint64(len(shards)) {
			if err := tx.Clear(ctx, row.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reassembles id's full payload from its shard keys, in shard
// order. A blob with no shards at all (never stored) loads as a nil
// slice with ok=false.
func Load(ctx context.Context, tx kv.Tx, id uuid.UUID) (data []byte, ok bool, err error) {
	from, to := shardRangeBounds(id)
	rows, err := tx.GetRange(ctx, from, to, loadLimit, kv.StreamingSerial, false)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	var buf []byte
	for _, row := range rows {
		buf = append(buf, row.Value...)
	}
	return buf, true, nil
}
