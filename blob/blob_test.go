// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blob

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/kv"
)

func openTestStore(t *testing.T) *kv.BadgerStore {
	t.Helper()
	s, err := kv.OpenBadger("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storeAndLoad(t *testing.T, s *kv.BadgerStore, data []byte) []byte {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	err := s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		return Store(ctx, tx, id, data)
	})
	if err != nil {
		t.Fatal(err)
	}
	var got []byte
	err = s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		var gerr error
		var ok bool
		got, ok, gerr = Load(ctx, tx, id)
		if gerr == nil && !ok {
			t.Fatal("expected a previously stored blob to load")
		}
		return gerr
	})
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestShardBoundarySizes(t *testing.T) {
	s := openTestStore(t)
	sizes := []int{0, 1, ShardSize - 1, ShardSize, ShardSize + 1, 10 * ShardSize}
	for _, n := range sizes {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		got := storeAndLoad(t, s, data)
		if !bytes.Equal(got, data) {
			t.Fatalf("size %d: round-trip mismatch (got %d bytes, want %d)", n, len(got), len(data))
		}
	}
}

func TestShardCountMatchesSize(t *testing.T) {
	cases := []struct {
		size, wantShards int
	}{
		{0, 1},
		{1, 1},
		{ShardSize, 1},
		{ShardSize + 1, 2},
		{10 * ShardSize, 10},
	}
	for _, c := range cases {
		got := len(Shard(make([]byte, c.size)))
		if got != c.wantShards {
			t.Fatalf("size %d: got %d shards, want %d", c.size, got, c.wantShards)
		}
	}
}

func TestStoreShrinksAwayStaleShards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	big := make([]byte, 3*ShardSize)
	if err := s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		return Store(ctx, tx, id, big)
	}); err != nil {
		t.Fatal(err)
	}

	small := []byte("tiny")
	if err := s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		return Store(ctx, tx, id, small)
	}); err != nil {
		t.Fatal(err)
	}

	var got []byte
	if err := s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		var gerr error
		got, _, gerr = Load(ctx, tx, id)
		return gerr
	}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, small) {
		t.Fatalf("got %d bytes, want the shrunk %d-byte payload", len(got), len(small))
	}
}

func TestLoadMissingBlobReportsNotOk(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	var ok bool
	err := s.Run(ctx, func(ctx context.Context, tx kv.Tx) error {
		var gerr error
		_, ok, gerr = Load(ctx, tx, uuid.New())
		return gerr
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("loading a never-stored blob must report ok=false")
	}
}
