// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"testing"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
)

func TestCorpusRoundTrip(t *testing.T) {
	values := []dbvalue.Value{
		dbvalue.StringValue("ada lovelace"),
		dbvalue.None(),
		dbvalue.Int64Value(-42),
		dbvalue.BoolValue(true),
		dbvalue.BlobValue([]byte{1, 2, 3}),
		dbvalue.VectorValue([]float32{1.5, -2.5, 0}),
		dbvalue.UUIDValue(uuid.New()),
		dbvalue.Float64Value(3.14159),
	}
	enc, err := EncodeCorpus(values)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeCorpus(enc, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if len(dec) != len(values) {
		t.Fatalf("got %d fields, want %d", len(dec), len(values))
	}
	for i := range values {
		if dec[i].Kind != values[i].Kind {
			t.Fatalf("field %d kind = %v, want %v", i, dec[i].Kind, values[i].Kind)
		}
	}
	if dec[0].Str != "ada lovelace" {
		t.Fatalf("field 0 = %q", dec[0].Str)
	}
	if dec[2].I64 != -42 {
		t.Fatalf("field 2 = %d", dec[2].I64)
	}
}

func TestDecodeCorpusTruncatedBufferFails(t *testing.T) {
	enc, err := EncodeCorpus([]dbvalue.Value{dbvalue.StringValue("hello")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeCorpus(enc[:len(enc)-2], 1); err == nil {
		t.Fatal("truncated corpus buffer must fail to decode")
	}
}

func TestDecodeCorpusPadsMissingTrailingFieldsWithNone(t *testing.T) {
	// A row written under an older, narrower schema (2 fields) read
	// back under a newer schema (4 fields) must not fail: the fields
	// the writer never had decode as None.
	enc, err := EncodeCorpus([]dbvalue.Value{
		dbvalue.StringValue("ada lovelace"),
		dbvalue.Int64Value(1815),
	})
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeCorpus(enc, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(dec) != 4 {
		t.Fatalf("got %d fields, want 4", len(dec))
	}
	if dec[0].Str != "ada lovelace" || dec[1].I64 != 1815 {
		t.Fatalf("decoded present fields wrong: %+v", dec[:2])
	}
	if dec[2].Kind != dbvalue.KindNone || dec[3].Kind != dbvalue.KindNone {
		t.Fatalf("missing trailing fields must decode as None, got %+v", dec[2:])
	}
}
