// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"bytes"
	"math"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
)

// encodeOrdered is a small helper: encode then return the bytes, for
// sorting and comparing against the Go-native ordering of the source
// values.
func encodeOrdered(v dbvalue.Value) []byte {
	return AppendIndexable(nil, v)
}

func TestInt32EncodingPreservesOrder(t *testing.T) {
	values := []int32{math.MinInt32, -1000, -1, 0, 1, 1000, math.MaxInt32}
	checkOrderPreserved(t, values, func(i int32) dbvalue.Value { return dbvalue.Int32Value(i) })
}

func TestInt64EncodingPreservesOrder(t *testing.T) {
	values := []int64{math.MinInt64, -1000, -1, 0, 1, 1000, math.MaxInt64}
	checkOrderPreserved(t, values, func(i int64) dbvalue.Value { return dbvalue.Int64Value(i) })
}

func checkOrderPreserved[T int32 | int64](t *testing.T, values []T, mk func(T) dbvalue.Value) {
	t.Helper()
	sorted := append([]T(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	encoded := make([][]byte, len(sorted))
	for i, v := range sorted {
		encoded[i] = encodeOrdered(mk(v))
	}
	for i := 1; i < len(encoded); i++ {
		if bytes.Compare(encoded[i-1], encoded[i]) >= 0 {
			t.Fatalf("encoding of %v must sort before %v, got %x >= %x",
				sorted[i-1], sorted[i], encoded[i-1], encoded[i])
		}
	}
}

func TestFloat64EncodingPreservesOrder(t *testing.T) {
	values := []float64{
		math.Inf(-1), -math.MaxFloat64, -1000.5, -1, -math.SmallestNonzeroFloat64,
		0, math.SmallestNonzeroFloat64, 1, 1000.5, math.MaxFloat64, math.Inf(1),
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var prev []byte
	for i, f := range sorted {
		enc := encodeOrdered(dbvalue.Float64Value(f))
		if i > 0 && bytes.Compare(prev, enc) >= 0 {
			t.Fatalf("float encoding not monotonic at %v: %x >= %x", f, prev, enc)
		}
		prev = enc
	}
}

func TestStringEncodingPreservesLexicalOrder(t *testing.T) {
	values := []string{"", "a", "aa", "ab", "b", "banana", "zzz"}
	var prev []byte
	for i, s := range values {
		enc := encodeOrdered(dbvalue.StringValue(s))
		if i > 0 && bytes.Compare(prev, enc) >= 0 {
			t.Fatalf("string encoding not monotonic at %q", s)
		}
		prev = enc
	}
}

func TestStringMaxSortsAfterEveryOrdinaryString(t *testing.T) {
	max := encodeOrdered(dbvalue.StringMax())
	for _, s := range []string{"", "z", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		if bytes.Compare(encodeOrdered(dbvalue.StringValue(s)), max) >= 0 {
			t.Fatalf("StringMax must sort after %q", s)
		}
	}
}

func TestUUIDEncodingPreservesOrder(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	if bytes.Compare(encodeOrdered(dbvalue.UUIDValue(a)), encodeOrdered(dbvalue.UUIDValue(b))) >= 0 {
		t.Fatal("uuid encoding must preserve byte order")
	}
}

func TestBoolEncodingOrdersFalseBeforeTrue(t *testing.T) {
	f := encodeOrdered(dbvalue.BoolValue(false))
	tr := encodeOrdered(dbvalue.BoolValue(true))
	if bytes.Compare(f, tr) >= 0 {
		t.Fatal("false must sort before true")
	}
}
