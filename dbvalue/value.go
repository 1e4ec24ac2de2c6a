// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbvalue implements the tagged value union that every
// corpus column and index column is encoded from: DbValue in the
// source (database/values_indices.rs). A Value knows its own Kind and
// carries exactly one payload field for that kind; None is both the
// "value absent" sentinel and the padding element for field numbers a
// record doesn't use.
package dbvalue

import (
	"math"

	"github.com/google/uuid"
)

// Kind tags which payload field of a Value is meaningful.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindString
	KindBlob
	KindVector
	KindUUID
	KindEnumOrdinal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindBlob:
		return "Blob"
	case KindVector:
		return "Vector"
	case KindUUID:
		return "Uuid"
	case KindEnumOrdinal:
		return "EnumOrdinal"
	default:
		return "Unknown"
	}
}

// Value is the tagged union. Fields besides the one named by Kind are
// zero and meaningless.
type Value struct {
	Kind Kind

	Bool bool
	I32  int32
	I64  int64
	U32  uint32
	U64  uint64
	F32  float32
	F64  float64
	Str  string
	Blob []byte
	Vec  []float32
	UUID uuid.UUID
	Enum int32

	// stringMax marks the synthetic "largest possible string" used as
	// the upper bound of a Gt/WantAll range over a String column (see
	// Bounds). It never appears in a stored corpus or index value.
	stringMax bool
}

func None() Value                  { return Value{Kind: KindNone} }
func BoolValue(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func Int32Value(i int32) Value     { return Value{Kind: KindInt32, I32: i} }
func Int64Value(i int64) Value     { return Value{Kind: KindInt64, I64: i} }
func UInt32Value(u uint32) Value   { return Value{Kind: KindUInt32, U32: u} }
func UInt64Value(u uint64) Value   { return Value{Kind: KindUInt64, U64: u} }
func Float32Value(f float32) Value { return Value{Kind: KindFloat32, F32: f} }
func Float64Value(f float64) Value { return Value{Kind: KindFloat64, F64: f} }
func StringValue(s string) Value   { return Value{Kind: KindString, Str: s} }
func BlobValue(b []byte) Value     { return Value{Kind: KindBlob, Blob: b} }
func VectorValue(v []float32) Value {
	return Value{Kind: KindVector, Vec: v}
}
func UUIDValue(id uuid.UUID) Value     { return Value{Kind: KindUUID, UUID: id} }
func EnumOrdinalValue(e int32) Value   { return Value{Kind: KindEnumOrdinal, Enum: e} }

// StringMax is the synthetic upper bound for String index ranges; see
// Bounds and the key package's encoding of it.
func StringMax() Value { return Value{Kind: KindString, stringMax: true} }

// IsStringMax reports whether v is the synthetic String upper bound.
func (v Value) IsStringMax() bool { return v.Kind == KindString && v.stringMax }

// indexable reports whether k is in the IndexableValue subset of §3: Blob and Vector
// never support order-preserving encoding, and EnumOrdinal (unlike
// the bare integer kinds) has no index semantics in this design.
func (k Kind) indexable() bool {
	switch k {
	case KindBool, KindInt32, KindInt64, KindUInt32, KindUInt64,
		KindFloat32, KindFloat64, KindString, KindUUID, KindNone:
		return true
	default:
		return false
	}
}

// Indexable reports whether v belongs to IndexableValue, the subset
// of DbValue that can be order-preserving-encoded into an index key.
func Indexable(v Value) (Value, bool) {
	if !v.Kind.indexable() {
		return Value{}, false
	}
	return v, true
}

var uuidMax = uuid.UUID{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Bounds returns the (min, max) IndexableValue pair used to compile a
// Gt/Lt/WantAll query range, keyed by v's Kind. It mirrors the
// source's IndexableValue::bounds table in §4.4.
func Bounds(v Value) (min, max Value) {
	switch v.Kind {
	case KindBool:
		return BoolValue(false), BoolValue(true)
	case KindInt32:
		return Int32Value(math.MinInt32), Int32Value(math.MaxInt32)
	case KindInt64:
		return Int64Value(math.MinInt64), Int64Value(math.MaxInt64)
	case KindUInt32:
		return UInt32Value(0), UInt32Value(math.MaxUint32)
	case KindUInt64:
		return UInt64Value(0), UInt64Value(math.MaxUint64)
	case KindFloat32:
		return Float32Value(float32(math.Inf(-1))), Float32Value(float32(math.Inf(1)))
	case KindFloat64:
		return Float64Value(math.Inf(-1)), Float64Value(math.Inf(1))
	case KindString:
		// Empty string sorts before any non-empty one under the raw
		// UTF-8 encoding in key/encode.go; there is no finite string
		// that sorts after all others, so the upper bound is the
		// synthetic StringMax probe (§9 open question, resolved in
		// DESIGN.md).
		return StringValue(""), StringMax()
	case KindUUID:
		return UUIDValue(uuid.Nil), UUIDValue(uuidMax)
	default:
		// None-kinded queries are a no-op range: bounds collapse to
		// None on both ends, same as the source.
		return None(), None()
	}
}
