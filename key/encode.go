// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"encoding/binary"
	"math"

	"github.com/solidcoredata/exotherm/dbvalue"
)

// AppendIndexable appends the order-preserving encoding of v to dst
// and returns the result. v must be an IndexableValue (see
// dbvalue.Indexable); callers are expected to have already checked
// that. The encodings:
//
//   - Bool:    one byte, 0x00/0x01.
//   - UInt32/UInt64: raw big-endian, already order-preserving.
//   - Int32/Int64:   big-endian with the sign bit flipped, so two's
//     complement's "negative sorts after positive" is corrected
//     (§9 resolved: the fixed form is implemented, not the source's
//     two's-complement bug, since there is no wire-compatibility
//     constraint here).
//   - Float32/Float64: IEEE-754 total-ordering transform: flip every
//     bit when negative, flip only the sign bit when non-negative.
//   - String: raw UTF-8 bytes, no length prefix. This means one
//     string that is a byte-prefix of another sorts immediately
//     before it but a Between/Gt/Lt scan cannot distinguish "foo" from
//     "foobar" except by the sort order itself, and an Equal("foo")
//     scan also returns rows indexed under "foobar", since the row id
//     follows the value bytes directly — a documented limitation
//     carried over from the source rather than silently fixed (§9).
//   - Uuid: raw 16 bytes, already the canonical byte order.
//   - None: no bytes at all.
//
// StringMax (dbvalue.StringMax()) encodes as 64 bytes of 0xFF: a
// string longer than any real column value is expected to hold, used
// only as a synthetic upper scan bound and never written to a stored
// row.
func AppendIndexable(dst []byte, v dbvalue.Value) []byte {
	switch v.Kind {
	case dbvalue.KindNone:
		return dst
	case dbvalue.KindBool:
		if v.Bool {
			return append(dst, 1)
		}
		return append(dst, 0)
	case dbvalue.KindUInt32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v.U32)
		return append(dst, b[:]...)
	case dbvalue.KindUInt64:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v.U64)
		return append(dst, b[:]...)
	case dbvalue.KindInt32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v.I32)^0x80000000)
		return append(dst, b[:]...)
	case dbvalue.KindInt64:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.I64)^0x8000000000000000)
		return append(dst, b[:]...)
	case dbvalue.KindFloat32:
		return append(dst, appendFloat32(v.F32)...)
	case dbvalue.KindFloat64:
		return append(dst, appendFloat64(v.F64)...)
	case dbvalue.KindString:
		if v.IsStringMax() {
			var max [64]byte
			for i := range max {
				max[i] = 0xff
			}
			return append(dst, max[:]...)
		}
		return append(dst, v.Str...)
	case dbvalue.KindUUID:
		return append(dst, v.UUID[:]...)
	default:
		// Blob/Vector/EnumOrdinal are not indexable; callers must
		// filter with dbvalue.Indexable before reaching here.
		return dst
	}
}

func appendFloat32(f float32) []byte {
	bits := math.Float32bits(f)
	if f < 0 || (f == 0 && math.Signbit(float64(f))) {
		bits = ^bits
	} else {
		bits ^= 0x80000000
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], bits)
	return b[:]
}

func appendFloat64(f float64) []byte {
	bits := math.Float64bits(f)
	if f < 0 || (f == 0 && math.Signbit(f)) {
		bits = ^bits
	} else {
		bits ^= 0x8000000000000000
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], bits)
	return b[:]
}
