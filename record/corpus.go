// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
)

// EncodeCorpus serializes a padded vector of DbValue (one slot per
// schema field, in position order) into the flat binary form stored
// under a PurposeRow key. Each slot is a one-byte Kind tag followed by
// a fixed- or variable-length payload, the same fixed/variable split
// the teacher's FieldCoder.BitSize draws between coders (coderInt64's
// BitSize of 64 vs coderString's BitSize of 0 meaning "length
// prefixed").
func EncodeCorpus(values []dbvalue.Value) ([]byte, error) {
	buf := make([]byte, 0, 64)
	for _, v := range values {
		buf = append(buf, byte(v.Kind))
		var err error
		buf, err = appendCorpusPayload(buf, v)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendCorpusPayload(buf []byte, v dbvalue.Value) ([]byte, error) {
	switch v.Kind {
	case dbvalue.KindNone:
		return buf, nil
	case dbvalue.KindBool:
		if v.Bool {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case dbvalue.KindInt32:
		return appendUint32(buf, uint32(v.I32)), nil
	case dbvalue.KindInt64:
		return appendUint64(buf, uint64(v.I64)), nil
	case dbvalue.KindUInt32:
		return appendUint32(buf, v.U32), nil
	case dbvalue.KindUInt64:
		return appendUint64(buf, v.U64), nil
	case dbvalue.KindFloat32:
		return appendUint32(buf, math.Float32bits(v.F32)), nil
	case dbvalue.KindFloat64:
		return appendUint64(buf, math.Float64bits(v.F64)), nil
	case dbvalue.KindString:
		return appendLenPrefixed(buf, []byte(v.Str)), nil
	case dbvalue.KindBlob:
		return appendLenPrefixed(buf, v.Blob), nil
	case dbvalue.KindVector:
		buf = appendUint32(buf, uint32(len(v.Vec)))
		for _, f := range v.Vec {
			buf = appendUint32(buf, math.Float32bits(f))
		}
		return buf, nil
	case dbvalue.KindUUID:
		return append(buf, v.UUID[:]...), nil
	case dbvalue.KindEnumOrdinal:
		return appendUint32(buf, uint32(v.Enum)), nil
	default:
		return nil, fmt.Errorf("record: unknown DbValue kind %d", v.Kind)
	}
}

// DecodeCorpus is the inverse of EncodeCorpus: it reads up to
// fieldCount tagged slots out of data. A row written under an older,
// narrower schema runs out of data partway through instead of
// carrying every slot a newer, wider schema expects; per §4.2's
// forward/backward-compatible value vector, that's not corruption —
// the missing trailing fields decode as None, the same as if the
// writer had set them to None explicitly. Running out of data
// mid-payload (a short length-prefixed string, a partial uuid) is
// still a real decode failure and fails as before.
func DecodeCorpus(data []byte, fieldCount int) ([]dbvalue.Value, error) {
	out := make([]dbvalue.Value, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if len(data) < 1 {
			for ; i < fieldCount; i++ {
				out = append(out, dbvalue.None())
			}
			break
		}
		kind := dbvalue.Kind(data[0])
		data = data[1:]
		v, rest, err := readCorpusPayload(kind, data)
		if err != nil {
			return nil, fmt.Errorf("record: field %d: %w", i, err)
		}
		out = append(out, v)
		data = rest
	}
	return out, nil
}

func readCorpusPayload(kind dbvalue.Kind, data []byte) (dbvalue.Value, []byte, error) {
	switch kind {
	case dbvalue.KindNone:
		return dbvalue.None(), data, nil
	case dbvalue.KindBool:
		if len(data) < 1 {
			return dbvalue.Value{}, nil, errShort("bool")
		}
		return dbvalue.BoolValue(data[0] != 0), data[1:], nil
	case dbvalue.KindInt32:
		u, rest, err := readUint32(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.Int32Value(int32(u)), rest, nil
	case dbvalue.KindInt64:
		u, rest, err := readUint64(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.Int64Value(int64(u)), rest, nil
	case dbvalue.KindUInt32:
		u, rest, err := readUint32(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.UInt32Value(u), rest, nil
	case dbvalue.KindUInt64:
		u, rest, err := readUint64(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.UInt64Value(u), rest, nil
	case dbvalue.KindFloat32:
		u, rest, err := readUint32(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.Float32Value(math.Float32frombits(u)), rest, nil
	case dbvalue.KindFloat64:
		u, rest, err := readUint64(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.Float64Value(math.Float64frombits(u)), rest, nil
	case dbvalue.KindString:
		b, rest, err := readLenPrefixed(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.StringValue(string(b)), rest, nil
	case dbvalue.KindBlob:
		b, rest, err := readLenPrefixed(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.BlobValue(b), rest, nil
	case dbvalue.KindVector:
		n, rest, err := readUint32(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		vec := make([]float32, n)
		for i := range vec {
			u, r2, err := readUint32(rest)
			if err != nil {
				return dbvalue.Value{}, nil, fmt.Errorf("vector element %d: %w", i, err)
			}
			vec[i] = math.Float32frombits(u)
			rest = r2
		}
		return dbvalue.VectorValue(vec), rest, nil
	case dbvalue.KindUUID:
		if len(data) < 16 {
			return dbvalue.Value{}, nil, errShort("uuid")
		}
		var id uuid.UUID
		copy(id[:], data[:16])
		return dbvalue.UUIDValue(id), data[16:], nil
	case dbvalue.KindEnumOrdinal:
		u, rest, err := readUint32(data)
		if err != nil {
			return dbvalue.Value{}, nil, err
		}
		return dbvalue.EnumOrdinalValue(int32(u)), rest, nil
	default:
		return dbvalue.Value{}, nil, fmt.Errorf("unknown DbValue kind tag %d", kind)
	}
}

func errShort(what string) error {
	return fmt.Errorf("corpus buffer truncated reading %s", what)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendLenPrefixed(buf []byte, b []byte) []byte {
	buf = appendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

func readUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, errShort("uint32")
	}
	return binary.BigEndian.Uint32(data[:4]), data[4:], nil
}

func readUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, errShort("uint64")
	}
	return binary.BigEndian.Uint64(data[:8]), data[8:], nil
}

func readLenPrefixed(data []byte) ([]byte, []byte, error) {
	n, rest, err := readUint32(data)
	if err != nil {
		return nil, nil, err
	}
	if uint32(len(rest)) < n {
		return nil, nil, errShort("length-prefixed payload")
	}
	return rest[:n:n], rest[n:], nil
}
