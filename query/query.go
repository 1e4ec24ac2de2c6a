// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query compiles a Query (Equal/Between/Gt/Lt/WantAll over one
// indexed column) into a half-open byte Range a kv.Store can scan. It
// is the Go counterpart of the source's Query::into_range
// (database/transaction.rs), reproduced unchanged as the table in the
// base spec's §4.4.
package query

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dberr"
	"github.com/solidcoredata/exotherm/dbvalue"
	"github.com/solidcoredata/exotherm/key"
)

// Kind names which of the five query shapes a Query expresses.
type Kind uint8

const (
	Equal Kind = iota
	Between
	Gt
	Lt
	WantAll
)

// Query names one scan over a single indexed column: which column
// (by name; resolved to a field number against a schema before
// Compile runs), which shape, and the bound value(s) the shape needs.
type Query struct {
	Column string
	Kind   Kind
	Value  dbvalue.Value // Equal, Gt, Lt
	Low    dbvalue.Value // Between
	High   dbvalue.Value // Between
}

// NewEqual compiles to [v, v]: every index entry stored under v,
// whatever its row id.
func NewEqual(column string, v dbvalue.Value) Query {
	return Query{Column: column, Kind: Equal, Value: v}
}

// NewBetween compiles to [low, high], inclusive of both ends. low and
// high must be the same
// Kind; a mismatch is an error returned from Compile, matching the
// source's check that both ends name the same column type.
func NewBetween(column string, low, high dbvalue.Value) Query {
	return Query{Column: column, Kind: Between, Low: low, High: high}
}

// NewGt compiles to [v, max(Kind)], inclusive of v itself — matching
// §4.4's table (Gt(K): from-value=K.value, from-row=uuid-nil) and the
// source's Query::into_range, which starts the range at K.value's own
// row-nil key rather than its successor.
func NewGt(column string, v dbvalue.Value) Query {
	return Query{Column: column, Kind: Gt, Value: v}
}

// NewLt compiles to [min(Kind), v], inclusive of v itself — matching
// §4.4's table (Lt(K): to-value=K.value, to-row=uuid-max).
func NewLt(column string, v dbvalue.Value) Query {
	return Query{Column: column, Kind: Lt, Value: v}
}

// NewWantAll compiles to [min(Kind), max(Kind)], i.e. every entry for
// the column regardless of value. For a float column the bounds are
// -Inf and +Inf; NaN entries encode outside them and are not included.
func NewWantAll(column string, kindProbe dbvalue.Value) Query {
	return Query{Column: column, Kind: WantAll, Value: kindProbe}
}

// Range is a half-open byte range: [From, To).
type Range struct {
	From []byte
	To   []byte
}

// Compile renders q into a byte Range scoped to tenant/table/field,
// following the into_range table of §4.4 field-for-field: every shape
// reduces to a (from-value, from-row) / (to-value, to-row) pair, where
// from-row is always uuid-nil and to-row is always uuid-max (the
// smallest and largest possible row-id suffix for that value), so the
// logical range is inclusive on both ends at the value layer:
//
//	Equal(v)      -> (v, nil)     .. (v, max)
//	Between(l,h)  -> (l, nil)     .. (h, max)
//	Gt(v)         -> (v, nil)     .. (max(Kind), max)
//	Lt(v)         -> (min(Kind), nil) .. (v, max)
//	WantAll       -> (min(Kind), nil) .. (max(Kind), max)
//
// kv.Tx.GetRange is always half-open, so the upper endpoint is
// rendered as successor(prefix+enc(to-value)+to-row) to turn the
// table's inclusive upper bound into an exclusive one. field is the
// column's stable 16-bit field number (§4.1's COL), resolved from
// q.Column against a schema (record.Schema.FieldNumber) by the caller
// — Compile itself only knows bytes, not schemas.
func Compile(tenant key.Tenant, table string, field uint16, q Query) (Range, error) {
	k := key.New(tenant, table, key.PurposeIndex, key.RowNil)
	prefix, err := k.Prefix()
	if err != nil {
		return Range{}, err
	}
	prefix = appendFieldNumber(prefix, field)

	switch q.Kind {
	case Equal:
		from := endpoint(prefix, q.Value, key.RowNil)
		to := endpoint(prefix, q.Value, key.RowMax)
		return Range{From: from, To: successor(to)}, nil
	case Between:
		if q.Low.Kind != q.High.Kind {
			return Range{}, dberr.ErrUnequalColumns
		}
		from := endpoint(prefix, q.Low, key.RowNil)
		to := endpoint(prefix, q.High, key.RowMax)
		return Range{From: from, To: successor(to)}, nil
	case Gt:
		_, max := dbvalue.Bounds(q.Value)
		from := endpoint(prefix, q.Value, key.RowNil)
		to := endpoint(prefix, max, key.RowMax)
		return Range{From: from, To: successor(to)}, nil
	case Lt:
		min, _ := dbvalue.Bounds(q.Value)
		from := endpoint(prefix, min, key.RowNil)
		to := endpoint(prefix, q.Value, key.RowMax)
		return Range{From: from, To: successor(to)}, nil
	case WantAll:
		min, max := dbvalue.Bounds(q.Value)
		from := endpoint(prefix, min, key.RowNil)
		to := endpoint(prefix, max, key.RowMax)
		return Range{From: from, To: successor(to)}, nil
	default:
		return Range{}, dberr.ErrIndexKeyError
	}
}

// endpoint renders one (value, row) scan bound: prefix followed by
// value's order-preserving encoding and the row id that terminates
// it, the same shape a concrete IndexKey has.
func endpoint(prefix []byte, value dbvalue.Value, row uuid.UUID) []byte {
	out := key.AppendIndexable(append([]byte(nil), prefix...), value)
	return append(out, row[:]...)
}

// IndexKey renders the concrete key a single (field, value) index
// entry for row is stored under: the same tenant/table/Index prefix
// and field number Compile scopes a scan to, followed by the
// order-preserving encoding of value and the row id it points at.
// This is what txn.Put/Clear write and clear directly, as opposed to
// the range endpoints Compile produces for a scan.
func IndexKey(tenant key.Tenant, table string, field uint16, value dbvalue.Value, row uuid.UUID) ([]byte, error) {
	k := key.New(tenant, table, key.PurposeIndex, key.RowNil)
	prefix, err := k.Prefix()
	if err != nil {
		return nil, err
	}
	prefix = appendFieldNumber(prefix, field)
	out := key.AppendIndexable(prefix, value)
	out = append(out, row[:]...)
	return out, nil
}

// appendFieldNumber appends field's big-endian 2-byte encoding to
// dst, the COL component of §4.1's Index PAYLOAD grammar.
func appendFieldNumber(dst []byte, field uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], field)
	return append(dst, b[:]...)
}

// successor returns the lexicographically smallest byte string that
// sorts strictly after b and after every string that has b as a
// prefix: b with its trailing 0xff bytes trimmed and the last
// remaining byte incremented. badger (and every other
// ordered KVS in the pack) has no native "inclusive upper bound"
// range option, so every inclusive bound in the table above is
// rendered by taking the successor of the encoded value instead.
func successor(b []byte) []byte {
	out := append([]byte(nil), b...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xff {
			out[i]++
			return out[:i+1]
		}
	}
	// b was all 0xff: no key sorts after every extension of b, so
	// return b followed by one more 0xff, which sorts after b itself.
	return append(out, 0xff)
}
