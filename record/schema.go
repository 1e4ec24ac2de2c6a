// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record describes how a Go struct maps onto a corpus row:
// a fixed, numbered list of DbValue-typed fields, some of which are
// also indexed. The source generates this mapping with a schema!
// macro expanding into corpus()/indices()/deserialize() methods on a
// RecordStruct; Go has no such macro, so a Schema is built once at
// init time from plain field descriptors and reused by reflection-free
// generic code (the alternative the base spec's §9 explicitly
// sanctions for a from-scratch Go port).
package record

import (
	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
)

// FieldDescriptor names one corpus column: its field number (§3's
// "analogous to protobuf tag numbers ... stable across schema
// evolution" — the Rust source's "0 -> name", "1 -> password"
// numbering generalized to allow gaps), and whether it participates in
// a secondary index. Nullability is not recorded here; the schema's
// FromCorpus conversion decides whether a None slot is accepted.
//
// Position need not be contiguous or start at 0: a field retired from
// a later schema version leaves its number unused rather than
// renumbering its neighbors, exactly so old corpus rows referencing
// it by number stay meaningful.
type FieldDescriptor struct {
	Name     string
	Position int
	Indexed  bool
}

// Schema binds a Go type T to a table name and a fixed corpus layout.
// ToCorpus/FromCorpus round-trip a T through the padded DbValue vector
// that record/corpus.go serializes, indexed by field number rather
// than declaration order; RowID extracts the row's identifying uuid.
type Schema[T any] struct {
	Table      string
	Fields     []FieldDescriptor
	ToCorpus   func(T) []dbvalue.Value
	FromCorpus func([]dbvalue.Value) (T, error)
	RowID      func(T) uuid.UUID

	width int
}

// NewSchema validates and constructs a Schema. Field positions must
// be non-negative and unique, but — per §3's protobuf-tag-number
// analogy — need not be contiguous: a schema with fields at positions
// 0 and 5 is valid, and its corpus vector pads positions 1-4 with
// None. ToCorpus/FromCorpus/RowID must be non-nil.
func NewSchema[T any](
	table string,
	fields []FieldDescriptor,
	toCorpus func(T) []dbvalue.Value,
	fromCorpus func([]dbvalue.Value) (T, error),
	rowID func(T) uuid.UUID,
) *Schema[T] {
	seen := make(map[int]bool, len(fields))
	width := 0
	for _, f := range fields {
		if f.Position < 0 {
			panic("record: field " + f.Name + " has a negative position for " + table)
		}
		if seen[f.Position] {
			panic("record: duplicate field position in schema for " + table)
		}
		seen[f.Position] = true
		if f.Position+1 > width {
			width = f.Position + 1
		}
	}
	return &Schema[T]{
		Table:      table,
		Fields:     fields,
		ToCorpus:   toCorpus,
		FromCorpus: fromCorpus,
		RowID:      rowID,
		width:      width,
	}
}

// Width returns the length of the padded corpus vector this schema's
// fields span: one more than the highest declared field number, not
// len(s.Fields). EncodeCorpus/DecodeCorpus operate over vectors of
// this length so a gap left by a retired field number decodes as
// None instead of misaligning every field after it.
func (s *Schema[T]) Width() int {
	return s.width
}

// IndexedFields returns the subset of s.Fields that participate in a
// secondary index, in declaration order.
func (s *Schema[T]) IndexedFields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Indexed {
			out = append(out, f)
		}
	}
	return out
}

// IndexValues returns the field-number->value pairs for every indexed
// field of row, computed from the same ToCorpus vector that's written
// to the corpus key. This is what index.Compute diffs between an old
// and new row version; the field number is the same 16-bit id §4.1
// embeds as an index key's COL component.
func (s *Schema[T]) IndexValues(row T) map[uint16]dbvalue.Value {
	vals := s.ToCorpus(row)
	out := make(map[uint16]dbvalue.Value, len(s.Fields))
	for _, f := range s.Fields {
		if f.Indexed {
			out[uint16(f.Position)] = vals[f.Position]
		}
	}
	return out
}

// FieldNumber resolves an indexed field's name to its stable 16-bit
// field number, the column id a query.Query's Column name must be
// translated to before query.Compile can render an index key byte
// range. It fails if name doesn't name a declared, indexed field.
func (s *Schema[T]) FieldNumber(name string) (uint16, bool) {
	for _, f := range s.Fields {
		if f.Name == name && f.Indexed {
			return uint16(f.Position), true
		}
	}
	return 0, false
}
