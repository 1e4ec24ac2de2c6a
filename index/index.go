// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index computes the set of index-key writes and clears a
// corpus update must perform so that every secondary index stays in
// sync with the corpus row it's derived from. The source leaves this
// diff implicit and, per the base spec's resolved §9 question, buggy
// (an update blind-writes the new index entries without clearing the
// stale ones); txn.Put always reads the old row first and Compute
// diffs its column values against the new ones, so an update never
// leaves a stale index entry behind.
package index

import (
	"github.com/solidcoredata/exotherm/dbvalue"
)

// Diff is one index-column write the facade must perform atomically
// alongside a corpus row update: clear the entry for the old value (if
// the field was previously indexed and its value changed) and set the
// entry for the new value. FieldNumber is the column id embedded in
// the index key (§4.1's COL(2, big-endian)), the same 16-bit number
// used as the field's position in the corpus vector.
type Diff struct {
	FieldNumber uint16
	OldValue    dbvalue.Value
	NewValue    dbvalue.Value
	Clear       bool
	Set         bool
}

// Compute diffs the old and new per-field-number indexed values of a
// row and returns only the Diffs that require a write: a field whose
// value didn't change needs neither a Clear nor a Set. old is nil for
// a brand-new row (every indexed field only needs a Set); new is nil
// for a deleted row (every previously-indexed field only needs a
// Clear).
func Compute(old, new map[uint16]dbvalue.Value) []Diff {
	seen := make(map[uint16]bool, len(old)+len(new))
	var diffs []Diff
	for col := range old {
		seen[col] = true
	}
	for col := range new {
		seen[col] = true
	}
	for col := range seen {
		oldVal, hadOld := old[col]
		newVal, hasNew := new[col]
		switch {
		case hadOld && hasNew:
			if !valuesEqual(oldVal, newVal) {
				diffs = append(diffs, Diff{FieldNumber: col, OldValue: oldVal, NewValue: newVal, Clear: true, Set: true})
			}
		case hadOld && !hasNew:
			diffs = append(diffs, Diff{FieldNumber: col, OldValue: oldVal, Clear: true})
		case !hadOld && hasNew:
			diffs = append(diffs, Diff{FieldNumber: col, NewValue: newVal, Set: true})
		}
	}
	return diffs
}

func valuesEqual(a, b dbvalue.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case dbvalue.KindNone:
		return true
	case dbvalue.KindBool:
		return a.Bool == b.Bool
	case dbvalue.KindInt32:
		return a.I32 == b.I32
	case dbvalue.KindInt64:
		return a.I64 == b.I64
	case dbvalue.KindUInt32:
		return a.U32 == b.U32
	case dbvalue.KindUInt64:
		return a.U64 == b.U64
	case dbvalue.KindFloat32:
		return a.F32 == b.F32
	case dbvalue.KindFloat64:
		return a.F64 == b.F64
	case dbvalue.KindString:
		return a.Str == b.Str
	case dbvalue.KindUUID:
		return a.UUID == b.UUID
	default:
		return false
	}
}
