// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

// Cursor is a resumable continuation over a Range scan: the remaining
// sub-range still to be read, plus the direction it's being read in.
// It plays the role the source's PageResult.next/RangeOption.next_range
// pairing plays over a FoundationDB range read: a caller that stopped
// after a page limit gets one back and passes it to the next call
// instead of Range.
type Cursor struct {
	From    []byte
	To      []byte
	Reverse bool
	done    bool
}

// Done reports whether the scan this cursor continues has been fully
// consumed.
func (c Cursor) Done() bool { return c.done || len(c.From) >= len(c.To) && c.To != nil && string(c.From) >= string(c.To) }

// NewCursor starts a cursor over the full compiled range, scanning in
// ascending key order if reverse is false or descending order
// (starting just below To) if reverse is true — §4.5's
// query_index(query, reverse).
func NewCursor(r Range, reverse bool) Cursor {
	return Cursor{From: r.From, To: r.To, Reverse: reverse}
}

// Advance returns the cursor to resume scanning after lastKey, the
// last key consumed in the page just read. Scanning forward, it's the
// source's opt.next_range(&range): the next page starts strictly
// after the last (highest) key seen. Scanning in reverse, the last
// key seen is the lowest key read so far, so the next page's
// exclusive upper bound is pulled down to it instead.
func (c Cursor) Advance(lastKey []byte) Cursor {
	if c.Reverse {
		return Cursor{From: c.From, To: lastKey, Reverse: true}
	}
	return Cursor{From: successor(lastKey), To: c.To}
}

// Exhausted marks a cursor as fully drained: a scan that returned
// fewer rows than the page limit has nothing left to read.
func Exhausted() Cursor {
	return Cursor{done: true}
}
