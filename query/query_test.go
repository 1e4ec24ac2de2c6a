// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"bytes"
	"testing"

	"github.com/solidcoredata/exotherm/dbvalue"
	"github.com/solidcoredata/exotherm/key"
)

func TestCompileEqualRangeIsNonEmpty(t *testing.T) {
	tenant := key.NamedTenant("acme")
	r, err := Compile(tenant, "person", 0, NewEqual("name", dbvalue.StringValue("ada")))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Compare(r.From, r.To) >= 0 {
		t.Fatalf("Equal range must be non-empty: from=%x to=%x", r.From, r.To)
	}
}

func TestCompileBetweenRejectsMismatchedKinds(t *testing.T) {
	tenant := key.NamedTenant("acme")
	q := NewBetween("age", dbvalue.Int64Value(1), dbvalue.StringValue("oops"))
	if _, err := Compile(tenant, "person", 1, q); err == nil {
		t.Fatal("Between with mismatched kinds must fail to compile")
	}
}

func TestCompileWantAllSpansEntireColumn(t *testing.T) {
	tenant := key.NamedTenant("acme")
	r, err := Compile(tenant, "person", 1, NewWantAll("age", dbvalue.Int64Value(0)))
	if err != nil {
		t.Fatal(err)
	}
	low, err := Compile(tenant, "person", 1, NewEqual("age", dbvalue.Int64Value(-1000)))
	if err != nil {
		t.Fatal(err)
	}
	high, err := Compile(tenant, "person", 1, NewEqual("age", dbvalue.Int64Value(1000)))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Compare(r.From, low.From) > 0 {
		t.Fatal("WantAll lower bound must not exceed a representative low value")
	}
	if bytes.Compare(r.To, high.From) < 0 {
		t.Fatal("WantAll upper bound must cover a representative high value")
	}
}

func TestCompileGtIncludesTheBoundValue(t *testing.T) {
	tenant := key.NamedTenant("acme")
	eq, err := Compile(tenant, "person", 1, NewEqual("age", dbvalue.Int64Value(5)))
	if err != nil {
		t.Fatal(err)
	}
	gt, err := Compile(tenant, "person", 1, NewGt("age", dbvalue.Int64Value(5)))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Compare(gt.From, eq.From) != 0 {
		t.Fatal("Gt(5) must start at the same (value, row-nil) key as Equal(5), per §4.4's table")
	}
	if bytes.Compare(gt.To, eq.To) <= 0 {
		t.Fatal("Gt(5) must extend past Equal(5)'s upper bound")
	}
}

func TestCompileLtIncludesTheBoundValue(t *testing.T) {
	tenant := key.NamedTenant("acme")
	eq, err := Compile(tenant, "person", 1, NewEqual("age", dbvalue.Int64Value(5)))
	if err != nil {
		t.Fatal(err)
	}
	lt, err := Compile(tenant, "person", 1, NewLt("age", dbvalue.Int64Value(5)))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Compare(lt.To, eq.To) != 0 {
		t.Fatal("Lt(5) must stop at the same successor(value, row-max) key as Equal(5), per §4.4's table")
	}
	if bytes.Compare(lt.From, eq.From) >= 0 {
		t.Fatal("Lt(5) must start strictly before Equal(5)'s lower bound")
	}
}

func TestCursorAdvanceNeverRescansLastKey(t *testing.T) {
	tenant := key.NamedTenant("acme")
	r, err := Compile(tenant, "person", 1, NewWantAll("age", dbvalue.Int64Value(0)))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCursor(r, false)
	lastKey := append([]byte(nil), c.From...)
	lastKey = append(lastKey, 0x01)
	next := c.Advance(lastKey)
	if bytes.Compare(next.From, lastKey) <= 0 {
		t.Fatal("Advance must move strictly past the last key read")
	}
}
