// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"testing"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
)

type widget struct {
	ID   uuid.UUID
	Name string
	SKU  int64
}

// widgetSchema leaves position 1 unused, as if an earlier field
// retired there rather than forcing every later field to renumber.
var widgetSchema = NewSchema[widget](
	"widget",
	[]FieldDescriptor{
		{Name: "name", Position: 0, Indexed: true},
		{Name: "sku", Position: 5, Indexed: true},
	},
	func(w widget) []dbvalue.Value {
		vals := make([]dbvalue.Value, 6)
		vals[0] = dbvalue.StringValue(w.Name)
		vals[5] = dbvalue.Int64Value(w.SKU)
		return vals
	},
	func(vals []dbvalue.Value) (widget, error) {
		name, err := dbvalue.ToString(vals[0])
		if err != nil {
			return widget{}, err
		}
		sku, err := dbvalue.ToInt64(vals[5])
		if err != nil {
			return widget{}, err
		}
		return widget{Name: name, SKU: sku}, nil
	},
	func(w widget) uuid.UUID { return w.ID },
)

func TestNewSchemaAllowsSparseFieldNumbers(t *testing.T) {
	if widgetSchema.Width() != 6 {
		t.Fatalf("Width() = %d, want 6", widgetSchema.Width())
	}
}

func TestNewSchemaPanicsOnDuplicatePosition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate field position")
		}
	}()
	NewSchema[widget](
		"widget",
		[]FieldDescriptor{
			{Name: "name", Position: 0},
			{Name: "other", Position: 0},
		},
		func(widget) []dbvalue.Value { return nil },
		func([]dbvalue.Value) (widget, error) { return widget{}, nil },
		func(w widget) uuid.UUID { return w.ID },
	)
}

func TestSchemaIndexValuesUsesFieldNumberNotDeclarationOrder(t *testing.T) {
	w := widget{ID: uuid.New(), Name: "bolt", SKU: 42}
	idx := widgetSchema.IndexValues(w)
	if len(idx) != 2 {
		t.Fatalf("got %d index values, want 2", len(idx))
	}
	if idx[0].Str != "bolt" {
		t.Fatalf("field 0 = %+v, want bolt", idx[0])
	}
	if idx[5].I64 != 42 {
		t.Fatalf("field 5 = %+v, want 42", idx[5])
	}
}

func TestSchemaFieldNumberResolvesIndexedNames(t *testing.T) {
	n, ok := widgetSchema.FieldNumber("sku")
	if !ok || n != 5 {
		t.Fatalf("FieldNumber(sku) = (%d, %v), want (5, true)", n, ok)
	}
	if _, ok := widgetSchema.FieldNumber("missing"); ok {
		t.Fatal("FieldNumber(missing) must report false")
	}
}
