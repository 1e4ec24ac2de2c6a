// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbvalue

import (
	"errors"
	"testing"
)

func TestOptionalConversionRules(t *testing.T) {
	if s, err := ToOptionalString(None()); err != nil || s != nil {
		t.Fatalf("None -> ToOptionalString want (nil, nil), got (%v, %v)", s, err)
	}
	want := "hello"
	s, err := ToOptionalString(StringValue(want))
	if err != nil || s == nil || *s != want {
		t.Fatalf("StringValue(%q) -> ToOptionalString want (&%q, nil), got (%v, %v)", want, want, s, err)
	}
	if _, err := ToOptionalString(Int64Value(1)); err == nil {
		t.Fatal("mismatched kind must fail conversion, even for Optional variants")
	}
}

func TestConversionErrorNamesBothKinds(t *testing.T) {
	_, err := ToInt64(StringValue("x"))
	if err == nil {
		t.Fatal("expected a ConversionError")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected *ConversionError, got %T", err)
	}
	if convErr.Want != KindInt64 || convErr.From.Kind != KindString {
		t.Fatalf("ConversionError fields = %v/%v, want Int64/String", convErr.Want, convErr.From.Kind)
	}
}
