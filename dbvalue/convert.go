// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbvalue

import (
	"fmt"

	"github.com/google/uuid"
)

// ConversionError is returned by the ToXxx/ToOptionalXxx helpers when
// a Value's Kind doesn't match the Go type being asked for. It lives
// here rather than in dberr so that dberr never needs to import
// dbvalue (and dbvalue never needs to import dberr), avoiding a cycle
// between the two packages.
type ConversionError struct {
	Want Kind
	From Value
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("exotherm: cannot convert %s value to %s", e.From.Kind, e.Want)
}

func wrongKind(want Kind, from Value) error {
	return &ConversionError{Want: want, From: from}
}

// ToBool converts v to bool, or fails if v isn't KindBool.
func ToBool(v Value) (bool, error) {
	if v.Kind != KindBool {
		return false, wrongKind(KindBool, v)
	}
	return v.Bool, nil
}

// ToOptionalBool implements the Option<T> conversion rule of §4.2:
// None maps to (nil, nil), a matching Kind maps to (&value, nil), and
// anything else is a ConversionError.
func ToOptionalBool(v Value) (*bool, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	b, err := ToBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func ToInt32(v Value) (int32, error) {
	if v.Kind != KindInt32 {
		return 0, wrongKind(KindInt32, v)
	}
	return v.I32, nil
}

func ToOptionalInt32(v Value) (*int32, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	i, err := ToInt32(v)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func ToInt64(v Value) (int64, error) {
	if v.Kind != KindInt64 {
		return 0, wrongKind(KindInt64, v)
	}
	return v.I64, nil
}

func ToOptionalInt64(v Value) (*int64, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	i, err := ToInt64(v)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func ToUInt32(v Value) (uint32, error) {
	if v.Kind != KindUInt32 {
		return 0, wrongKind(KindUInt32, v)
	}
	return v.U32, nil
}

func ToOptionalUInt32(v Value) (*uint32, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	u, err := ToUInt32(v)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ToUInt64(v Value) (uint64, error) {
	if v.Kind != KindUInt64 {
		return 0, wrongKind(KindUInt64, v)
	}
	return v.U64, nil
}

func ToOptionalUInt64(v Value) (*uint64, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	u, err := ToUInt64(v)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ToFloat32(v Value) (float32, error) {
	if v.Kind != KindFloat32 {
		return 0, wrongKind(KindFloat32, v)
	}
	return v.F32, nil
}

func ToOptionalFloat32(v Value) (*float32, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	f, err := ToFloat32(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func ToFloat64(v Value) (float64, error) {
	if v.Kind != KindFloat64 {
		return 0, wrongKind(KindFloat64, v)
	}
	return v.F64, nil
}

func ToOptionalFloat64(v Value) (*float64, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	f, err := ToFloat64(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func ToString(v Value) (string, error) {
	if v.Kind != KindString {
		return "", wrongKind(KindString, v)
	}
	return v.Str, nil
}

func ToOptionalString(v Value) (*string, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	s, err := ToString(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ToBlob(v Value) ([]byte, error) {
	if v.Kind != KindBlob {
		return nil, wrongKind(KindBlob, v)
	}
	return v.Blob, nil
}

func ToOptionalBlob(v Value) ([]byte, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	return ToBlob(v)
}

func ToVector(v Value) ([]float32, error) {
	if v.Kind != KindVector {
		return nil, wrongKind(KindVector, v)
	}
	return v.Vec, nil
}

func ToOptionalVector(v Value) ([]float32, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	return ToVector(v)
}

func ToUUID(v Value) (uuid.UUID, error) {
	if v.Kind != KindUUID {
		return uuid.Nil, wrongKind(KindUUID, v)
	}
	return v.UUID, nil
}

func ToOptionalUUID(v Value) (*uuid.UUID, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	id, err := ToUUID(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func ToEnumOrdinal(v Value) (int32, error) {
	if v.Kind != KindEnumOrdinal {
		return 0, wrongKind(KindEnumOrdinal, v)
	}
	return v.Enum, nil
}

func ToOptionalEnumOrdinal(v Value) (*int32, error) {
	if v.Kind == KindNone {
		return nil, nil
	}
	e, err := ToEnumOrdinal(v)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
