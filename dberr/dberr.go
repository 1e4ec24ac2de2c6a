// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dberr names the error kinds the record layer surfaces to
// callers, mirroring the taxonomy of a storage error enum (the
// teacher's counterpart, the exotherm source's thiserror-derived
// DbError/ExothermError, names the same kinds: FoundationDb,
// Retryable, NonRetryable, PayloadMissing...). Go has no derive macro
// for this, so each kind is its own sentinel or small struct type and
// composes with errors.Is/errors.As instead.
package dberr

import (
	"errors"
	"fmt"
)

// ErrTenantUnset is returned by Key.Generate when the tenant is the
// unset sentinel: tenancy is mandatory for any key materialization.
var ErrTenantUnset = errors.New("exotherm: tenant is unset")

// ErrIndexKeyError is returned when a query names a column that is not
// a declared, indexed field of the schema, or has an unknown query Kind.
var ErrIndexKeyError = errors.New("exotherm: key purpose is not an index")

// ErrUnequalColumns is returned when compiling a Between query whose
// low and high bounds are values of different kinds.
var ErrUnequalColumns = errors.New("exotherm: between query spans two different columns")

// KvsError wraps an error returned by the underlying KVS. Retryable
// mirrors the source's FdbError::is_retryable: the transaction runner
// re-executes the closure for a retryable error and surfaces anything
// else to the caller.
type KvsError struct {
	Err       error
	Retryable bool
}

func (e *KvsError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("exotherm: retryable kvs failure: %v", e.Err)
	}
	return fmt.Sprintf("exotherm: kvs failure: %v", e.Err)
}

func (e *KvsError) Unwrap() error { return e.Err }

// IsRetryable reports whether err (or something it wraps) is a
// KvsError marked retryable.
func IsRetryable(err error) bool {
	var kerr *KvsError
	if errors.As(err, &kerr) {
		return kerr.Retryable
	}
	return false
}

// SerializationError wraps a corpus encode/decode failure.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("exotherm: serialization failure: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// UuidParseError is returned when an index entry's value is not
// exactly 16 bytes, i.e. not a row UUID.
type UuidParseError struct {
	Err error
}

func (e *UuidParseError) Error() string {
	return fmt.Sprintf("exotherm: index value is not a row uuid: %v", e.Err)
}

func (e *UuidParseError) Unwrap() error { return e.Err }
