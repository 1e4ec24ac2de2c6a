// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key builds the ordered byte keys every row, index entry,
// and blob shard is stored under. It is the Go counterpart of the
// source's Key/Tenant/Purpose trio (database/key.rs): a tenant-scoped,
// slash-free, order-preserving grammar of
//
//	MAGIC TENANT 0x00 TABLE 0x00 PURPOSE 0x00 ROW_ID(16)
//
// Index keys (query.IndexKey) keep the same prefix up to and including
// the 0x00 after PURPOSE, then carry the 2-byte big-endian field
// number, the order-preserving encoding of the indexed value, and the
// row id it points at.
package key

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dberr"
)

// Magic is the leading byte of every generated key, isolating this
// keyspace from anything else sharing the same backing store.
const Magic byte = 0x63

// sep is the single-byte separator between key segments. Table and
// tenant names must not contain it.
const sep byte = 0x00

// Purpose tags what a key identifies: a corpus row, an index entry,
// or a blob shard.
type Purpose byte

const (
	PurposeRow Purpose = iota + 1
	PurposeIndex
	PurposeBlob
)

// Tenant names the tenant a key belongs to. The zero value is
// Unset and must never be materialized into a key.
type Tenant struct {
	kind tenantKind
	name string
	id   uuid.UUID
}

type tenantKind uint8

const (
	tenantUnset tenantKind = iota
	tenantNamed
	tenantID
)

// UnsetTenant is the zero Tenant value; Generate rejects it.
func UnsetTenant() Tenant { return Tenant{kind: tenantUnset} }

// NamedTenant addresses a tenant by a short human-readable name.
func NamedTenant(name string) Tenant { return Tenant{kind: tenantNamed, name: name} }

// IDTenant addresses a tenant by a stable uuid.
func IDTenant(id uuid.UUID) Tenant { return Tenant{kind: tenantID, id: id} }

func (t Tenant) bytes() []byte {
	switch t.kind {
	case tenantNamed:
		return []byte(t.name)
	case tenantID:
		b := t.id
		return b[:]
	default:
		return nil
	}
}

func (t Tenant) isUnset() bool { return t.kind == tenantUnset }

// RowNil is the smallest possible row id, used as a range's lower
// sentinel.
var RowNil = uuid.Nil

// RowMax is the largest possible row id, used as a range's upper
// sentinel.
var RowMax = uuid.UUID{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Key names one addressable location in the keyspace: a tenant, a
// table, a purpose, and a row id. Index keys carry their indexed
// field number and value separately (see query.Compile/query.IndexKey);
// Key itself only knows how to generate the row-identifying prefix.
type Key struct {
	Tenant  Tenant
	Table   string
	Purpose Purpose
	Row     uuid.UUID
}

// New builds a Key. Row may be RowNil/RowMax when the key is only
// going to be used as a scan bound.
func New(tenant Tenant, table string, purpose Purpose, row uuid.UUID) Key {
	return Key{Tenant: tenant, Table: table, Purpose: purpose, Row: row}
}

// WithTenant returns a copy of k addressed at a different tenant,
// mirroring the source's pattern of stamping a tenant onto a
// otherwise-complete key just before it's sent to the KVS.
func (k Key) WithTenant(t Tenant) Key {
	k.Tenant = t
	return k
}

// Generate renders k into its ordered byte-string form. It fails if
// the tenant is Unset; tenancy is mandatory for every materialized
// key (§4.1).
func (k Key) Generate() ([]byte, error) {
	if k.Tenant.isUnset() {
		return nil, dberr.ErrTenantUnset
	}
	var buf bytes.Buffer
	buf.WriteByte(Magic)
	buf.Write(k.Tenant.bytes())
	buf.WriteByte(sep)
	buf.WriteString(k.Table)
	buf.WriteByte(sep)
	buf.WriteByte(byte(k.Purpose))
	buf.WriteByte(sep)
	row := k.Row
	buf.Write(row[:])
	return buf.Bytes(), nil
}

// Prefix renders the tenant+table+purpose portion of k without a row
// id, i.e. the common prefix of every key for that (tenant, table,
// purpose) triple. It's the basis of every index range scan in this
// module; blob shard scans use the blob package's own raw keys.
func (k Key) Prefix() ([]byte, error) {
	if k.Tenant.isUnset() {
		return nil, dberr.ErrTenantUnset
	}
	var buf bytes.Buffer
	buf.WriteByte(Magic)
	buf.Write(k.Tenant.bytes())
	buf.WriteByte(sep)
	buf.WriteString(k.Table)
	buf.WriteByte(sep)
	buf.WriteByte(byte(k.Purpose))
	buf.WriteByte(sep)
	return buf.Bytes(), nil
}
