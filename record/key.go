// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/key"
)

// CorpusKey returns the PurposeRow key the row named by id is stored
// under.
func (s *Schema[T]) CorpusKey(tenant key.Tenant, id uuid.UUID) key.Key {
	return key.New(tenant, s.Table, key.PurposeRow, id)
}
