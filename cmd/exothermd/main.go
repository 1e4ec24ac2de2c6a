// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command exothermd is a thin demo harness: it opens a badger-backed
// store, registers a Person schema with a name index, and runs an
// insert/query/rename/re-query/clear scenario modelled on the source's
// lib.rs test module, logging each step. It does not exercise blob
// storage. It is not a CLI product.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/solidcoredata/exotherm/dbvalue"
	"github.com/solidcoredata/exotherm/internal/config"
	"github.com/solidcoredata/exotherm/internal/start"
	"github.com/solidcoredata/exotherm/key"
	"github.com/solidcoredata/exotherm/kv"
	"github.com/solidcoredata/exotherm/query"
	"github.com/solidcoredata/exotherm/record"
	"github.com/solidcoredata/exotherm/txn"
)

type person struct {
	ID       uuid.UUID
	Name     string
	Password string
}

var personSchema = record.NewSchema[person](
	"person",
	[]record.FieldDescriptor{
		{Name: "name", Position: 0, Indexed: true},
		{Name: "password", Position: 1, Indexed: false},
	},
	func(p person) []dbvalue.Value {
		return []dbvalue.Value{dbvalue.StringValue(p.Name), dbvalue.StringValue(p.Password)}
	},
	func(vals []dbvalue.Value) (person, error) {
		name, err := dbvalue.ToString(vals[0])
		if err != nil {
			return person{}, err
		}
		pw, err := dbvalue.ToString(vals[1])
		if err != nil {
			return person{}, err
		}
		return person{Name: name, Password: pw}, nil
	},
	func(p person) uuid.UUID { return p.ID },
)

func main() {
	cfg := config.Parse()

	store, err := kv.OpenBadger(cfg.Data)
	if err != nil {
		log.Fatalf("exothermd: open store: %v", err)
	}
	handle := txn.Open(store)

	err = start.Start(context.Background(), 5*time.Second, func(ctx context.Context) error {
		return start.RunAll(ctx, func(ctx context.Context) error {
			return runScenario(ctx, handle, cfg.Tenant)
		})
	})
	if closeErr := handle.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		log.Fatalf("exothermd: %v", err)
	}
}

func runScenario(ctx context.Context, handle *txn.Handle, tenantName string) error {
	tenant := key.NamedTenant(tenantName)

	ada := person{ID: uuid.New(), Name: "ada", Password: "s3cr3t"}
	err := handle.Transact(ctx, tenant, func(ctx context.Context, f *txn.Facade) error {
		return txn.Put(ctx, f, personSchema, ada)
	})
	if err != nil {
		return err
	}
	log.Printf("exothermd: inserted %s as %s", ada.Name, ada.ID)

	var page txn.PageResult
	err = handle.Transact(ctx, tenant, func(ctx context.Context, f *txn.Facade) error {
		var qerr error
		page, qerr = txn.QueryIndex(ctx, f, personSchema, query.NewEqual("name", dbvalue.StringValue("ada")), false)
		return qerr
	})
	if err != nil {
		return err
	}
	if len(page.IDs) != 1 || page.IDs[0] != ada.ID {
		return errors.New("exothermd: name index lookup did not find the inserted row")
	}
	log.Printf("exothermd: found %d row(s) for name=ada", len(page.IDs))

	renamed := ada
	renamed.Name = "augusta ada king"
	err = handle.Transact(ctx, tenant, func(ctx context.Context, f *txn.Facade) error {
		return txn.Put(ctx, f, personSchema, renamed)
	})
	if err != nil {
		return err
	}
	log.Printf("exothermd: renamed %s to %s", ada.Name, renamed.Name)

	err = handle.Transact(ctx, tenant, func(ctx context.Context, f *txn.Facade) error {
		var qerr error
		page, qerr = txn.QueryIndex(ctx, f, personSchema, query.NewEqual("name", dbvalue.StringValue("ada")), false)
		return qerr
	})
	if err != nil {
		return err
	}
	if len(page.IDs) != 0 {
		return errors.New("exothermd: stale name index entry survived the rename")
	}
	log.Printf("exothermd: confirmed old name index entry was cleared")

	var cleared bool
	err = handle.Transact(ctx, tenant, func(ctx context.Context, f *txn.Facade) error {
		var cerr error
		cleared, cerr = txn.Clear(ctx, f, personSchema, ada.ID)
		return cerr
	})
	if err != nil {
		return err
	}
	log.Printf("exothermd: cleared row %s: %v", ada.ID, cleared)
	return nil
}
