// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the demo binary's tenant name and on-disk data
// directory from flags, the same flag.String-based idiom the teacher
// used for its own (doubly-defined) config.Run stub.
package config

import "flag"

// Config names the tenant the demo scenario runs under and where its
// badger data directory lives.
type Config struct {
	Tenant string
	Data   string
}

// Parse reads the process's command-line flags into a Config. An
// empty Data directory means an in-memory, throwaway database — the
// default, since cmd/exothermd is a demo, not a long-lived service.
func Parse() Config {
	tenant := flag.String("tenant", "acme", "tenant name to run the demo scenario under")
	data := flag.String("data", "", "badger data directory (empty for in-memory)")
	flag.Parse()
	return Config{Tenant: *tenant, Data: *data}
}
