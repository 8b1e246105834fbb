// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Serve the provenance history of published metadata records
//
//   metachaind --config-file=metachaind.conf
//   metachaind --config-file=metachaind.conf config-test
//   metachaind --config-file=metachaind.conf history 4
//
// a local database is opened read write and locked for the lifetime
// of the daemon; use the anchor and history commands of the daemon
// itself, or a shared store and ledger backend, while it is running
package main
