// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the HTTP query interface of metachaind
//
// all replies are JSON:
//
//   GET /v1/history/{id}[?records=true]  every version of a record, newest first
//   GET /v1/anchor/{id}                  the currently published identifier
//   GET /v1/details                      server status (restricted by allow list)
//
// a history request that fails part way still returns the versions
// read before the failure together with the error
package rpc
