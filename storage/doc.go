// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk bundle and anchor store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = logical record id as big endian uint64 (8 bytes)
// 4. cid          = content identifier text (CIDv0 for locally summed bundles)
//
// Bundles:
//
//   B ++ cid                   - canonical bundle bytes
//
// Anchors:
//
//   A ++ id                    - current published cid for the record id
//                                data: cid text
package storage
