// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - chained metadata records
//
// A record is one version of a logical item.  The Prior field is the
// hash pointer: it is Root when the record was created and afterwards
// holds the identifier of the bundle that contained the previous
// version.
//
// JSON layout (field order is fixed):
//
//   {
//     "id": 3,
//     "description": "...",
//     "image": "https://...",
//     "creation_date": 1733011200000,
//     "attributes": { "carbon_offset": 512, "legado_user": "..." },
//     "last_record_hash": "0" | "ipfs://<cid>"
//   }
package record
