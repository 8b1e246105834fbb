// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cid - content identifiers for stored bundles
//
// A CID is opaque to the rest of the system; only the store that
// produced it and the URI rewrite here interpret it.
//
// Forms accepted:
//
//   Qm...              - CIDv0, base58btc of a sha2-256 multihash
//   b...               - CIDv1, lower case base32 multibase
//   ipfs://<cid>[/p]   - URI form, the path is discarded
//   http(s)://host/ipfs/<cid>[/p]
//                      - gateway form, the path is discarded
package cid
