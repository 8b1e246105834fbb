// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - anchors held by a token contract on an EVM chain
//
// The contract exposes the usual metadata calls:
//
//   tokenURI(uint256) view returns (string)
//   baseURI() view returns (string)
//   setBaseURI(string)
//
// An anchor is read from the token URI of the record id.  Setting an
// anchor replaces the base URI, which moves every token of the
// collection to the new bundle at once.
package ledger
