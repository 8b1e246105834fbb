// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package objectstore - bundle store on an S3 compatible IPFS pinning
// service
//
// Bundles are uploaded to a bucket (Filebase by default) and the
// service reports the content identifier it assigned in the "cid"
// user metadata of the object.  Reads go through a public IPFS HTTP
// gateway and are cached, since the bytes behind an identifier never
// change.
package objectstore
