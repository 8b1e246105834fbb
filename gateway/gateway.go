// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway - the collaborators that hold bundles and anchors
//
// Store persists immutable bundles by content identifier.  Anchor
// holds the current identifier published for each logical record id.
// Implementations live in storage (local LevelDB), objectstore
// (S3 upload + IPFS gateway) and ledger (contract on an EVM chain).
package gateway

import (
	"context"

	"github.com/bitmark-inc/metachain/cid"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway.go -package=mocks

// Store - content addressed bundle storage
type Store interface {
	// Put - persist data and return its identifier; identical data
	// always gives the same identifier and no second copy
	Put(ctx context.Context, data []byte) (cid.CID, error)

	// Get - the bytes stored under id, fault.ErrNotFound if unknown
	Get(ctx context.Context, id cid.CID) ([]byte, error)

	// ResolveURI - a dereferenceable address for id
	ResolveURI(id cid.CID) string
}

// Anchor - the published pointer of each logical record
type Anchor interface {
	// GetAnchor - current identifier for id, fault.ErrAnchorNotFound
	// if none was published
	GetAnchor(ctx context.Context, id uint64) (cid.CID, error)

	// SetAnchor - publish a new identifier for id
	SetAnchor(ctx context.Context, id uint64, c cid.CID) error
}
