// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

// BundleStore - local content addressed store
type BundleStore struct {
	d *Database
}

// Bundles - the bundle pool as a gateway.Store
func (d *Database) Bundles() *BundleStore {
	return &BundleStore{d: d}
}

// Put - store data under its CIDv0, a second put of the same bytes
// is a no-op
func (s *BundleStore) Put(ctx context.Context, data []byte) (cid.CID, error) {
	if err := ctx.Err(); nil != err {
		return "", err
	}

	id, err := cid.Sum(data)
	if nil != err {
		return "", err
	}

	pool := s.d.pool.Bundles
	key := []byte(id)

	found, err := pool.Has(key)
	if nil != err {
		return "", err
	}
	if found {
		s.d.log.Debugf("bundle exists: %s", id)
		return id, nil
	}

	if err := pool.Put(key, data); nil != err {
		return "", err
	}
	s.d.log.Debugf("bundle stored: %s  %d bytes", id, len(data))
	return id, nil
}

// Get - the bytes stored under id
func (s *BundleStore) Get(ctx context.Context, id cid.CID) ([]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	value, err := s.d.pool.Bundles.Get([]byte(id))
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.ErrNotFound
	}

	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}

// ResolveURI - gateway address of id
func (s *BundleStore) ResolveURI(id cid.CID) string {
	return id.Locator(s.d.gateway)
}
