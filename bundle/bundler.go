// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/record"
)

// Bundler - packs records and persists them through a store
type Bundler struct {
	log   *logger.L
	store gateway.Store
}

// New - create a bundler writing to store
func New(log *logger.L, store gateway.Store) *Bundler {
	return &Bundler{
		log:   log,
		store: store,
	}
}

// Pack - encode records and files, persist them and return the
// addressed bundle
func (b *Bundler) Pack(ctx context.Context, records []record.Record, files map[string][]byte) (*Bundle, error) {
	data, err := Encode(records, files)
	if nil != err {
		return nil, err
	}

	id, err := b.store.Put(ctx, data)
	if nil != err {
		b.log.Errorf("put: %d records  error: %s", len(records), err)
		return nil, err
	}

	b.log.Infof("packed: %d records  %d files  %d bytes  cid: %s", len(records), len(files), len(data), id)

	// return the decoded form so the caller sees sorted copies
	bundle, err := Decode(data)
	if nil != err {
		return nil, err
	}
	bundle.CID = id
	return bundle, nil
}

// Fetch - read and decode the bundle stored under id
func Fetch(ctx context.Context, store gateway.Store, id cid.CID) (*Bundle, error) {
	data, err := store.Get(ctx, id)
	if nil != err {
		return nil, err
	}
	bundle, err := Decode(data)
	if nil != err {
		return nil, err
	}
	bundle.CID = id
	return bundle, nil
}
