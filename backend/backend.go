// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package backend - connect the store and anchor selected by the
// configuration
package backend

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/configuration"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/ledger"
	"github.com/bitmark-inc/metachain/objectstore"
	"github.com/bitmark-inc/metachain/storage"
)

// T - an open store and anchor pair
type T struct {
	Store    gateway.Store
	Anchor   gateway.Anchor
	Database *storage.Database // nil unless a local backend is in use

	contract *ledger.Contract
}

// Open - connect the configured backends
//
// readOnly opens the local database without write access
func Open(ctx context.Context, conf *configuration.Configuration, readOnly bool) (*T, error) {
	t := &T{}

	ok := false
	defer func() {
		if !ok {
			t.Close()
		}
	}()

	if configuration.StoreLocal == conf.Store.Backend || configuration.LedgerLocal == conf.Ledger.Backend {
		db, err := storage.Open(logger.New("storage"), conf.Database.Name, readOnly, conf.Store.Gateway)
		if nil != err {
			return nil, err
		}
		t.Database = db
	}

	switch conf.Store.Backend {
	case configuration.StoreLocal:
		t.Store = t.Database.Bundles()
	case configuration.StoreFilebase:
		s, err := objectstore.New(logger.New("objectstore"), conf.Store.Filebase)
		if nil != err {
			return nil, err
		}
		t.Store = s
	default:
		return nil, fault.ErrInvalidBackend
	}

	switch conf.Ledger.Backend {
	case configuration.LedgerLocal:
		t.Anchor = t.Database.Anchors()
	case configuration.LedgerEthereum:
		c, err := ledger.New(ctx, logger.New("ledger"), conf.Ledger.Ethereum)
		if nil != err {
			return nil, err
		}
		t.contract = c
		t.Anchor = c
	default:
		return nil, fault.ErrInvalidBackend
	}

	ok = true
	return t, nil
}

// Close - release every connection
func (t *T) Close() {
	if nil != t.contract {
		t.contract.Close()
		t.contract = nil
	}
	if nil != t.Database {
		t.Database.Close()
		t.Database = nil
	}
}
