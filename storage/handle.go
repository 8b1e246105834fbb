// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/metachain/fault"
)

// PoolHandle - one prefixed table of the database
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *Database
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return fault.ErrNotInitialised
	}

	prefixedKey := p.prefixKey(key)
	err := p.database.db.Put(prefixedKey, value, nil)
	if nil != err {
		return err
	}
	p.database.cache.store(prefixedKey, value)
	return nil
}

// Get - read a value for a given key
//
// nil value with nil error means the key is not present
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return nil, fault.ErrNotInitialised
	}

	prefixedKey := p.prefixKey(key)
	if value, found := p.database.cache.lookup(prefixedKey); found {
		return value, nil
	}

	value, err := p.database.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	p.database.cache.store(prefixedKey, value)
	return value, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return false, fault.ErrNotInitialised
	}
	return p.database.db.Has(p.prefixKey(key), nil)
}

// Map - call f for every element in key order
//
// a non-nil error from f stops the scan and is returned
func (p *PoolHandle) Map(f func(key []byte, value []byte) error) error {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return fault.ErrNotInitialised
	}

	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	iter := p.database.db.NewIterator(&maxRange, nil)
	defer iter.Release()

	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if err := f(dataKey, dataValue); nil != err {
			return err
		}
	}
	return iter.Error()
}
