// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	cacheExpiration = 2 * time.Minute
	cacheCleanup    = 1 * time.Minute
)

// readCache - recently read or written values keyed by prefixed key
type readCache struct {
	items *cache.Cache
}

func newReadCache() *readCache {
	return &readCache{
		items: cache.New(cacheExpiration, cacheCleanup),
	}
}

// lookup - cached value; found is false when the database must be read
func (c *readCache) lookup(key []byte) ([]byte, bool) {
	item, found := c.items.Get(string(key))
	if !found {
		return nil, false
	}
	return item.([]byte), true
}

// store - keeps a private copy of value
func (c *readCache) store(key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	c.items.Set(string(key), v, cache.DefaultExpiration)
}

func (c *readCache) flush() {
	c.items.Flush()
}
