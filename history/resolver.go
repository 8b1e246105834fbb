// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"context"
	"errors"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/bundle"
	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/record"
)

const (
	DefaultMaxDepth = 10000
)

// Options - limits applied to every walk
type Options struct {
	MaxDepth int           // 0 selects DefaultMaxDepth
	Timeout  time.Duration // 0 means only the caller's context applies
}

// Entry - one version of a record
type Entry struct {
	CID    cid.CID       `json:"cid"`
	URI    string        `json:"uri"`
	Record record.Record `json:"record"`
}

// Resolver - walks chains through a store and an anchor
//
// a resolver holds no per-walk state and may be shared
type Resolver struct {
	log     *logger.L
	store   gateway.Store
	anchor  gateway.Anchor
	options Options
}

// New - create a resolver
func New(log *logger.L, store gateway.Store, anchor gateway.Anchor, options Options) *Resolver {
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	return &Resolver{
		log:     log,
		store:   store,
		anchor:  anchor,
		options: options,
	}
}

// ResolveHistory - bundle identifiers of every version of id, newest
// first
func (r *Resolver) ResolveHistory(ctx context.Context, id uint64) ([]cid.CID, error) {
	entries, err := r.Walk(ctx, id)

	ids := make([]cid.CID, len(entries))
	for i, e := range entries {
		ids[i] = e.CID
	}
	return ids, err
}

// Walk - every version of id with its decoded record, newest first
//
// on error the versions read before the failure are returned
func (r *Resolver) Walk(ctx context.Context, id uint64) ([]Entry, error) {
	if r.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()
	}

	current, err := r.anchor.GetAnchor(ctx, id)
	if nil != err {
		return nil, r.failed(ctx, id, err)
	}

	entries := make([]Entry, 0, 8)
	visited := make(map[cid.CID]struct{})

	for {
		if _, seen := visited[current]; seen {
			r.log.Errorf("id: %d  cycle at: %s  after: %d steps", id, current, len(entries))
			return entries, fault.ErrCycleDetected
		}
		if len(entries) >= r.options.MaxDepth {
			r.log.Errorf("id: %d  depth exceeds: %d", id, r.options.MaxDepth)
			return entries, fault.ErrMaxDepthExceeded
		}
		if nil != ctx.Err() {
			return entries, r.failed(ctx, id, ctx.Err())
		}
		visited[current] = struct{}{}

		b, err := bundle.Fetch(ctx, r.store, current)
		if nil != err {
			return entries, r.failed(ctx, id, err)
		}

		rec, ok := b.Record(id)
		if !ok {
			r.log.Errorf("id: %d  not in bundle: %s", id, current)
			return entries, fault.ErrRecordNotInBundle
		}

		entries = append(entries, Entry{
			CID:    current,
			URI:    r.store.ResolveURI(current),
			Record: rec,
		})
		r.log.Debugf("id: %d  step: %d  cid: %s  prior: %s", id, len(entries), current, rec.Prior)

		if rec.Prior.IsRoot() {
			return entries, nil
		}
		current = rec.Prior.CID()
	}
}

// context expiry is reported as a timeout whatever the collaborator
// returned; other errors pass through unchanged
func (r *Resolver) failed(ctx context.Context, id uint64, err error) error {
	if nil != ctx.Err() || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		r.log.Warnf("id: %d  walk abandoned: %s", id, err)
		return fault.ErrTimeout
	}
	r.log.Errorf("id: %d  error: %s", id, err)
	return err
}
