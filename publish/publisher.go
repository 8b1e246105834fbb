// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - persist a batch and move the anchors to it
package publish

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/bundle"
	"github.com/bitmark-inc/metachain/chain"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/gateway"
	"github.com/bitmark-inc/metachain/record"
)

// Publisher - bundler plus anchor
type Publisher struct {
	log     *logger.L
	bundler *bundle.Bundler
	anchor  gateway.Anchor
	mutator *chain.Mutator
}

// New - create a publisher; mutator may be nil if Extend is not used
func New(log *logger.L, store gateway.Store, anchor gateway.Anchor, mutator *chain.Mutator) *Publisher {
	return &Publisher{
		log:     log,
		bundler: bundle.New(log, store),
		anchor:  anchor,
		mutator: mutator,
	}
}

// Publish - pack records and files then anchor every record id to
// the new bundle
//
// an anchor failure leaves earlier ids anchored; the bundle itself is
// already stored and publishing again is safe
func (p *Publisher) Publish(ctx context.Context, records []record.Record, files map[string][]byte) (*bundle.Bundle, error) {
	b, err := p.bundler.Pack(ctx, records, files)
	if nil != err {
		return nil, err
	}

	for _, id := range b.IDs() {
		err := p.anchor.SetAnchor(ctx, id, b.CID)
		if nil != err {
			p.log.Errorf("anchor id: %d  cid: %s  error: %s", id, b.CID, err)
			return b, err
		}
	}
	p.log.Infof("published: %s  records: %d", b.CID, len(b.Records))
	return b, nil
}

// Extend - apply edits chained to the current anchor of the batch
// and publish the result
//
// A batch with no anchor is published unchanged first so the edits
// have a bundle to point at.
func (p *Publisher) Extend(ctx context.Context, batch []record.Record, edits int, files map[string][]byte) (*bundle.Bundle, []uint64, error) {
	if nil == p.mutator {
		return nil, nil, fault.ErrNotInitialised
	}
	if 0 == len(batch) {
		return nil, nil, fault.ErrEmptyBatch
	}

	prior, err := p.Prior(ctx, batch[0].ID)
	if nil != err {
		return nil, nil, err
	}
	if prior.IsRoot() {
		first, err := p.Publish(ctx, batch, files)
		if nil != err {
			return first, nil, err
		}
		prior = record.PointTo(first.CID)
	}

	mutated, edited, err := p.mutator.Mutate(batch, edits, prior)
	if nil != err {
		return nil, nil, err
	}
	p.log.Debugf("edited: %v  prior: %s", edited, prior)

	b, err := p.Publish(ctx, mutated, files)
	if nil != err {
		return b, edited, err
	}
	return b, edited, nil
}

// Prior - pointer to the bundle currently anchored for id, root when
// nothing was published yet
func (p *Publisher) Prior(ctx context.Context, id uint64) (record.Pointer, error) {
	current, err := p.anchor.GetAnchor(ctx, id)
	if fault.ErrAnchorNotFound == err {
		return record.Root, nil
	}
	if nil != err {
		return record.Root, err
	}
	return record.PointTo(current), nil
}
